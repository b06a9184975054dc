package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"dresscode/cmd/client/cmd/types"
	"dresscode/internal/app"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Close the current session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, ok := cmd.Context().Value(types.AppKey).(*app.App)
		if !ok {
			return fmt.Errorf("application is not initialized")
		}

		if !a.IsAuthenticated(cmd.Context()) {
			fmt.Println("Not logged in.")
			return nil
		}
		if err := a.Logout(cmd.Context()); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		fmt.Println("Logged out.")
		return nil
	},
}
