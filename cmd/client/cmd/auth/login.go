package auth

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"dresscode/cmd/client/cmd/types"
	"dresscode/internal/app"
)

var username string

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the catalog server",
	Long: `Open a session on the catalog server.

The issued token is stored locally and used by favorites, upload and delete.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, ok := cmd.Context().Value(types.AppKey).(*app.App)
		if !ok {
			return fmt.Errorf("application is not initialized")
		}

		if username == "" {
			fmt.Print("Username: ")
			if _, err := fmt.Scanln(&username); err != nil {
				return fmt.Errorf("read username: %w", err)
			}
		}
		username = strings.TrimSpace(username)

		fmt.Print("Password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}

		if err := a.Login(cmd.Context(), username, string(password)); err != nil {
			return fmt.Errorf("login: %w", err)
		}
		fmt.Printf("Logged in as %s\n", username)
		return nil
	},
}

func init() {
	LoginCmd.Flags().StringVarP(&username, "user", "u", "", "user name")
}
