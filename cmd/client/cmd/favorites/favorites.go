package favorites

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dresscode/cmd/client/cmd/types"
	"dresscode/cmd/client/cmd/view"
	"dresscode/internal/app"
)

var watch bool

var FavoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage favorite outfits",
}

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorites from the local cache",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, ok := cmd.Context().Value(types.AppKey).(*app.App)
		if !ok {
			return fmt.Errorf("application is not initialized")
		}
		jsonOut, _ := cmd.Context().Value(types.JSONKey).(bool)

		if !watch {
			favs, err := a.Repo.Favorites(cmd.Context())
			if err != nil {
				return fmt.Errorf("read favorites: %w", err)
			}
			return view.Previews(favs, jsonOut)
		}

		updates, stop := a.Repo.ObserveFavorites(cmd.Context())
		defer stop()
		fmt.Println("Watching favorites, Ctrl+C to stop.")
		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case favs := <-updates:
				if err := view.Previews(favs, jsonOut); err != nil {
					return err
				}
			}
		}
	},
}

var ToggleCmd = &cobra.Command{
	Use:   "toggle <outfit-id>",
	Short: "Flip an outfit's favorite state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ok := cmd.Context().Value(types.AppKey).(*app.App)
		if !ok {
			return fmt.Errorf("application is not initialized")
		}

		on, err := a.Repo.ToggleFavorite(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("toggle favorite: %w", err)
		}
		if on {
			fmt.Printf("%s %s added to favorites\n", color.YellowString("*"), args[0])
		} else {
			fmt.Printf("%s removed from favorites\n", args[0])
		}
		return nil
	},
}

var RefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Replace local favorites with the server's set",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, ok := cmd.Context().Value(types.AppKey).(*app.App)
		if !ok {
			return fmt.Errorf("application is not initialized")
		}

		if err := a.Repo.RefreshFavoritesFromRemote(cmd.Context()); err != nil {
			return fmt.Errorf("refresh favorites: %w", err)
		}
		fmt.Println("Favorites synchronized.")
		return nil
	},
}

func init() {
	ListCmd.Flags().BoolVar(&watch, "watch", false, "keep printing as favorites change")
}
