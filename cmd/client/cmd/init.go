package cmd

import (
	"dresscode/cmd/client/cmd/auth"
	"dresscode/cmd/client/cmd/favorites"
	"dresscode/cmd/client/cmd/feed"
	"dresscode/cmd/client/cmd/outfitcmd"
	"dresscode/cmd/client/cmd/search"
)

func init() {
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)

	rootCmd.AddCommand(feed.FeedCmd)

	rootCmd.AddCommand(search.SearchCmd)
	search.SearchCmd.AddCommand(search.HistoryCmd)

	rootCmd.AddCommand(favorites.FavoritesCmd)
	favorites.FavoritesCmd.AddCommand(favorites.ListCmd)
	favorites.FavoritesCmd.AddCommand(favorites.ToggleCmd)
	favorites.FavoritesCmd.AddCommand(favorites.RefreshCmd)

	rootCmd.AddCommand(outfitcmd.OutfitCmd)
	outfitcmd.OutfitCmd.AddCommand(outfitcmd.GetCmd)
	outfitcmd.OutfitCmd.AddCommand(outfitcmd.UploadCmd)
	outfitcmd.OutfitCmd.AddCommand(outfitcmd.DeleteCmd)
}
