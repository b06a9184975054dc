package feed

import (
	"fmt"

	"github.com/spf13/cobra"

	"dresscode/cmd/client/cmd/types"
	"dresscode/cmd/client/cmd/view"
	"dresscode/internal/app"
	"dresscode/internal/domain/outfit"
)

var (
	gender   string
	style    string
	season   string
	scene    string
	weather  string
	tags     []string
	maxPages int
)

var FeedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Browse the outfit feed",
	Long: `Browse the outfit catalog with optional filters.

The feed is served from the local cache first and refreshed from the server
in the background. Without a network connection the cached pages, or a small
built-in set on a cold start, are shown instead.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, ok := cmd.Context().Value(types.AppKey).(*app.App)
		if !ok {
			return fmt.Errorf("application is not initialized")
		}
		jsonOut, _ := cmd.Context().Value(types.JSONKey).(bool)

		filters := outfit.Filters{
			Style:   style,
			Season:  season,
			Scene:   scene,
			Weather: weather,
			Tags:    tags,
		}
		if gender != "" {
			g, ok := outfit.ParseGender(gender)
			if !ok {
				return fmt.Errorf("unknown gender %q (use female, male or unisex)", gender)
			}
			filters.Gender = g
		}

		page, err := view.Browse(cmd.Context(), a, "", filters, a.Config.PageSize, maxPages)
		if err != nil {
			return fmt.Errorf("browse feed: %w", err)
		}
		if !jsonOut && page.FilterKey != "" {
			a.Log.Debug("feed rendered", "filter_key", page.FilterKey, "items", len(page.Items))
		}
		return view.Previews(page.Items, jsonOut)
	},
}

func init() {
	FeedCmd.Flags().StringVar(&gender, "gender", "", "gender filter: female, male, unisex")
	FeedCmd.Flags().StringVar(&style, "style", "", "style filter")
	FeedCmd.Flags().StringVar(&season, "season", "", "season filter")
	FeedCmd.Flags().StringVar(&scene, "scene", "", "scene filter")
	FeedCmd.Flags().StringVar(&weather, "weather", "", "weather filter")
	FeedCmd.Flags().StringSliceVar(&tags, "tags", nil, "tag filter, comma separated")
	FeedCmd.Flags().IntVar(&maxPages, "pages", 1, "number of pages to load")
}
