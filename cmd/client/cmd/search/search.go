package search

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dresscode/cmd/client/cmd/types"
	"dresscode/cmd/client/cmd/view"
	"dresscode/internal/app"
	"dresscode/internal/domain/outfit"
)

var (
	gender   string
	maxPages int
	limit    int
)

var SearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog",
	Long: `Search outfits by free text over titles and tags.

Successful searches are remembered locally; see "search history".`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ok := cmd.Context().Value(types.AppKey).(*app.App)
		if !ok {
			return fmt.Errorf("application is not initialized")
		}
		jsonOut, _ := cmd.Context().Value(types.JSONKey).(bool)

		query := strings.Join(args, " ")
		if err := a.Repo.RecordSearch(cmd.Context(), query); err != nil {
			a.Log.Warn("record search history", "error", err)
		}

		filters := outfit.Filters{}
		if gender != "" {
			g, ok := outfit.ParseGender(gender)
			if !ok {
				return fmt.Errorf("unknown gender %q (use female, male or unisex)", gender)
			}
			filters.Gender = g
		}

		page, err := view.Browse(cmd.Context(), a, query, filters, a.Config.PageSize, maxPages)
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}
		return view.Previews(page.Items, jsonOut)
	},
}

var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, ok := cmd.Context().Value(types.AppKey).(*app.App)
		if !ok {
			return fmt.Errorf("application is not initialized")
		}

		recent, err := a.Repo.RecentSearches(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("read search history: %w", err)
		}
		if len(recent) == 0 {
			fmt.Println("No searches yet.")
			return nil
		}
		for _, q := range recent {
			fmt.Println(q)
		}
		return nil
	},
}

func init() {
	SearchCmd.Flags().StringVar(&gender, "gender", "", "gender filter: female, male, unisex")
	SearchCmd.Flags().IntVar(&maxPages, "pages", 1, "number of pages to load")
	HistoryCmd.Flags().IntVar(&limit, "limit", 10, "number of entries to show")
}
