// Package view renders catalog content for the terminal and drives the
// shared browse pipeline used by the feed and search commands.
package view

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"dresscode/internal/app"
	"dresscode/internal/domain/outfit"
	"dresscode/internal/repository"
)

var (
	star    = color.New(color.FgYellow).SprintFunc()
	warn    = color.New(color.FgRed).SprintFunc()
	heading = color.New(color.Bold).SprintFunc()
)

// Browse runs the paging pipeline for one query and returns the final
// snapshot once maxPages pages are loaded or the feed is exhausted. Stale
// cached content arrives first; a failed refresh keeps it on screen.
func Browse(ctx context.Context, a *app.App, query string, filters outfit.Filters, pageSize, maxPages int) (repository.Page, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	pager := a.Repo.NewPager(ctx, pageSize)
	defer pager.Close()
	pager.SetQuery(query, filters)

	var last repository.Page
	wanted := maxPages * pageSize
	for {
		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case page := <-pager.Pages():
			if page.Err != nil {
				// cached snapshot, if any, already arrived
				fmt.Fprintf(os.Stderr, "%s refresh failed: %v\n", warn("!"), page.Err)
				return last, nil
			}
			last = page
			if page.EndOfPagination || len(page.Items) >= wanted {
				return last, nil
			}
			pager.LoadMore()
		}
	}
}

// Previews prints a preview list as a table, or JSON when asked.
func Previews(items []outfit.Preview, jsonOut bool) error {
	if jsonOut {
		return printJSON(items)
	}
	if len(items) == 0 {
		fmt.Println("Nothing to show.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, heading("ID\tTITLE\tGENDER\tTAGS\tFAV"))
	for _, item := range items {
		fav := ""
		if item.IsFavorite {
			fav = star("*")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			item.ID, item.Title, item.Gender, strings.Join(item.Tags, ","), fav)
	}
	return w.Flush()
}

// Detail prints one outfit in full.
func Detail(d *outfit.Detail, jsonOut bool) error {
	if jsonOut {
		return printJSON(d)
	}

	fmt.Println(heading(d.Title))
	fmt.Println("ID:    ", d.ID)
	if d.Gender != "" {
		fmt.Println("Gender:", d.Gender)
	}
	if len(d.Tags) > 0 {
		fmt.Println("Tags:  ", strings.Join(d.Tags, ", "))
	}
	for _, img := range d.Images {
		fmt.Println("Image: ", img)
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
