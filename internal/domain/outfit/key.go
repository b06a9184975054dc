package outfit

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// The cache is partitioned by one canonical string per (query, filters)
// combination. Two pairs differing only in case, field order or tag order
// must land in the same partition, so everything is normalized before being
// joined into `gender|style|season|scene|weather|tags|query`.

var (
	lowerCaser = cases.Lower(language.Und)
	upperCaser = cases.Upper(language.Und)
)

func normalizeLower(s string) string { return lowerCaser.String(s) }
func normalizeUpper(s string) string { return upperCaser.String(strings.TrimSpace(s)) }

// BuildFilterKey derives the cache partition key for a query/filter pair.
// The gender segment keeps the enum name; an unset gender is the literal
// "any". An empty query with empty filters yields exactly "any||||||".
func BuildFilterKey(query string, f Filters) string {
	tags := make([]string, 0, len(f.Tags))
	seen := make(map[string]struct{}, len(f.Tags))
	for _, t := range f.Tags {
		t = normalizeLower(t)
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	sort.Strings(tags)

	gender := "any"
	if f.Gender != "" {
		gender = string(f.Gender)
	}

	parts := []string{
		gender,
		normalizeLower(f.Style),
		normalizeLower(f.Season),
		normalizeLower(f.Scene),
		normalizeLower(f.Weather),
		strings.Join(tags, ","),
		normalizeLower(strings.TrimSpace(query)),
	}
	return strings.Join(parts, "|")
}

// DefaultFilterKey is the partition for the unfiltered, queryless feed.
func DefaultFilterKey() string {
	return BuildFilterKey("", Filters{})
}
