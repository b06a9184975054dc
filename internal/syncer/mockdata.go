package syncer

import (
	"time"

	"dresscode/internal/domain/outfit"
)

// The fallback catalog shown when the first page cannot be fetched at all.
// Content mirrors the curated sample looks of the production catalog and must
// stay deterministic: tests and the offline first-run experience depend on it.
var fallbackOutfits = []outfit.Outfit{
	{
		ID:      "look-1",
		Title:   "夏日通勤",
		Gender:  outfit.GenderFemale,
		Style:   "通勤",
		Season:  "夏季",
		Scene:   "通勤",
		Weather: "晴",
		Tags:    []string{"夏季", "通勤", "简约"},
	},
	{
		ID:      "look-2",
		Title:   "周末休闲",
		Gender:  outfit.GenderUnisex,
		Style:   "休闲",
		Season:  "四季",
		Scene:   "出街",
		Weather: "多云",
		Tags:    []string{"休闲", "牛仔"},
	},
	{
		ID:      "look-3",
		Title:   "运动风",
		Gender:  outfit.GenderMale,
		Style:   "运动",
		Season:  "夏季",
		Scene:   "运动",
		Weather: "晴",
		Tags:    []string{"运动", "街头"},
	},
	{
		ID:      "look-4",
		Title:   "雨天通勤",
		Gender:  outfit.GenderFemale,
		Style:   "通勤",
		Season:  "春季",
		Scene:   "办公室",
		Weather: "雨天",
		Tags:    []string{"雨天", "通勤", "防水"},
	},
	{
		ID:      "look-5",
		Title:   "晚间约会",
		Gender:  outfit.GenderFemale,
		Style:   "优雅",
		Season:  "夏季",
		Scene:   "约会",
		Weather: "晴",
		Tags:    []string{"约会", "优雅", "夏季"},
	},
}

// FallbackCount is the fixed size of the substituted dataset.
var FallbackCount = len(fallbackOutfits)

// FallbackPage materializes the fallback dataset for one partition: a single
// terminal page with favorite flags resolved against the local set.
func FallbackPage(filterKey string, favoriteIDs map[string]struct{}, at time.Time) ([]outfit.Outfit, []outfit.Cursor) {
	outfits := make([]outfit.Outfit, 0, len(fallbackOutfits))
	cursors := make([]outfit.Cursor, 0, len(fallbackOutfits))
	for i, o := range fallbackOutfits {
		o.FilterKey = filterKey
		o.Page = 1
		o.IndexInPage = i
		o.UpdatedAt = at
		_, o.IsFavorite = favoriteIDs[o.ID]
		outfits = append(outfits, o)
		cursors = append(cursors, outfit.Cursor{ID: o.ID, FilterKey: filterKey})
	}
	return outfits, cursors
}
