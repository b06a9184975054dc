package catalog

import (
	"time"

	"dresscode/internal/domain/outfit"
)

// seedItems builds the development catalog. IDs are stable so clients keep a
// consistent cache across server restarts.
func seedItems() []Item {
	at := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)
	return []Item{
		{
			ID:       "cat-001",
			Title:    "Linen shirt and wide trousers",
			ImageURL: "https://img.dresscode.dev/catalog/cat-001.jpg",
			Images: []string{
				"https://img.dresscode.dev/catalog/cat-001.jpg",
				"https://img.dresscode.dev/catalog/cat-001-b.jpg",
			},
			Gender: outfit.GenderFemale, Style: "casual", Season: "summer",
			Scene: "commute", Weather: "sunny",
			Tags: []string{"linen", "breathable", "casual"}, CreatedAt: at,
		},
		{
			ID:       "cat-002",
			Title:    "Wool overcoat with turtleneck",
			ImageURL: "https://img.dresscode.dev/catalog/cat-002.jpg",
			Gender:   outfit.GenderMale, Style: "formal", Season: "winter",
			Scene: "office", Weather: "cold",
			Tags: []string{"wool", "layered", "formal"}, CreatedAt: at,
		},
		{
			ID:       "cat-003",
			Title:    "Denim jacket over white tee",
			ImageURL: "https://img.dresscode.dev/catalog/cat-003.jpg",
			Gender:   outfit.GenderUnisex, Style: "street", Season: "spring",
			Scene: "weekend", Weather: "mild",
			Tags: []string{"denim", "street", "casual"}, CreatedAt: at,
		},
		{
			ID:       "cat-004",
			Title:    "Pleated skirt with cardigan",
			ImageURL: "https://img.dresscode.dev/catalog/cat-004.jpg",
			Gender:   outfit.GenderFemale, Style: "preppy", Season: "autumn",
			Scene: "campus", Weather: "mild",
			Tags: []string{"pleated", "knit", "preppy"}, CreatedAt: at,
		},
		{
			ID:       "cat-005",
			Title:    "Rain shell and quick-dry pants",
			ImageURL: "https://img.dresscode.dev/catalog/cat-005.jpg",
			Gender:   outfit.GenderUnisex, Style: "outdoor", Season: "autumn",
			Scene: "hiking", Weather: "rain",
			Tags: []string{"waterproof", "outdoor", "rain"}, CreatedAt: at,
		},
		{
			ID:       "cat-006",
			Title:    "Slim suit with knit tie",
			ImageURL: "https://img.dresscode.dev/catalog/cat-006.jpg",
			Gender:   outfit.GenderMale, Style: "formal", Season: "spring",
			Scene: "office", Weather: "mild",
			Tags: []string{"suit", "knit", "formal"}, CreatedAt: at,
		},
		{
			ID:       "cat-007",
			Title:    "Slip dress with denim jacket",
			ImageURL: "https://img.dresscode.dev/catalog/cat-007.jpg",
			Gender:   outfit.GenderFemale, Style: "street", Season: "summer",
			Scene: "date", Weather: "sunny",
			Tags: []string{"denim", "slip", "evening"}, CreatedAt: at,
		},
		{
			ID:       "cat-008",
			Title:    "Fleece pullover and joggers",
			ImageURL: "https://img.dresscode.dev/catalog/cat-008.jpg",
			Gender:   outfit.GenderUnisex, Style: "athleisure", Season: "winter",
			Scene: "weekend", Weather: "cold",
			Tags: []string{"fleece", "cozy", "sport"}, CreatedAt: at,
		},
		{
			ID:       "cat-009",
			Title:    "Trench coat over midi dress",
			ImageURL: "https://img.dresscode.dev/catalog/cat-009.jpg",
			Gender:   outfit.GenderFemale, Style: "classic", Season: "autumn",
			Scene: "commute", Weather: "rain",
			Tags: []string{"trench", "classic", "rain"}, CreatedAt: at,
		},
		{
			ID:       "cat-010",
			Title:    "Chore coat and canvas pants",
			ImageURL: "https://img.dresscode.dev/catalog/cat-010.jpg",
			Gender:   outfit.GenderMale, Style: "workwear", Season: "autumn",
			Scene: "weekend", Weather: "mild",
			Tags: []string{"canvas", "workwear", "durable"}, CreatedAt: at,
		},
		{
			ID:       "cat-011",
			Title:    "Puffer vest with flannel shirt",
			ImageURL: "https://img.dresscode.dev/catalog/cat-011.jpg",
			Gender:   outfit.GenderUnisex, Style: "outdoor", Season: "winter",
			Scene: "hiking", Weather: "cold",
			Tags: []string{"puffer", "flannel", "outdoor"}, CreatedAt: at,
		},
		{
			ID:       "cat-012",
			Title:    "Silk blouse and tailored shorts",
			ImageURL: "https://img.dresscode.dev/catalog/cat-012.jpg",
			Gender:   outfit.GenderFemale, Style: "smart", Season: "summer",
			Scene: "office", Weather: "sunny",
			Tags: []string{"silk", "tailored", "smart"}, CreatedAt: at,
		},
	}
}
