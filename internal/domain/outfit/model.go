package outfit

import "time"

// Gender is the catalog's audience tag. The zero value means "not specified".
type Gender string

const (
	GenderFemale Gender = "FEMALE"
	GenderMale   Gender = "MALE"
	GenderUnisex Gender = "UNISEX"
)

// ParseGender maps a free-form server value onto a known Gender.
func ParseGender(s string) (Gender, bool) {
	switch Gender(normalizeUpper(s)) {
	case GenderFemale:
		return GenderFemale, true
	case GenderMale:
		return GenderMale, true
	case GenderUnisex:
		return GenderUnisex, true
	}
	return "", false
}

// Outfit is one cached catalog entry within one partition. The same outfit id
// may be cached under several filter keys, each with its own page position,
// so identity is the (ID, FilterKey) pair.
type Outfit struct {
	ID           string
	FilterKey    string
	Title        string
	ImageURL     string
	Gender       Gender
	Style        string
	Season       string
	Scene        string
	Weather      string
	Tags         []string
	IsFavorite   bool
	IsUserUpload bool
	Page         int
	IndexInPage  int
	UpdatedAt    time.Time
}

// Cursor is the pagination bookkeeping stored alongside each fetched outfit.
// A nil NextPage on the partition's last item means the partition is
// exhausted. Keyed per item rather than per page so that many partitions can
// share the table without page-number collisions.
type Cursor struct {
	ID        string
	FilterKey string
	PrevPage  *int
	NextPage  *int
}

// Favorite is the authoritative record of a favorited outfit. It is global,
// not partitioned; Outfit.IsFavorite is a denormalized copy of this table.
type Favorite struct {
	OutfitID string
	Title    string
	ImageURL string
	Gender   Gender
	Tags     []string
	AddedAt  time.Time
}

// SearchEntry is one remembered search query.
type SearchEntry struct {
	Query     string
	CreatedAt time.Time
}

// Preview is the read model handed to catalog consumers.
type Preview struct {
	ID         string
	Title      string
	ImageURL   string
	Tags       []string
	Gender     Gender
	IsFavorite bool
}

// Detail is the full single-outfit view with every known image.
type Detail struct {
	ID     string
	Title  string
	Images []string
	Tags   []string
	Gender Gender
}

// PreviewOf projects a cached outfit onto the consumer read model.
func PreviewOf(o Outfit) Preview {
	g := o.Gender
	if g == "" {
		g = GenderUnisex
	}
	return Preview{
		ID:         o.ID,
		Title:      o.Title,
		ImageURL:   o.ImageURL,
		Tags:       o.Tags,
		Gender:     g,
		IsFavorite: o.IsFavorite,
	}
}

// PreviewOfFavorite projects a favorite row onto the consumer read model.
func PreviewOfFavorite(f Favorite) Preview {
	g := f.Gender
	if g == "" {
		g = GenderUnisex
	}
	return Preview{
		ID:         f.OutfitID,
		Title:      f.Title,
		ImageURL:   f.ImageURL,
		Tags:       f.Tags,
		Gender:     g,
		IsFavorite: true,
	}
}

// FavoriteOf snapshots a cached outfit into a favorite row.
func FavoriteOf(o Outfit, at time.Time) Favorite {
	return Favorite{
		OutfitID: o.ID,
		Title:    o.Title,
		ImageURL: o.ImageURL,
		Gender:   o.Gender,
		Tags:     o.Tags,
		AddedAt:  at,
	}
}
