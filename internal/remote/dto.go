package remote

import (
	"strings"
	"time"

	"dresscode/internal/domain/outfit"
)

// userUploadMarker is the reserved storage path for user-submitted images.
// Some legacy server responses omit the explicit is_user_upload flag, so any
// image reference containing this marker is treated as a user upload.
const userUploadMarker = "/user_uploads/"

// OutfitDTO is the wire shape of one catalog item. Optional fields stay
// pointers so "absent" and "zero" remain distinguishable.
type OutfitDTO struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	ImageURL       *string        `json:"imageUrl,omitempty"`
	ImageURLLegacy *string        `json:"image_url,omitempty"`
	Images         []string       `json:"images,omitempty"`
	Gender         *string        `json:"gender,omitempty"`
	Tags           *OutfitTagsDTO `json:"tags,omitempty"`
	IsFavorite     *bool          `json:"isFavorite,omitempty"`
	IsUserUpload   *bool          `json:"is_user_upload,omitempty"`
}

// OutfitTagsDTO groups server-side tags by facet.
type OutfitTagsDTO struct {
	Style   []string `json:"style,omitempty"`
	Season  []string `json:"season,omitempty"`
	Scene   []string `json:"scene,omitempty"`
	Weather []string `json:"weather,omitempty"`
	General []string `json:"general,omitempty"`
}

// PagedResponseDTO is one page of catalog results.
type PagedResponseDTO struct {
	Items    []OutfitDTO `json:"items"`
	Page     *int        `json:"page,omitempty"`
	PageSize *int        `json:"pageSize,omitempty"`
	Total    *int        `json:"total,omitempty"`
}

// ToggleFavoriteResponseDTO acknowledges a favorite add/remove.
type ToggleFavoriteResponseDTO struct {
	IsFavorite *bool `json:"isFavorite,omitempty"`
}

// PrimaryImage picks the best single image reference, honoring the legacy
// image_url alias and falling back to the first gallery entry.
func (d OutfitDTO) PrimaryImage() string {
	if d.ImageURL != nil && *d.ImageURL != "" {
		return *d.ImageURL
	}
	if d.ImageURLLegacy != nil && *d.ImageURLLegacy != "" {
		return *d.ImageURLLegacy
	}
	if len(d.Images) > 0 {
		return d.Images[0]
	}
	return ""
}

// UserUploadInferred applies the user-upload heuristic: the explicit flag
// wins, otherwise any image reference under the reserved storage path counts.
func (d OutfitDTO) UserUploadInferred() bool {
	if d.IsUserUpload != nil && *d.IsUserUpload {
		return true
	}
	candidates := make([]string, 0, len(d.Images)+2)
	if d.ImageURL != nil {
		candidates = append(candidates, *d.ImageURL)
	}
	if d.ImageURLLegacy != nil {
		candidates = append(candidates, *d.ImageURLLegacy)
	}
	candidates = append(candidates, d.Images...)
	for _, url := range candidates {
		if strings.Contains(strings.ToLower(url), userUploadMarker) {
			return true
		}
	}
	return false
}

// CollectTags flattens every tag facet into one free tag list.
func (d OutfitDTO) CollectTags() []string {
	if d.Tags == nil {
		return nil
	}
	var out []string
	for _, group := range [][]string{d.Tags.General, d.Tags.Style, d.Tags.Scene, d.Tags.Weather, d.Tags.Season} {
		for _, tag := range group {
			if strings.TrimSpace(tag) != "" {
				out = append(out, tag)
			}
		}
	}
	return out
}

func (d OutfitDTO) gender() outfit.Gender {
	if d.Gender == nil {
		return ""
	}
	g, ok := outfit.ParseGender(*d.Gender)
	if !ok {
		return ""
	}
	return g
}

func firstOf(ss []string) string {
	if len(ss) == 0 {
		return ""
	}
	return ss[0]
}

// ToOutfit places the item into a cache partition at a page position.
func (d OutfitDTO) ToOutfit(filterKey string, page, indexInPage int, isFavorite bool, at time.Time) outfit.Outfit {
	o := outfit.Outfit{
		ID:           d.ID,
		FilterKey:    filterKey,
		Title:        d.Title,
		ImageURL:     d.PrimaryImage(),
		Gender:       d.gender(),
		Tags:         d.CollectTags(),
		IsFavorite:   isFavorite,
		IsUserUpload: d.UserUploadInferred(),
		Page:         page,
		IndexInPage:  indexInPage,
		UpdatedAt:    at,
	}
	if d.Tags != nil {
		o.Style = firstOf(d.Tags.Style)
		o.Season = firstOf(d.Tags.Season)
		o.Scene = firstOf(d.Tags.Scene)
		o.Weather = firstOf(d.Tags.Weather)
	}
	return o
}

// ToFavorite snapshots the item into a favorites-table row.
func (d OutfitDTO) ToFavorite(at time.Time) outfit.Favorite {
	return outfit.Favorite{
		OutfitID: d.ID,
		Title:    d.Title,
		ImageURL: d.PrimaryImage(),
		Gender:   d.gender(),
		Tags:     d.CollectTags(),
		AddedAt:  at,
	}
}

// ToDetail builds the full single-outfit view.
func (d OutfitDTO) ToDetail() outfit.Detail {
	images := d.Images
	if len(images) == 0 {
		if primary := d.PrimaryImage(); primary != "" {
			images = []string{primary}
		}
	}
	return outfit.Detail{
		ID:     d.ID,
		Title:  d.Title,
		Images: images,
		Tags:   d.CollectTags(),
		Gender: d.gender(),
	}
}
