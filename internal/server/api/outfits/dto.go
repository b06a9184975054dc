package outfits

import (
	"mime/multipart"

	"dresscode/internal/server/catalog"
)

// OutfitResponse is the wire shape of a catalog item. Field names follow the
// mobile client contract; imageUrl is mirrored into the legacy image_url key
// for older clients.
type OutfitResponse struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	ImageURL       string        `json:"imageUrl,omitempty"`
	ImageURLLegacy string        `json:"image_url,omitempty"`
	Images         []string      `json:"images,omitempty"`
	Gender         string        `json:"gender,omitempty"`
	Tags           *TagsResponse `json:"tags,omitempty"`
	IsFavorite     *bool         `json:"isFavorite,omitempty"`
	IsUserUpload   bool          `json:"is_user_upload,omitempty"`
}

// TagsResponse groups an item's tags by facet.
type TagsResponse struct {
	Style   []string `json:"style,omitempty"`
	Season  []string `json:"season,omitempty"`
	Scene   []string `json:"scene,omitempty"`
	Weather []string `json:"weather,omitempty"`
	General []string `json:"general,omitempty"`
}

// ResponseFromItem converts a stored item into its wire shape. isFavorite is
// only set for authenticated requests; nil keeps the key out of the payload.
func ResponseFromItem(item catalog.Item, isFavorite *bool) OutfitResponse {
	resp := OutfitResponse{
		ID:           item.ID,
		Title:        item.Title,
		ImageURL:     item.ImageURL,
		Images:       item.Images,
		Gender:       string(item.Gender),
		IsFavorite:   isFavorite,
		IsUserUpload: item.UserUpload,
	}

	tags := &TagsResponse{General: item.Tags}
	if item.Style != "" {
		tags.Style = []string{item.Style}
	}
	if item.Season != "" {
		tags.Season = []string{item.Season}
	}
	if item.Scene != "" {
		tags.Scene = []string{item.Scene}
	}
	if item.Weather != "" {
		tags.Weather = []string{item.Weather}
	}
	resp.Tags = tags
	return resp
}

type listInput struct {
	Page    int    `query:"page" minimum:"1" default:"1" doc:"Page number, starting at 1"`
	Size    int    `query:"size" minimum:"1" maximum:"100" default:"20" doc:"Items per page"`
	Gender  string `query:"gender" doc:"Gender filter: female, male or unisex"`
	Style   string `query:"style" doc:"Style filter"`
	Season  string `query:"season" doc:"Season filter"`
	Scene   string `query:"scene" doc:"Scene filter"`
	Weather string `query:"weather" doc:"Weather filter"`
	Tags    string `query:"tags" doc:"Comma-separated tag filter"`
	Query   string `query:"q" doc:"Free-text search over title and tags"`
}

type listOutput struct {
	Body PagedResponse
}

// PagedResponse is one page of catalog results.
type PagedResponse struct {
	Items    []OutfitResponse `json:"items"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
	Total    int              `json:"total"`
}

type findInput struct {
	ID string `path:"id" doc:"Outfit id"`
}

type findOutput struct {
	Body OutfitResponse
}

type uploadInput struct {
	RawBody multipart.Form
}

type uploadOutput struct {
	Body OutfitResponse
}

type deleteInput struct {
	ID string `path:"id" doc:"Outfit id"`
}
