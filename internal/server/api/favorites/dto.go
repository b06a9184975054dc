package favorites

import "dresscode/internal/server/api/outfits"

type listOutput struct {
	Body []outfits.OutfitResponse
}

type toggleInput struct {
	ID string `path:"id" doc:"Outfit id"`
}

type toggleOutput struct {
	Body toggleResponse
}

type toggleResponse struct {
	IsFavorite bool `json:"isFavorite"`
}
