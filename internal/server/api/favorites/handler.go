package favorites

import (
	"context"
	"log/slog"

	"github.com/danielgtaylor/huma/v2"

	"dresscode/internal/server/api/middleware/auth"
	"dresscode/internal/server/api/outfits"
	"dresscode/internal/server/catalog"
)

type Handler struct {
	service    *catalog.Service
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service *catalog.Service, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.addOp(), h.add)
	huma.Register(api, h.removeOp(), h.remove)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	user, ok := auth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	items := h.service.Favorites(ctx, user)
	fav := true
	body := make([]outfits.OutfitResponse, 0, len(items))
	for _, item := range items {
		body = append(body, outfits.ResponseFromItem(item, &fav))
	}
	return &listOutput{Body: body}, nil
}

func (h *Handler) add(ctx context.Context, input *toggleInput) (*toggleOutput, error) {
	return h.set(ctx, input.ID, true)
}

func (h *Handler) remove(ctx context.Context, input *toggleInput) (*toggleOutput, error) {
	return h.set(ctx, input.ID, false)
}

func (h *Handler) set(ctx context.Context, id string, on bool) (*toggleOutput, error) {
	user, ok := auth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.SetFavorite(ctx, user, id, on); err != nil {
		return nil, huma.Error404NotFound("outfit not found")
	}
	return &toggleOutput{Body: toggleResponse{IsFavorite: on}}, nil
}
