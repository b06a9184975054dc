package outfits

import (
	"context"
	"log/slog"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"dresscode/internal/domain/outfit"
	"dresscode/internal/server/api/middleware/auth"
	"dresscode/internal/server/catalog"
)

type Handler struct {
	service    *catalog.Service
	log        *slog.Logger
	middleware huma.Middlewares
	authorized huma.Middlewares
}

// NewHandler wires the catalog endpoints. middleware runs on public routes,
// authorized on routes that mutate the catalog.
func NewHandler(service *catalog.Service, log *slog.Logger, middleware, authorized huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
		authorized: authorized,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.uploadOp(), h.upload)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	q := catalog.Query{
		Style:   input.Style,
		Season:  input.Season,
		Scene:   input.Scene,
		Weather: input.Weather,
		Text:    input.Query,
		Page:    input.Page,
		Size:    input.Size,
	}
	if g, ok := outfit.ParseGender(input.Gender); ok {
		q.Gender = g
	}
	if input.Tags != "" {
		for _, tag := range strings.Split(input.Tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				q.Tags = append(q.Tags, tag)
			}
		}
	}

	res := h.service.List(ctx, q)

	items := make([]OutfitResponse, 0, len(res.Items))
	for _, item := range res.Items {
		items = append(items, ResponseFromItem(item, h.favoriteFlag(ctx, item.ID)))
	}
	return &listOutput{
		Body: PagedResponse{
			Items:    items,
			Page:     res.Page,
			PageSize: res.Size,
			Total:    res.Total,
		},
	}, nil
}

// favoriteFlag resolves the per-user favorite marker when the request carries
// a valid session; anonymous requests get no marker at all.
func (h *Handler) favoriteFlag(ctx context.Context, id string) *bool {
	user, ok := auth.GetUser(ctx)
	if !ok {
		return nil
	}
	fav := h.service.IsFavorite(ctx, user, id)
	return &fav
}

func (h *Handler) find(ctx context.Context, input *findInput) (*findOutput, error) {
	item, ok := h.service.Find(ctx, input.ID)
	if !ok {
		return nil, huma.Error404NotFound("outfit not found")
	}
	return &findOutput{Body: ResponseFromItem(item, h.favoriteFlag(ctx, input.ID))}, nil
}

func (h *Handler) upload(ctx context.Context, input *uploadInput) (*uploadOutput, error) {
	user, ok := auth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	files := input.RawBody.File["file"]
	if len(files) == 0 {
		return nil, huma.Error422UnprocessableEntity("file part is required")
	}
	header := files[0]

	item := h.service.AddUpload(ctx, user, header.Filename, int(header.Size))
	fav := false
	return &uploadOutput{Body: ResponseFromItem(item, &fav)}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*struct{}, error) {
	user, ok := auth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, user, input.ID); err != nil {
		h.log.Warn("delete rejected", "id", input.ID, "user", user, "error", err)
		return nil, huma.Error404NotFound("outfit not found")
	}
	return nil, nil
}
