package outfits

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "outfits-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/outfits",
		Summary:     "List catalog outfits",
		Description: "Returns one page of outfits matching the filter parameters.",
		Tags:        []string{"outfits"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "outfits-find",
		Method:      http.MethodGet,
		Path:        "/api/v1/outfits/{id}",
		Summary:     "Get one outfit with all images",
		Tags:        []string{"outfits"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) uploadOp() huma.Operation {
	return huma.Operation{
		OperationID: "outfits-upload",
		Method:      http.MethodPost,
		Path:        "/api/v1/outfits",
		Summary:     "Upload a user outfit image",
		Tags:        []string{"outfits"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.authorized,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID:   "outfits-delete",
		Method:        http.MethodDelete,
		Path:          "/api/v1/outfits/{id}",
		Summary:       "Delete a user-uploaded outfit",
		Tags:          []string{"outfits"},
		Security:      []map[string][]string{{"bearer": {}}},
		Middlewares:   h.authorized,
		DefaultStatus: http.StatusNoContent,
	}
}
