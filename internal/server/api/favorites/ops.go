package favorites

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "favorites-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/favorites",
		Summary:     "List the user's favorite outfits",
		Tags:        []string{"favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) addOp() huma.Operation {
	return huma.Operation{
		OperationID: "favorites-add",
		Method:      http.MethodPost,
		Path:        "/api/v1/favorites/{id}",
		Summary:     "Mark an outfit as favorite",
		Tags:        []string{"favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) removeOp() huma.Operation {
	return huma.Operation{
		OperationID: "favorites-remove",
		Method:      http.MethodDelete,
		Path:        "/api/v1/favorites/{id}",
		Summary:     "Unmark an outfit as favorite",
		Tags:        []string{"favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
