package authapi

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Open a session",
		Description: "Issues a bearer token. The development server accepts any non-empty credential pair.",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) logoutOp() huma.Operation {
	return huma.Operation{
		OperationID:   "auth-logout",
		Method:        http.MethodPost,
		Path:          "/api/v1/auth/logout",
		Summary:       "Revoke the current session token",
		Tags:          []string{"auth"},
		Security:      []map[string][]string{{"bearer": {}}},
		Middlewares:   h.authorized,
		DefaultStatus: http.StatusNoContent,
	}
}
