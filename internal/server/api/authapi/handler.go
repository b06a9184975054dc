package authapi

import (
	"context"
	"log/slog"

	"github.com/danielgtaylor/huma/v2"

	"dresscode/internal/server/api/middleware/auth"
	"dresscode/internal/server/sessions"
)

type Handler struct {
	sessions   *sessions.Registry
	log        *slog.Logger
	middleware huma.Middlewares
	authorized huma.Middlewares
}

func NewHandler(reg *sessions.Registry, log *slog.Logger, middleware, authorized huma.Middlewares) *Handler {
	return &Handler{
		sessions:   reg,
		log:        log,
		middleware: middleware,
		authorized: authorized,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.logoutOp(), h.logout)
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	token, err := h.sessions.Login(ctx, input.Body.Username, input.Body.Password)
	if err != nil {
		return &loginOutput{
			Body: LoginResponse{Status: "Error", Error: "Invalid credentials"},
		}, nil
	}

	return &loginOutput{
		Body: LoginResponse{Token: token, Status: "Ok"},
	}, nil
}

func (h *Handler) logout(ctx context.Context, _ *struct{}) (*struct{}, error) {
	token, ok := auth.GetToken(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	h.sessions.Logout(ctx, token)
	return nil, nil
}
