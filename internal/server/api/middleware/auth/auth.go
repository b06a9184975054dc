package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"dresscode/internal/server/sessions"
)

type Auth struct {
	sessions *sessions.Registry
	log      *slog.Logger
}

func New(reg *sessions.Registry, log *slog.Logger) *Auth {
	return &Auth{
		sessions: reg,
		log:      log.With(slog.String("component", "auth middleware")),
	}
}

type contextKey string

const (
	userKey  contextKey = "user"
	tokenKey contextKey = "token"
)

// Middleware validates the Bearer token and stores the resolved user in the
// request context.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			a.reject(ctx)
			return
		}
		token := header[len("Bearer "):]

		user, err := a.sessions.Validate(ctx.Context(), token)
		if err != nil {
			a.log.Warn("token rejected", "error", err)
			a.reject(ctx)
			return
		}

		newCtx := context.WithValue(ctx.Context(), userKey, user)
		newCtx = context.WithValue(newCtx, tokenKey, token)
		next(huma.WithContext(ctx, newCtx))
	}
}

func (a *Auth) reject(ctx huma.Context) {
	ctx.SetStatus(http.StatusUnauthorized)
	ctx.SetHeader("Content-Type", "application/json")
	if err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
		"error": "Unauthorized",
	}); err != nil {
		a.log.Error("write unauthorized response", "error", err)
	}
}

// GetUser returns the authenticated user stored by the middleware.
func GetUser(ctx context.Context) (string, bool) {
	user, ok := ctx.Value(userKey).(string)
	return user, ok
}

// GetToken returns the raw bearer token of the current request.
func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}
