// Development catalog server.
//
// GET    /api/v1/health          # Liveness (public)
// POST   /api/v1/auth/login      # Open a session (public)
// POST   /api/v1/auth/logout     # Revoke the session token (auth)
// GET    /api/v1/outfits         # Paged, filtered catalog (public)
// GET    /api/v1/outfits/{id}    # One outfit with images (public)
// POST   /api/v1/outfits         # Upload a user outfit (auth)
// DELETE /api/v1/outfits/{id}    # Delete a user upload (auth)
// GET    /api/v1/favorites       # User's favorites (auth)
// POST   /api/v1/favorites/{id}  # Add favorite (auth)
// DELETE /api/v1/favorites/{id}  # Remove favorite (auth)

package api

import (
	"log/slog"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"dresscode/internal/server/api/authapi"
	"dresscode/internal/server/api/favorites"
	"dresscode/internal/server/api/health"
	"dresscode/internal/server/api/middleware/auth"
	"dresscode/internal/server/api/middleware/logger"
	"dresscode/internal/server/api/outfits"
	"dresscode/internal/server/catalog"
	"dresscode/internal/server/sessions"
)

type Handlers struct {
	Health    *health.Handler
	Auth      *authapi.Handler
	Outfits   *outfits.Handler
	Favorites *favorites.Handler
}

// New builds a chi mux with every operation registered through huma.
func New(svc *catalog.Service, reg *sessions.Registry, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("DressCode Catalog API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(svc, reg, log)
	h.Health.SetupRoutes(API)
	h.Auth.SetupRoutes(API)
	h.Outfits.SetupRoutes(API)
	h.Favorites.SetupRoutes(API)

	return mux
}

func handlers(svc *catalog.Service, reg *sessions.Registry, log *slog.Logger) *Handlers {
	authMW := auth.New(reg, log)
	loggerMW := logger.New(log)

	public := huma.Middlewares{loggerMW.Middleware()}
	authorized := huma.Middlewares{authMW.Middleware(), loggerMW.Middleware()}

	return &Handlers{
		Health:    health.NewHandler(log, public),
		Auth:      authapi.NewHandler(reg, log, public, authorized),
		Outfits:   outfits.NewHandler(svc, log, public, authorized),
		Favorites: favorites.NewHandler(svc, log, authorized),
	}
}
