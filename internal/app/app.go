// Package app wires the catalog client: local cache, remote source, session
// and the repository facade, built from one loaded configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"dresscode/internal/config"
	"dresscode/internal/remote"
	"dresscode/internal/repository"
	"dresscode/internal/session"
	"dresscode/internal/store"
	"dresscode/internal/store/sqlite"
)

type App struct {
	Config  *config.Client
	Log     *slog.Logger
	Store   *sqlite.Store
	Source  *remote.Client
	Session *session.FileProvider
	Repo    *repository.Repository
}

func New(cfg *config.Client, log *slog.Logger) (*App, error) {
	st, err := sqlite.Open(cfg.CachePath, store.NewNotifier(), log)
	if err != nil {
		return nil, fmt.Errorf("open local cache: %w", err)
	}

	source := remote.NewClient(cfg.ServerURL, log)
	sess := session.NewFileProvider(cfg.TokenPath, log)
	repo := repository.New(st, source, sess, log)

	return &App{
		Config:  cfg,
		Log:     log,
		Store:   st,
		Source:  source,
		Session: sess,
		Repo:    repo,
	}, nil
}

func (a *App) Close() error {
	return a.Store.Close()
}

// Login opens a server session and persists the token for later commands.
func (a *App) Login(ctx context.Context, username, password string) error {
	token, err := a.Source.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := a.Session.SetToken(ctx, token); err != nil {
		return fmt.Errorf("persist session token: %w", err)
	}
	return nil
}

// Logout revokes the session on the server, best effort, and always drops
// the local token.
func (a *App) Logout(ctx context.Context) error {
	state, err := a.Session.State(ctx)
	if err == nil && state.IsAuthenticated() {
		if err := a.Source.Logout(ctx, state.Token); err != nil {
			a.Log.Warn("server-side logout failed", "error", err)
		}
	}
	return a.Session.Logout(ctx)
}

// IsAuthenticated reports whether a session token is stored locally.
func (a *App) IsAuthenticated(ctx context.Context) bool {
	state, err := a.Session.State(ctx)
	return err == nil && state.IsAuthenticated()
}
