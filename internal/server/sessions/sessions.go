package sessions

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// Registry is an in-memory bearer token store for the development server.
// Any non-empty username/password pair is accepted; the username doubles as
// the user id, so two clients logging in with the same name share favorites.
type Registry struct {
	mu     sync.RWMutex
	tokens map[string]string // token -> user
	log    *slog.Logger
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		tokens: make(map[string]string),
		log:    log.With(slog.String("component", "sessions")),
	}
}

// Login issues a fresh bearer token for the user.
func (r *Registry) Login(_ context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	r.mu.Lock()
	r.tokens[token] = username
	r.mu.Unlock()

	r.log.Info("session opened", "user", username)
	return token, nil
}

// Validate resolves a bearer token to its user.
func (r *Registry) Validate(_ context.Context, token string) (string, error) {
	r.mu.RLock()
	user, ok := r.tokens[token]
	r.mu.RUnlock()
	if !ok {
		return "", ErrInvalidToken
	}
	return user, nil
}

// Logout revokes a token. Revoking an unknown token is not an error.
func (r *Registry) Logout(_ context.Context, token string) {
	r.mu.Lock()
	delete(r.tokens, token)
	r.mu.Unlock()
}
