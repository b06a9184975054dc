package session

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// State is the current session snapshot.
type State struct {
	Token string
}

func (s State) IsAuthenticated() bool { return s.Token != "" }

// Provider yields the current session and is told to log out when the server
// rejects the token. The catalog core consumes this; it never issues logins.
type Provider interface {
	State(ctx context.Context) (State, error)
	Logout(ctx context.Context) error
}

// FileProvider keeps the bearer token in a file under the client config dir.
type FileProvider struct {
	mu   sync.RWMutex
	path string
	log  *slog.Logger
}

func NewFileProvider(path string, log *slog.Logger) *FileProvider {
	return &FileProvider{path: path, log: log}
}

func (p *FileProvider) State(_ context.Context) (State, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("read token file: %w", err)
	}
	return State{Token: strings.TrimSpace(string(data))}, nil
}

// SetToken stores a fresh token, creating the config dir when needed.
func (p *FileProvider) SetToken(_ context.Context, token string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(p.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(p.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

// Logout drops the stored token. Called by the user and forced by the core
// on any 401-class response.
func (p *FileProvider) Logout(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := os.Remove(p.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	p.log.Debug("session cleared")
	return nil
}
