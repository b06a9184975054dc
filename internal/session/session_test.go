package session

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileProviderRoundTrip(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := NewFileProvider(filepath.Join(t.TempDir(), "conf", "token"), log)

	state, err := p.State(ctx)
	require.NoError(t, err)
	assert.False(t, state.IsAuthenticated())

	require.NoError(t, p.SetToken(ctx, "tok-abc\n"))
	state, err = p.State(ctx)
	require.NoError(t, err)
	assert.True(t, state.IsAuthenticated())
	assert.Equal(t, "tok-abc", state.Token)

	require.NoError(t, p.Logout(ctx))
	state, err = p.State(ctx)
	require.NoError(t, err)
	assert.False(t, state.IsAuthenticated())

	// logging out twice is fine
	require.NoError(t, p.Logout(ctx))
}
