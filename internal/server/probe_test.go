package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashirpar/clubserver/internal/repository"
	"github.com/ashirpar/clubserver/internal/repository/sqlite"
)

// indexedStore is a store that also maintains indexes, like mongodb.Store.
type indexedStore struct {
	repository.Store
	pingErr    error
	indexErr   error
	indexCalls int
}

func (s *indexedStore) Ping(ctx context.Context) error {
	if s.pingErr != nil {
		return s.pingErr
	}
	return s.Store.Ping(ctx)
}

func (s *indexedStore) EnsureIndexes(context.Context) error {
	s.indexCalls++
	return s.indexErr
}

func newProbeServer(t *testing.T, store repository.Store) *Server {
	t.Helper()
	srv, err := New(Config{JWTSecret: "test-secret-at-least-16-chars!!"}, store,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return srv
}

func TestProbeStore(t *testing.T) {
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	t.Run("reachable store gets its indexes", func(t *testing.T) {
		store := &indexedStore{Store: db}
		newProbeServer(t, store).probeStore()
		assert.Equal(t, 1, store.indexCalls)
	})

	t.Run("index failure does not stop startup", func(t *testing.T) {
		store := &indexedStore{Store: db, indexErr: errors.New("not primary")}
		assert.NotPanics(t, newProbeServer(t, store).probeStore)
		assert.Equal(t, 1, store.indexCalls)
	})

	t.Run("unreachable store skips indexes", func(t *testing.T) {
		store := &indexedStore{Store: db, pingErr: errors.New("connection refused")}
		newProbeServer(t, store).probeStore()
		assert.Equal(t, 0, store.indexCalls)
	})
}
