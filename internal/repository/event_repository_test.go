package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ykuzmenko/smartsend/internal/models"
	"github.com/ykuzmenko/smartsend/internal/repository"
)

func TestEventRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewEventRepository(db)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("list by anon id newest first", func(t *testing.T) {
		defer cleanupTestData(db)

		first := insertTestEvent(t, repo, "anon-1", "view_product", base)
		second := insertTestEvent(t, repo, "anon-1", "add_to_cart", base.Add(time.Minute))
		insertTestEvent(t, repo, "anon-2", "view_product", base.Add(2*time.Minute))

		events, err := repo.ListByAnonID(ctx, "anon-1", 100)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, second.ID, events[0].ID)
		assert.Equal(t, first.ID, events[1].ID)
	})

	t.Run("payload survives the round trip", func(t *testing.T) {
		defer cleanupTestData(db)

		insertTestEvent(t, repo, "anon-1", "add_to_cart", base)

		events, err := repo.ListByAnonID(ctx, "anon-1", 100)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, models.JSONMap{"source": "test"}, events[0].Payload)
	})

	t.Run("last by type", func(t *testing.T) {
		defer cleanupTestData(db)

		insertTestEvent(t, repo, "anon-1", "add_to_cart", base)
		latest := insertTestEvent(t, repo, "anon-1", "add_to_cart", base.Add(time.Hour))
		insertTestEvent(t, repo, "anon-1", "view_product", base.Add(2*time.Hour))

		event, err := repo.LastByType(ctx, "anon-1", "add_to_cart")
		require.NoError(t, err)
		assert.Equal(t, latest.ID, event.ID)
	})

	t.Run("last by type with no match", func(t *testing.T) {
		_, err := repo.LastByType(ctx, "anon-1", "purchase")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("delete by anon id", func(t *testing.T) {
		defer cleanupTestData(db)

		insertTestEvent(t, repo, "anon-1", "view_product", base)
		insertTestEvent(t, repo, "anon-2", "view_product", base)

		require.NoError(t, repo.DeleteByAnonID(ctx, "anon-1"))

		gone, err := repo.ListByAnonID(ctx, "anon-1", 100)
		require.NoError(t, err)
		assert.Empty(t, gone)

		kept, err := repo.ListByAnonID(ctx, "anon-2", 100)
		require.NoError(t, err)
		assert.Len(t, kept, 1)
	})
}
