//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/phrazzld/category-api/internal/domain"
	"github.com/phrazzld/category-api/internal/platform/postgres"
	"github.com/phrazzld/category-api/internal/platform/postgres/migrations"
	"github.com/phrazzld/category-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withTx runs fn inside a transaction that is always rolled back.
func withTx(t *testing.T, fn func(tx *sql.Tx)) {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, migrations.Up(ctx, db, nil))

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	fn(tx)
}

func TestPostgresCategoryStore_CRUD(t *testing.T) {
	withTx(t, func(tx *sql.Tx) {
		ctx := context.Background()
		s := postgres.NewPostgresCategoryStore(tx, nil)

		first, err := domain.NewCategory(uuid.New(), "Tech")
		require.NoError(t, err)
		second, err := domain.NewCategory(uuid.New(), "Bonds")
		require.NoError(t, err)

		require.NoError(t, s.Save(ctx, first))
		require.NoError(t, s.Save(ctx, second))

		got, err := s.FindByID(ctx, first.ID.String())
		require.NoError(t, err)
		assert.Equal(t, first, got)

		first.Rename("Technology")
		require.NoError(t, s.Save(ctx, first))

		all, err := s.FindAll(ctx)
		require.NoError(t, err)
		var ids []uuid.UUID
		for _, c := range all {
			ids = append(ids, c.ID)
		}
		assert.Equal(t, []uuid.UUID{first.ID, second.ID}, ids[len(ids)-2:], "re-save keeps insertion order")

		got, err = s.FindByID(ctx, first.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "Technology", got.Name)

		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 2)

		require.NoError(t, s.Remove(ctx, first))
		require.NoError(t, s.Remove(ctx, first), "second remove is a no-op")

		_, err = s.FindByID(ctx, first.ID.String())
		assert.ErrorIs(t, err, store.ErrCategoryNotFound)

		_, err = s.FindByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, store.ErrCategoryNotFound)
	})
}
