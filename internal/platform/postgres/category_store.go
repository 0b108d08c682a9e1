package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/category-api/internal/domain"
	"github.com/phrazzld/category-api/internal/platform/logger"
	"github.com/phrazzld/category-api/internal/store"
)

// PostgresCategoryStore implements the store.CategoryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCategoryStore creates a new PostgreSQL implementation of the CategoryStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCategoryStore(db store.DBTX, logger *slog.Logger) *PostgresCategoryStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

// Ensure PostgresCategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

// FindAll implements store.CategoryStore.FindAll.
// Categories are returned in insertion order.
func (s *PostgresCategoryStore) FindAll(ctx context.Context) ([]*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name
		FROM categories
		ORDER BY seq
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query categories", slog.String("error", err.Error()))
		return nil, store.NewStoreError("category", "find_all", "failed to query categories", MapError(err))
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, store.NewStoreError("category", "find_all", "failed to scan category", err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("category", "find_all", "failed to iterate categories", MapError(err))
	}

	log.Debug("categories retrieved", slog.Int("count", len(categories)))
	return categories, nil
}

// FindByID implements store.CategoryStore.FindByID.
// Returns store.ErrCategoryNotFound if the ID is unknown or not a valid UUID.
func (s *PostgresCategoryStore) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	normalized, ok := store.NormalizeID(id)
	if !ok {
		log.Debug("category lookup with unparseable id", slog.String("category_id", id))
		return nil, store.ErrCategoryNotFound
	}

	query := `
		SELECT id, name
		FROM categories
		WHERE id = $1
	`
	var c domain.Category
	err := s.db.QueryRowContext(ctx, query, normalized).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("category not found", slog.String("category_id", normalized))
		return nil, store.ErrCategoryNotFound
	}
	if err != nil {
		log.Error("failed to get category",
			slog.String("error", err.Error()),
			slog.String("category_id", normalized))
		return nil, store.NewStoreError("category", "find_by_id", "failed to get category", MapError(err))
	}

	return &c, nil
}

// Save implements store.CategoryStore.Save.
// It inserts the category or renames the existing row with the same ID.
func (s *PostgresCategoryStore) Save(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if category == nil {
		return fmt.Errorf("%w: category cannot be nil", store.ErrInvalidEntity)
	}
	if err := category.Validate(); err != nil {
		log.Warn("category validation failed during save",
			slog.String("error", err.Error()),
			slog.String("category_id", category.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO categories (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, updated_at = NOW()
	`
	if _, err := s.db.ExecContext(ctx, query, category.ID, category.Name); err != nil {
		log.Error("failed to save category",
			slog.String("error", err.Error()),
			slog.String("category_id", category.ID.String()))
		return store.NewStoreError("category", "save", "failed to save category", MapError(err))
	}

	log.Debug("category saved", slog.String("category_id", category.ID.String()))
	return nil
}

// Remove implements store.CategoryStore.Remove.
// Removing a category that is not stored is a no-op.
func (s *PostgresCategoryStore) Remove(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if category == nil {
		return fmt.Errorf("%w: category cannot be nil", store.ErrInvalidEntity)
	}

	query := `DELETE FROM categories WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, category.ID)
	if err != nil {
		log.Error("failed to delete category",
			slog.String("error", err.Error()),
			slog.String("category_id", category.ID.String()))
		return store.NewStoreError("category", "remove", "failed to delete category", MapError(err))
	}

	if err := CheckRowsAffected(result, "category"); err != nil {
		if IsNotFoundError(err) {
			log.Debug("category already absent", slog.String("category_id", category.ID.String()))
			return nil
		}
		return store.NewStoreError("category", "remove", "failed to check deleted rows", err)
	}

	log.Debug("category deleted", slog.String("category_id", category.ID.String()))
	return nil
}

// Count returns the number of stored categories.
func (s *PostgresCategoryStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return 0, store.NewStoreError("category", "count", "failed to count categories", MapError(err))
	}
	return n, nil
}
