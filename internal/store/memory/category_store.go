// Package memory provides a process-local implementation of the store
// interfaces. Data lives only as long as the process.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/category-api/internal/domain"
	"github.com/phrazzld/category-api/internal/platform/logger"
	"github.com/phrazzld/category-api/internal/store"
)

// CategoryStore implements store.CategoryStore on top of a map guarded by
// a read-write mutex. It stores copies, never the caller's pointers.
type CategoryStore struct {
	mu     sync.RWMutex
	byID   map[string]*domain.Category
	order  []string
	logger *slog.Logger
}

// Ensure CategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*CategoryStore)(nil)

// NewCategoryStore creates an empty in-memory category store.
// If logger is nil, a default logger will be used.
func NewCategoryStore(logger *slog.Logger) *CategoryStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &CategoryStore{
		byID:   make(map[string]*domain.Category),
		logger: logger.With(slog.String("component", "category_store")),
	}
}

// FindAll implements store.CategoryStore.FindAll.
func (s *CategoryStore) FindAll(ctx context.Context) ([]*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]*domain.Category, 0, len(s.order))
	for _, id := range s.order {
		categories = append(categories, s.byID[id].Clone())
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("listed categories",
		slog.Int("count", len(categories)))
	return categories, nil
}

// FindByID implements store.CategoryStore.FindByID.
func (s *CategoryStore) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	key, ok := store.NormalizeID(id)
	if !ok {
		log.Debug("category lookup with unparseable id", slog.String("category_id", id))
		return nil, store.ErrCategoryNotFound
	}

	s.mu.RLock()
	category, found := s.byID[key]
	s.mu.RUnlock()

	if !found {
		log.Debug("category not found", slog.String("category_id", key))
		return nil, store.ErrCategoryNotFound
	}

	return category.Clone(), nil
}

// Save implements store.CategoryStore.Save.
func (s *CategoryStore) Save(ctx context.Context, category *domain.Category) error {
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

	key := category.ID.String()

	s.mu.Lock()
	_, existed := s.byID[key]
	s.byID[key] = category.Clone()
	if !existed {
		s.order = append(s.order, key)
	}
	s.mu.Unlock()

	log.Debug("category saved",
		slog.String("category_id", key),
		slog.Bool("replaced", existed))
	return nil
}

// Remove implements store.CategoryStore.Remove.
func (s *CategoryStore) Remove(ctx context.Context, category *domain.Category) error {
	if category == nil {
		return nil
	}

	key := category.ID.String()

	s.mu.Lock()
	_, existed := s.byID[key]
	if existed {
		delete(s.byID, key)
		for i, id := range s.order {
			if id == key {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()

	logger.FromContextOrDefault(ctx, s.logger).Debug("category removed",
		slog.String("category_id", key),
		slog.Bool("existed", existed))
	return nil
}

// Count returns the number of stored categories.
func (s *CategoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
