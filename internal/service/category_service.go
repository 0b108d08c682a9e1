package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/category-api/internal/domain"
	"github.com/phrazzld/category-api/internal/events"
	"github.com/phrazzld/category-api/internal/platform/logger"
	"github.com/phrazzld/category-api/internal/store"
	"github.com/phrazzld/category-api/internal/validation"
)

// RequestValidator checks a category request before it is used.
type RequestValidator interface {
	Validate(req domain.CategoryRequest) validation.Violations
}

// Result is the outcome of a create or update: either the resulting category
// or the violations that stopped the request before any mutation.
type Result struct {
	Category   *domain.Category
	Violations validation.Violations
}

// Invalid reports whether the request was rejected by validation.
func (r Result) Invalid() bool {
	return len(r.Violations) > 0
}

// CategoryService defines the category use cases exposed to the API layer.
type CategoryService interface {
	// List returns all categories in insertion order.
	List(ctx context.Context) ([]*domain.Category, error)

	// Get returns the category with the given ID.
	// Returns store.ErrCategoryNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Category, error)

	// Create validates req, builds a new category and saves it.
	// Validation failures are reported in the Result, not as an error.
	Create(ctx context.Context, req domain.CategoryRequest) (Result, error)

	// Update validates req and renames the category with the given ID.
	// Returns store.ErrCategoryNotFound if it does not exist.
	Update(ctx context.Context, id string, req domain.CategoryRequest) (Result, error)

	// Delete removes the category with the given ID.
	// Returns store.ErrCategoryNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}

// categoryServiceImpl implements CategoryService.
type categoryServiceImpl struct {
	store     store.CategoryStore
	validator RequestValidator
	factory   *CategoryFactory
	modifier  *CategoryModifier
	emitter   events.EventEmitter
	logger    *slog.Logger

	// writeMu makes each read-then-write sequence a single critical section.
	writeMu sync.Mutex
}

// NewCategoryService creates a CategoryService.
// A nil emitter discards events; a nil logger uses slog.Default().
func NewCategoryService(
	categoryStore store.CategoryStore,
	validator RequestValidator,
	factory *CategoryFactory,
	modifier *CategoryModifier,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (CategoryService, error) {
	if categoryStore == nil {
		return nil, fmt.Errorf("category store cannot be nil")
	}
	if validator == nil {
		return nil, fmt.Errorf("validator cannot be nil")
	}
	if factory == nil {
		factory = NewCategoryFactory(nil)
	}
	if modifier == nil {
		modifier = NewCategoryModifier()
	}
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &categoryServiceImpl{
		store:     categoryStore,
		validator: validator,
		factory:   factory,
		modifier:  modifier,
		emitter:   emitter,
		logger:    logger.With(slog.String("component", "category_service")),
	}, nil
}

// List implements CategoryService.List.
func (s *categoryServiceImpl) List(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, NewCategoryServiceError("list", "failed to list categories", err)
	}
	return categories, nil
}

// Get implements CategoryService.Get.
func (s *categoryServiceImpl) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.find(ctx, "get", id)
}

// Create implements CategoryService.Create.
func (s *categoryServiceImpl) Create(ctx context.Context, req domain.CategoryRequest) (Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if violations := s.validator.Validate(req); len(violations) > 0 {
		log.Debug("category create rejected by validation",
			slog.Any("fields", violations.Fields()))
		return Result{Violations: violations}, nil
	}

	category := s.factory.Create(req)

	s.writeMu.Lock()
	err := s.store.Save(ctx, category)
	s.writeMu.Unlock()
	if err != nil {
		return Result{}, NewCategoryServiceError("create", "failed to save category", err)
	}

	log.Info("category created",
		slog.String("category_id", category.ID.String()))
	s.emit(ctx, events.CategoryCreated, category)
	return Result{Category: category}, nil
}

// Update implements CategoryService.Update.
func (s *categoryServiceImpl) Update(
	ctx context.Context,
	id string,
	req domain.CategoryRequest,
) (Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if violations := s.validator.Validate(req); len(violations) > 0 {
		log.Debug("category update rejected by validation",
			slog.String("category_id", id),
			slog.Any("fields", violations.Fields()))
		return Result{Violations: violations}, nil
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	category, err := s.find(ctx, "update", id)
	if err != nil {
		return Result{}, err
	}

	s.modifier.Modify(category, req)

	// Stores keep their own copies, so the modified value must be saved back.
	if err := s.store.Save(ctx, category); err != nil {
		return Result{}, NewCategoryServiceError("update", "failed to save category", err)
	}

	log.Info("category updated",
		slog.String("category_id", category.ID.String()))
	s.emit(ctx, events.CategoryUpdated, category)
	return Result{Category: category}, nil
}

// Delete implements CategoryService.Delete.
func (s *categoryServiceImpl) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	category, err := s.find(ctx, "delete", id)
	if err != nil {
		return err
	}

	if err := s.store.Remove(ctx, category); err != nil {
		return NewCategoryServiceError("delete", "failed to remove category", err)
	}

	log.Info("category deleted",
		slog.String("category_id", category.ID.String()))
	s.emit(ctx, events.CategoryDeleted, category)
	return nil
}

// find looks up a category, passing not-found through unchanged and
// wrapping any other store failure.
func (s *categoryServiceImpl) find(ctx context.Context, operation, id string) (*domain.Category, error) {
	category, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			return nil, store.ErrCategoryNotFound
		}
		return nil, NewCategoryServiceError(operation, "failed to find category", err)
	}
	return category, nil
}

// emit publishes a lifecycle event. The mutation has already succeeded, so
// handler failures are logged rather than returned.
func (s *categoryServiceImpl) emit(ctx context.Context, eventType events.Type, category *domain.Category) {
	event := events.NewCategoryEvent(eventType, category.ID, category.Name)
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to emit category event",
			slog.String("error", err.Error()),
			slog.String("event_type", string(eventType)),
			slog.String("category_id", category.ID.String()))
	}
}
