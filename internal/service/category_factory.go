package service

import (
	"github.com/google/uuid"
	"github.com/phrazzld/category-api/internal/domain"
)

// IDGenerator produces identifiers for new categories.
type IDGenerator func() uuid.UUID

// CategoryFactory builds new categories from validated requests.
type CategoryFactory struct {
	newID IDGenerator
}

// NewCategoryFactory creates a factory. A nil generator uses random (version 4) UUIDs.
func NewCategoryFactory(newID IDGenerator) *CategoryFactory {
	if newID == nil {
		newID = uuid.New
	}
	return &CategoryFactory{newID: newID}
}

// Create returns a new category named after req with a fresh identifier.
// The request must already be validated. The category is not persisted.
func (f *CategoryFactory) Create(req domain.CategoryRequest) *domain.Category {
	return &domain.Category{
		ID:   f.newID(),
		Name: req.Name,
	}
}
