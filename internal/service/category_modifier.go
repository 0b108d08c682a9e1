package service

import "github.com/phrazzld/category-api/internal/domain"

// CategoryModifier applies validated update requests to existing categories.
type CategoryModifier struct{}

// NewCategoryModifier creates a CategoryModifier.
func NewCategoryModifier() *CategoryModifier {
	return &CategoryModifier{}
}

// Modify replaces the name of category with the one in req, in place.
// The identifier is never changed. Stores hold copies, so the caller must
// save category afterwards for the change to be visible.
func (m *CategoryModifier) Modify(category *domain.Category, req domain.CategoryRequest) {
	category.Rename(req.Name)
}
