package api

import "github.com/phrazzld/category-api/internal/domain"

// CategoryView is the JSON representation of a category.
type CategoryView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryViewFactory projects domain categories onto their JSON views.
type CategoryViewFactory struct{}

// NewCategoryViewFactory creates a CategoryViewFactory.
func NewCategoryViewFactory() CategoryViewFactory {
	return CategoryViewFactory{}
}

// CreateSingle returns the view of one category.
func (CategoryViewFactory) CreateSingle(category *domain.Category) CategoryView {
	return CategoryView{
		ID:   category.ID.String(),
		Name: category.Name,
	}
}

// CreateList returns the views of categories in the same order.
// The result is never nil so an empty list encodes as [].
func (f CategoryViewFactory) CreateList(categories []*domain.Category) []CategoryView {
	views := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, f.CreateSingle(c))
	}
	return views
}
