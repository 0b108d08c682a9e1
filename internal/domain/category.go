package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Category is a named grouping used to classify investments.
// ID is assigned once at creation and never changes; Name may be replaced.
type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CategoryRequest is the inbound payload used both to create a category and
// to replace the name of an existing one.
type CategoryRequest struct {
	Name string `json:"name" validate:"notblank,namelen"`
}

// NewCategory creates a Category with the given identifier and name.
// Returns an error if validation fails.
func NewCategory(id uuid.UUID, name string) (*Category, error) {
	c := &Category{
		ID:   id,
		Name: name,
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks the invariants every stored category must satisfy.
func (c *Category) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCategoryID
	}

	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCategoryName
	}

	return nil
}

// Rename replaces the category's name. The identifier is untouched.
func (c *Category) Rename(name string) {
	c.Name = name
}

// Clone returns an independent copy of the category.
func (c *Category) Clone() *Category {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
