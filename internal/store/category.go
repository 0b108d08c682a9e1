package store

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/category-api/internal/domain"
)

// CategoryStore defines the interface for category persistence.
// Implementations must be safe for concurrent use and must hold their own
// copies of saved categories: mutating a value returned by FindByID has no
// effect until it is passed back to Save.
type CategoryStore interface {
	// FindAll returns every stored category in insertion order.
	// Returns an empty slice when the store is empty.
	FindAll(ctx context.Context) ([]*domain.Category, error)

	// FindByID retrieves a category by the string form of its identifier.
	// Returns ErrCategoryNotFound if no category matches, including when id
	// is not a valid UUID.
	FindByID(ctx context.Context, id string) (*domain.Category, error)

	// Save inserts the category or replaces the stored category with the same ID.
	// A replaced category keeps its original position in FindAll.
	// Returns ErrInvalidEntity if the category fails domain validation.
	Save(ctx context.Context, category *domain.Category) error

	// Remove deletes the category with the same ID.
	// Removing a category that is not stored is a no-op.
	Remove(ctx context.Context, category *domain.Category) error
}

// NormalizeID parses id and returns its canonical lowercase hyphenated form.
// Surrounding whitespace is ignored; braces and urn prefixes are accepted as
// uuid.Parse accepts them.
func NormalizeID(id string) (string, bool) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil || parsed == uuid.Nil {
		return "", false
	}
	return parsed.String(), true
}
