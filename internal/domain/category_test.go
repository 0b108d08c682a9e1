package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	c, err := NewCategory(id, "Tech")
	require.NoError(t, err)
	assert.Equal(t, id, c.ID)
	assert.Equal(t, "Tech", c.Name)

	_, err = NewCategory(uuid.Nil, "Tech")
	assert.ErrorIs(t, err, ErrEmptyCategoryID)

	_, err = NewCategory(id, "   ")
	assert.ErrorIs(t, err, ErrEmptyCategoryName)
}

func TestCategoryRename(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	c := &Category{ID: id, Name: "Tech"}
	c.Rename("Technology")

	assert.Equal(t, id, c.ID, "rename must not change the ID")
	assert.Equal(t, "Technology", c.Name)
}

func TestCategoryClone(t *testing.T) {
	t.Parallel()

	original := &Category{ID: uuid.New(), Name: "Bonds"}
	clone := original.Clone()
	clone.Rename("Stocks")

	assert.Equal(t, "Bonds", original.Name)
	assert.Equal(t, original.ID, clone.ID)

	var missing *Category
	assert.Nil(t, missing.Clone())
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("id", "has invalid format", ErrInvalidID)
	assert.Equal(t, "id has invalid format", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidID))

	defaulted := NewValidationError("name", "is required", nil)
	assert.True(t, errors.Is(defaulted, ErrValidation))
}
