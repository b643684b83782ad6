package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finora-server/internal/storage/sqlconfig"
)

func TestCreateCategory_TrimsAndUpserts(t *testing.T) {
	svc, mocks := newTestService(t)
	userID, id := newID(), newID()

	mocks.Categories.On("Upsert", mock.Anything, userID, "Groceries").
		Return(&sqlconfig.Category{ID: id, UserID: userID, Name: "Groceries"}, nil)

	category, err := svc.Category.CreateCategory(context.Background(), userID, "  Groceries ")

	require.NoError(t, err)
	assert.Equal(t, id, category.ID)
	assert.Equal(t, "Groceries", category.Name)
}

func TestCreateCategory_RejectsBlankName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Category.CreateCategory(context.Background(), newID(), "   ")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestListCategories(t *testing.T) {
	svc, mocks := newTestService(t)
	userID := newID()

	mocks.Categories.On("List", mock.Anything, userID).Return([]*sqlconfig.Category{
		{ID: newID(), Name: "Food"},
		{ID: newID(), Name: "Rent"},
	}, nil)

	categories, err := svc.Category.ListCategories(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Food", categories[0].Name)
	assert.Equal(t, "Rent", categories[1].Name)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	svc, mocks := newTestService(t)
	userID, id := newID(), newID()

	mocks.Categories.On("Delete", mock.Anything, userID, id).Return(false, nil)

	err := svc.Category.DeleteCategory(context.Background(), userID, id)
	assert.ErrorIs(t, err, ErrNotFound)
}
