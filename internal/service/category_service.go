package service

import (
	"context"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finora-server/internal/operator/actions"
	"github.com/carson-networks/finora-server/internal/storage"
)

// Category represents a category in the service layer.
type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// CategoryService handles category business logic.
type CategoryService struct {
	storage  *storage.Storage
	operator Processor
}

func NewCategoryService(store *storage.Storage, op Processor) *CategoryService {
	return &CategoryService{storage: store, operator: op}
}

// ListCategories returns the user's categories ordered by name.
func (s *CategoryService) ListCategories(ctx context.Context, userID uuid.UUID) ([]Category, error) {
	rows, err := s.storage.Categories.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	categories := make([]Category, len(rows))
	for i, row := range rows {
		categories[i] = Category{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt}
	}
	return categories, nil
}

// CreateCategory creates a category, or returns the existing one when the
// user already has a category with the same trimmed name.
func (s *CategoryService) CreateCategory(ctx context.Context, userID uuid.UUID, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "must not be empty")
	}

	action := &actions.UpsertCategory{UserID: userID, Name: name}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, translate(err, "category")
	}

	return &Category{
		ID:        action.Category.ID,
		Name:      action.Category.Name,
		CreatedAt: action.Category.CreatedAt,
	}, nil
}

// DeleteCategory removes a category. Its transactions stay and become
// uncategorized.
func (s *CategoryService) DeleteCategory(ctx context.Context, userID, id uuid.UUID) error {
	err := s.operator.Process(ctx, &actions.DeleteCategory{UserID: userID, ID: id})
	return translate(err, "category")
}
