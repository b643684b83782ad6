package category

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finora-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finora-server/internal/service"
)

// Category is the API response model for a category.
type Category struct {
	ID        string `json:"id" doc:"Category UUID"`
	Name      string `json:"name" doc:"Category name, unique per user"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(c *service.Category) Category {
	return Category{ID: c.ID.String(), Name: c.Name, CreatedAt: c.CreatedAt.Format(time.RFC3339)}
}

type categoryService interface {
	ListCategories(ctx context.Context, userID uuid.UUID) ([]service.Category, error)
	CreateCategory(ctx context.Context, userID uuid.UUID, name string) (*service.Category, error)
	DeleteCategory(ctx context.Context, userID, id uuid.UUID) error
}

type ListCategoriesInput struct {
	apiutil.UserHeader
}

type ListCategoriesOutput struct {
	Body struct {
		Categories []Category `json:"categories" doc:"Categories ordered by name"`
	}
}

type CreateCategoryInput struct {
	apiutil.UserHeader
	Body struct {
		Name string `json:"name" minLength:"1" maxLength:"100" doc:"Category name"`
	}
}

type CategoryOutput struct {
	Body Category
}

type DeleteCategoryInput struct {
	apiutil.UserHeader
	apiutil.IDPath
}

// Handler serves /v1/category.
type Handler struct {
	CategoryService categoryService
}

func NewHandler(svc categoryService) *Handler {
	return &Handler{CategoryService: svc}
}

func (h *Handler) Register(api huma.API) {
	tags := []string{"Categories"}

	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/category",
		Summary:     "List categories",
		Tags:        tags,
	}, h.list)

	huma.Register(api, huma.Operation{
		OperationID: "create-category",
		Method:      http.MethodPost,
		Path:        "/v1/category",
		Summary:     "Create category",
		Description: "Creates a category, or returns the existing one with the same name.",
		Tags:        tags,
	}, h.create)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-category",
		Method:        http.MethodDelete,
		Path:          "/v1/category/{id}",
		Summary:       "Delete category",
		Description:   "Deletes a category. Its transactions are kept and become uncategorized.",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, h.delete)
}

func (h *Handler) list(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}

	categories, err := h.CategoryService.ListCategories(ctx, userID)
	if err != nil {
		return nil, apiutil.Error(err, "failed to list categories")
	}

	out := &ListCategoriesOutput{}
	out.Body.Categories = make([]Category, len(categories))
	for i := range categories {
		out.Body.Categories[i] = fromService(&categories[i])
	}
	return out, nil
}

func (h *Handler) create(ctx context.Context, input *CreateCategoryInput) (*CategoryOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}

	category, err := h.CategoryService.CreateCategory(ctx, userID, input.Body.Name)
	if err != nil {
		return nil, apiutil.Error(err, "failed to create category")
	}
	return &CategoryOutput{Body: fromService(category)}, nil
}

func (h *Handler) delete(ctx context.Context, input *DeleteCategoryInput) (*struct{}, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	id, err := input.Parse()
	if err != nil {
		return nil, err
	}

	if err := h.CategoryService.DeleteCategory(ctx, userID, id); err != nil {
		return nil, apiutil.Error(err, "failed to delete category")
	}
	return &struct{}{}, nil
}
