package recurring

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finora-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finora-server/internal/ledger"
	"github.com/carson-networks/finora-server/internal/logging"
	"github.com/carson-networks/finora-server/internal/service"
)

type recurringService interface {
	CreateTemplate(ctx context.Context, userID uuid.UUID, input service.RecurringInput) (*service.RecurringTemplate, error)
	ListTemplates(ctx context.Context, userID uuid.UUID) ([]service.RecurringTemplate, error)
	DeleteTemplate(ctx context.Context, userID, id uuid.UUID) error
	ApplyUpToToday(ctx context.Context, userID uuid.UUID) ([]service.TemplateResult, error)
}

// Template is the API response model for a recurring template.
type Template struct {
	ID              string `json:"id"`
	CategoryID      string `json:"categoryID,omitempty"`
	Type            string `json:"type" enum:"income,expense,saving"`
	Amount          string `json:"amount"`
	Note            string `json:"note"`
	DayOfMonth      int    `json:"dayOfMonth"`
	LastAppliedDate string `json:"lastAppliedDate,omitempty" doc:"Last materialised date (YYYY-MM-DD)"`
	CreatedAt       string `json:"createdAt"`
}

func fromService(t *service.RecurringTemplate) Template {
	out := Template{
		ID:         t.ID.String(),
		Type:       string(t.Type),
		Amount:     t.Amount.String(),
		Note:       t.Note,
		DayOfMonth: t.DayOfMonth,
		CreatedAt:  t.CreatedAt.Format(time.RFC3339),
	}
	if t.CategoryID != nil {
		out.CategoryID = t.CategoryID.String()
	}
	if t.LastAppliedDate != nil {
		out.LastAppliedDate = apiutil.FormatDate(*t.LastAppliedDate)
	}
	return out
}

type CreateTemplateBody struct {
	CategoryID string `json:"categoryID,omitempty" format:"uuid"`
	Type       string `json:"type" enum:"income,expense,saving"`
	Amount     string `json:"amount" minLength:"1" doc:"Non-negative decimal amount"`
	Note       string `json:"note,omitempty" maxLength:"500"`
	DayOfMonth int    `json:"dayOfMonth" minimum:"1" maximum:"28" doc:"Day the transaction falls on"`
}

type CreateTemplateInput struct {
	apiutil.UserHeader
	Body CreateTemplateBody
}

type TemplateOutput struct {
	Body Template
}

type ListTemplatesInput struct {
	apiutil.UserHeader
}

type ListTemplatesOutput struct {
	Body struct {
		Templates []Template `json:"templates"`
	}
}

type DeleteTemplateInput struct {
	apiutil.UserHeader
	apiutil.IDPath
}

type ApplyInput struct {
	apiutil.UserHeader
}

// Applied reports one template's run.
type Applied struct {
	TemplateID string `json:"templateID"`
	Applied    int    `json:"applied" doc:"Transactions created"`
	Error      string `json:"error,omitempty" doc:"Why the template was skipped"`
}

type ApplyOutput struct {
	Body struct {
		Applied int       `json:"applied" doc:"Transactions created across all templates"`
		Results []Applied `json:"results"`
	}
}

// Handler serves /v1/recurring.
type Handler struct {
	RecurringService recurringService
}

func NewHandler(svc recurringService) *Handler {
	return &Handler{RecurringService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-recurring-template",
		Method:        http.MethodPost,
		Path:          "/v1/recurring",
		Summary:       "Create recurring template",
		Tags:          []string{"Recurring"},
		DefaultStatus: http.StatusCreated,
	}, h.create)

	huma.Register(api, huma.Operation{
		OperationID: "list-recurring-templates",
		Method:      http.MethodGet,
		Path:        "/v1/recurring",
		Summary:     "List recurring templates",
		Tags:        []string{"Recurring"},
	}, h.list)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-recurring-template",
		Method:        http.MethodDelete,
		Path:          "/v1/recurring/{id}",
		Summary:       "Delete recurring template",
		Tags:          []string{"Recurring"},
		DefaultStatus: http.StatusNoContent,
	}, h.delete)

	huma.Register(api, huma.Operation{
		OperationID: "apply-recurring",
		Method:      http.MethodPost,
		Path:        "/v1/recurring/apply",
		Summary:     "Apply recurring templates",
		Description: "Creates the transactions of every due date up to today. Templates are applied independently.",
		Tags:        []string{"Recurring"},
	}, h.apply)
}

func (h *Handler) create(ctx context.Context, input *CreateTemplateInput) (*TemplateOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	categoryID, err := apiutil.ParseOptionalID("categoryID", input.Body.CategoryID)
	if err != nil {
		return nil, err
	}
	amount, err := apiutil.ParseAmount("amount", input.Body.Amount)
	if err != nil {
		return nil, err
	}

	template, err := h.RecurringService.CreateTemplate(ctx, userID, service.RecurringInput{
		CategoryID: categoryID,
		Type:       ledger.TransactionType(input.Body.Type),
		Amount:     amount,
		Note:       input.Body.Note,
		DayOfMonth: input.Body.DayOfMonth,
	})
	if err != nil {
		return nil, apiutil.Error(err, "failed to create recurring template")
	}
	return &TemplateOutput{Body: fromService(template)}, nil
}

func (h *Handler) list(ctx context.Context, input *ListTemplatesInput) (*ListTemplatesOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}

	templates, err := h.RecurringService.ListTemplates(ctx, userID)
	if err != nil {
		return nil, apiutil.Error(err, "failed to list recurring templates")
	}

	out := &ListTemplatesOutput{}
	out.Body.Templates = make([]Template, len(templates))
	for i := range templates {
		out.Body.Templates[i] = fromService(&templates[i])
	}
	return out, nil
}

func (h *Handler) delete(ctx context.Context, input *DeleteTemplateInput) (*struct{}, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	id, err := input.Parse()
	if err != nil {
		return nil, err
	}

	if err := h.RecurringService.DeleteTemplate(ctx, userID, id); err != nil {
		return nil, apiutil.Error(err, "failed to delete recurring template")
	}
	return nil, nil
}

func (h *Handler) apply(ctx context.Context, input *ApplyInput) (*ApplyOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}

	results, err := h.RecurringService.ApplyUpToToday(ctx, userID)
	if err != nil {
		return nil, apiutil.Error(err, "failed to apply recurring templates")
	}

	out := &ApplyOutput{}
	out.Body.Results = make([]Applied, len(results))
	for i, r := range results {
		out.Body.Results[i] = Applied{TemplateID: r.TemplateID.String(), Applied: r.Applied}
		if r.Err != nil {
			out.Body.Results[i].Error = r.Err.Error()
		}
		out.Body.Applied += r.Applied
	}
	logging.Data(ctx, "appliedTransactions", out.Body.Applied)
	return out, nil
}
