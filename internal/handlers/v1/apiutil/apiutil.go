// Package apiutil holds the request parsing and error mapping shared by the
// v1 handlers.
package apiutil

import (
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finora-server/internal/ledger"
	"github.com/carson-networks/finora-server/internal/service"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = time.DateOnly

// UserHeader identifies the user a request acts for. Embed it in handler
// inputs.
type UserHeader struct {
	UserID string `header:"X-User-ID" required:"true" format:"uuid" doc:"UUID of the acting user"`
}

// User parses the acting user's ID.
func (h UserHeader) User() (uuid.UUID, error) {
	id, err := uuid.FromString(h.UserID)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid X-User-ID", err)
	}
	return id, nil
}

// WindowQuery is an optional inclusive date window. Embed it in handler inputs.
type WindowQuery struct {
	Start string `query:"start" format:"date" doc:"First day of the window (YYYY-MM-DD), unbounded when absent"`
	End   string `query:"end" format:"date" doc:"Last day of the window (YYYY-MM-DD), unbounded when absent"`
}

// Window parses the query into a ledger window.
func (q WindowQuery) Window() (ledger.Window, error) {
	var window ledger.Window
	if q.Start != "" {
		start, err := ParseDate("start", q.Start)
		if err != nil {
			return ledger.Window{}, err
		}
		window.Start = &start
	}
	if q.End != "" {
		end, err := ParseDate("end", q.End)
		if err != nil {
			return ledger.Window{}, err
		}
		window.End = &end
	}
	return window, nil
}

// IDPath is a row ID taken from the URL path.
type IDPath struct {
	ID string `path:"id" format:"uuid" doc:"Row UUID"`
}

func (p IDPath) Parse() (uuid.UUID, error) {
	return ParseID("id", p.ID)
}

// ParseID parses a UUID field.
func ParseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return id, nil
}

// ParseOptionalID parses a UUID field that may be empty.
func ParseOptionalID(field, raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := ParseID(field, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ParseAmount parses a decimal money field.
func ParseAmount(field, raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return amount, nil
}

// ParseDate parses a YYYY-MM-DD field.
func ParseDate(field, raw string) (time.Time, error) {
	date, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return date, nil
}

// ParseOptionalDate parses a YYYY-MM-DD field that may be empty. An empty
// field yields the zero time.
func ParseOptionalDate(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return ParseDate(field, raw)
}

// FormatDate renders a calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Error maps a service error onto an HTTP error. msg describes the failed
// operation.
func Error(err error, msg string) error {
	var validation *service.ValidationError
	switch {
	case errors.As(err, &validation):
		return huma.NewError(http.StatusBadRequest, validation.Error(), err)
	case errors.Is(err, service.ErrNotFound):
		return huma.NewError(http.StatusNotFound, msg, err)
	case errors.Is(err, service.ErrConflict):
		return huma.NewError(http.StatusConflict, msg, err)
	case errors.Is(err, service.ErrUpstreamUnavailable):
		return huma.NewError(http.StatusServiceUnavailable, msg, err)
	default:
		return huma.NewError(http.StatusInternalServerError, msg, err)
	}
}
