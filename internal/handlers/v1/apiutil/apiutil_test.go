package apiutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finora-server/internal/service"
)

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	return se.GetStatus()
}

func TestError_MapsServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", &service.ValidationError{Field: "amount", Reason: "must not be negative"}, http.StatusBadRequest},
		{"not found", fmt.Errorf("goal: %w", service.ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("category: %w", service.ErrConflict), http.StatusConflict},
		{"upstream", fmt.Errorf("%w: timeout", service.ErrUpstreamUnavailable), http.StatusServiceUnavailable},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, statusOf(t, Error(tt.err, "failed")))
		})
	}
}

func TestWindowQuery(t *testing.T) {
	window, err := WindowQuery{Start: "2024-01-01"}.Window()
	require.NoError(t, err)
	require.NotNil(t, window.Start)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *window.Start)
	assert.Nil(t, window.End)

	_, err = WindowQuery{End: "01/02/2024"}.Window()
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestUserHeader(t *testing.T) {
	_, err := UserHeader{UserID: "nope"}.User()
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	id, err := UserHeader{UserID: "6f1c1f8e-4a8e-4d3a-9f63-2d1b7d2b6f10"}.User()
	require.NoError(t, err)
	assert.Equal(t, "6f1c1f8e-4a8e-4d3a-9f63-2d1b7d2b6f10", id.String())
}

func TestParseOptional(t *testing.T) {
	id, err := ParseOptionalID("category_id", "")
	require.NoError(t, err)
	assert.Nil(t, id)

	date, err := ParseOptionalDate("date", "")
	require.NoError(t, err)
	assert.True(t, date.IsZero())

	_, err = ParseAmount("amount", "ten")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}
