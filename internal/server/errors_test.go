package server

import (
	"errors"
	"net/http"
	"testing"

	invoicedomain "github.com/dairydesk/dairydesk/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"invalid month", invoicedomain.ErrInvalidMonth, http.StatusBadRequest, "validation_error"},
		{"invalid amount", invoicedomain.ErrInvalidAmount, http.StatusBadRequest, "validation_error"},
		{"amount exceeds due", invoicedomain.ErrAmountExceedsDue, http.StatusBadRequest, "validation_error"},
		{"has payments", invoicedomain.ErrHasPayments, http.StatusBadRequest, "validation_error"},
		{"not found", invoicedomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"no records", invoicedomain.ErrNoRecords, http.StatusNotFound, "not_found"},
		{"gorm not found", gorm.ErrRecordNotFound, http.StatusNotFound, "not_found"},
		{"customer busy", invoicedomain.ErrCustomerBusy, http.StatusConflict, "conflict"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
		{"nil", nil, http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := mapError(tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantType, payload.Type)
		})
	}
}

func TestMapErrorDuplicatePeriod(t *testing.T) {
	err := &invoicedomain.DuplicatePeriodError{InvoiceID: 42, InvoiceNo: "INV-24-03-0001"}

	status, payload := mapError(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "duplicate_period", payload.Type)
	assert.Equal(t, "42", payload.ExistingInvoiceID)
	assert.Equal(t, "INV-24-03-0001", payload.ExistingInvoiceNo)
}

func TestMapErrorTemporalGuard(t *testing.T) {
	err := &invoicedomain.TemporalGuardError{DaysRemaining: 5}

	status, payload := mapError(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "temporal_guard", payload.Type)
	require.NotNil(t, payload.DaysRemaining)
	assert.Equal(t, 5, *payload.DaysRemaining)
	assert.Contains(t, payload.Message, "5 days remaining")
}

func TestMapErrorValidationDetails(t *testing.T) {
	err := newValidationError("month", "invalid_month", "month must be between 1 and 12")

	status, payload := mapError(err)
	assert.Equal(t, http.StatusBadRequest, status)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "month", payload.Errors[0].Field)
	assert.Equal(t, "invalid_month", payload.Errors[0].Code)
}
