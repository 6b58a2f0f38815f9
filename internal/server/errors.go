package server

import (
	"errors"
	"net/http"

	customerdomain "github.com/dairydesk/dairydesk/internal/customer/domain"
	invoicedomain "github.com/dairydesk/dairydesk/internal/invoice/domain"
	recorddomain "github.com/dairydesk/dairydesk/internal/record/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`

	// Populated for duplicate-period refusals so callers can reach the
	// existing invoice without a second lookup.
	ExistingInvoiceID string `json:"existing_invoice_id,omitempty"`
	ExistingInvoiceNo string `json:"existing_invoice_no,omitempty"`
	// Populated for temporal-guard refusals.
	DaysRemaining *int `json:"days_remaining,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	var dupErr *invoicedomain.DuplicatePeriodError
	if errors.As(err, &dupErr) {
		return http.StatusBadRequest, errorPayload{
			Type:              "duplicate_period",
			Message:           dupErr.Error(),
			ExistingInvoiceID: dupErr.InvoiceID.String(),
			ExistingInvoiceNo: dupErr.InvoiceNo,
		}
	}

	var guardErr *invoicedomain.TemporalGuardError
	if errors.As(err, &guardErr) {
		days := guardErr.DaysRemaining
		return http.StatusBadRequest, errorPayload{
			Type:          "temporal_guard",
			Message:       guardErr.Error(),
			DaysRemaining: &days,
		}
	}

	if isValidationError(err) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Code:    err.Error(),
					Message: "invalid value",
				},
			},
		}
	}

	switch {
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: err.Error(),
		}
	case errors.Is(err, invoicedomain.ErrCustomerBusy):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "another operation is in progress for this customer",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, invoicedomain.ErrInvalidID),
		errors.Is(err, invoicedomain.ErrInvalidMonth),
		errors.Is(err, invoicedomain.ErrInvalidYear),
		errors.Is(err, invoicedomain.ErrInvalidStatus),
		errors.Is(err, invoicedomain.ErrInvalidAmount),
		errors.Is(err, invoicedomain.ErrInvalidMethod),
		errors.Is(err, invoicedomain.ErrAmountExceedsDue),
		errors.Is(err, invoicedomain.ErrPaidExceedsTotal),
		errors.Is(err, invoicedomain.ErrHasPayments),
		errors.Is(err, customerdomain.ErrInvalidName),
		errors.Is(err, customerdomain.ErrInvalidID),
		errors.Is(err, recorddomain.ErrInvalidCustomer),
		errors.Is(err, recorddomain.ErrInvalidDate),
		errors.Is(err, recorddomain.ErrInvalidQuantity),
		errors.Is(err, recorddomain.ErrInvalidPrice):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrNoRecords),
		errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}
