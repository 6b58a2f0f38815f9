package domain

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidMonth     = errors.New("invalid_month")
	ErrInvalidYear      = errors.New("invalid_year")
	ErrInvalidStatus    = errors.New("invalid_status")
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrInvalidMethod    = errors.New("invalid_method")
	ErrAmountExceedsDue = errors.New("amount_exceeds_due")
	ErrNotFound         = errors.New("not_found")
	ErrNoRecords        = errors.New("no_records_found")
	ErrHasPayments      = errors.New("invoice_has_payments")
	// ErrPaidExceedsTotal rejects a regeneration that would drive the due
	// amount negative because recorded payments exceed the new total.
	ErrPaidExceedsTotal = errors.New("paid_exceeds_total")
	// ErrCustomerBusy means another invoice-mutating operation holds the
	// per-customer lock.
	ErrCustomerBusy = errors.New("customer_busy")
)

// DuplicatePeriodError reports an existing invoice overlapping the target
// billing period when updates were not permitted.
type DuplicatePeriodError struct {
	InvoiceID snowflake.ID
	InvoiceNo string
}

func (e *DuplicatePeriodError) Error() string {
	return fmt.Sprintf("invoice %s already covers this period", e.InvoiceNo)
}

// TemporalGuardError refuses billing the current month before its deliveries
// are fully recorded.
type TemporalGuardError struct {
	DaysRemaining int
}

func (e *TemporalGuardError) Error() string {
	return fmt.Sprintf("current month not billable yet: %d days remaining until month end", e.DaysRemaining)
}
