package domain

import "time"

// DeriveStatus is the single source of truth for an invoice's status. It is
// a pure function of the due amount, the amount paid and the due date, and
// must be applied after every mutation path.
func DeriveStatus(due, paid float64, dueDate, now time.Time) InvoiceStatus {
	switch {
	case due <= 0:
		return StatusPaid
	case paid > 0:
		return StatusPartiallyPaid
	case dateOf(dueDate).Before(dateOf(now)):
		return StatusOverdue
	default:
		return StatusPending
	}
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
