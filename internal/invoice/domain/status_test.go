package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	dueDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		due  float64
		paid float64
		now  time.Time
		want InvoiceStatus
	}{
		{"fully paid", 0, 2320, dueDate.AddDate(0, 0, -5), StatusPaid},
		{"overpaid still paid", -10, 2330, dueDate, StatusPaid},
		{"partial payment before due date", 1320, 1000, dueDate.AddDate(0, 0, -5), StatusPartiallyPaid},
		{"partial payment after due date stays partial", 1320, 1000, dueDate.AddDate(0, 0, 5), StatusPartiallyPaid},
		{"unpaid past due date", 2320, 0, dueDate.AddDate(0, 0, 1), StatusOverdue},
		{"unpaid on due date is pending", 2320, 0, dueDate, StatusPending},
		{"unpaid before due date", 2320, 0, dueDate.AddDate(0, 0, -1), StatusPending},
		{"due date compared by calendar day", 2320, 0, dueDate.Add(23 * time.Hour), StatusPending},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveStatus(tc.due, tc.paid, dueDate, tc.now))
		})
	}
}
