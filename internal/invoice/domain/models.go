// Package domain contains persistence models and contracts for invoicing.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	StatusPending       InvoiceStatus = "pending"
	StatusPartiallyPaid InvoiceStatus = "partially_paid"
	StatusPaid          InvoiceStatus = "paid"
	StatusOverdue       InvoiceStatus = "overdue"
)

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s InvoiceStatus) bool {
	switch s {
	case StatusPending, StatusPartiallyPaid, StatusPaid, StatusOverdue:
		return true
	default:
		return false
	}
}

// PaymentMethod is how a payment was made.
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "cash"
	MethodOnline PaymentMethod = "online"
)

// Invoice is one customer's bill for one billing period. Line items are a
// frozen snapshot of the delivery records at generation time, not a live join.
type Invoice struct {
	ID          snowflake.ID  `gorm:"primaryKey" json:"id"`
	CustomerID  snowflake.ID  `gorm:"not null;index;uniqueIndex:ux_invoices_customer_period" json:"customer_id"`
	InvoiceNo   string        `gorm:"not null;uniqueIndex" json:"invoice_no"`
	PeriodKey   string        `gorm:"not null;uniqueIndex:ux_invoices_customer_period" json:"period_key"`
	StartDate   time.Time     `gorm:"not null" json:"start_date"`
	EndDate     time.Time     `gorm:"not null" json:"end_date"`
	TotalQty    float64       `gorm:"not null;default:0" json:"total_qty"`
	TotalAmount float64       `gorm:"not null;default:0" json:"total_amount"`
	AmountPaid  float64       `gorm:"not null;default:0" json:"amount_paid"`
	DueAmount   float64       `gorm:"not null;default:0" json:"due_amount"`
	Status      InvoiceStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	DueDate     time.Time     `gorm:"not null" json:"due_date"`
	Notes       string        `gorm:"not null;default:''" json:"notes"`
	CreatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	LineItems []LineItem `gorm:"-" json:"line_items,omitempty"`
	Payments  []Payment  `gorm:"-" json:"payments,omitempty"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// LineItem is one billed day inside an invoice, ordered by date.
type LineItem struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	InvoiceID  snowflake.ID `gorm:"not null;index" json:"-"`
	ItemDate   time.Time    `gorm:"not null" json:"date"`
	MorningQty float64      `gorm:"not null;default:0" json:"morning_qty"`
	EveningQty float64      `gorm:"not null;default:0" json:"evening_qty"`
	TotalQty   float64      `gorm:"not null;default:0" json:"total_qty"`
	UnitPrice  float64      `gorm:"not null;default:0" json:"unit_price"`
	Amount     float64      `gorm:"not null;default:0" json:"amount"`
}

// TableName sets the database table name.
func (LineItem) TableName() string { return "invoice_line_items" }

// Payment is one append-only ledger entry against an invoice. Entries are
// never edited or removed; corrections are offsetting entries.
type Payment struct {
	ID            snowflake.ID  `gorm:"primaryKey" json:"id"`
	InvoiceID     snowflake.ID  `gorm:"not null;index" json:"-"`
	Amount        float64       `gorm:"not null" json:"amount"`
	PaymentDate   time.Time     `gorm:"not null" json:"payment_date"`
	Method        PaymentMethod `gorm:"type:text;not null" json:"method"`
	TransactionID string        `gorm:"not null;default:''" json:"transaction_id,omitempty"`
	Notes         string        `gorm:"not null;default:''" json:"notes,omitempty"`
	CreatedAt     time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Payment) TableName() string { return "invoice_payments" }
