package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dairydesk/dairydesk/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	Update(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	FindOverlapping(ctx context.Context, db *gorm.DB, customerID snowflake.ID, periodStart, periodEnd time.Time) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, filter ListInvoiceFilter, page pagination.Pagination) ([]*Invoice, int64, error)

	ReplaceLineItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID, items []LineItem) error
	ListLineItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]LineItem, error)

	InsertPayment(ctx context.Context, db *gorm.DB, payment *Payment) error
	ListPayments(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]Payment, error)
	CountPayments(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) (int64, error)
	// MaxTransactionSeq scans every payment across all of the customer's
	// invoices whose transaction id carries the given prefix and returns the
	// highest trailing sequence number.
	MaxTransactionSeq(ctx context.Context, db *gorm.DB, customerID snowflake.ID, prefix string) (int64, error)

	// NextInvoiceSeq atomically increments and returns the numbering counter
	// for the given sequence key. Must be called inside the transaction that
	// persists the invoice.
	NextInvoiceSeq(ctx context.Context, db *gorm.DB, key string) (int64, error)

	CustomerAggregate(ctx context.Context, db *gorm.DB, customerID snowflake.ID) (CustomerSummary, error)
	DashboardTotals(ctx context.Context, db *gorm.DB) (Dashboard, error)
	MonthlyTrend(ctx context.Context, db *gorm.DB, limit int) ([]TrendPoint, error)
	TopCustomersByDue(ctx context.Context, db *gorm.DB, limit int) ([]TopCustomer, error)
}
