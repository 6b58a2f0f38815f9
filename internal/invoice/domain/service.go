package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/dairydesk/dairydesk/internal/customer/domain"
	"github.com/dairydesk/dairydesk/pkg/db/pagination"
)

type CheckExistingRequest struct {
	CustomerID string `form:"customer_id"`
	Month      int    `form:"month"`
	Year       int    `form:"year"`
}

type CheckExistingResponse struct {
	Exists  bool     `json:"exists"`
	Invoice *Invoice `json:"invoice,omitempty"`
}

type GenerateRequest struct {
	CustomerID     string
	Month          int  `json:"month"`
	Year           int  `json:"year"`
	UpdateExisting bool `json:"update_existing"`
}

// GenerateOutcome distinguishes a first billing from a regeneration.
type GenerateOutcome string

const (
	OutcomeCreated GenerateOutcome = "created"
	OutcomeUpdated GenerateOutcome = "updated"
)

type GenerateResponse struct {
	Outcome GenerateOutcome `json:"outcome"`
	Invoice Invoice         `json:"invoice"`
}

type GenerateBatchRequest struct {
	Month          int  `json:"month"`
	Year           int  `json:"year"`
	UpdateExisting bool `json:"update_existing"`
}

type BatchItem struct {
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	InvoiceID    string `json:"invoice_id"`
	InvoiceNo    string `json:"invoice_no"`
}

type BatchFailure struct {
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Reason       string `json:"reason"`
}

type GenerateBatchResponse struct {
	Month          int            `json:"month"`
	Year           int            `json:"year"`
	TotalCustomers int            `json:"total_customers"`
	Created        []BatchItem    `json:"created"`
	Updated        []BatchItem    `json:"updated"`
	Failed         []BatchFailure `json:"failed"`
}

type ListInvoiceRequest struct {
	pagination.Pagination
	CustomerID string `form:"customer_id"`
	Status     string `form:"status"`
	Month      int    `form:"month"`
	Year       int    `form:"year"`
}

type ListInvoiceFilter struct {
	CustomerID snowflake.ID
	Status     InvoiceStatus
	Month      int
	Year       int
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

// InvoiceDetail is an invoice with its customer populated, as handed to the
// statement renderer. Renderers must not mutate it.
type InvoiceDetail struct {
	Invoice
	Customer customerdomain.Customer `json:"customer"`
}

type SetStatusRequest struct {
	ID     string
	Status InvoiceStatus `json:"status"`
}

type AddPaymentRequest struct {
	InvoiceID     string
	Amount        float64       `json:"amount"`
	Method        PaymentMethod `json:"payment_method"`
	TransactionID string        `json:"transaction_id"`
	Notes         string        `json:"notes"`
	PaymentDate   *time.Time    `json:"payment_date"`
}

type CustomerSummary struct {
	CustomerID   string  `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	InvoiceCount int64   `json:"invoice_count"`
	TotalBilled  float64 `json:"total_billed"`
	TotalPaid    float64 `json:"total_paid"`
	TotalDue     float64 `json:"total_due"`
	PaidCount    int64   `json:"paid_count"`
	PendingCount int64   `json:"pending_count"`
	OverdueCount int64   `json:"overdue_count"`
}

type TrendPoint struct {
	PeriodKey   string  `json:"period"`
	InvoiceCnt  int64   `json:"invoice_count"`
	TotalBilled float64 `json:"total_billed"`
	TotalPaid   float64 `json:"total_paid"`
}

type TopCustomer struct {
	CustomerID   string  `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	TotalDue     float64 `json:"total_due"`
}

type Dashboard struct {
	InvoiceCount int64           `json:"invoice_count"`
	TotalBilled  float64         `json:"total_billed"`
	TotalPaid    float64         `json:"total_paid"`
	TotalDue     float64         `json:"total_due"`
	StatusCounts map[string]int64 `json:"status_counts"`
	MonthlyTrend []TrendPoint    `json:"monthly_trend"`
	TopCustomers []TopCustomer   `json:"top_customers"`
}

type Service interface {
	CheckExisting(context.Context, CheckExistingRequest) (CheckExistingResponse, error)
	Generate(context.Context, GenerateRequest) (GenerateResponse, error)
	GenerateBatch(context.Context, GenerateBatchRequest) (GenerateBatchResponse, error)
	List(context.Context, ListInvoiceRequest) (ListInvoiceResponse, error)
	GetByID(ctx context.Context, id string) (InvoiceDetail, error)
	SetStatus(context.Context, SetStatusRequest) (Invoice, error)
	AddPayment(context.Context, AddPaymentRequest) (Invoice, error)
	Delete(ctx context.Context, id string) error
	CustomerSummary(ctx context.Context, customerID string) (CustomerSummary, error)
	Dashboard(ctx context.Context) (Dashboard, error)
}
