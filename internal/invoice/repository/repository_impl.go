package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dairydesk/dairydesk/internal/invoice/domain"
	"github.com/dairydesk/dairydesk/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO invoices (id, customer_id, invoice_no, period_key, start_date, end_date,
		   total_qty, total_amount, amount_paid, due_amount, status, due_date, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		invoice.ID,
		invoice.CustomerID,
		invoice.InvoiceNo,
		invoice.PeriodKey,
		invoice.StartDate,
		invoice.EndDate,
		invoice.TotalQty,
		invoice.TotalAmount,
		invoice.AmountPaid,
		invoice.DueAmount,
		invoice.Status,
		invoice.DueDate,
		invoice.Notes,
		invoice.CreatedAt,
		invoice.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	// invoice_no and period identity are immutable once assigned.
	return db.WithContext(ctx).Exec(
		`UPDATE invoices SET end_date = ?, total_qty = ?, total_amount = ?, amount_paid = ?,
		   due_amount = ?, status = ?, due_date = ?, notes = ?, updated_at = ?
		 WHERE id = ?`,
		invoice.EndDate,
		invoice.TotalQty,
		invoice.TotalAmount,
		invoice.AmountPaid,
		invoice.DueAmount,
		invoice.Status,
		invoice.DueDate,
		invoice.Notes,
		invoice.UpdatedAt,
		invoice.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	if err := db.WithContext(ctx).Exec(`DELETE FROM invoice_line_items WHERE invoice_id = ?`, id).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Exec(`DELETE FROM invoices WHERE id = ?`, id).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).Raw(
		`SELECT id, customer_id, invoice_no, period_key, start_date, end_date, total_qty, total_amount,
		   amount_paid, due_amount, status, due_date, notes, created_at, updated_at
		 FROM invoices WHERE id = ?`,
		id,
	).Scan(&invoice).Error
	if err != nil {
		return nil, err
	}
	if invoice.ID == 0 {
		return nil, nil
	}
	return &invoice, nil
}

func (r *repo) FindOverlapping(ctx context.Context, db *gorm.DB, customerID snowflake.ID, periodStart, periodEnd time.Time) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).Raw(
		`SELECT id, customer_id, invoice_no, period_key, start_date, end_date, total_qty, total_amount,
		   amount_paid, due_amount, status, due_date, notes, created_at, updated_at
		 FROM invoices
		 WHERE customer_id = ? AND start_date <= ? AND end_date >= ?
		 LIMIT 1`,
		customerID,
		periodEnd,
		periodStart,
	).Scan(&invoice).Error
	if err != nil {
		return nil, err
	}
	if invoice.ID == 0 {
		return nil, nil
	}
	return &invoice, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListInvoiceFilter, page pagination.Pagination) ([]*domain.Invoice, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.Invoice{})
	if filter.CustomerID != 0 {
		stmt = stmt.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.Year != 0 && filter.Month != 0 {
		stmt = stmt.Where("period_key = ?", periodKey(filter.Year, filter.Month))
	} else if filter.Year != 0 {
		stmt = stmt.Where("period_key LIKE ?", yearPrefix(filter.Year))
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invoices []*domain.Invoice
	err := page.Apply(stmt).
		Order("created_at desc, id desc").
		Find(&invoices).Error
	if err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

func (r *repo) ReplaceLineItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID, items []domain.LineItem) error {
	if err := db.WithContext(ctx).Exec(`DELETE FROM invoice_line_items WHERE invoice_id = ?`, invoiceID).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].InvoiceID = invoiceID
	}
	if len(items) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&items).Error
}

func (r *repo) ListLineItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]domain.LineItem, error) {
	var items []domain.LineItem
	err := db.WithContext(ctx).
		Model(&domain.LineItem{}).
		Where("invoice_id = ?", invoiceID).
		Order("item_date asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) InsertPayment(ctx context.Context, db *gorm.DB, payment *domain.Payment) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO invoice_payments (id, invoice_id, amount, payment_date, method, transaction_id, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID,
		payment.InvoiceID,
		payment.Amount,
		payment.PaymentDate,
		payment.Method,
		payment.TransactionID,
		payment.Notes,
		payment.CreatedAt,
	).Error
}

func (r *repo) ListPayments(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("invoice_id = ?", invoiceID).
		Order("created_at asc, id asc").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repo) CountPayments(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("invoice_id = ?", invoiceID).
		Count(&count).Error
	return count, err
}

func (r *repo) MaxTransactionSeq(ctx context.Context, db *gorm.DB, customerID snowflake.ID, prefix string) (int64, error) {
	var ids []string
	err := db.WithContext(ctx).Raw(
		`SELECT p.transaction_id
		 FROM invoice_payments p
		 JOIN invoices i ON i.id = p.invoice_id
		 WHERE i.customer_id = ? AND p.transaction_id LIKE ?`,
		customerID,
		prefix+"%",
	).Scan(&ids).Error
	if err != nil {
		return 0, err
	}

	var max int64
	for _, id := range ids {
		raw := strings.TrimPrefix(id, prefix)
		seq, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return max, nil
}

func (r *repo) NextInvoiceSeq(ctx context.Context, db *gorm.DB, key string) (int64, error) {
	err := db.WithContext(ctx).Exec(
		`INSERT INTO invoice_sequences (sequence_key, counter) VALUES (?, 1)
		 ON CONFLICT (sequence_key) DO UPDATE SET counter = invoice_sequences.counter + 1`,
		key,
	).Error
	if err != nil {
		return 0, err
	}

	var counter int64
	err = db.WithContext(ctx).Raw(
		`SELECT counter FROM invoice_sequences WHERE sequence_key = ?`,
		key,
	).Scan(&counter).Error
	return counter, err
}

func (r *repo) CustomerAggregate(ctx context.Context, db *gorm.DB, customerID snowflake.ID) (domain.CustomerSummary, error) {
	var summary domain.CustomerSummary
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) AS invoice_count,
		   COALESCE(SUM(total_amount), 0) AS total_billed,
		   COALESCE(SUM(amount_paid), 0) AS total_paid,
		   COALESCE(SUM(due_amount), 0) AS total_due,
		   COALESCE(SUM(CASE WHEN status = 'paid' THEN 1 ELSE 0 END), 0) AS paid_count,
		   COALESCE(SUM(CASE WHEN status IN ('pending', 'partially_paid') THEN 1 ELSE 0 END), 0) AS pending_count,
		   COALESCE(SUM(CASE WHEN status = 'overdue' THEN 1 ELSE 0 END), 0) AS overdue_count
		 FROM invoices WHERE customer_id = ?`,
		customerID,
	).Scan(&summary).Error
	return summary, err
}

func (r *repo) DashboardTotals(ctx context.Context, db *gorm.DB) (domain.Dashboard, error) {
	var totals struct {
		InvoiceCount int64
		TotalBilled  float64
		TotalPaid    float64
		TotalDue     float64
	}
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) AS invoice_count,
		   COALESCE(SUM(total_amount), 0) AS total_billed,
		   COALESCE(SUM(amount_paid), 0) AS total_paid,
		   COALESCE(SUM(due_amount), 0) AS total_due
		 FROM invoices`,
	).Scan(&totals).Error
	if err != nil {
		return domain.Dashboard{}, err
	}

	var rows []struct {
		Status string
		Count  int64
	}
	err = db.WithContext(ctx).Raw(
		`SELECT status, COUNT(*) AS count FROM invoices GROUP BY status`,
	).Scan(&rows).Error
	if err != nil {
		return domain.Dashboard{}, err
	}

	statusCounts := make(map[string]int64, len(rows))
	for _, row := range rows {
		statusCounts[row.Status] = row.Count
	}

	return domain.Dashboard{
		InvoiceCount: totals.InvoiceCount,
		TotalBilled:  totals.TotalBilled,
		TotalPaid:    totals.TotalPaid,
		TotalDue:     totals.TotalDue,
		StatusCounts: statusCounts,
	}, nil
}

func (r *repo) MonthlyTrend(ctx context.Context, db *gorm.DB, limit int) ([]domain.TrendPoint, error) {
	var points []domain.TrendPoint
	err := db.WithContext(ctx).Raw(
		`SELECT period_key,
		   COUNT(*) AS invoice_cnt,
		   COALESCE(SUM(total_amount), 0) AS total_billed,
		   COALESCE(SUM(amount_paid), 0) AS total_paid
		 FROM invoices
		 GROUP BY period_key
		 ORDER BY period_key DESC
		 LIMIT ?`,
		limit,
	).Scan(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}

func (r *repo) TopCustomersByDue(ctx context.Context, db *gorm.DB, limit int) ([]domain.TopCustomer, error) {
	var rows []struct {
		CustomerID   snowflake.ID
		CustomerName string
		TotalDue     float64
	}
	err := db.WithContext(ctx).Raw(
		`SELECT i.customer_id, c.name AS customer_name, COALESCE(SUM(i.due_amount), 0) AS total_due
		 FROM invoices i
		 JOIN customers c ON c.id = i.customer_id
		 GROUP BY i.customer_id, c.name
		 HAVING SUM(i.due_amount) > 0
		 ORDER BY total_due DESC
		 LIMIT ?`,
		limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	top := make([]domain.TopCustomer, 0, len(rows))
	for _, row := range rows {
		top = append(top, domain.TopCustomer{
			CustomerID:   row.CustomerID.String(),
			CustomerName: row.CustomerName,
			TotalDue:     row.TotalDue,
		})
	}
	return top, nil
}

func periodKey(year, month int) string {
	p, _ := domain.NewPeriod(month, year)
	return p.Key()
}

func yearPrefix(year int) string {
	return strconv.Itoa(year) + "-%"
}
