package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dairydesk/dairydesk/internal/clock"
	"github.com/dairydesk/dairydesk/internal/config"
	customerdomain "github.com/dairydesk/dairydesk/internal/customer/domain"
	customerrepo "github.com/dairydesk/dairydesk/internal/customer/repository"
	"github.com/dairydesk/dairydesk/internal/invoice/domain"
	"github.com/dairydesk/dairydesk/internal/invoice/repository"
	recorddomain "github.com/dairydesk/dairydesk/internal/record/domain"
	recordrepo "github.com/dairydesk/dairydesk/internal/record/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Tables are created manually to match the production schema: SQLite needs
// explicit unique indexes for ON CONFLICT upserts to resolve.
var testSchema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id BIGINT PRIMARY KEY,
		customer_no BIGINT NOT NULL,
		name TEXT NOT NULL,
		phone_no TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		metadata TEXT NOT NULL DEFAULT '{}',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_customers_customer_no ON customers(customer_no)`,
	`CREATE TABLE IF NOT EXISTS delivery_records (
		id BIGINT PRIMARY KEY,
		customer_id BIGINT NOT NULL,
		record_date TIMESTAMP NOT NULL,
		morning_qty REAL NOT NULL DEFAULT 0,
		evening_qty REAL NOT NULL DEFAULT 0,
		total_qty REAL NOT NULL DEFAULT 0,
		unit_price REAL NOT NULL DEFAULT 0,
		total_amount REAL NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_delivery_records_customer_date ON delivery_records(customer_id, record_date)`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id BIGINT PRIMARY KEY,
		customer_id BIGINT NOT NULL,
		invoice_no TEXT NOT NULL,
		period_key TEXT NOT NULL,
		start_date TIMESTAMP NOT NULL,
		end_date TIMESTAMP NOT NULL,
		total_qty REAL NOT NULL DEFAULT 0,
		total_amount REAL NOT NULL DEFAULT 0,
		amount_paid REAL NOT NULL DEFAULT 0,
		due_amount REAL NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'pending',
		due_date TIMESTAMP NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_invoices_customer_period ON invoices(customer_id, period_key)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_invoices_invoice_no ON invoices(invoice_no)`,
	`CREATE TABLE IF NOT EXISTS invoice_line_items (
		id BIGINT PRIMARY KEY,
		invoice_id BIGINT NOT NULL,
		item_date TIMESTAMP NOT NULL,
		morning_qty REAL NOT NULL DEFAULT 0,
		evening_qty REAL NOT NULL DEFAULT 0,
		total_qty REAL NOT NULL DEFAULT 0,
		unit_price REAL NOT NULL DEFAULT 0,
		amount REAL NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS invoice_payments (
		id BIGINT PRIMARY KEY,
		invoice_id BIGINT NOT NULL,
		amount REAL NOT NULL,
		payment_date TIMESTAMP NOT NULL,
		method TEXT NOT NULL,
		transaction_id TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS invoice_sequences (
		sequence_key TEXT PRIMARY KEY,
		counter BIGINT NOT NULL DEFAULT 0
	)`,
}

type fixture struct {
	db        *gorm.DB
	clk       *clock.FakeClock
	node      *snowflake.Node
	svc       domain.Service
	records   recorddomain.Repository
	customers customerdomain.Repository
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	for _, stmt := range testSchema {
		require.NoError(t, db.Exec(stmt).Error)
	}

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clk := clock.NewFakeClock(now)
	customers := customerrepo.Provide()
	records := recordrepo.Provide()

	svc := New(Params{
		DB:           db,
		Log:          zap.NewNop(),
		Clock:        clk,
		GenID:        node,
		Cfg:          config.Config{DueDays: 15, GuardWindowDays: 2},
		Repo:         repository.Provide(),
		RecordRepo:   records,
		CustomerRepo: customers,
	})

	return &fixture{
		db:        db,
		clk:       clk,
		node:      node,
		svc:       svc,
		records:   records,
		customers: customers,
	}
}

func (f *fixture) seedCustomer(t *testing.T, customerNo int64, name string) customerdomain.Customer {
	t.Helper()

	now := f.clk.Now()
	customer := customerdomain.Customer{
		ID:         f.node.Generate(),
		CustomerNo: customerNo,
		Name:       name,
		IsActive:   true,
		Metadata:   datatypes.JSONMap{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, f.customers.Insert(context.Background(), f.db, &customer))
	return customer
}

func (f *fixture) seedRecord(t *testing.T, customerID snowflake.ID, date time.Time, morning, evening, price float64) {
	t.Helper()

	qty := morning + evening
	record := recorddomain.DeliveryRecord{
		ID:          f.node.Generate(),
		CustomerID:  customerID,
		RecordDate:  date,
		MorningQty:  morning,
		EveningQty:  evening,
		TotalQty:    qty,
		UnitPrice:   price,
		TotalAmount: qty * price,
		CreatedAt:   f.clk.Now(),
		UpdatedAt:   f.clk.Now(),
	}
	require.NoError(t, f.records.Upsert(context.Background(), f.db, &record))
}

// seedMonth writes one delivery per day for the whole calendar month.
func (f *fixture) seedMonth(t *testing.T, customerID snowflake.ID, month, year int, morning, evening, price float64) {
	t.Helper()

	period, err := domain.NewPeriod(month, year)
	require.NoError(t, err)
	for day := 1; day <= period.End.Day(); day++ {
		f.seedRecord(t, customerID, time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), morning, evening, price)
	}
}
