package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dairydesk/dairydesk/internal/clock"
	customerdomain "github.com/dairydesk/dairydesk/internal/customer/domain"
	customerrepo "github.com/dairydesk/dairydesk/internal/customer/repository"
	"github.com/dairydesk/dairydesk/internal/record/domain"
	"github.com/dairydesk/dairydesk/internal/record/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, customerdomain.Customer) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS customers (
		id BIGINT PRIMARY KEY,
		customer_no BIGINT NOT NULL,
		name TEXT NOT NULL,
		phone_no TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		metadata TEXT NOT NULL DEFAULT '{}',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS delivery_records (
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
	)`).Error)
	// SQLite needs an explicit unique index for the upsert's ON CONFLICT.
	require.NoError(t, db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS ux_delivery_records_customer_date
		ON delivery_records(customer_id, record_date)`).Error)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	now := time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC)

	customers := customerrepo.Provide()
	customer := customerdomain.Customer{
		ID:         node.Generate(),
		CustomerNo: 7,
		Name:       "Ravi Kumar",
		IsActive:   true,
		Metadata:   datatypes.JSONMap{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, customers.Insert(context.Background(), db, &customer))

	svc := New(Params{
		DB:           db,
		Log:          zap.NewNop(),
		Clock:        clock.NewFakeClock(now),
		GenID:        node,
		Repo:         repository.Provide(),
		CustomerRepo: customers,
	})
	return svc, customer
}

func TestRecordDelivery(t *testing.T) {
	svc, customer := newTestService(t)

	record, err := svc.Record(context.Background(), domain.RecordDeliveryRequest{
		CustomerID: customer.ID.String(),
		Date:       "2024-02-01",
		MorningQty: 1.5,
		EveningQty: 0.5,
		UnitPrice:  40,
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), record.RecordDate.UTC())
	assert.Equal(t, float64(2), record.TotalQty)
	assert.Equal(t, float64(80), record.TotalAmount)
}

func TestRecordDeliveryUpsertsSameDay(t *testing.T) {
	svc, customer := newTestService(t)

	first, err := svc.Record(context.Background(), domain.RecordDeliveryRequest{
		CustomerID: customer.ID.String(),
		Date:       "2024-02-01",
		MorningQty: 1,
		EveningQty: 1,
		UnitPrice:  40,
	})
	require.NoError(t, err)

	// Same day again replaces the quantities instead of adding a row.
	second, err := svc.Record(context.Background(), domain.RecordDeliveryRequest{
		CustomerID: customer.ID.String(),
		Date:       "2024-02-01",
		MorningQty: 2,
		EveningQty: 2,
		UnitPrice:  40,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, float64(4), second.TotalQty)
	assert.Equal(t, float64(160), second.TotalAmount)

	records, err := svc.List(context.Background(), domain.ListRecordsRequest{
		CustomerID: customer.ID.String(),
		From:       "2024-02-01",
		To:         "2024-02-29",
	})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestRecordDeliveryValidation(t *testing.T) {
	svc, customer := newTestService(t)

	cases := []struct {
		name string
		req  domain.RecordDeliveryRequest
		want error
	}{
		{"bad customer id", domain.RecordDeliveryRequest{CustomerID: "abc", Date: "2024-02-01", UnitPrice: 40}, domain.ErrInvalidCustomer},
		{"bad date", domain.RecordDeliveryRequest{CustomerID: customer.ID.String(), Date: "01-02-2024", UnitPrice: 40}, domain.ErrInvalidDate},
		{"negative quantity", domain.RecordDeliveryRequest{CustomerID: customer.ID.String(), Date: "2024-02-01", MorningQty: -1, UnitPrice: 40}, domain.ErrInvalidQuantity},
		{"zero price", domain.RecordDeliveryRequest{CustomerID: customer.ID.String(), Date: "2024-02-01", MorningQty: 1}, domain.ErrInvalidPrice},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Record(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("unknown customer", func(t *testing.T) {
		node, err := snowflake.NewNode(2)
		require.NoError(t, err)
		_, err = svc.Record(context.Background(), domain.RecordDeliveryRequest{
			CustomerID: node.Generate().String(),
			Date:       "2024-02-01",
			MorningQty: 1,
			UnitPrice:  40,
		})
		assert.ErrorIs(t, err, customerdomain.ErrNotFound)
	})
}
