package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dairydesk/dairydesk/internal/clock"
	"github.com/dairydesk/dairydesk/internal/customer/domain"
	"github.com/dairydesk/dairydesk/internal/customer/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) domain.Service {
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
	require.NoError(t, db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS ux_customers_customer_no
		ON customers(customer_no)`).Error)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: clock.NewFakeClock(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestCreateCustomer(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.Create(context.Background(), domain.CreateCustomerRequest{
		Name:    "  Ravi Kumar  ",
		PhoneNo: "9876543210",
		Address: "12 Dairy Lane",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", first.Name)
	assert.Equal(t, int64(1), first.CustomerNo)
	assert.True(t, first.IsActive)

	// Customer numbers are sequential per tenant database.
	second, err := svc.Create(context.Background(), domain.CreateCustomerRequest{Name: "Meera"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.CustomerNo)

	_, err = svc.Create(context.Background(), domain.CreateCustomerRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestUpdateCustomer(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(context.Background(), domain.CreateCustomerRequest{Name: "Ravi"})
	require.NoError(t, err)

	name := "Ravi Kumar"
	inactive := false
	updated, err := svc.Update(context.Background(), domain.UpdateCustomerRequest{
		ID:       created.ID.String(),
		Name:     &name,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", updated.Name)
	assert.False(t, updated.IsActive)
	// Untouched fields survive a partial update.
	assert.Equal(t, created.CustomerNo, updated.CustomerNo)

	t.Run("unknown id", func(t *testing.T) {
		node, err := snowflake.NewNode(2)
		require.NoError(t, err)
		_, err = svc.Update(context.Background(), domain.UpdateCustomerRequest{
			ID: node.Generate().String(),
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("bad id", func(t *testing.T) {
		_, err := svc.Update(context.Background(), domain.UpdateCustomerRequest{ID: "zzz"})
		assert.ErrorIs(t, err, domain.ErrInvalidID)
	})
}

func TestListActiveCustomers(t *testing.T) {
	svc := newTestService(t)

	active, err := svc.Create(context.Background(), domain.CreateCustomerRequest{Name: "Active"})
	require.NoError(t, err)
	gone, err := svc.Create(context.Background(), domain.CreateCustomerRequest{Name: "Gone"})
	require.NoError(t, err)

	inactive := false
	_, err = svc.Update(context.Background(), domain.UpdateCustomerRequest{
		ID:       gone.ID.String(),
		IsActive: &inactive,
	})
	require.NoError(t, err)

	customers, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, active.ID, customers[0].ID)

	resp, err := svc.List(context.Background(), domain.ListCustomerRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
}
