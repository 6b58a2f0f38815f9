package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Upsert(ctx context.Context, db *gorm.DB, record *DeliveryRecord) error
	FindByCustomerAndDate(ctx context.Context, db *gorm.DB, customerID snowflake.ID, date time.Time) (*DeliveryRecord, error)
	ListByCustomerBetween(ctx context.Context, db *gorm.DB, customerID snowflake.ID, from, to time.Time) ([]*DeliveryRecord, error)
}
