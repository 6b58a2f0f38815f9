package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dairydesk/dairydesk/internal/record/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, record *domain.DeliveryRecord) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "customer_id"}, {Name: "record_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"morning_qty", "evening_qty", "total_qty", "unit_price", "total_amount", "updated_at",
			}),
		}).
		Create(record).Error
}

func (r *repo) FindByCustomerAndDate(ctx context.Context, db *gorm.DB, customerID snowflake.ID, date time.Time) (*domain.DeliveryRecord, error) {
	var record domain.DeliveryRecord
	err := db.WithContext(ctx).Raw(
		`SELECT id, customer_id, record_date, morning_qty, evening_qty, total_qty, unit_price, total_amount, created_at, updated_at
		 FROM delivery_records WHERE customer_id = ? AND record_date = ?`,
		customerID,
		date,
	).Scan(&record).Error
	if err != nil {
		return nil, err
	}
	if record.ID == 0 {
		return nil, nil
	}
	return &record, nil
}

func (r *repo) ListByCustomerBetween(ctx context.Context, db *gorm.DB, customerID snowflake.ID, from, to time.Time) ([]*domain.DeliveryRecord, error) {
	var records []*domain.DeliveryRecord
	err := db.WithContext(ctx).
		Model(&domain.DeliveryRecord{}).
		Where("customer_id = ?", customerID).
		Where("record_date >= ?", from).
		Where("record_date <= ?", to).
		Order("record_date asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
