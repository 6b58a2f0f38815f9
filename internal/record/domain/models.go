// Package domain contains persistence models for daily delivery records.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// DeliveryRecord is one customer's delivered quantity for one calendar day.
// Uniqueness per (customer, date) is enforced by the store.
type DeliveryRecord struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	CustomerID  snowflake.ID `gorm:"not null;index;uniqueIndex:ux_delivery_records_customer_date" json:"customer_id"`
	RecordDate  time.Time    `gorm:"not null;uniqueIndex:ux_delivery_records_customer_date" json:"record_date"`
	MorningQty  float64      `gorm:"not null;default:0" json:"morning_qty"`
	EveningQty  float64      `gorm:"not null;default:0" json:"evening_qty"`
	TotalQty    float64      `gorm:"not null;default:0" json:"total_qty"`
	UnitPrice   float64      `gorm:"not null;default:0" json:"unit_price"`
	TotalAmount float64      `gorm:"not null;default:0" json:"total_amount"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (DeliveryRecord) TableName() string { return "delivery_records" }
