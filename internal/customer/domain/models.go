// Package domain contains persistence models for customers.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Customer struct {
	ID         snowflake.ID      `gorm:"primaryKey" json:"id"`
	CustomerNo int64             `gorm:"not null;uniqueIndex" json:"customer_no"`
	Name       string            `gorm:"not null" json:"name"`
	PhoneNo    string            `gorm:"not null;default:''" json:"phone_no"`
	Address    string            `gorm:"not null;default:''" json:"address"`
	IsActive   bool              `gorm:"not null;default:true" json:"is_active"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }
