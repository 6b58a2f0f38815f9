package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/dairydesk/dairydesk/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, customer *Customer) error
	Update(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Customer, error)
	List(ctx context.Context, db *gorm.DB, filter ListCustomerFilter, page pagination.Pagination) ([]*Customer, int64, error)
	ListActive(ctx context.Context, db *gorm.DB) ([]*Customer, error)
	NextCustomerNo(ctx context.Context, db *gorm.DB) (int64, error)
}
