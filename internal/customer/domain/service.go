package domain

import (
	"context"
	"errors"

	"github.com/dairydesk/dairydesk/pkg/db/pagination"
)

type CreateCustomerRequest struct {
	Name    string `json:"name"`
	PhoneNo string `json:"phone_no"`
	Address string `json:"address"`
}

type UpdateCustomerRequest struct {
	ID       string
	Name     *string `json:"name"`
	PhoneNo  *string `json:"phone_no"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"is_active"`
}

type ListCustomerRequest struct {
	pagination.Pagination
	Active *bool  `form:"active"`
	Name   string `form:"name"`
}

type ListCustomerFilter struct {
	Active *bool
	Name   string
}

type ListCustomerResponse struct {
	pagination.PageInfo
	Customers []Customer `json:"customers"`
}

type Service interface {
	Create(context.Context, CreateCustomerRequest) (Customer, error)
	Update(context.Context, UpdateCustomerRequest) (Customer, error)
	List(context.Context, ListCustomerRequest) (ListCustomerResponse, error)
	GetByID(ctx context.Context, id string) (Customer, error)
	ListActive(ctx context.Context) ([]Customer, error)
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("not_found")
)
