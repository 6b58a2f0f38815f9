package domain

import (
	"context"
	"errors"
)

type RecordDeliveryRequest struct {
	CustomerID string  `json:"customer_id"`
	Date       string  `json:"date"`
	MorningQty float64 `json:"morning_qty"`
	EveningQty float64 `json:"evening_qty"`
	UnitPrice  float64 `json:"unit_price"`
}

type ListRecordsRequest struct {
	CustomerID string `form:"customer_id"`
	From       string `form:"from"`
	To         string `form:"to"`
}

type Service interface {
	Record(context.Context, RecordDeliveryRequest) (DeliveryRecord, error)
	List(context.Context, ListRecordsRequest) ([]DeliveryRecord, error)
}

var (
	ErrInvalidCustomer = errors.New("invalid_customer")
	ErrInvalidDate     = errors.New("invalid_date")
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrInvalidPrice    = errors.New("invalid_price")
)
