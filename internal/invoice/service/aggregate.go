package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/dairydesk/dairydesk/internal/invoice/domain"
	"gorm.io/gorm"
)

// aggregation is a billing-period snapshot built from delivery records.
type aggregation struct {
	Items       []domain.LineItem
	TotalQty    float64
	TotalAmount float64
}

// aggregate projects every delivery record inside the period into line
// items, ascending by date. Pure read; returns ErrNoRecords when the period
// is empty so callers decide whether that aborts or is merely reported.
func (s *Service) aggregate(ctx context.Context, db *gorm.DB, customerID snowflake.ID, period domain.Period) (aggregation, error) {
	records, err := s.recordRepo.ListByCustomerBetween(ctx, db, customerID, period.Start, period.End)
	if err != nil {
		return aggregation{}, err
	}
	if len(records) == 0 {
		return aggregation{}, domain.ErrNoRecords
	}

	agg := aggregation{Items: make([]domain.LineItem, 0, len(records))}
	for _, record := range records {
		if record == nil {
			continue
		}
		agg.Items = append(agg.Items, domain.LineItem{
			ID:         s.genID.Generate(),
			ItemDate:   record.RecordDate,
			MorningQty: record.MorningQty,
			EveningQty: record.EveningQty,
			TotalQty:   record.TotalQty,
			UnitPrice:  record.UnitPrice,
			Amount:     record.TotalAmount,
		})
		agg.TotalQty += record.TotalQty
		agg.TotalAmount += record.TotalAmount
	}

	if len(agg.Items) == 0 {
		return aggregation{}, domain.ErrNoRecords
	}
	return agg, nil
}
