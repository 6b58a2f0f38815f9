package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/dairydesk/dairydesk/internal/customer/domain"
	"github.com/dairydesk/dairydesk/internal/invoice/domain"
	"github.com/dairydesk/dairydesk/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Generate creates an invoice for one customer and one calendar month, or
// updates the existing overlapping one when UpdateExisting is set.
func (s *Service) Generate(ctx context.Context, req domain.GenerateRequest) (domain.GenerateResponse, error) {
	customerID, err := s.parseID(req.CustomerID)
	if err != nil {
		return domain.GenerateResponse{}, err
	}

	period, err := domain.NewPeriod(req.Month, req.Year)
	if err != nil {
		return domain.GenerateResponse{}, err
	}

	if err := s.checkTemporalGuard(period); err != nil {
		return domain.GenerateResponse{}, err
	}

	customer, err := s.customerRepo.FindByID(ctx, s.db, customerID)
	if err != nil {
		return domain.GenerateResponse{}, err
	}
	if customer == nil {
		return domain.GenerateResponse{}, customerdomain.ErrNotFound
	}

	var resp domain.GenerateResponse
	err = s.withCustomerLock(ctx, customerID, func() error {
		existing, err := s.repo.FindOverlapping(ctx, s.db, customerID, period.Start, period.End)
		if err != nil {
			return err
		}

		if existing != nil {
			if !req.UpdateExisting {
				return &domain.DuplicatePeriodError{
					InvoiceID: existing.ID,
					InvoiceNo: existing.InvoiceNo,
				}
			}
			resp, err = s.regenerate(ctx, existing, period)
			return err
		}

		resp, err = s.create(ctx, customerID, period)
		return err
	})
	if err != nil {
		return domain.GenerateResponse{}, err
	}

	s.log.Info("invoice generated",
		zap.String("invoice_no", resp.Invoice.InvoiceNo),
		zap.String("customer_id", customerID.String()),
		zap.String("period", period.Key()),
		zap.String("outcome", string(resp.Outcome)),
	)
	return resp, nil
}

// checkTemporalGuard refuses billing the current calendar month until at
// most guardWindow days remain before month end; deliveries for the month
// would otherwise be incomplete. Past months are always billable.
func (s *Service) checkTemporalGuard(period domain.Period) error {
	now := s.clock.Now()
	if now.Year() != period.Year || now.Month() != period.Month {
		return nil
	}

	remaining := period.End.Day() - now.Day()
	if remaining > s.guardWindow {
		return &domain.TemporalGuardError{DaysRemaining: remaining}
	}
	return nil
}

func (s *Service) create(ctx context.Context, customerID snowflake.ID, period domain.Period) (domain.GenerateResponse, error) {
	now := s.clock.Now()
	var invoice domain.Invoice

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		agg, err := s.aggregate(ctx, tx, customerID, period)
		if err != nil {
			return err
		}

		invoiceNo, err := s.nextInvoiceNo(ctx, tx, now)
		if err != nil {
			return err
		}

		dueDate := period.End.AddDate(0, 0, s.dueDays)
		invoice = domain.Invoice{
			ID:          s.genID.Generate(),
			CustomerID:  customerID,
			InvoiceNo:   invoiceNo,
			PeriodKey:   period.Key(),
			StartDate:   period.Start,
			EndDate:     period.End,
			TotalQty:    agg.TotalQty,
			TotalAmount: agg.TotalAmount,
			AmountPaid:  0,
			DueAmount:   agg.TotalAmount,
			Status:      domain.DeriveStatus(agg.TotalAmount, 0, dueDate, now),
			DueDate:     dueDate,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := s.repo.Insert(ctx, tx, &invoice); err != nil {
			return err
		}
		if err := s.repo.ReplaceLineItems(ctx, tx, invoice.ID, agg.Items); err != nil {
			return err
		}
		invoice.LineItems = agg.Items
		return nil
	})
	if err != nil {
		// A concurrent create for the same period loses the unique-index
		// race; surface it as the duplicate it is.
		if db.IsDuplicateKeyErr(err) {
			if existing, ferr := s.repo.FindOverlapping(ctx, s.db, customerID, period.Start, period.End); ferr == nil && existing != nil {
				return domain.GenerateResponse{}, &domain.DuplicatePeriodError{
					InvoiceID: existing.ID,
					InvoiceNo: existing.InvoiceNo,
				}
			}
		}
		return domain.GenerateResponse{}, err
	}

	return domain.GenerateResponse{Outcome: domain.OutcomeCreated, Invoice: invoice}, nil
}

// regenerate overwrites the existing invoice's snapshot with a fresh
// aggregation. Totals below the already-paid amount are rejected so the due
// amount can never be driven negative.
func (s *Service) regenerate(ctx context.Context, existing *domain.Invoice, period domain.Period) (domain.GenerateResponse, error) {
	now := s.clock.Now()
	customerID := existing.CustomerID

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		agg, err := s.aggregate(ctx, tx, customerID, period)
		if err != nil {
			return err
		}

		if existing.AmountPaid > agg.TotalAmount {
			return domain.ErrPaidExceedsTotal
		}

		existing.EndDate = period.End
		existing.TotalQty = agg.TotalQty
		existing.TotalAmount = agg.TotalAmount
		existing.DueAmount = agg.TotalAmount - existing.AmountPaid
		existing.Status = domain.DeriveStatus(existing.DueAmount, existing.AmountPaid, existing.DueDate, now)
		existing.UpdatedAt = now

		if err := s.repo.Update(ctx, tx, existing); err != nil {
			return err
		}
		if err := s.repo.ReplaceLineItems(ctx, tx, existing.ID, agg.Items); err != nil {
			return err
		}
		existing.LineItems = agg.Items
		return nil
	})
	if err != nil {
		return domain.GenerateResponse{}, err
	}

	return domain.GenerateResponse{Outcome: domain.OutcomeUpdated, Invoice: *existing}, nil
}
