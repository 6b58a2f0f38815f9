package service

import (
	"context"
	"fmt"
	"strings"

	customerdomain "github.com/dairydesk/dairydesk/internal/customer/domain"
	"github.com/dairydesk/dairydesk/internal/invoice/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddPayment appends one entry to the invoice's payment ledger and
// recomputes the due amount and status. The ledger is append-only;
// corrections are offsetting entries, never edits.
func (s *Service) AddPayment(ctx context.Context, req domain.AddPaymentRequest) (domain.Invoice, error) {
	id, err := s.parseID(req.InvoiceID)
	if err != nil {
		return domain.Invoice{}, err
	}

	if req.Amount <= 0 {
		return domain.Invoice{}, domain.ErrInvalidAmount
	}
	method := domain.PaymentMethod(strings.TrimSpace(string(req.Method)))
	if method != domain.MethodCash && method != domain.MethodOnline {
		return domain.Invoice{}, domain.ErrInvalidMethod
	}

	probe, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if probe == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}

	customer, err := s.customerRepo.FindByID(ctx, s.db, probe.CustomerID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if customer == nil {
		return domain.Invoice{}, customerdomain.ErrNotFound
	}

	var invoice domain.Invoice
	err = s.withCustomerLock(ctx, probe.CustomerID, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			current, err := s.repo.FindByID(ctx, tx, id)
			if err != nil {
				return err
			}
			if current == nil {
				return domain.ErrNotFound
			}
			if req.Amount > current.DueAmount {
				return domain.ErrAmountExceedsDue
			}

			now := s.clock.Now()
			transactionID := strings.TrimSpace(req.TransactionID)
			if transactionID == "" && method != domain.MethodCash {
				transactionID, err = s.nextTransactionID(ctx, tx, customer, now.Year())
				if err != nil {
					return err
				}
			}

			paymentDate := now
			if req.PaymentDate != nil {
				paymentDate = req.PaymentDate.UTC()
			}

			payment := domain.Payment{
				ID:            s.genID.Generate(),
				InvoiceID:     current.ID,
				Amount:        req.Amount,
				PaymentDate:   paymentDate,
				Method:        method,
				TransactionID: transactionID,
				Notes:         strings.TrimSpace(req.Notes),
				CreatedAt:     now,
			}
			if err := s.repo.InsertPayment(ctx, tx, &payment); err != nil {
				return err
			}

			current.AmountPaid += req.Amount
			current.DueAmount = current.TotalAmount - current.AmountPaid
			current.Status = domain.DeriveStatus(current.DueAmount, current.AmountPaid, current.DueDate, now)
			current.UpdatedAt = now
			if err := s.repo.Update(ctx, tx, current); err != nil {
				return err
			}

			invoice = *current
			return nil
		})
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	s.log.Info("payment recorded",
		zap.String("invoice_no", invoice.InvoiceNo),
		zap.Float64("amount", req.Amount),
		zap.String("method", string(method)),
		zap.String("status", string(invoice.Status)),
	)
	return invoice, nil
}

// nextTransactionID mints {year}_{customerNo}_{sequence} where sequence is
// one past the highest sequence among all of the customer's payments with
// the current-year prefix, across every invoice the customer has.
func (s *Service) nextTransactionID(ctx context.Context, tx *gorm.DB, customer *customerdomain.Customer, year int) (string, error) {
	prefix := fmt.Sprintf("%d_%d_", year, customer.CustomerNo)
	max, err := s.repo.MaxTransactionSeq(ctx, tx, customer.ID, prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", prefix, max+1), nil
}
