package service

import (
	"context"

	"github.com/dairydesk/dairydesk/internal/invoice/domain"
	"go.uber.org/zap"
)

// GenerateBatch runs generate-or-update for every active customer. One
// customer's failure is bucketed, never fatal; only errors outside the
// per-customer loop (bad period, temporal guard) abort the batch.
func (s *Service) GenerateBatch(ctx context.Context, req domain.GenerateBatchRequest) (domain.GenerateBatchResponse, error) {
	period, err := domain.NewPeriod(req.Month, req.Year)
	if err != nil {
		return domain.GenerateBatchResponse{}, err
	}

	// A single refusal blocks the entire batch rather than partially running.
	if err := s.checkTemporalGuard(period); err != nil {
		return domain.GenerateBatchResponse{}, err
	}

	customers, err := s.customerRepo.ListActive(ctx, s.db)
	if err != nil {
		return domain.GenerateBatchResponse{}, err
	}

	resp := domain.GenerateBatchResponse{
		Month:          req.Month,
		Year:           req.Year,
		TotalCustomers: len(customers),
		Created:        []domain.BatchItem{},
		Updated:        []domain.BatchItem{},
		Failed:         []domain.BatchFailure{},
	}

	for _, customer := range customers {
		if customer == nil {
			continue
		}

		result, err := s.Generate(ctx, domain.GenerateRequest{
			CustomerID:     customer.ID.String(),
			Month:          req.Month,
			Year:           req.Year,
			UpdateExisting: req.UpdateExisting,
		})
		if err != nil {
			resp.Failed = append(resp.Failed, domain.BatchFailure{
				CustomerID:   customer.ID.String(),
				CustomerName: customer.Name,
				Reason:       err.Error(),
			})
			continue
		}

		item := domain.BatchItem{
			CustomerID:   customer.ID.String(),
			CustomerName: customer.Name,
			InvoiceID:    result.Invoice.ID.String(),
			InvoiceNo:    result.Invoice.InvoiceNo,
		}
		switch result.Outcome {
		case domain.OutcomeUpdated:
			resp.Updated = append(resp.Updated, item)
		default:
			resp.Created = append(resp.Created, item)
		}
	}

	s.log.Info("batch generation finished",
		zap.String("period", period.Key()),
		zap.Int("total", resp.TotalCustomers),
		zap.Int("created", len(resp.Created)),
		zap.Int("updated", len(resp.Updated)),
		zap.Int("failed", len(resp.Failed)),
	)
	return resp, nil
}
