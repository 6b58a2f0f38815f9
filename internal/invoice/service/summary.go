package service

import (
	"context"

	customerdomain "github.com/dairydesk/dairydesk/internal/customer/domain"
	"github.com/dairydesk/dairydesk/internal/invoice/domain"
)

const (
	trendMonths      = 6
	topCustomerLimit = 5
)

func (s *Service) CustomerSummary(ctx context.Context, rawID string) (domain.CustomerSummary, error) {
	customerID, err := s.parseID(rawID)
	if err != nil {
		return domain.CustomerSummary{}, err
	}

	customer, err := s.customerRepo.FindByID(ctx, s.db, customerID)
	if err != nil {
		return domain.CustomerSummary{}, err
	}
	if customer == nil {
		return domain.CustomerSummary{}, customerdomain.ErrNotFound
	}

	summary, err := s.repo.CustomerAggregate(ctx, s.db, customerID)
	if err != nil {
		return domain.CustomerSummary{}, err
	}

	summary.CustomerID = customerID.String()
	summary.CustomerName = customer.Name
	return summary, nil
}

func (s *Service) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	dashboard, err := s.repo.DashboardTotals(ctx, s.db)
	if err != nil {
		return domain.Dashboard{}, err
	}

	trend, err := s.repo.MonthlyTrend(ctx, s.db, trendMonths)
	if err != nil {
		return domain.Dashboard{}, err
	}
	// Query returns newest first; present chronologically.
	for i, j := 0, len(trend)-1; i < j; i, j = i+1, j-1 {
		trend[i], trend[j] = trend[j], trend[i]
	}
	dashboard.MonthlyTrend = trend

	top, err := s.repo.TopCustomersByDue(ctx, s.db, topCustomerLimit)
	if err != nil {
		return domain.Dashboard{}, err
	}
	dashboard.TopCustomers = top

	return dashboard, nil
}
