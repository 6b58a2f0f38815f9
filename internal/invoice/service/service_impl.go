package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/dairydesk/dairydesk/internal/clock"
	"github.com/dairydesk/dairydesk/internal/config"
	customerdomain "github.com/dairydesk/dairydesk/internal/customer/domain"
	"github.com/dairydesk/dairydesk/internal/invoice/domain"
	"github.com/dairydesk/dairydesk/internal/locks"
	recorddomain "github.com/dairydesk/dairydesk/internal/record/domain"
	"github.com/dairydesk/dairydesk/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	Clock        clock.Clock
	GenID        *snowflake.Node
	Cfg          config.Config
	Repo         domain.Repository
	RecordRepo   recorddomain.Repository
	CustomerRepo customerdomain.Repository
	Locker       *locks.Locker `optional:"true"`
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	clock        clock.Clock
	genID        *snowflake.Node
	repo         domain.Repository
	recordRepo   recorddomain.Repository
	customerRepo customerdomain.Repository
	locker       *locks.Locker
	dueDays      int
	guardWindow  int
}

func New(p Params) domain.Service {
	dueDays := p.Cfg.DueDays
	if dueDays <= 0 {
		dueDays = 15
	}
	guardWindow := p.Cfg.GuardWindowDays
	if guardWindow < 0 {
		guardWindow = 2
	}

	return &Service{
		db:           p.DB,
		log:          p.Log.Named("invoice.service"),
		clock:        p.Clock,
		genID:        p.GenID,
		repo:         p.Repo,
		recordRepo:   p.RecordRepo,
		customerRepo: p.CustomerRepo,
		locker:       p.Locker,
		dueDays:      dueDays,
		guardWindow:  guardWindow,
	}
}

func (s *Service) CheckExisting(ctx context.Context, req domain.CheckExistingRequest) (domain.CheckExistingResponse, error) {
	customerID, err := s.parseID(req.CustomerID)
	if err != nil {
		return domain.CheckExistingResponse{}, err
	}

	period, err := domain.NewPeriod(req.Month, req.Year)
	if err != nil {
		return domain.CheckExistingResponse{}, err
	}

	existing, err := s.repo.FindOverlapping(ctx, s.db, customerID, period.Start, period.End)
	if err != nil {
		return domain.CheckExistingResponse{}, err
	}

	return domain.CheckExistingResponse{
		Exists:  existing != nil,
		Invoice: existing,
	}, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) (domain.ListInvoiceResponse, error) {
	page := req.Pagination.Normalize()

	filter := domain.ListInvoiceFilter{
		Month: req.Month,
		Year:  req.Year,
	}
	if raw := strings.TrimSpace(req.CustomerID); raw != "" {
		id, err := s.parseID(raw)
		if err != nil {
			return domain.ListInvoiceResponse{}, err
		}
		filter.CustomerID = id
	}
	if raw := strings.TrimSpace(req.Status); raw != "" {
		status := domain.InvoiceStatus(raw)
		if !domain.ValidStatus(status) {
			return domain.ListInvoiceResponse{}, domain.ErrInvalidStatus
		}
		filter.Status = status
	}
	if filter.Month != 0 {
		// A month filter is only meaningful on the calendar-month grid, so
		// it needs a year to resolve to a period key.
		if filter.Year == 0 {
			return domain.ListInvoiceResponse{}, domain.ErrInvalidYear
		}
		if _, err := domain.NewPeriod(filter.Month, filter.Year); err != nil {
			return domain.ListInvoiceResponse{}, err
		}
	}

	items, total, err := s.repo.List(ctx, s.db, filter, page)
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}

	invoices := make([]domain.Invoice, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		invoices = append(invoices, *item)
	}

	return domain.ListInvoiceResponse{
		PageInfo: pagination.BuildPageInfo(page, total),
		Invoices: invoices,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.InvoiceDetail, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return domain.InvoiceDetail{}, err
	}

	invoice, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.InvoiceDetail{}, err
	}
	if invoice == nil {
		return domain.InvoiceDetail{}, domain.ErrNotFound
	}

	items, err := s.repo.ListLineItems(ctx, s.db, id)
	if err != nil {
		return domain.InvoiceDetail{}, err
	}
	invoice.LineItems = items

	payments, err := s.repo.ListPayments(ctx, s.db, id)
	if err != nil {
		return domain.InvoiceDetail{}, err
	}
	invoice.Payments = payments

	customer, err := s.customerRepo.FindByID(ctx, s.db, invoice.CustomerID)
	if err != nil {
		return domain.InvoiceDetail{}, err
	}

	detail := domain.InvoiceDetail{Invoice: *invoice}
	if customer != nil {
		detail.Customer = *customer
	}
	return detail, nil
}

func (s *Service) SetStatus(ctx context.Context, req domain.SetStatusRequest) (domain.Invoice, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if !domain.ValidStatus(req.Status) {
		return domain.Invoice{}, domain.ErrInvalidStatus
	}

	invoice, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}

	invoice.Status = req.Status
	invoice.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, invoice); err != nil {
		return domain.Invoice{}, err
	}

	s.log.Info("invoice status forced",
		zap.String("invoice_no", invoice.InvoiceNo),
		zap.String("status", string(req.Status)),
	)
	return *invoice, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := s.parseID(rawID)
	if err != nil {
		return err
	}

	invoice, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return domain.ErrNotFound
	}

	count, err := s.repo.CountPayments(ctx, s.db, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrHasPayments
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Delete(ctx, tx, id)
	})
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

// withCustomerLock serializes invoice mutations per customer when a locker
// is configured; without one it degrades to direct execution.
func (s *Service) withCustomerLock(ctx context.Context, customerID snowflake.ID, fn func() error) error {
	err := s.locker.WithCustomer(ctx, customerID, fn)
	if err == locks.ErrNotAcquired {
		return domain.ErrCustomerBusy
	}
	return err
}
