package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dairydesk/dairydesk/internal/clock"
	customerdomain "github.com/dairydesk/dairydesk/internal/customer/domain"
	"github.com/dairydesk/dairydesk/internal/record/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	Clock        clock.Clock
	GenID        *snowflake.Node
	Repo         domain.Repository
	CustomerRepo customerdomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	clock        clock.Clock
	genID        *snowflake.Node
	repo         domain.Repository
	customerRepo customerdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("record.service"),
		clock:        p.Clock,
		genID:        p.GenID,
		repo:         p.Repo,
		customerRepo: p.CustomerRepo,
	}
}

func (s *Service) Record(ctx context.Context, req domain.RecordDeliveryRequest) (domain.DeliveryRecord, error) {
	customerID, err := snowflake.ParseString(strings.TrimSpace(req.CustomerID))
	if err != nil || customerID == 0 {
		return domain.DeliveryRecord{}, domain.ErrInvalidCustomer
	}

	date, err := time.ParseInLocation(dateLayout, strings.TrimSpace(req.Date), time.UTC)
	if err != nil {
		return domain.DeliveryRecord{}, domain.ErrInvalidDate
	}

	if req.MorningQty < 0 || req.EveningQty < 0 {
		return domain.DeliveryRecord{}, domain.ErrInvalidQuantity
	}
	if req.UnitPrice <= 0 {
		return domain.DeliveryRecord{}, domain.ErrInvalidPrice
	}

	customer, err := s.customerRepo.FindByID(ctx, s.db, customerID)
	if err != nil {
		return domain.DeliveryRecord{}, err
	}
	if customer == nil {
		return domain.DeliveryRecord{}, customerdomain.ErrNotFound
	}

	totalQty := req.MorningQty + req.EveningQty
	now := s.clock.Now()
	record := domain.DeliveryRecord{
		ID:          s.genID.Generate(),
		CustomerID:  customerID,
		RecordDate:  date,
		MorningQty:  req.MorningQty,
		EveningQty:  req.EveningQty,
		TotalQty:    totalQty,
		UnitPrice:   req.UnitPrice,
		TotalAmount: totalQty * req.UnitPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Upsert(ctx, s.db, &record); err != nil {
		return domain.DeliveryRecord{}, err
	}

	// The upsert may have kept an earlier row's id; read back the stored fact.
	stored, err := s.repo.FindByCustomerAndDate(ctx, s.db, customerID, date)
	if err != nil {
		return domain.DeliveryRecord{}, err
	}
	if stored != nil {
		record = *stored
	}

	return record, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRecordsRequest) ([]domain.DeliveryRecord, error) {
	customerID, err := snowflake.ParseString(strings.TrimSpace(req.CustomerID))
	if err != nil || customerID == 0 {
		return nil, domain.ErrInvalidCustomer
	}

	from, err := time.ParseInLocation(dateLayout, strings.TrimSpace(req.From), time.UTC)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	to, err := time.ParseInLocation(dateLayout, strings.TrimSpace(req.To), time.UTC)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}

	items, err := s.repo.ListByCustomerBetween(ctx, s.db, customerID, from, to)
	if err != nil {
		return nil, err
	}

	records := make([]domain.DeliveryRecord, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		records = append(records, *item)
	}
	return records, nil
}
