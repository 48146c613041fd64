package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopnavy/pos/internal/model"
	"github.com/shopnavy/pos/internal/pricing"
	"github.com/shopnavy/pos/internal/repository"
	"github.com/shopnavy/pos/pkg/ptr"
)

type HistoryService interface {
	// GetHistory returns the sales made from the start of startDate to the last
	// second of endDate. Only the calendar date of either argument is used; days
	// are taken in model.SaleZone.
	GetHistory(ctx context.Context, startDate, endDate time.Time) (model.History, error)
	GetAllHistory(ctx context.Context) (model.History, error)
}

type historyService struct {
	saleRepo repository.SaleRepository
}

func NewHistoryService(saleRepo repository.SaleRepository) HistoryService {
	return &historyService{saleRepo: saleRepo}
}

func (s *historyService) GetHistory(ctx context.Context, startDate, endDate time.Time) (model.History, error) {
	from := startOfDay(startDate)
	to := startOfDay(endDate).Add(24*time.Hour - time.Second)

	sales, err := s.saleRepo.ListSales(ctx, repository.ListSalesParams{
		From: ptr.New(from),
		To:   ptr.New(to),
	})
	if err != nil {
		return model.History{}, fmt.Errorf("sale repository list sales: %w", err)
	}

	return pricing.Summarize(sales, pricing.RateGST), nil
}

func (s *historyService) GetAllHistory(ctx context.Context) (model.History, error) {
	sales, err := s.saleRepo.ListSales(ctx, repository.ListSalesParams{})
	if err != nil {
		return model.History{}, fmt.Errorf("sale repository list sales: %w", err)
	}

	return pricing.Summarize(sales, pricing.LineTotalGST), nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, model.SaleZone)
}
