package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopnavy/pos/internal/apperr"
	"github.com/shopnavy/pos/internal/cache"
	"github.com/shopnavy/pos/internal/event"
	"github.com/shopnavy/pos/internal/model"
	"github.com/shopnavy/pos/internal/pricing"
	"github.com/shopnavy/pos/internal/repository"
	"github.com/shopnavy/pos/internal/storage/db"
	"github.com/shopnavy/pos/pkg/outbox"
	"github.com/shopnavy/pos/pkg/ptr"
)

// CreateSaleItemParams is one requested sale line. A nil UnitPrice sells at the
// product's catalog price.
type CreateSaleItemParams struct {
	ProductCode     string
	Qty             int
	UnitPrice       *float64
	DiscountPercent float64
}

type SaleService interface {
	// CreateSale prices and records a sale and decrements stock, all in one
	// transaction. The returned sale carries its items in request order.
	CreateSale(ctx context.Context, items []CreateSaleItemParams) (model.Sale, error)
}

type saleService struct {
	db            db.DB
	logger        *slog.Logger
	productRepo   repository.ProductRepository
	saleRepo      repository.SaleRepository
	outboxMsgRepo repository.OutboxMsgRepository
	listCache     cache.ProductListCache
	now           func() time.Time
}

func NewSaleService(
	db db.DB,
	logger *slog.Logger,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
	listCache cache.ProductListCache,
) SaleService {
	return &saleService{
		db:            db,
		logger:        logger.With(slog.String("service", "sale")),
		productRepo:   productRepo,
		saleRepo:      saleRepo,
		outboxMsgRepo: outboxMsgRepo,
		listCache:     listCache,
		now:           time.Now,
	}
}

func (s *saleService) CreateSale(ctx context.Context, items []CreateSaleItemParams) (model.Sale, error) {
	var sale model.Sale

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		productRepo := s.productRepo.WithDB(db)

		// Every line is checked against the stored stock before anything is written.
		// Lines for the same product do not see each other's quantities.
		var (
			lines     = make([]pricing.Line, 0, len(items))
			saleItems = make([]model.SaleItem, 0, len(items))
			stocks    []repository.SetProductStockParams
			stockIdx  = map[int64]int{}
		)
		for _, item := range items {
			product, err := productRepo.GetProductByCode(ctx, item.ProductCode)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return apperr.ProductNotFoundErr.
						WithMsgf("Product %s not found", item.ProductCode).
						WrapParent(err)
				}
				return fmt.Errorf("product repository get product by code: %w", err)
			}

			if product.Stock < item.Qty {
				return apperr.InsufficientStockErr.WithMsgf("Not enough stock for %s", item.ProductCode)
			}

			unitPrice := ptr.ValueOr(item.UnitPrice, product.SellPrice)
			line := pricing.ComputeLine(unitPrice, item.Qty, item.DiscountPercent, product.GSTPercent)
			lines = append(lines, line)

			saleItems = append(saleItems, model.SaleItem{
				ProductID:       product.ID,
				ProductCode:     product.Code,
				ProductName:     product.Name,
				UnitPrice:       unitPrice,
				Qty:             item.Qty,
				DiscountPercent: item.DiscountPercent,
				GSTPercent:      product.GSTPercent,
				LineTotal:       line.Total,
				CostPrice:       product.CostPrice,
			})

			i, ok := stockIdx[product.ID]
			if !ok {
				i = len(stocks)
				stockIdx[product.ID] = i
				stocks = append(stocks, repository.SetProductStockParams{ProductID: product.ID, Stock: product.Stock})
			}
			stocks[i].Stock -= item.Qty
		}

		totals := pricing.SumLines(lines)
		createdAt := s.now().In(model.SaleZone)

		saleID, err := s.saleRepo.
			WithDB(db).
			CreateSale(ctx, repository.CreateSaleParams{
				Subtotal:      totals.Subtotal,
				DiscountTotal: totals.DiscountTotal,
				TotalGST:      totals.TotalGST,
				GrandTotal:    totals.GrandTotal,
				CreatedAt:     createdAt,
			})
		if err != nil {
			return fmt.Errorf("sale repository create sale: %w", err)
		}

		for i := range saleItems {
			saleItems[i].SaleID = saleID
		}

		if err := s.saleRepo.WithDB(db).CreateSaleItems(ctx, saleID, saleItems); err != nil {
			return fmt.Errorf("sale repository create sale items: %w", err)
		}

		if err := productRepo.SetProductStocks(ctx, stocks); err != nil {
			return fmt.Errorf("product repository set product stocks: %w", err)
		}

		sale = model.Sale{
			ID:            saleID,
			Subtotal:      totals.Subtotal,
			DiscountTotal: totals.DiscountTotal,
			TotalGST:      totals.TotalGST,
			GrandTotal:    totals.GrandTotal,
			CreatedAt:     createdAt,
			Items:         saleItems,
		}

		if err := s.writeSaleCompleted(ctx, db, sale, stocks, stockIdx); err != nil {
			return err
		}

		return nil
	}); err != nil {
		return model.Sale{}, err
	}

	invalidateListCache(ctx, s.logger, s.listCache)

	s.logger.InfoContext(ctx, "sale completed",
		slog.Int64("sale_id", sale.ID),
		slog.Int("items", len(sale.Items)),
		slog.Float64("grand_total", sale.GrandTotal),
	)

	return sale, nil
}

func (s *saleService) writeSaleCompleted(
	ctx context.Context,
	db db.DB,
	sale model.Sale,
	stocks []repository.SetProductStockParams,
	stockIdx map[int64]int,
) error {
	ev := event.SaleCompletedEvent{
		SaleID:     sale.ID,
		GrandTotal: sale.GrandTotal,
		Items:      make([]event.SaleCompletedItem, 0, len(sale.Items)),
	}
	for _, item := range sale.Items {
		ev.Items = append(ev.Items, event.SaleCompletedItem{
			ProductID:      item.ProductID,
			ProductCode:    item.ProductCode,
			Qty:            item.Qty,
			RemainingStock: stocks[stockIdx[item.ProductID]].Stock,
		})
	}

	evBytes, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	key := strconv.FormatInt(sale.ID, 10)
	if err := s.outboxMsgRepo.
		WithDB(db).
		CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{
			Topic:        event.TopicSaleCompleted,
			Headers:      outbox.BuildHeaders(ctx),
			Payload:      evBytes,
			PartitionKey: &key,
		}); err != nil {
		return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
	}

	return nil
}
