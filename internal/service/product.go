package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shopnavy/pos/internal/apperr"
	"github.com/shopnavy/pos/internal/cache"
	"github.com/shopnavy/pos/internal/event"
	"github.com/shopnavy/pos/internal/model"
	"github.com/shopnavy/pos/internal/repository"
	"github.com/shopnavy/pos/internal/storage/db"
	"github.com/shopnavy/pos/pkg/outbox"
)

// SaveProductParams holds every editable product field. Update replaces all of them.
type SaveProductParams struct {
	Code       string
	Name       string
	CostPrice  float64
	SellPrice  float64
	GSTPercent float64
	Stock      int
}

type ProductService interface {
	CreateProduct(ctx context.Context, params SaveProductParams) (model.Product, error)
	ListProducts(ctx context.Context) ([]model.ProductListing, error)
	UpdateProduct(ctx context.Context, id int64, params SaveProductParams) (model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type productService struct {
	db            db.DB
	logger        *slog.Logger
	productRepo   repository.ProductRepository
	outboxMsgRepo repository.OutboxMsgRepository
	listCache     cache.ProductListCache
}

func NewProductService(
	db db.DB,
	logger *slog.Logger,
	productRepo repository.ProductRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
	listCache cache.ProductListCache,
) ProductService {
	return &productService{
		db:            db,
		logger:        logger.With(slog.String("service", "product")),
		productRepo:   productRepo,
		outboxMsgRepo: outboxMsgRepo,
		listCache:     listCache,
	}
}

func (s *productService) CreateProduct(ctx context.Context, params SaveProductParams) (model.Product, error) {
	var product model.Product

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		var err error
		product, err = s.productRepo.
			WithDB(db).
			CreateProduct(ctx, toRepoSaveProductParams(params))
		if err != nil {
			return fmt.Errorf("product repository create product: %w", err)
		}

		evBytes, err := json.Marshal(event.ProductCreatedEvent{
			ProductID: product.ID,
			Code:      product.Code,
			Name:      product.Name,
			SellPrice: product.SellPrice,
			Stock:     product.Stock,
		})
		if err != nil {
			return fmt.Errorf("marshal event: %w", err)
		}

		key := strconv.FormatInt(product.ID, 10)
		if err := s.outboxMsgRepo.
			WithDB(db).
			CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{
				Topic:        event.TopicProductCreated,
				Headers:      outbox.BuildHeaders(ctx),
				Payload:      evBytes,
				PartitionKey: &key,
			}); err != nil {
			return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
		}

		return nil
	}); err != nil {
		return model.Product{}, productError(err)
	}

	s.invalidateListCache(ctx)
	return product, nil
}

// ListProducts returns every product in insertion order with its derived profit
// figures, from the cache when it holds a listing.
func (s *productService) ListProducts(ctx context.Context) ([]model.ProductListing, error) {
	if cached, ok, err := s.listCache.Get(ctx); err != nil {
		s.logger.WarnContext(ctx, "error reading product list cache", slog.Any("error", err))
	} else if ok {
		return cached, nil
	}

	products, err := s.productRepo.ListAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("product repository list all products: %w", err)
	}

	listings := make([]model.ProductListing, 0, len(products))
	for _, p := range products {
		listings = append(listings, model.NewProductListing(p))
	}

	if err := s.listCache.Set(ctx, listings); err != nil {
		s.logger.WarnContext(ctx, "error writing product list cache", slog.Any("error", err))
	}

	return listings, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id int64, params SaveProductParams) (model.Product, error) {
	product, err := s.productRepo.UpdateProduct(ctx, id, toRepoSaveProductParams(params))
	if err != nil {
		return model.Product{}, productError(fmt.Errorf("product repository update product: %w", err))
	}

	s.invalidateListCache(ctx)
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		return productError(fmt.Errorf("product repository delete product: %w", err))
	}

	s.invalidateListCache(ctx)
	return nil
}

func (s *productService) invalidateListCache(ctx context.Context) {
	invalidateListCache(ctx, s.logger, s.listCache)
}

func invalidateListCache(ctx context.Context, logger *slog.Logger, listCache cache.ProductListCache) {
	if err := listCache.Invalidate(ctx); err != nil {
		logger.WarnContext(ctx, "error invalidating product list cache", slog.Any("error", err))
	}
}

// productError maps repository errors to their application errors.
func productError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateCode):
		return apperr.ProductCodeExistsErr.WrapParent(err)
	case errors.Is(err, repository.ErrNotFound):
		return apperr.ProductNotFoundErr.WrapParent(err)
	default:
		return err
	}
}

func toRepoSaveProductParams(params SaveProductParams) repository.SaveProductParams {
	return repository.SaveProductParams{
		Code:       params.Code,
		Name:       params.Name,
		CostPrice:  params.CostPrice,
		SellPrice:  params.SellPrice,
		GSTPercent: params.GSTPercent,
		Stock:      params.Stock,
	}
}
