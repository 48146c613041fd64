package cache

import (
	"context"

	"github.com/shopnavy/pos/internal/model"
)

// ProductListCache holds the product listing between writes. Every product write and
// every completed sale must call Invalidate.
type ProductListCache interface {
	Get(ctx context.Context) ([]model.ProductListing, bool, error)
	Set(ctx context.Context, products []model.ProductListing) error
	Invalidate(ctx context.Context) error
}

type NoopProductListCache struct{}

func (NoopProductListCache) Get(context.Context) ([]model.ProductListing, bool, error) {
	return nil, false, nil
}

func (NoopProductListCache) Set(context.Context, []model.ProductListing) error {
	return nil
}

func (NoopProductListCache) Invalidate(context.Context) error {
	return nil
}
