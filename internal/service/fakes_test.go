package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"

	"github.com/shopnavy/pos/internal/model"
	"github.com/shopnavy/pos/internal/repository"
	"github.com/shopnavy/pos/internal/storage/db"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeDB struct {
	db.DB
	txs int
}

func (f *fakeDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	f.txs++
	return txFunc(f)
}

type fakeProductRepo struct {
	products []model.Product
	nextID   int64
	writes   int
}

func newFakeProductRepo(products ...model.Product) *fakeProductRepo {
	r := &fakeProductRepo{}
	for _, p := range products {
		r.nextID++
		p.ID = r.nextID
		r.products = append(r.products, p)
	}
	return r
}

func (r *fakeProductRepo) WithDB(db.DB) repository.ProductRepository { return r }

func (r *fakeProductRepo) CreateProduct(_ context.Context, params repository.SaveProductParams) (model.Product, error) {
	for _, p := range r.products {
		if p.Code == params.Code {
			return model.Product{}, repository.ErrDuplicateCode
		}
	}
	r.nextID++
	r.writes++
	p := productFromParams(r.nextID, params)
	r.products = append(r.products, p)
	return p, nil
}

func (r *fakeProductRepo) ListAllProducts(context.Context) ([]model.Product, error) {
	return slices.Clone(r.products), nil
}

func (r *fakeProductRepo) GetProductByCode(_ context.Context, code string) (model.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			return p, nil
		}
	}
	return model.Product{}, repository.ErrNotFound
}

func (r *fakeProductRepo) UpdateProduct(_ context.Context, id int64, params repository.SaveProductParams) (model.Product, error) {
	for _, p := range r.products {
		if p.ID != id && p.Code == params.Code {
			return model.Product{}, repository.ErrDuplicateCode
		}
	}
	for i, p := range r.products {
		if p.ID == id {
			r.writes++
			r.products[i] = productFromParams(id, params)
			return r.products[i], nil
		}
	}
	return model.Product{}, repository.ErrNotFound
}

func (r *fakeProductRepo) DeleteProduct(_ context.Context, id int64) error {
	for i, p := range r.products {
		if p.ID == id {
			r.writes++
			r.products = slices.Delete(r.products, i, i+1)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeProductRepo) SetProductStocks(_ context.Context, params []repository.SetProductStockParams) error {
	for _, sp := range params {
		for i := range r.products {
			if r.products[i].ID == sp.ProductID {
				r.writes++
				r.products[i].Stock = sp.Stock
			}
		}
	}
	return nil
}

func (r *fakeProductRepo) stockOf(code string) int {
	for _, p := range r.products {
		if p.Code == code {
			return p.Stock
		}
	}
	return -1
}

func productFromParams(id int64, params repository.SaveProductParams) model.Product {
	return model.Product{
		ID:         id,
		Code:       params.Code,
		Name:       params.Name,
		CostPrice:  params.CostPrice,
		SellPrice:  params.SellPrice,
		GSTPercent: params.GSTPercent,
		Stock:      params.Stock,
	}
}

type fakeSaleRepo struct {
	sales      []model.Sale
	listParams []repository.ListSalesParams
}

func (r *fakeSaleRepo) WithDB(db.DB) repository.SaleRepository { return r }

func (r *fakeSaleRepo) CreateSale(_ context.Context, params repository.CreateSaleParams) (int64, error) {
	id := int64(len(r.sales) + 1)
	r.sales = append(r.sales, model.Sale{
		ID:            id,
		Subtotal:      params.Subtotal,
		DiscountTotal: params.DiscountTotal,
		TotalGST:      params.TotalGST,
		GrandTotal:    params.GrandTotal,
		CreatedAt:     params.CreatedAt,
	})
	return id, nil
}

func (r *fakeSaleRepo) CreateSaleItems(_ context.Context, saleID int64, items []model.SaleItem) error {
	for i := range r.sales {
		if r.sales[i].ID == saleID {
			r.sales[i].Items = append(r.sales[i].Items, items...)
			return nil
		}
	}
	return errors.New("sale not found")
}

func (r *fakeSaleRepo) ListSales(_ context.Context, params repository.ListSalesParams) ([]model.Sale, error) {
	r.listParams = append(r.listParams, params)

	var out []model.Sale
	for _, s := range r.sales {
		if params.From != nil && s.CreatedAt.Before(*params.From) {
			continue
		}
		if params.To != nil && s.CreatedAt.After(*params.To) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

type fakeOutboxRepo struct {
	msgs []repository.CreateOutboxMsgParams
}

func (r *fakeOutboxRepo) WithDB(db.DB) repository.OutboxMsgRepository { return r }

func (r *fakeOutboxRepo) CreateOutboxMsg(_ context.Context, params repository.CreateOutboxMsgParams) error {
	r.msgs = append(r.msgs, params)
	return nil
}

func (r *fakeOutboxRepo) ListUnprocessedOutboxMsgs(context.Context, repository.ListUnprocessedOutboxMsgsParams) ([]repository.ListUnprocessedOutboxMsgsResult, error) {
	return nil, nil
}

func (r *fakeOutboxRepo) BulkUpdateOutboxMsgs(context.Context, repository.BulkUpdateOutboxMsgsParams) error {
	return nil
}

type fakeListCache struct {
	listing     []model.ProductListing
	cached      bool
	gets        int
	invalidated int
	err         error
}

func (c *fakeListCache) Get(context.Context) ([]model.ProductListing, bool, error) {
	c.gets++
	if c.err != nil {
		return nil, false, c.err
	}
	return c.listing, c.cached, nil
}

func (c *fakeListCache) Set(_ context.Context, listing []model.ProductListing) error {
	if c.err != nil {
		return c.err
	}
	c.listing, c.cached = listing, true
	return nil
}

func (c *fakeListCache) Invalidate(context.Context) error {
	c.invalidated++
	c.listing, c.cached = nil, false
	return c.err
}
