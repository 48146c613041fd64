package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/shopnavy/pos/internal/model"
	"github.com/shopnavy/pos/internal/storage/db"
)

type CreateSaleParams struct {
	Subtotal      float64
	DiscountTotal float64
	TotalGST      float64
	GrandTotal    float64
	CreatedAt     time.Time
}

// ListSalesParams bounds sales by created_at, both ends inclusive. A nil bound is open.
type ListSalesParams struct {
	From *time.Time
	To   *time.Time
}

type SaleRepository interface {
	WithDB(db db.DB) SaleRepository
	CreateSale(ctx context.Context, params CreateSaleParams) (int64, error)
	CreateSaleItems(ctx context.Context, saleID int64, items []model.SaleItem) error
	ListSales(ctx context.Context, params ListSalesParams) ([]model.Sale, error)
}

type saleRepository struct {
	db db.DB
}

func NewSaleRepository(db db.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r saleRepository) WithDB(db db.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r saleRepository) CreateSale(ctx context.Context, params CreateSaleParams) (int64, error) {
	var id int64
	if err := r.db.QueryRow(ctx, `
		INSERT INTO sales (subtotal, discount_total, total_gst, grand_total, created_at)
		VALUES (@subtotal, @discount_total, @total_gst, @grand_total, @created_at)
		RETURNING id
	`, pgx.NamedArgs{
		"subtotal":       params.Subtotal,
		"discount_total": params.DiscountTotal,
		"total_gst":      params.TotalGST,
		"grand_total":    params.GrandTotal,
		"created_at":     params.CreatedAt,
	}).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert sale: %w", err)
	}

	return id, nil
}

var saleItemColumns = []string{
	"sale_id", "product_id", "product_code", "product_name", "unit_price",
	"qty", "discount_percent", "gst_percent", "line_total", "cost_price",
}

func (r saleRepository) CreateSaleItems(ctx context.Context, saleID int64, items []model.SaleItem) error {
	n, err := r.db.CopyFrom(ctx, pgx.Identifier{"sale_items"}, saleItemColumns,
		pgx.CopyFromSlice(len(items), func(i int) ([]any, error) {
			it := items[i]
			return []any{
				saleID, it.ProductID, it.ProductCode, it.ProductName, it.UnitPrice,
				int32(it.Qty), it.DiscountPercent, it.GSTPercent, it.LineTotal, it.CostPrice, //nolint:gosec
			}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy sale items: %w", err)
	}

	if int(n) != len(items) {
		return fmt.Errorf("copy sale items: wrote %d of %d rows", n, len(items))
	}

	return nil
}

func (r saleRepository) ListSales(ctx context.Context, params ListSalesParams) ([]model.Sale, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, subtotal, discount_total, total_gst, grand_total, created_at
		FROM sales
		WHERE (@from::timestamptz IS NULL OR created_at >= @from::timestamptz)
		  AND (@to::timestamptz IS NULL OR created_at <= @to::timestamptz)
		ORDER BY id
	`, pgx.NamedArgs{
		"from": params.From,
		"to":   params.To,
	})
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}

	sales, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Sale, error) {
		var s model.Sale
		err := row.Scan(&s.ID, &s.Subtotal, &s.DiscountTotal, &s.TotalGST, &s.GrandTotal, &s.CreatedAt)
		s.CreatedAt = s.CreatedAt.In(model.SaleZone)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect sales: %w", err)
	}

	if len(sales) == 0 {
		return sales, nil
	}

	ids := make([]int64, len(sales))
	index := make(map[int64]int, len(sales))
	for i, s := range sales {
		ids[i] = s.ID
		index[s.ID] = i
	}

	items, err := r.listSaleItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		i := index[it.SaleID]
		sales[i].Items = append(sales[i].Items, it)
	}

	return sales, nil
}

func (r saleRepository) listSaleItems(ctx context.Context, saleIDs []int64) ([]model.SaleItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, sale_id, product_id, product_code, product_name, unit_price,
		       qty, discount_percent, gst_percent, line_total, cost_price
		FROM sale_items
		WHERE sale_id = ANY($1)
		ORDER BY sale_id, id
	`, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.SaleItem, error) {
		var (
			it  model.SaleItem
			qty int32
		)
		err := row.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductCode, &it.ProductName, &it.UnitPrice,
			&qty, &it.DiscountPercent, &it.GSTPercent, &it.LineTotal, &it.CostPrice)
		it.Qty = int(qty)
		return it, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect sale items: %w", err)
	}

	return items, nil
}
