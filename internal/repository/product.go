package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/shopnavy/pos/internal/model"
	"github.com/shopnavy/pos/internal/storage/db"
)

const productCodeConstraint = "products_code_key"

type SaveProductParams struct {
	Code       string
	Name       string
	CostPrice  float64
	SellPrice  float64
	GSTPercent float64
	Stock      int
}

type SetProductStockParams struct {
	ProductID int64
	Stock     int
}

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	CreateProduct(ctx context.Context, params SaveProductParams) (model.Product, error)
	ListAllProducts(ctx context.Context) ([]model.Product, error)
	GetProductByCode(ctx context.Context, code string) (model.Product, error)
	UpdateProduct(ctx context.Context, id int64, params SaveProductParams) (model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	SetProductStocks(ctx context.Context, params []SetProductStockParams) error
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, code, name, cost_price, sell_price, gst_percent, stock`

func (r productRepository) CreateProduct(ctx context.Context, params SaveProductParams) (model.Product, error) {
	product, err := r.queryOneProduct(ctx, `
		INSERT INTO products (code, name, cost_price, sell_price, gst_percent, stock)
		VALUES (@code, @name, @cost_price, @sell_price, @gst_percent, @stock)
		RETURNING `+productColumns,
		saveProductArgs(params),
	)
	if err != nil {
		if db.IsUniqueViolation(err, productCodeConstraint) {
			return model.Product{}, fmt.Errorf("insert product %q: %w", params.Code, ErrDuplicateCode)
		}
		return model.Product{}, fmt.Errorf("insert product: %w", err)
	}

	return product, nil
}

func (r productRepository) ListAllProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products, err := pgx.CollectRows(rows, pgx.RowToStructByPos[productRow])
	if err != nil {
		return nil, fmt.Errorf("collect products: %w", err)
	}

	result := make([]model.Product, 0, len(products))
	for _, p := range products {
		result = append(result, p.toModel())
	}

	return result, nil
}

func (r productRepository) GetProductByCode(ctx context.Context, code string) (model.Product, error) {
	product, err := r.queryOneProduct(ctx, `SELECT `+productColumns+` FROM products WHERE code = $1`, code)
	if err != nil {
		return model.Product{}, fmt.Errorf("get product by code %q: %w", code, err)
	}

	return product, nil
}

func (r productRepository) UpdateProduct(ctx context.Context, id int64, params SaveProductParams) (model.Product, error) {
	args := saveProductArgs(params)
	args["id"] = id

	product, err := r.queryOneProduct(ctx, `
		UPDATE products
		SET
			code        = @code,
			name        = @name,
			cost_price  = @cost_price,
			sell_price  = @sell_price,
			gst_percent = @gst_percent,
			stock       = @stock
		WHERE id = @id
		RETURNING `+productColumns,
		args,
	)
	if err != nil {
		if db.IsUniqueViolation(err, productCodeConstraint) {
			return model.Product{}, fmt.Errorf("update product %d to code %q: %w", id, params.Code, ErrDuplicateCode)
		}
		return model.Product{}, fmt.Errorf("update product %d: %w", id, err)
	}

	return product, nil
}

func (r productRepository) DeleteProduct(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete product %d: %w", id, ErrNotFound)
	}

	return nil
}

// SetProductStocks writes absolute stock values in one round trip.
func (r productRepository) SetProductStocks(ctx context.Context, params []SetProductStockParams) error {
	if len(params) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, p := range params {
		batch.Queue(`UPDATE products SET stock = $2 WHERE id = $1`, p.ProductID, p.Stock)
	}

	results := r.db.SendBatch(ctx, batch)
	for _, p := range params {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("set stock of product %d: %w", p.ProductID, err)
		}
	}

	if err := results.Close(); err != nil {
		return fmt.Errorf("close stock batch: %w", err)
	}

	return nil
}

type productRow struct {
	ID         int64
	Code       string
	Name       string
	CostPrice  float64
	SellPrice  float64
	GSTPercent float64
	Stock      int32
}

func (p productRow) toModel() model.Product {
	return model.Product{
		ID:         p.ID,
		Code:       p.Code,
		Name:       p.Name,
		CostPrice:  p.CostPrice,
		SellPrice:  p.SellPrice,
		GSTPercent: p.GSTPercent,
		Stock:      int(p.Stock),
	}
}

// queryOneProduct runs a statement returning exactly one product row. A missing row
// is reported as ErrNotFound.
func (r productRepository) queryOneProduct(ctx context.Context, sql string, args ...any) (model.Product, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return model.Product{}, err
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[productRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, ErrNotFound
		}
		return model.Product{}, err
	}
	return row.toModel(), nil
}

func saveProductArgs(params SaveProductParams) pgx.NamedArgs {
	return pgx.NamedArgs{
		"code":        params.Code,
		"name":        params.Name,
		"cost_price":  params.CostPrice,
		"sell_price":  params.SellPrice,
		"gst_percent": params.GSTPercent,
		"stock":       params.Stock,
	}
}
