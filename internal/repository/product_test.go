package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopnavy/pos/internal/model"
	"github.com/shopnavy/pos/internal/repository"
	"github.com/shopnavy/pos/internal/storage/db"
)

var appleParams = repository.SaveProductParams{
	Code: "A1", Name: "Apple", CostPrice: 10, SellPrice: 20, GSTPercent: 5, Stock: 10,
}

func TestProductRepository(t *testing.T) {
	client := pgClient(t)
	repo := repository.NewProductRepository(client)
	ctx := context.Background()

	apple, err := repo.CreateProduct(ctx, appleParams)
	require.NoError(t, err)
	assert.Equal(t, model.Product{ID: 1, Code: "A1", Name: "Apple", CostPrice: 10, SellPrice: 20, GSTPercent: 5, Stock: 10}, apple)

	bread, err := repo.CreateProduct(ctx, repository.SaveProductParams{Code: "B2", Name: "Bread", CostPrice: 1.15, SellPrice: 2.35, GSTPercent: 12, Stock: 50})
	require.NoError(t, err)

	t.Run("duplicate code on create", func(t *testing.T) {
		_, err := repo.CreateProduct(ctx, appleParams)
		assert.ErrorIs(t, err, repository.ErrDuplicateCode)
	})

	t.Run("list in insertion order", func(t *testing.T) {
		products, err := repo.ListAllProducts(ctx)
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "A1", products[0].Code)
		assert.Equal(t, "B2", products[1].Code)
	})

	t.Run("get by code", func(t *testing.T) {
		got, err := repo.GetProductByCode(ctx, "B2")
		require.NoError(t, err)
		assert.Equal(t, bread, got)

		_, err = repo.GetProductByCode(ctx, "ZZ")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("update replaces fields", func(t *testing.T) {
		params := appleParams
		params.Name = "Green Apple"
		params.Stock = 3

		got, err := repo.UpdateProduct(ctx, apple.ID, params)
		require.NoError(t, err)
		assert.Equal(t, "Green Apple", got.Name)
		assert.Equal(t, 3, got.Stock)

		_, err = repo.UpdateProduct(ctx, 999, params)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("update to a taken code", func(t *testing.T) {
		params := appleParams
		params.Code = "B2"
		_, err := repo.UpdateProduct(ctx, apple.ID, params)
		assert.ErrorIs(t, err, repository.ErrDuplicateCode)
	})

	t.Run("set stocks", func(t *testing.T) {
		require.NoError(t, repo.SetProductStocks(ctx, []repository.SetProductStockParams{
			{ProductID: apple.ID, Stock: 1},
			{ProductID: bread.ID, Stock: 40},
		}))

		got, err := repo.GetProductByCode(ctx, "B2")
		require.NoError(t, err)
		assert.Equal(t, 40, got.Stock)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteProduct(ctx, bread.ID))
		assert.ErrorIs(t, repo.DeleteProduct(ctx, bread.ID), repository.ErrNotFound)
	})
}

func TestWithTxRollsBack(t *testing.T) {
	client := pgClient(t)
	repo := repository.NewProductRepository(client)
	ctx := context.Background()

	errAbort := errors.New("abort")
	err := client.WithTx(ctx, func(tx db.DB) error {
		if _, err := repo.WithDB(tx).CreateProduct(ctx, appleParams); err != nil {
			return err
		}
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	products, err := repo.ListAllProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestMigrateIsIdempotent(t *testing.T) {
	client := pgClient(t)
	require.NoError(t, db.Migrate(context.Background(), client.Pool))
}
