package pricing_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shopnavy/pos/internal/model"
	"github.com/shopnavy/pos/internal/pricing"
)

const tolerance = 1e-9

func TestComputeLine(t *testing.T) {
	t.Run("Should discount then tax", func(t *testing.T) {
		l := pricing.ComputeLine(20, 2, 10, 5)

		assert.Equal(t, 40.0, l.LinePrice)
		assert.Equal(t, 4.0, l.Discount)
		assert.Equal(t, 36.0, l.Taxable)
		assert.Equal(t, 1.8, l.GST)
		assert.Equal(t, 37.8, l.Total)
	})

	t.Run("Should handle no discount and no tax", func(t *testing.T) {
		l := pricing.ComputeLine(12.5, 3, 0, 0)

		assert.Equal(t, 37.5, l.LinePrice)
		assert.Zero(t, l.Discount)
		assert.Zero(t, l.GST)
		assert.Equal(t, 37.5, l.Total)
	})

	t.Run("Should satisfy the line total identity", func(t *testing.T) {
		r := rand.New(rand.NewPCG(1, 2))
		for range 500 {
			unit := float64(r.IntN(100000)) / 100
			qty := r.IntN(50) + 1
			discount := float64(r.IntN(10001)) / 100
			gst := float64(r.IntN(2801)) / 100

			l := pricing.ComputeLine(unit, qty, discount, gst)
			want := unit * float64(qty) * (1 - discount/100) * (1 + gst/100)

			assert.InDelta(t, want, l.Total, tolerance*max(1, want))
		}
	})
}

func TestSumLines(t *testing.T) {
	lines := []pricing.Line{
		pricing.ComputeLine(20, 2, 10, 5),
		pricing.ComputeLine(99.99, 1, 0, 18),
		pricing.ComputeLine(3.3, 7, 2.5, 12),
	}

	totals := pricing.SumLines(lines)

	assert.InDelta(t, 40+99.99+23.1, totals.Subtotal, tolerance)
	assert.InDelta(t, totals.Subtotal-totals.DiscountTotal+totals.TotalGST, totals.GrandTotal, tolerance)

	var sumTotals float64
	for _, l := range lines {
		sumTotals += l.Total
	}
	assert.InDelta(t, sumTotals, totals.GrandTotal, tolerance)

	assert.Equal(t, pricing.Totals{}, pricing.SumLines(nil))
}

func TestProfit(t *testing.T) {
	assert.Equal(t, 20.0, pricing.Profit(20, 10, 2))
	assert.Equal(t, -3.0, pricing.Profit(9, 10, 3))
}

func TestGSTFormulasAgree(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for range 500 {
		unit := float64(r.IntN(100000)) / 100
		qty := r.IntN(20) + 1
		discount := float64(r.IntN(10001)) / 100
		gst := float64(r.IntN(2801)) / 100

		l := pricing.ComputeLine(unit, qty, discount, gst)

		fromRate := pricing.GSTFromRate(unit, qty, discount, gst)
		fromTotal := pricing.GSTFromLineTotal(unit, qty, discount, l.Total)

		assert.InDelta(t, l.GST, fromRate, tolerance)
		assert.InDelta(t, fromRate, fromTotal, tolerance*max(1, l.Total))
	}
}

func TestSummarize(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 30, 0, 0, model.SaleZone)
	line := pricing.ComputeLine(20, 2, 10, 5)
	sales := []model.Sale{
		{
			ID:        1,
			CreatedAt: at,
			Items: []model.SaleItem{
				{ProductName: "Tea", UnitPrice: 20, Qty: 2, DiscountPercent: 10, GSTPercent: 5, LineTotal: line.Total, CostPrice: 10},
				{ProductName: "Cake", UnitPrice: 50, Qty: 1, GSTPercent: 12, LineTotal: 56, CostPrice: 60},
			},
		},
		{ID: 2, CreatedAt: at},
	}

	byRate := pricing.Summarize(sales, pricing.RateGST)
	byTotal := pricing.Summarize(sales, pricing.LineTotalGST)

	if assert.Len(t, byRate.Lines, 2) {
		assert.Equal(t, model.HistoryLine{
			Date:            at,
			SaleID:          1,
			Product:         "Tea",
			Qty:             2,
			CostPrice:       10,
			SellPrice:       20,
			DiscountPercent: 10,
			GSTPercent:      5,
			LineTotal:       37.8,
			Profit:          20,
		}, byRate.Lines[0])
		assert.Equal(t, -10.0, byRate.Lines[1].Profit)
	}

	assert.Equal(t, 80.0, byRate.Summary.TotalCost)
	assert.Equal(t, 90.0, byRate.Summary.TotalRevenue)
	assert.Equal(t, 10.0, byRate.Summary.TotalProfit)
	assert.InDelta(t, 1.8+6, byRate.Summary.TotalGST, tolerance)
	assert.InDelta(t, byRate.Summary.TotalGST, byTotal.Summary.TotalGST, tolerance)
	assert.Equal(t, byRate.Lines, byTotal.Lines)
}
