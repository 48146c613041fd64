package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/shopnavy/pos/internal/model"
)

// GSTFunc derives the GST of a stored sale item for history summaries.
type GSTFunc func(item model.SaleItem) float64

// RateGST is GSTFromRate applied to a stored item.
func RateGST(item model.SaleItem) float64 {
	return GSTFromRate(item.UnitPrice, item.Qty, item.DiscountPercent, item.GSTPercent)
}

// LineTotalGST is GSTFromLineTotal applied to a stored item.
func LineTotalGST(item model.SaleItem) float64 {
	return GSTFromLineTotal(item.UnitPrice, item.Qty, item.DiscountPercent, item.LineTotal)
}

// Summarize flattens sales into history lines and aggregates cost, revenue, GST and
// profit over every item, using gstOf for the GST of each item.
func Summarize(sales []model.Sale, gstOf GSTFunc) model.History {
	var cost, revenue, gst, profit decimal.Decimal
	lines := make([]model.HistoryLine, 0, len(sales))

	for _, sale := range sales {
		for _, item := range sale.Items {
			p := Profit(item.UnitPrice, item.CostPrice, item.Qty)
			qty := decimal.NewFromInt(int64(item.Qty))

			lines = append(lines, model.HistoryLine{
				Date:            sale.CreatedAt,
				SaleID:          sale.ID,
				Product:         item.ProductName,
				Qty:             item.Qty,
				CostPrice:       item.CostPrice,
				SellPrice:       item.UnitPrice,
				DiscountPercent: item.DiscountPercent,
				GSTPercent:      item.GSTPercent,
				LineTotal:       item.LineTotal,
				Profit:          p,
			})

			cost = cost.Add(decimal.NewFromFloat(item.CostPrice).Mul(qty))
			revenue = revenue.Add(decimal.NewFromFloat(item.UnitPrice).Mul(qty))
			gst = gst.Add(decimal.NewFromFloat(gstOf(item)))
			profit = profit.Add(decimal.NewFromFloat(p))
		}
	}

	return model.History{
		Lines: lines,
		Summary: model.HistorySummary{
			TotalCost:    cost.InexactFloat64(),
			TotalRevenue: revenue.InexactFloat64(),
			TotalGST:     gst.InexactFloat64(),
			TotalProfit:  profit.InexactFloat64(),
		},
	}
}
