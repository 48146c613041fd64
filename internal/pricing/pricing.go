// Package pricing holds the sale arithmetic: line discount and GST, sale totals and
// the per-line figures reported by sales history.
//
// Amounts are float64 at the edges and shopspring/decimal inside, so percentages of
// round prices come out exact (10% of 40 is 4, not 4.000000000000001).
package pricing

import "github.com/shopspring/decimal"

// Line is the priced result of one sale line.
type Line struct {
	LinePrice float64 // unit price × qty
	Discount  float64
	Taxable   float64 // line price − discount
	GST       float64
	Total     float64 // taxable + GST
}

// ComputeLine prices qty units at unitPrice, applying discountPercent first and then
// gstPercent on the discounted amount.
func ComputeLine(unitPrice float64, qty int, discountPercent, gstPercent float64) Line {
	linePrice := gross(unitPrice, qty)
	discount := percentOf(linePrice, discountPercent)
	taxable := linePrice.Sub(discount)
	gst := percentOf(taxable, gstPercent)

	return Line{
		LinePrice: linePrice.InexactFloat64(),
		Discount:  discount.InexactFloat64(),
		Taxable:   taxable.InexactFloat64(),
		GST:       gst.InexactFloat64(),
		Total:     taxable.Add(gst).InexactFloat64(),
	}
}

// Totals aggregates the lines of one sale.
type Totals struct {
	Subtotal      float64
	DiscountTotal float64
	TotalGST      float64
	GrandTotal    float64
}

// SumLines returns the sale totals, with GrandTotal = Subtotal − DiscountTotal + TotalGST.
func SumLines(lines []Line) Totals {
	var subtotal, discount, gst decimal.Decimal
	for _, l := range lines {
		subtotal = subtotal.Add(decimal.NewFromFloat(l.LinePrice))
		discount = discount.Add(decimal.NewFromFloat(l.Discount))
		gst = gst.Add(decimal.NewFromFloat(l.GST))
	}

	return Totals{
		Subtotal:      subtotal.InexactFloat64(),
		DiscountTotal: discount.InexactFloat64(),
		TotalGST:      gst.InexactFloat64(),
		GrandTotal:    subtotal.Sub(discount).Add(gst).InexactFloat64(),
	}
}

// Profit is (unitPrice − costPrice) × qty.
func Profit(unitPrice, costPrice float64, qty int) float64 {
	d := decimal.NewFromFloat(unitPrice).Sub(decimal.NewFromFloat(costPrice))
	return d.Mul(decimal.NewFromInt(int64(qty))).InexactFloat64()
}

// GSTFromRate recomputes a stored line's GST from its rate:
// (unit×qty − unit×qty×discount/100) × gst/100.
func GSTFromRate(unitPrice float64, qty int, discountPercent, gstPercent float64) float64 {
	return percentOf(taxable(unitPrice, qty, discountPercent), gstPercent).InexactFloat64()
}

// GSTFromLineTotal recomputes a stored line's GST as its total minus the taxable
// amount. For a line priced by ComputeLine it equals GSTFromRate.
func GSTFromLineTotal(unitPrice float64, qty int, discountPercent, lineTotal float64) float64 {
	return decimal.NewFromFloat(lineTotal).Sub(taxable(unitPrice, qty, discountPercent)).InexactFloat64()
}

func gross(unitPrice float64, qty int) decimal.Decimal {
	return decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(qty)))
}

func taxable(unitPrice float64, qty int, discountPercent float64) decimal.Decimal {
	g := gross(unitPrice, qty)
	return g.Sub(percentOf(g, discountPercent))
}

func percentOf(amount decimal.Decimal, percent float64) decimal.Decimal {
	return amount.Mul(decimal.NewFromFloat(percent)).Shift(-2)
}
