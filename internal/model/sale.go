package model

import "time"

// SaleZone is the fixed UTC+05:30 offset sales are timestamped in. History date
// ranges are interpreted in the same zone.
var SaleZone = time.FixedZone("IST", 5*60*60+30*60)

// Sale is a completed transaction. Totals are computed once at creation and never
// recomputed.
type Sale struct {
	ID            int64
	Subtotal      float64
	DiscountTotal float64
	TotalGST      float64
	GrandTotal    float64
	CreatedAt     time.Time
	Items         []SaleItem
}

// SaleItem is a line of a sale. Product fields are a snapshot taken at sale time and
// stay unchanged when the product is edited or deleted.
type SaleItem struct {
	ID              int64
	SaleID          int64
	ProductID       int64
	ProductCode     string
	ProductName     string
	UnitPrice       float64
	Qty             int
	DiscountPercent float64
	GSTPercent      float64
	LineTotal       float64
	CostPrice       float64
}

func (i SaleItem) ProfitLossPerUnit() float64 {
	return i.UnitPrice - i.CostPrice
}

func (i SaleItem) ProfitLossTotal() float64 {
	return i.ProfitLossPerUnit() * float64(i.Qty)
}
