package model

// DefaultGSTPercent applies when a product is created without a GST rate.
const DefaultGSTPercent = 5.0

type Product struct {
	ID         int64   `json:"id"`
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	CostPrice  float64 `json:"cost_price"`
	SellPrice  float64 `json:"sell_price"`
	GSTPercent float64 `json:"gst_percent"`
	Stock      int     `json:"stock"`
}

// ProductListing is a product with the profit it would make if the whole stock sold
// at the catalog price.
type ProductListing struct {
	Product
	ProfitLossPerUnit float64 `json:"profit_loss_per_unit"`
	ProfitLossTotal   float64 `json:"profit_loss_total"`
}

func NewProductListing(p Product) ProductListing {
	perUnit := p.SellPrice - p.CostPrice
	return ProductListing{
		Product:           p,
		ProfitLossPerUnit: perUnit,
		ProfitLossTotal:   perUnit * float64(p.Stock),
	}
}
