package model

import "time"

// HistoryLine is one sale item flattened together with its sale.
type HistoryLine struct {
	Date            time.Time
	SaleID          int64
	Product         string
	Qty             int
	CostPrice       float64
	SellPrice       float64
	DiscountPercent float64
	GSTPercent      float64
	LineTotal       float64
	Profit          float64
}

type HistorySummary struct {
	TotalCost    float64
	TotalRevenue float64
	TotalGST     float64
	TotalProfit  float64
}

type History struct {
	Lines   []HistoryLine
	Summary HistorySummary
}
