package http

import (
	"fmt"
	"net/http"

	"github.com/oapi-codegen/runtime"
	"github.com/oapi-codegen/runtime/types"

	"github.com/shopnavy/pos/internal/apperr"
	"github.com/shopnavy/pos/internal/model"
	"github.com/shopnavy/pos/internal/service"
)

const historyDateLayout = "2006-01-02 15:04"

type historyLineResponse struct {
	Date            string  `json:"date"`
	SaleID          int64   `json:"sale_id"`
	Product         string  `json:"product"`
	Qty             int     `json:"qty"`
	CostPrice       float64 `json:"cost_price"`
	SellPrice       float64 `json:"sell_price"`
	DiscountPercent float64 `json:"discount_percent"`
	GSTPercent      float64 `json:"gst_percent"`
	LineTotal       float64 `json:"line_total"`
	Profit          float64 `json:"profit"`
}

type historySummaryResponse struct {
	TotalCost    float64 `json:"total_cost"`
	TotalRevenue float64 `json:"total_revenue"`
	TotalGST     float64 `json:"total_gst"`
	TotalProfit  float64 `json:"total_profit"`
}

type historyResponse struct {
	Sales   []historyLineResponse  `json:"sales"`
	Summary historySummaryResponse `json:"summary"`
}

func newHistoryResponse(h model.History) historyResponse {
	lines := make([]historyLineResponse, 0, len(h.Lines))
	for _, l := range h.Lines {
		lines = append(lines, historyLineResponse{
			Date:            l.Date.In(model.SaleZone).Format(historyDateLayout),
			SaleID:          l.SaleID,
			Product:         l.Product,
			Qty:             l.Qty,
			CostPrice:       l.CostPrice,
			SellPrice:       l.SellPrice,
			DiscountPercent: l.DiscountPercent,
			GSTPercent:      l.GSTPercent,
			LineTotal:       l.LineTotal,
			Profit:          l.Profit,
		})
	}

	return historyResponse{
		Sales: lines,
		Summary: historySummaryResponse{
			TotalCost:    h.Summary.TotalCost,
			TotalRevenue: h.Summary.TotalRevenue,
			TotalGST:     h.Summary.TotalGST,
			TotalProfit:  h.Summary.TotalProfit,
		},
	}
}

type historyHandler struct {
	*Service
	historySvc service.HistoryService
}

func (h *historyHandler) getHistory(w http.ResponseWriter, r *http.Request) error {
	var startDate, endDate types.Date
	if err := bindDateQuery(r, "start_date", &startDate); err != nil {
		return err
	}
	if err := bindDateQuery(r, "end_date", &endDate); err != nil {
		return err
	}

	history, err := h.historySvc.GetHistory(r.Context(), startDate.Time, endDate.Time)
	if err != nil {
		return fmt.Errorf("history service get history: %w", err)
	}

	h.writeJSON(w, r, http.StatusOK, newHistoryResponse(history))
	return nil
}

func (h *historyHandler) getAllHistory(w http.ResponseWriter, r *http.Request) error {
	history, err := h.historySvc.GetAllHistory(r.Context())
	if err != nil {
		return fmt.Errorf("history service get all history: %w", err)
	}

	h.writeJSON(w, r, http.StatusOK, newHistoryResponse(history))
	return nil
}

// bindDateQuery binds a required YYYY-MM-DD query parameter.
func bindDateQuery(r *http.Request, name string, dst *types.Date) error {
	if r.URL.Query().Get(name) == "" {
		return apperr.ValidationErr.WithMsgf("Missing required parameter %s", name)
	}
	if err := runtime.BindQueryParameter("form", false, true, name, r.URL.Query(), dst); err != nil {
		return apperr.ValidationErr.WithMsgf("Invalid format for parameter %s: %v", name, err).WrapParent(err)
	}
	return nil
}
