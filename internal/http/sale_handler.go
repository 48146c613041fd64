package http

import (
	"fmt"
	"net/http"

	"github.com/shopnavy/pos/internal/apperr"
	"github.com/shopnavy/pos/internal/model"
	"github.com/shopnavy/pos/internal/service"
)

type createSaleItemRequest struct {
	ProductCode     string   `json:"product_code" validate:"notblank"`
	Qty             int      `json:"qty" validate:"gte=1,lte=2147483647"`
	UnitPrice       *float64 `json:"unit_price" validate:"omitempty,gte=0"`
	DiscountPercent float64  `json:"discount_percent" validate:"gte=0,lte=100"`
}

type saleItemResponse struct {
	ProductCode       string  `json:"product_code"`
	ProductName       string  `json:"product_name"`
	Qty               int     `json:"qty"`
	UnitPrice         float64 `json:"unit_price"`
	DiscountPercent   float64 `json:"discount_percent"`
	GSTPercent        float64 `json:"gst_percent"`
	LineTotal         float64 `json:"line_total"`
	CostPrice         float64 `json:"cost_price"`
	ProfitLossPerUnit float64 `json:"profit_loss_per_unit"`
	ProfitLossTotal   float64 `json:"profit_loss_total"`
}

type saleResponse struct {
	SaleID        int64              `json:"sale_id"`
	Subtotal      float64            `json:"subtotal"`
	DiscountTotal float64            `json:"discount_total"`
	TotalGST      float64            `json:"total_gst"`
	GrandTotal    float64            `json:"grand_total"`
	Items         []saleItemResponse `json:"items"`
}

func newSaleResponse(sale model.Sale) saleResponse {
	items := make([]saleItemResponse, 0, len(sale.Items))
	for _, it := range sale.Items {
		items = append(items, saleItemResponse{
			ProductCode:       it.ProductCode,
			ProductName:       it.ProductName,
			Qty:               it.Qty,
			UnitPrice:         it.UnitPrice,
			DiscountPercent:   it.DiscountPercent,
			GSTPercent:        it.GSTPercent,
			LineTotal:         it.LineTotal,
			CostPrice:         it.CostPrice,
			ProfitLossPerUnit: it.ProfitLossPerUnit(),
			ProfitLossTotal:   it.ProfitLossTotal(),
		})
	}

	return saleResponse{
		SaleID:        sale.ID,
		Subtotal:      sale.Subtotal,
		DiscountTotal: sale.DiscountTotal,
		TotalGST:      sale.TotalGST,
		GrandTotal:    sale.GrandTotal,
		Items:         items,
	}
}

type saleHandler struct {
	*Service
	saleSvc service.SaleService
}

func (h *saleHandler) createSale(w http.ResponseWriter, r *http.Request) error {
	var req []createSaleItemRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		return err
	}
	if len(req) == 0 {
		return apperr.ValidationErr.WithMsgf("at least one sale item is required")
	}

	items := make([]service.CreateSaleItemParams, 0, len(req))
	for _, it := range req {
		items = append(items, service.CreateSaleItemParams{
			ProductCode:     it.ProductCode,
			Qty:             it.Qty,
			UnitPrice:       it.UnitPrice,
			DiscountPercent: it.DiscountPercent,
		})
	}

	sale, err := h.saleSvc.CreateSale(r.Context(), items)
	if err != nil {
		return fmt.Errorf("sale service create sale: %w", err)
	}

	h.writeJSON(w, r, http.StatusOK, newSaleResponse(sale))
	return nil
}
