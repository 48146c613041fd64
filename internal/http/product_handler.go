package http

import (
	"fmt"
	"net/http"

	"github.com/shopnavy/pos/internal/model"
	"github.com/shopnavy/pos/internal/service"
	"github.com/shopnavy/pos/pkg/ptr"
)

type saveProductRequest struct {
	Code       string   `json:"code" validate:"notblank"`
	Name       string   `json:"name" validate:"notblank"`
	CostPrice  *float64 `json:"cost_price" validate:"required,gte=0"`
	SellPrice  *float64 `json:"sell_price" validate:"required,gte=0"`
	GSTPercent *float64 `json:"gst_percent" validate:"omitempty,gte=0"`
	Stock      *int     `json:"stock" validate:"required,gte=0,lte=2147483647"`
}

func (req saveProductRequest) toParams() service.SaveProductParams {
	return service.SaveProductParams{
		Code:       req.Code,
		Name:       req.Name,
		CostPrice:  ptr.ValueOr(req.CostPrice, 0),
		SellPrice:  ptr.ValueOr(req.SellPrice, 0),
		GSTPercent: ptr.ValueOr(req.GSTPercent, model.DefaultGSTPercent),
		Stock:      ptr.ValueOr(req.Stock, 0),
	}
}

type deleteProductResponse struct {
	Message string `json:"message"`
}

type productHandler struct {
	*Service
	productSvc service.ProductService
}

func (h *productHandler) listProducts(w http.ResponseWriter, r *http.Request) error {
	products, err := h.productSvc.ListProducts(r.Context())
	if err != nil {
		return fmt.Errorf("product service list products: %w", err)
	}

	h.writeJSON(w, r, http.StatusOK, products)
	return nil
}

func (h *productHandler) createProduct(w http.ResponseWriter, r *http.Request) error {
	var req saveProductRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		return err
	}

	product, err := h.productSvc.CreateProduct(r.Context(), req.toParams())
	if err != nil {
		return fmt.Errorf("product service create product: %w", err)
	}

	h.writeJSON(w, r, http.StatusOK, product)
	return nil
}

func (h *productHandler) updateProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	var req saveProductRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		return err
	}

	product, err := h.productSvc.UpdateProduct(r.Context(), id, req.toParams())
	if err != nil {
		return fmt.Errorf("product service update product: %w", err)
	}

	h.writeJSON(w, r, http.StatusOK, product)
	return nil
}

func (h *productHandler) deleteProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	if err := h.productSvc.DeleteProduct(r.Context(), id); err != nil {
		return fmt.Errorf("product service delete product: %w", err)
	}

	h.writeJSON(w, r, http.StatusOK, deleteProductResponse{Message: "Product deleted successfully"})
	return nil
}
