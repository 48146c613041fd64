package apperr

import "github.com/shopnavy/pos/pkg/zerror"

const (
	ValidationErrorCode   = "VALIDATION_FAILED"
	ProductCodeExistsCode = "PRODUCT_CODE_EXISTS"
	ProductNotFoundCode   = "PRODUCT_NOT_FOUND"
	InsufficientStockCode = "INSUFFICIENT_STOCK"
	TooManyRequestsCode   = "TOO_MANY_REQUESTS"
	DatabaseDownCode      = "DATABASE_UNAVAILABLE"
)

var (
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "validation error")

	// ProductCodeExistsErr is a conflict, reported as 400 to keep the established API.
	ProductCodeExistsErr = zerror.NewBadRequest(ProductCodeExistsCode, "Product code already exists")
	ProductNotFoundErr   = zerror.NewNotFound(ProductNotFoundCode, "Product not found")
	InsufficientStockErr = zerror.NewBadRequest(InsufficientStockCode, "Not enough stock")

	TooManyRequestsErr = zerror.NewTooManyRequests(TooManyRequestsCode, "too many requests")
	DatabaseDownErr    = zerror.NewServiceUnavailable(DatabaseDownCode, "database unavailable")
)
