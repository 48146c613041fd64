package apierr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopnavy/pos/internal/apperr"
	"github.com/shopnavy/pos/internal/http/apierr"
	"github.com/shopnavy/pos/pkg/validator"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "duplicate code keeps 400",
			err:        fmt.Errorf("create: %w", apperr.ProductCodeExistsErr.WrapParent(errors.New("23505"))),
			wantStatus: http.StatusBadRequest,
			wantCode:   "PRODUCT_CODE_EXISTS",
			wantMsg:    "Product code already exists",
		},
		{
			name:       "not found",
			err:        apperr.ProductNotFoundErr.WithMsgf("Product %s not found", "A1"),
			wantStatus: http.StatusNotFound,
			wantCode:   "PRODUCT_NOT_FOUND",
			wantMsg:    "Product A1 not found",
		},
		{
			name:       "insufficient stock",
			err:        apperr.InsufficientStockErr,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INSUFFICIENT_STOCK",
			wantMsg:    "Not enough stock",
		},
		{
			name:       "rate limited",
			err:        apperr.TooManyRequestsErr,
			wantStatus: http.StatusTooManyRequests,
			wantCode:   "TOO_MANY_REQUESTS",
			wantMsg:    "too many requests",
		},
		{
			name:       "unknown error",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internalServerError",
			wantMsg:    "an unknown error occurred",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := apierr.New(tc.err)
			assert.Equal(t, tc.wantStatus, res.StatusCode)
			assert.Equal(t, tc.wantCode, res.Code)
			assert.Equal(t, tc.wantMsg, res.Message)
			assert.Nil(t, res.Details)
		})
	}
}

func TestNewValidationErrors(t *testing.T) {
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	type body struct {
		Code string `json:"code" validate:"notblank"`
		Qty  int    `json:"qty" validate:"gte=1"`
	}

	verr := v.Validate(body{Code: " ", Qty: 0})
	var fieldErrs govalidator.ValidationErrors
	require.ErrorAs(t, verr, &fieldErrs)

	res := apierr.New(apperr.ValidationErr.WrapParent(verr))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", res.Code)
	require.NotNil(t, res.Details)
	assert.Equal(t, []apierr.FieldError{
		{Field: "code", Message: "field is required"},
		{Field: "qty", Message: "must be greater than or equal to 1"},
	}, *res.Details)
}
