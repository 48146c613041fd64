package validator_test

import (
	"testing"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopnavy/pos/pkg/validator"
)

type item struct {
	Code string `json:"product_code" validate:"notblank"`
	Qty  int    `json:"qty" validate:"gt=0"`
}

func TestDefaultValidator(t *testing.T) {
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	t.Run("Should accept a valid struct", func(t *testing.T) {
		assert.NoError(t, v.Validate(item{Code: "A1", Qty: 1}))
	})

	t.Run("Should report json field names", func(t *testing.T) {
		err := v.Validate(item{Code: "  ", Qty: 0})

		var errs govalidator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		require.Len(t, errs, 2)
		assert.Equal(t, "product_code", errs[0].Field())
		assert.Equal(t, "field is required", validator.ValidationErrorMessage(errs[0]))
		assert.Equal(t, "qty", errs[1].Field())
		assert.Equal(t, "must be greater than 0", validator.ValidationErrorMessage(errs[1]))
	})

	t.Run("Should dive into slices", func(t *testing.T) {
		err := v.Validate([]item{{Code: "A1", Qty: 1}, {Code: "B2", Qty: -1}})

		var errs govalidator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Len(t, errs, 1)

		items := []item{{Code: "", Qty: 1}}
		require.ErrorAs(t, v.Validate(&items), &errs)
		assert.Len(t, errs, 1)
	})
}
