package zerror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopnavy/pos/pkg/zerror"
)

func TestZError(t *testing.T) {
	notFound := zerror.NewNotFound("PRODUCT_NOT_FOUND", "product not found")

	t.Run("Should match predefined error after message override", func(t *testing.T) {
		err := fmt.Errorf("service: %w", notFound.WithMsgf("Product %s not found", "A1"))

		assert.ErrorIs(t, err, notFound)

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, "Product A1 not found", zErr.Msg())
		assert.Equal(t, zerror.StatusNotFound, zErr.Status())
	})

	t.Run("Should unwrap to parent", func(t *testing.T) {
		parent := errors.New("no rows")
		err := notFound.WrapParent(parent)

		assert.ErrorIs(t, err, parent)
		assert.Contains(t, err.Error(), "Parent=(no rows)")
	})

	t.Run("Should not match a different code", func(t *testing.T) {
		other := zerror.NewBadRequest("INSUFFICIENT_STOCK", "not enough stock")
		assert.NotErrorIs(t, other, notFound)
	})
}
