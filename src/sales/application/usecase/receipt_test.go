package usecase

import (
	"context"
	"testing"

	cartentity "shop/src/cart/domain/entity"
	"shop/src/sales/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestGetReceiptUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("ResolvesLinesAgainstCatalog", func(t *testing.T) {
		f := newCheckoutFixture(t, nil)
		pid := f.seed(t, "Yerba", "10.50", 5)

		cart := cartentity.NewCart().With(pid, 2)
		f.carts.Put("sess-1", cart)
		resp, err := f.checkout.Execute(ctx, "sess-1", cart, validCheckoutRequest())
		require.NoError(t, err)

		receipt := NewGetReceiptUseCase(f.salesLog, f.ledger)
		got, err := receipt.Execute(ctx, resp.SaleID)
		require.NoError(t, err)

		require.Equal(t, resp.SaleID, got.SaleID)
		require.Len(t, got.Items, 1)
		require.Equal(t, "Yerba", got.Items[0].Name)
		require.True(t, got.StoredTotal.Equal(decimal.RequireFromString("21.00")))
		require.True(t, got.CalculatedTotal.Equal(got.StoredTotal))
		require.Equal(t, "Ana López", got.CustomerName)
	})

	t.Run("DeletedProductGetsPlaceholderAndStoredTotalWins", func(t *testing.T) {
		f := newCheckoutFixture(t, nil)
		pid := f.seed(t, "Café", "5.00", 5)

		cart := cartentity.NewCart().With(pid, 2)
		f.carts.Put("sess-1", cart)
		resp, err := f.checkout.Execute(ctx, "sess-1", cart, validCheckoutRequest())
		require.NoError(t, err)

		require.NoError(t, f.repo.Delete(ctx, pid))

		receipt := NewGetReceiptUseCase(f.salesLog, f.ledger)
		got, err := receipt.Execute(ctx, resp.SaleID)
		require.NoError(t, err)

		require.Equal(t, "[Deleted Product "+pid+"]", got.Items[0].Name)
		require.True(t, got.Items[0].UnitPrice.IsZero())
		require.True(t, got.CalculatedTotal.IsZero())
		// El total cobrado sigue siendo el registrado en la venta
		require.True(t, got.StoredTotal.Equal(decimal.RequireFromString("10.00")))
	})

	t.Run("UnknownSaleRejected", func(t *testing.T) {
		f := newCheckoutFixture(t, nil)

		receipt := NewGetReceiptUseCase(f.salesLog, f.ledger)
		_, err := receipt.Execute(ctx, "missing")
		require.ErrorIs(t, err, entity.ErrSaleNotFound)
	})
}
