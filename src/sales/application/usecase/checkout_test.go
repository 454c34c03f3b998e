package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	cartentity "shop/src/cart/domain/entity"
	cartcache "shop/src/cart/infrastructure/cache"
	catalogentity "shop/src/catalog/domain/entity"
	catalogpersistence "shop/src/catalog/infrastructure/persistence"
	"shop/src/sales/application/request"
	"shop/src/sales/domain/entity"
	"shop/src/sales/domain/port"
	salespersistence "shop/src/sales/infrastructure/persistence"
	"shop/src/shared/infrastructure/metrics"
	sharedpersistence "shop/src/shared/infrastructure/persistence"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// flakySalesLog falla los primeros AppendWithID. Con writeThrough la
// escritura llega al log igual, simulando un ack perdido.
type flakySalesLog struct {
	inner        port.SalesLog
	failuresLeft int
	writeThrough bool
}

func (l *flakySalesLog) NextID() string { return l.inner.NextID() }

func (l *flakySalesLog) Append(ctx context.Context, record *entity.SaleRecord) (string, error) {
	return l.inner.Append(ctx, record)
}

func (l *flakySalesLog) AppendWithID(ctx context.Context, saleID string, record *entity.SaleRecord) error {
	if l.failuresLeft > 0 {
		l.failuresLeft--
		if l.writeThrough {
			_ = l.inner.AppendWithID(ctx, saleID, record)
		}
		return errors.New("transient store failure")
	}
	return l.inner.AppendWithID(ctx, saleID, record)
}

func (l *flakySalesLog) Get(ctx context.Context, saleID string) (*entity.SaleRecord, error) {
	return l.inner.Get(ctx, saleID)
}

func (l *flakySalesLog) Range(ctx context.Context, from, to time.Time, includeEnd bool) ([]port.SaleEntry, error) {
	return l.inner.Range(ctx, from, to, includeEnd)
}

type checkoutFixture struct {
	repo     *catalogpersistence.StoreProductRepository
	ledger   *catalogpersistence.StoreStockLedger
	salesLog *salespersistence.StoreSalesLog
	carts    *cartcache.SessionCartCache
	metrics  *metrics.SalesMetrics
	checkout *CheckoutCoordinator
}

func newCheckoutFixture(t *testing.T, wrapLog func(port.SalesLog) port.SalesLog) *checkoutFixture {
	t.Helper()

	store := sharedpersistence.NewMemoryStore()
	f := &checkoutFixture{
		repo:     catalogpersistence.NewStoreProductRepository(store),
		ledger:   catalogpersistence.NewStoreStockLedger(store),
		salesLog: salespersistence.NewStoreSalesLog(store),
		carts:    cartcache.NewSessionCartCache(),
		metrics:  metrics.NewSalesMetrics(prometheus.NewRegistry()),
	}

	var salesLog port.SalesLog = f.salesLog
	if wrapLog != nil {
		salesLog = wrapLog(f.salesLog)
	}
	f.checkout = NewCheckoutCoordinator(f.ledger, salesLog, f.carts, f.metrics)
	return f
}

func (f *checkoutFixture) seed(t *testing.T, name, price string, quantity int) string {
	t.Helper()

	product, err := catalogentity.NewProduct(name, decimal.RequireFromString(price), quantity, nil)
	require.NoError(t, err)

	id, err := f.repo.Create(context.Background(), product)
	require.NoError(t, err)
	return id
}

func (f *checkoutFixture) stock(t *testing.T, pid string) int {
	t.Helper()

	product, err := f.ledger.Get(context.Background(), pid)
	require.NoError(t, err)
	return product.Quantity
}

func (f *checkoutFixture) salesCount(t *testing.T) int {
	t.Helper()

	entries, err := f.salesLog.Range(context.Background(), time.Time{}, time.Now().Add(time.Hour), true)
	require.NoError(t, err)
	return len(entries)
}

func validCheckoutRequest() *request.CheckoutRequest {
	return &request.CheckoutRequest{
		Customer: &request.CustomerRequest{
			Name:    "Ana López",
			Phone:   "555-0101",
			Address: "Av. Siempre Viva 742",
		},
	}
}

func TestCheckoutCoordinator(t *testing.T) {
	ctx := context.Background()

	t.Run("CommitsSaleAndDecrementsStock", func(t *testing.T) {
		f := newCheckoutFixture(t, nil)
		pid := f.seed(t, "Yerba", "10.50", 5)

		cart := cartentity.NewCart().With(pid, 2)
		f.carts.Put("sess-1", cart)

		resp, err := f.checkout.Execute(ctx, "sess-1", cart, validCheckoutRequest())
		require.NoError(t, err)
		require.NotEmpty(t, resp.SaleID)
		require.True(t, resp.Total.Equal(decimal.RequireFromString("21.00")))
		require.Equal(t, "online", resp.PaymentMethod)

		require.Equal(t, 3, f.stock(t, pid))

		// El carrito de la sesión se descarta recién al comprometer
		require.True(t, f.carts.Get("sess-1").Empty())

		record, err := f.salesLog.Get(ctx, resp.SaleID)
		require.NoError(t, err)
		require.Equal(t, 2, record.Items[pid])
		require.Equal(t, "Ana López", record.Customer.Name)
		require.Equal(t, "Online Store", record.Cashier)

		require.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CheckoutsCommitted))
	})

	t.Run("EmptyCartRejected", func(t *testing.T) {
		f := newCheckoutFixture(t, nil)

		_, err := f.checkout.Execute(ctx, "sess-1", cartentity.NewCart(), validCheckoutRequest())
		require.ErrorIs(t, err, entity.ErrEmptyCheckout)
	})

	t.Run("IncompleteCustomerRejected", func(t *testing.T) {
		f := newCheckoutFixture(t, nil)
		pid := f.seed(t, "Azúcar", "2.00", 5)

		req := validCheckoutRequest()
		req.Customer.Phone = ""

		cart := cartentity.NewCart().With(pid, 1)
		_, err := f.checkout.Execute(ctx, "sess-1", cart, req)
		require.ErrorIs(t, err, entity.ErrCustomerDetailsRequired)
		require.Equal(t, 5, f.stock(t, pid))
	})

	t.Run("MissingCustomerRejected", func(t *testing.T) {
		f := newCheckoutFixture(t, nil)
		pid := f.seed(t, "Sal", "0.90", 5)

		cart := cartentity.NewCart().With(pid, 1)
		_, err := f.checkout.Execute(ctx, "sess-1", cart, &request.CheckoutRequest{})
		require.ErrorIs(t, err, entity.ErrCustomerDetailsRequired)
		require.Equal(t, 5, f.stock(t, pid))
	})

	t.Run("InsufficientStockLeavesEverythingIntact", func(t *testing.T) {
		f := newCheckoutFixture(t, nil)
		pid := f.seed(t, "Harina", "1.20", 5)

		cart := cartentity.NewCart().With(pid, 10)
		f.carts.Put("sess-1", cart)

		_, err := f.checkout.Execute(ctx, "sess-1", cart, validCheckoutRequest())
		ise, ok := catalogentity.AsInsufficientStock(err)
		require.True(t, ok)
		require.Equal(t, 5, ise.Available)

		require.Equal(t, 5, f.stock(t, pid))
		require.Equal(t, 10, f.carts.Get("sess-1").Quantity(pid))
		require.Equal(t, 0, f.salesCount(t))
		require.Equal(t, 1.0, testutil.ToFloat64(f.metrics.StockRejections))
	})

	t.Run("TotalComesFromCatalogPrices", func(t *testing.T) {
		f := newCheckoutFixture(t, nil)
		p1 := f.seed(t, "Aceite", "8.00", 5)
		p2 := f.seed(t, "Fideos", "1.50", 5)

		cart := cartentity.NewCart().With(p1, 2).With(p2, 3)
		f.carts.Put("sess-1", cart)

		resp, err := f.checkout.Execute(ctx, "sess-1", cart, validCheckoutRequest())
		require.NoError(t, err)
		require.True(t, resp.Total.Equal(decimal.RequireFromString("20.50")))
	})

	t.Run("OnlineChannelRecordedAsPaymentMethod", func(t *testing.T) {
		f := newCheckoutFixture(t, nil)
		pid := f.seed(t, "Arroz", "1.80", 5)

		cart := cartentity.NewCart().With(pid, 1)
		resp, err := f.checkout.Execute(ctx, "sess-1", cart, validCheckoutRequest())
		require.NoError(t, err)
		require.Equal(t, "online", resp.PaymentMethod)

		record, err := f.salesLog.Get(ctx, resp.SaleID)
		require.NoError(t, err)
		require.Equal(t, "online", record.PaymentMethod)
	})

	t.Run("AppendFailureCompensatesStock", func(t *testing.T) {
		f := newCheckoutFixture(t, func(inner port.SalesLog) port.SalesLog {
			return &flakySalesLog{inner: inner, failuresLeft: maxAppendRetries}
		})
		pid := f.seed(t, "Leche", "1.10", 5)

		cart := cartentity.NewCart().With(pid, 3)
		f.carts.Put("sess-1", cart)

		_, err := f.checkout.Execute(ctx, "sess-1", cart, validCheckoutRequest())
		require.Error(t, err)

		// Stock compensado, venta no registrada, carrito intacto
		require.Equal(t, 5, f.stock(t, pid))
		require.Equal(t, 0, f.salesCount(t))
		require.Equal(t, 3, f.carts.Get("sess-1").Quantity(pid))
		require.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Compensations))
	})

	t.Run("RetryAfterLostAckDoesNotDoubleAppend", func(t *testing.T) {
		f := newCheckoutFixture(t, func(inner port.SalesLog) port.SalesLog {
			return &flakySalesLog{inner: inner, failuresLeft: 1, writeThrough: true}
		})
		pid := f.seed(t, "Café", "5.00", 5)

		cart := cartentity.NewCart().With(pid, 1)
		f.carts.Put("sess-1", cart)

		resp, err := f.checkout.Execute(ctx, "sess-1", cart, validCheckoutRequest())
		require.NoError(t, err)

		require.Equal(t, 1, f.salesCount(t))
		require.Equal(t, 4, f.stock(t, pid))

		record, err := f.salesLog.Get(ctx, resp.SaleID)
		require.NoError(t, err)
		require.Equal(t, 1, record.Items[pid])
	})
}

func TestInStoreSaleUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("CommitsWithoutCart", func(t *testing.T) {
		f := newCheckoutFixture(t, nil)
		pid := f.seed(t, "Pan", "0.80", 10)

		inStore := NewInStoreSaleUseCase(f.checkout)
		resp, err := inStore.Execute(ctx, &request.InStoreSaleRequest{
			Items:         map[string]int{pid: 4},
			PaymentMethod: "cash",
		})
		require.NoError(t, err)
		require.True(t, resp.Total.Equal(decimal.RequireFromString("3.20")))
		require.Equal(t, 6, f.stock(t, pid))

		record, err := f.salesLog.Get(ctx, resp.SaleID)
		require.NoError(t, err)
		require.Equal(t, "In-store", record.Cashier)
		require.Nil(t, record.Customer)
	})

	t.Run("DefaultPaymentMethodIsCash", func(t *testing.T) {
		f := newCheckoutFixture(t, nil)
		pid := f.seed(t, "Arroz", "1.80", 5)

		inStore := NewInStoreSaleUseCase(f.checkout)
		resp, err := inStore.Execute(ctx, &request.InStoreSaleRequest{
			Items: map[string]int{pid: 1},
		})
		require.NoError(t, err)
		require.Equal(t, "cash", resp.PaymentMethod)
	})

	t.Run("EmptyItemsRejected", func(t *testing.T) {
		f := newCheckoutFixture(t, nil)
		inStore := NewInStoreSaleUseCase(f.checkout)

		_, err := inStore.Execute(ctx, &request.InStoreSaleRequest{Items: map[string]int{}})
		require.ErrorIs(t, err, entity.ErrEmptyCheckout)
	})

	t.Run("NonPositiveQuantityRejected", func(t *testing.T) {
		f := newCheckoutFixture(t, nil)
		pid := f.seed(t, "Queso", "4.50", 5)

		inStore := NewInStoreSaleUseCase(f.checkout)
		_, err := inStore.Execute(ctx, &request.InStoreSaleRequest{Items: map[string]int{pid: 0}})
		require.ErrorIs(t, err, entity.ErrSaleMustHaveItems)
		require.Equal(t, 5, f.stock(t, pid))
	})
}
