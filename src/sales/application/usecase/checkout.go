package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	cartentity "shop/src/cart/domain/entity"
	catalogentity "shop/src/catalog/domain/entity"
	catalogport "shop/src/catalog/domain/port"
	"shop/src/sales/application/request"
	"shop/src/sales/application/response"
	"shop/src/sales/domain/entity"
	"shop/src/sales/domain/port"
	"shop/src/shared/infrastructure/metrics"

	"github.com/shopspring/decimal"
)

// maxAppendRetries reintentos de registro de la venta antes de compensar
// el stock ya descontado. El append es idempotente sobre el sale_id, así
// que reintentar nunca duplica la venta.
const maxAppendRetries = 3

// CheckoutCoordinator caso de uso para comprometer un carrito como venta.
// Flujo transaccional con compensación:
// 1. Validar carrito y datos del cliente
// 2. Resolver precios autoritativos contra el catálogo
// 3. Reservar sale_id ANTES de tocar stock
// 4. Descontar stock atómico (todo o nada)
// 5. Registrar la venta con reintentos idempotentes
// 6. Si el registro falla → compensar todo el stock descontado
type CheckoutCoordinator struct {
	ledger  catalogport.StockLedger
	sales   port.SalesLog
	carts   port.CartCleaner
	metrics *metrics.SalesMetrics
}

// NewCheckoutCoordinator crea una nueva instancia del caso de uso
func NewCheckoutCoordinator(
	ledger catalogport.StockLedger,
	sales port.SalesLog,
	carts port.CartCleaner,
	m *metrics.SalesMetrics,
) *CheckoutCoordinator {
	return &CheckoutCoordinator{
		ledger:  ledger,
		sales:   sales,
		carts:   carts,
		metrics: m,
	}
}

// Execute compromete el carrito de la sesión como una venta online
func (uc *CheckoutCoordinator) Execute(
	ctx context.Context,
	sessionID string,
	cart cartentity.Cart,
	req *request.CheckoutRequest,
) (*response.CheckoutResponse, error) {
	log.Printf("🛒 Checkout - Session: %s, Lines: %d", sessionID, len(cart))

	// ========================================================================
	// PASO 1: VALIDACIONES
	// ========================================================================
	if cart.Empty() {
		return nil, entity.ErrEmptyCheckout
	}

	// El checkout online exige los datos del cliente completos
	if req.Customer == nil {
		return nil, entity.ErrCustomerDetailsRequired
	}
	customer, err := entity.NewCustomer(req.Customer.Name, req.Customer.Phone, req.Customer.Address)
	if err != nil {
		return nil, err
	}

	// La venta online registra siempre su canal como medio de pago
	record, err := uc.commit(ctx, cart.Lines(), "online", "Online Store", customer)
	if err != nil {
		return nil, err
	}

	// ========================================================================
	// PASO FINAL: LIMPIAR CARRITO
	// El carrito solo se vacía cuando la venta quedó comprometida. Un
	// rechazo por stock deja el carrito intacto para que el cliente ajuste.
	// ========================================================================
	uc.carts.Delete(sessionID)

	return buildCheckoutResponse(record), nil
}

// commit ejecuta el núcleo transaccional: reservar id, descontar stock,
// registrar la venta y compensar si el registro falla.
func (uc *CheckoutCoordinator) commit(
	ctx context.Context,
	items map[string]int,
	paymentMethod string,
	cashier string,
	customer *entity.Customer,
) (*entity.SaleRecord, error) {
	// ========================================================================
	// PASO 2: RESOLVER PRECIOS AUTORITATIVOS
	// El total se calcula con los precios actuales del catálogo, nunca
	// con precios que el cliente haya visto antes.
	// ========================================================================
	total := decimal.Zero
	for pid, qty := range items {
		product, err := uc.ledger.Get(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("error resolving product %s: %w", pid, err)
		}
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(qty))))
	}

	// ========================================================================
	// PASO 3: RESERVAR SALE ID
	// El id se fija antes de descontar stock para que el registro sea
	// idempotente: un reintento escribe sobre el mismo path.
	// ========================================================================
	saleID := uc.sales.NextID()

	// ========================================================================
	// PASO 4: DESCONTAR STOCK ATÓMICO
	// ========================================================================
	batch := make([]catalogport.DecrementRequest, 0, len(items))
	for pid, qty := range items {
		batch = append(batch, catalogport.DecrementRequest{ProductID: pid, Quantity: qty})
	}

	if err := uc.ledger.TryDecrement(ctx, batch); err != nil {
		if ins, ok := catalogentity.AsInsufficientStock(err); ok {
			log.Printf("❌ Stock rejected for product %s: available=%d", ins.ProductID, ins.Available)
			uc.metrics.StockRejections.Inc()
		}
		return nil, err
	}

	record, err := entity.NewSaleRecord(time.Now().UTC(), items, total, paymentMethod, cashier, customer)
	if err != nil {
		// Stock ya descontado con una venta inválida: revertir
		uc.compensate(ctx, items, "invalid_sale_record")
		return nil, err
	}

	// ========================================================================
	// PASO 5: REGISTRAR LA VENTA CON REINTENTOS
	// ========================================================================
	var appendErr error
	for attempt := 1; attempt <= maxAppendRetries; attempt++ {
		appendErr = uc.sales.AppendWithID(ctx, saleID, record)
		if appendErr == nil {
			break
		}
		log.Printf("⚠️  Append attempt %d/%d failed for sale %s: %v", attempt, maxAppendRetries, saleID, appendErr)
	}

	if appendErr != nil {
		// CRÍTICO: stock descontado pero la venta no quedó registrada
		log.Printf("⚠️ CRITICAL: Stock consumed but sale %s could not be recorded: %v", saleID, appendErr)
		uc.compensate(ctx, items, "sale_persistence_failed")
		return nil, fmt.Errorf("error recording sale %s (stock compensated): %w", saleID, appendErr)
	}

	record.ID = saleID
	uc.metrics.CheckoutsCommitted.Inc()
	log.Printf("✅ Sale committed: ID=%s, Items=%d, Total=%s", saleID, len(items), total)

	return record, nil
}

// compensate revierte todos los descuentos de stock de la venta fallida
func (uc *CheckoutCoordinator) compensate(ctx context.Context, items map[string]int, reason string) {
	log.Printf("🔄 Compensating stock for %d products. Reason: %s", len(items), reason)
	uc.metrics.Compensations.Inc()

	for pid, qty := range items {
		if err := uc.ledger.Increment(ctx, pid, qty); err != nil {
			// Si falla la compensación, log para auditoría manual.
			// No detener el flujo: el resto de las líneas aún puede revertirse.
			log.Printf("❌ CRITICAL ERROR: Failed to compensate %d units of %s: %v", qty, pid, err)
		} else {
			log.Printf("✅ Compensated %d units of %s", qty, pid)
		}
	}
}

func buildCheckoutResponse(record *entity.SaleRecord) *response.CheckoutResponse {
	return &response.CheckoutResponse{
		SaleID:        record.ID,
		Timestamp:     record.Timestamp,
		Total:         record.Total,
		PaymentMethod: record.PaymentMethod,
		ItemCount:     len(record.Items),
	}
}
