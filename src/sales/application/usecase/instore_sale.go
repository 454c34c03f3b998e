package usecase

import (
	"context"
	"log"

	"shop/src/sales/application/request"
	"shop/src/sales/application/response"
	"shop/src/sales/domain/entity"
)

// InStoreSaleUseCase caso de uso para venta directa de mostrador.
// No pasa por el carrito: las líneas llegan en el request y el flujo
// transaccional es el mismo del checkout (descuento atómico, registro
// idempotente y compensación).
type InStoreSaleUseCase struct {
	coordinator *CheckoutCoordinator
}

// NewInStoreSaleUseCase crea una nueva instancia del caso de uso
func NewInStoreSaleUseCase(coordinator *CheckoutCoordinator) *InStoreSaleUseCase {
	return &InStoreSaleUseCase{coordinator: coordinator}
}

// Execute compromete una venta de mostrador multi-item
func (uc *InStoreSaleUseCase) Execute(ctx context.Context, req *request.InStoreSaleRequest) (*response.CheckoutResponse, error) {
	log.Printf("🏪 In-store sale - Items: %d", len(req.Items))

	if len(req.Items) == 0 {
		return nil, entity.ErrEmptyCheckout
	}
	for _, qty := range req.Items {
		if qty <= 0 {
			return nil, entity.ErrSaleMustHaveItems
		}
	}

	// Venta de mostrador: sin datos de cliente, cajero fijo
	record, err := uc.coordinator.commit(ctx, req.Items, req.PaymentMethod, "In-store", nil)
	if err != nil {
		return nil, err
	}

	return buildCheckoutResponse(record), nil
}
