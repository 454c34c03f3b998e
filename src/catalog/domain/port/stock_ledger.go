package port

import (
	"context"

	"shop/src/catalog/domain/entity"
)

// DecrementRequest pide descontar qty unidades del stock de un producto
type DecrementRequest struct {
	ProductID string
	Quantity  int
}

// StockLedger define el contrato sobre el stock autoritativo.
// TryDecrement es atómico sobre el lote completo: o todas las líneas
// descuentan, o ninguna.
type StockLedger interface {
	// Get obtiene un producto por id. Retorna ErrProductNotFound si no existe.
	Get(ctx context.Context, productID string) (*entity.Product, error)

	// TryDecrement descuenta el stock de todas las líneas del lote de forma
	// atómica. Si alguna línea no alcanza, revierte las ya aplicadas y
	// retorna InsufficientStockError con el disponible de esa línea.
	// Dos descuentos concurrentes sobre la última unidad no pueden ganar ambos.
	TryDecrement(ctx context.Context, requests []DecrementRequest) error

	// Increment devuelve qty unidades al stock de un producto.
	// Es la primitiva de compensación del checkout.
	Increment(ctx context.Context, productID string, qty int) error
}
