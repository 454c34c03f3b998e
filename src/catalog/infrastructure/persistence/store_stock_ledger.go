package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"shop/src/catalog/domain/entity"
	"shop/src/catalog/domain/port"
	sharedport "shop/src/shared/domain/port"
)

const productsCollection = "products"

// maxCASRetries acota el loop optimista ante conflictos de versión.
// Un descuento que agota los reintentos se reporta como falla del store.
const maxCASRetries = 16

// StoreStockLedger implementa StockLedger sobre el store clave-valor.
// Cada descuento es un compare-and-set por producto: leer cantidad y
// versión, validar, escribir cantidad − pedida solo si la versión no
// cambió. Dos descuentos concurrentes sobre el mismo producto nunca
// pueden pasar ambos por debajo de cero.
type StoreStockLedger struct {
	store sharedport.Store
}

// NewStoreStockLedger crea una nueva instancia del ledger
func NewStoreStockLedger(store sharedport.Store) *StoreStockLedger {
	return &StoreStockLedger{
		store: store,
	}
}

func productPath(productID string) string {
	return productsCollection + "/" + productID
}

// readProduct lee y decodifica un producto junto con su versión
func (l *StoreStockLedger) readProduct(ctx context.Context, productID string) (*entity.Product, string, error) {
	data, version, err := l.store.Read(ctx, productPath(productID))
	if err == sharedport.ErrAbsent {
		return nil, "", fmt.Errorf("product %s: %w", productID, entity.ErrProductNotFound)
	}
	if err != nil {
		return nil, "", fmt.Errorf("reading product %s: %w", productID, err)
	}

	var product entity.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, "", fmt.Errorf("%w: corrupt product %s: %v", sharedport.ErrStoreFailure, productID, err)
	}
	product.ID = productID
	return &product, version, nil
}

// Get obtiene un producto por id
func (l *StoreStockLedger) Get(ctx context.Context, productID string) (*entity.Product, error) {
	product, _, err := l.readProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return product, nil
}

// TryDecrement descuenta el lote completo o nada.
// Las líneas repetidas del mismo producto se consolidan antes de aplicar.
func (l *StoreStockLedger) TryDecrement(ctx context.Context, requests []port.DecrementRequest) error {
	merged, err := coalesce(requests)
	if err != nil {
		return err
	}

	applied := make([]port.DecrementRequest, 0, len(merged))
	for _, req := range merged {
		if err := l.adjust(ctx, req.ProductID, -req.Quantity); err != nil {
			l.rollback(ctx, applied)
			return err
		}
		applied = append(applied, req)
	}
	return nil
}

// Increment devuelve unidades al stock (compensación)
func (l *StoreStockLedger) Increment(ctx context.Context, productID string, qty int) error {
	if qty <= 0 {
		return entity.ErrInvalidQuantity
	}
	return l.adjust(ctx, productID, qty)
}

// adjust aplica un delta sobre el stock de un producto con un loop
// optimista de compare-and-set sobre la versión.
func (l *StoreStockLedger) adjust(ctx context.Context, productID string, delta int) error {
	for attempt := 0; attempt < maxCASRetries; attempt++ {
		product, version, err := l.readProduct(ctx, productID)
		if err != nil {
			return err
		}

		next := product.Quantity + delta
		if next < 0 {
			return &entity.InsufficientStockError{
				ProductID: productID,
				Available: product.Quantity,
			}
		}

		product.Quantity = next
		ok, err := l.store.WriteIfVersion(ctx, productPath(productID), product, version)
		if err != nil {
			return fmt.Errorf("writing product %s: %w", productID, err)
		}
		if ok {
			return nil
		}
		// Conflicto de versión: otro descuento ganó, releer y reintentar
	}

	return fmt.Errorf("%w: too many version conflicts on product %s", sharedport.ErrStoreFailure, productID)
}

// rollback revierte las líneas ya descontadas de un lote fallido
func (l *StoreStockLedger) rollback(ctx context.Context, applied []port.DecrementRequest) {
	for _, req := range applied {
		if err := l.adjust(ctx, req.ProductID, req.Quantity); err != nil {
			// CRÍTICO: si falla la reversión queda stock perdido; log para
			// auditoría manual, no se detiene el resto de la compensación
			log.Printf("❌ CRITICAL: failed to restore %d units of product %s: %v", req.Quantity, req.ProductID, err)
		}
	}
}

// coalesce consolida líneas repetidas y valida cantidades positivas
func coalesce(requests []port.DecrementRequest) ([]port.DecrementRequest, error) {
	byProduct := make(map[string]int, len(requests))
	order := make([]string, 0, len(requests))

	for _, req := range requests {
		if req.Quantity <= 0 {
			return nil, fmt.Errorf("product %s: %w", req.ProductID, entity.ErrInvalidQuantity)
		}
		if _, ok := byProduct[req.ProductID]; !ok {
			order = append(order, req.ProductID)
		}
		byProduct[req.ProductID] += req.Quantity
	}

	merged := make([]port.DecrementRequest, 0, len(order))
	for _, pid := range order {
		merged = append(merged, port.DecrementRequest{ProductID: pid, Quantity: byProduct[pid]})
	}
	return merged, nil
}

var _ port.StockLedger = (*StoreStockLedger)(nil)
