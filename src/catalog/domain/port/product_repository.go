package port

import (
	"context"

	"shop/src/catalog/domain/entity"
)

// ProductRepository define la gestión de catálogo sobre el store.
// El stock solo se muta a través del StockLedger; acá se administra
// el resto del ciclo de vida del producto.
type ProductRepository interface {
	// Create persiste un producto nuevo y retorna el id asignado
	Create(ctx context.Context, product *entity.Product) (string, error)

	// SetQuantity fija el stock autoritativo de un producto
	SetQuantity(ctx context.Context, productID string, quantity int) error

	// Delete elimina un producto del catálogo
	Delete(ctx context.Context, productID string) error

	// List retorna el catálogo completo indexado por id
	List(ctx context.Context) (map[string]*entity.Product, error)
}
