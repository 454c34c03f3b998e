package usecase

import (
	"context"

	"shop/src/catalog/domain/port"
)

// DeleteProductUseCase caso de uso para eliminar un producto del catálogo.
// Las ventas históricas que lo referencian no se tocan: los reportes
// resuelven el nombre con un placeholder.
type DeleteProductUseCase struct {
	products port.ProductRepository
}

// NewDeleteProductUseCase crea una nueva instancia del caso de uso
func NewDeleteProductUseCase(products port.ProductRepository) *DeleteProductUseCase {
	return &DeleteProductUseCase{
		products: products,
	}
}

// Execute elimina el producto
func (uc *DeleteProductUseCase) Execute(ctx context.Context, productID string) error {
	return uc.products.Delete(ctx, productID)
}
