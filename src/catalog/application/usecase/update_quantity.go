package usecase

import (
	"context"

	"shop/src/catalog/domain/port"
)

// UpdateQuantityUseCase caso de uso para fijar el stock de un producto
type UpdateQuantityUseCase struct {
	products port.ProductRepository
}

// NewUpdateQuantityUseCase crea una nueva instancia del caso de uso
func NewUpdateQuantityUseCase(products port.ProductRepository) *UpdateQuantityUseCase {
	return &UpdateQuantityUseCase{
		products: products,
	}
}

// Execute fija el stock autoritativo del producto
func (uc *UpdateQuantityUseCase) Execute(ctx context.Context, productID string, quantity int) error {
	return uc.products.SetQuantity(ctx, productID, quantity)
}
