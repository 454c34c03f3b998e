package usecase

import (
	"context"
	"fmt"
	"log"

	"shop/src/catalog/application/response"
	"shop/src/catalog/domain/port"
)

// PurgeZeroStockUseCase caso de uso para limpiar productos agotados
type PurgeZeroStockUseCase struct {
	products port.ProductRepository
}

// NewPurgeZeroStockUseCase crea una nueva instancia del caso de uso
func NewPurgeZeroStockUseCase(products port.ProductRepository) *PurgeZeroStockUseCase {
	return &PurgeZeroStockUseCase{
		products: products,
	}
}

// Execute elimina todos los productos con stock <= 0 y retorna cuántos borró
func (uc *PurgeZeroStockUseCase) Execute(ctx context.Context) (*response.PurgeZeroStockResponse, error) {
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}

	deleted := 0
	for id, product := range products {
		if product.Quantity > 0 {
			continue
		}
		if err := uc.products.Delete(ctx, id); err != nil {
			// Seguir con el resto; el conteo refleja solo lo borrado
			log.Printf("⚠️  Could not delete out-of-stock product %s: %v", id, err)
			continue
		}
		deleted++
	}

	return &response.PurgeZeroStockResponse{DeletedCount: deleted}, nil
}
