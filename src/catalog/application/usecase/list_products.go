package usecase

import (
	"context"
	"fmt"
	"sort"

	"shop/src/catalog/application/response"
	"shop/src/catalog/domain/port"

	"github.com/shopspring/decimal"
)

// ListProductsUseCase caso de uso para el catálogo y el tablero principal
type ListProductsUseCase struct {
	products port.ProductRepository
}

// NewListProductsUseCase crea una nueva instancia del caso de uso
func NewListProductsUseCase(products port.ProductRepository) *ListProductsUseCase {
	return &ListProductsUseCase{
		products: products,
	}
}

// Execute retorna el catálogo ordenado por nombre más el valor total
// de inventario (suma de precio × stock)
func (uc *ListProductsUseCase) Execute(ctx context.Context) (*response.ProductListResponse, error) {
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}

	items := make([]response.ProductResponse, 0, len(products))
	totalValue := decimal.Zero
	for id, product := range products {
		items = append(items, response.ProductResponse{
			ID:       id,
			Name:     product.Name,
			Price:    product.Price,
			Quantity: product.Quantity,
			Images:   product.Images,
		})
		totalValue = totalValue.Add(product.Value())
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})

	return &response.ProductListResponse{
		Items:          items,
		TotalCount:     len(items),
		InventoryValue: totalValue,
	}, nil
}
