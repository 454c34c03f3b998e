package usecase

import (
	"context"
	"fmt"

	"shop/src/catalog/application/request"
	"shop/src/catalog/application/response"
	"shop/src/catalog/domain/entity"
	"shop/src/catalog/domain/port"
)

// CreateProductUseCase caso de uso para dar de alta un producto
type CreateProductUseCase struct {
	products port.ProductRepository
}

// NewCreateProductUseCase crea una nueva instancia del caso de uso
func NewCreateProductUseCase(products port.ProductRepository) *CreateProductUseCase {
	return &CreateProductUseCase{
		products: products,
	}
}

// Execute valida y persiste el producto nuevo
func (uc *CreateProductUseCase) Execute(ctx context.Context, req *request.CreateProductRequest) (*response.CreateProductResponse, error) {
	product, err := entity.NewProduct(req.Name, req.Price, req.Quantity, req.ImageURLs)
	if err != nil {
		return nil, err
	}

	id, err := uc.products.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("error creating product: %w", err)
	}

	return &response.CreateProductResponse{ProductID: id}, nil
}
