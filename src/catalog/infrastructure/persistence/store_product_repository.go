package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"shop/src/catalog/domain/entity"
	"shop/src/catalog/domain/port"
	sharedport "shop/src/shared/domain/port"
)

// StoreProductRepository implementa ProductRepository sobre el store
type StoreProductRepository struct {
	store sharedport.Store
}

// NewStoreProductRepository crea una nueva instancia del repositorio
func NewStoreProductRepository(store sharedport.Store) *StoreProductRepository {
	return &StoreProductRepository{
		store: store,
	}
}

// Create persiste un producto nuevo y retorna el id asignado
func (r *StoreProductRepository) Create(ctx context.Context, product *entity.Product) (string, error) {
	id, err := r.store.Append(ctx, productsCollection, product)
	if err != nil {
		return "", fmt.Errorf("creating product: %w", err)
	}
	return id, nil
}

// SetQuantity fija el stock autoritativo de un producto
func (r *StoreProductRepository) SetQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 0 {
		return entity.ErrInvalidQuantity
	}

	// Verificar existencia primero: Write crea rutas ausentes
	if _, _, err := r.store.Read(ctx, productPath(productID)); err != nil {
		if err == sharedport.ErrAbsent {
			return fmt.Errorf("product %s: %w", productID, entity.ErrProductNotFound)
		}
		return fmt.Errorf("reading product %s: %w", productID, err)
	}

	if err := r.store.Write(ctx, productPath(productID), map[string]any{"quantity": quantity}); err != nil {
		return fmt.Errorf("updating quantity of product %s: %w", productID, err)
	}
	return nil
}

// Delete elimina un producto del catálogo
func (r *StoreProductRepository) Delete(ctx context.Context, productID string) error {
	if _, _, err := r.store.Read(ctx, productPath(productID)); err != nil {
		if err == sharedport.ErrAbsent {
			return fmt.Errorf("product %s: %w", productID, entity.ErrProductNotFound)
		}
		return fmt.Errorf("reading product %s: %w", productID, err)
	}

	if err := r.store.Delete(ctx, productPath(productID)); err != nil {
		return fmt.Errorf("deleting product %s: %w", productID, err)
	}
	return nil
}

// List retorna el catálogo completo indexado por id
func (r *StoreProductRepository) List(ctx context.Context) (map[string]*entity.Product, error) {
	raw, err := r.store.List(ctx, productsCollection)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	products := make(map[string]*entity.Product, len(raw))
	for id, data := range raw {
		var product entity.Product
		if err := json.Unmarshal(data, &product); err != nil {
			return nil, fmt.Errorf("%w: corrupt product %s: %v", sharedport.ErrStoreFailure, id, err)
		}
		product.ID = id
		products[id] = &product
	}
	return products, nil
}

var _ port.ProductRepository = (*StoreProductRepository)(nil)
