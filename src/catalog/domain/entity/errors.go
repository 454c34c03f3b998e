package entity

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrProductNameRequired = errors.New("product name is required")
	ErrInvalidPrice        = errors.New("price must be greater than or equal to 0")
	ErrInvalidQuantity     = errors.New("quantity must be greater than or equal to 0")
)

// InsufficientStockError indica que un producto no tiene stock suficiente.
// Lleva el id del producto y la cantidad disponible para mostrarla al caller.
type InsufficientStockError struct {
	ProductID string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: %d available", e.ProductID, e.Available)
}

// AsInsufficientStock extrae un InsufficientStockError de una cadena de errores
func AsInsufficientStock(err error) (*InsufficientStockError, bool) {
	var ise *InsufficientStockError
	if errors.As(err, &ise) {
		return ise, true
	}
	return nil, false
}
