package response

import "github.com/shopspring/decimal"

// ProductResponse representa un producto en las respuestas del catálogo
type ProductResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Images   []string        `json:"images,omitempty"`
}

// ProductListResponse representa el catálogo completo más el valor
// de inventario para el tablero principal
type ProductListResponse struct {
	Items          []ProductResponse `json:"items"`
	TotalCount     int               `json:"total_count"`
	InventoryValue decimal.Decimal   `json:"inventory_value"`
}

// CreateProductResponse representa la respuesta de creación
type CreateProductResponse struct {
	ProductID string `json:"product_id"`
}

// PurgeZeroStockResponse representa la respuesta de la limpieza de stock cero
type PurgeZeroStockResponse struct {
	DeletedCount int `json:"deleted_count"`
}
