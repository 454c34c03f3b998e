package request

import "github.com/shopspring/decimal"

// CreateProductRequest representa el request para crear un producto
type CreateProductRequest struct {
	Name      string          `json:"name" binding:"required"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURLs []string        `json:"image_urls"`
}
