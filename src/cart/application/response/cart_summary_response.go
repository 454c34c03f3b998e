package response

import "github.com/shopspring/decimal"

// CartLineResponse representa una línea resuelta del carrito
type CartLineResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	Image     string          `json:"image,omitempty"`
}

// CartSummaryResponse representa el carrito resuelto contra el catálogo
type CartSummaryResponse struct {
	Items     []CartLineResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	CartTotal decimal.Decimal    `json:"cart_total"`
}
