package response

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutResponse resultado de un checkout o venta de mostrador comprometida
type CheckoutResponse struct {
	SaleID        string          `json:"sale_id"`
	Timestamp     time.Time       `json:"timestamp"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	ItemCount     int             `json:"item_count"`
}

// ReceiptLineResponse línea de un recibo ya resuelta contra el catálogo
type ReceiptLineResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// ReceiptResponse recibo de una venta. StoredTotal es el total que se
// cobró en su momento; CalculatedTotal sale de los precios actuales del
// catálogo y puede diferir si hubo cambios de precio o bajas de producto.
type ReceiptResponse struct {
	SaleID          string                `json:"sale_id"`
	Timestamp       time.Time             `json:"timestamp"`
	Items           []ReceiptLineResponse `json:"items"`
	StoredTotal     decimal.Decimal       `json:"stored_total"`
	CalculatedTotal decimal.Decimal       `json:"calculated_total"`
	PaymentMethod   string                `json:"payment_method"`
	Cashier         string                `json:"cashier"`
	CustomerName    string                `json:"customer_name,omitempty"`
	CustomerPhone   string                `json:"customer_phone,omitempty"`
}
