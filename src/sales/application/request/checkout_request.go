package request

// CustomerRequest datos del cliente que acompaña el checkout.
// Los tres campos son obligatorios cuando el bloque está presente.
type CustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
}

// CheckoutRequest cuerpo del POST /checkout. El medio de pago no viene
// en el request: una venta online se registra siempre bajo "online".
type CheckoutRequest struct {
	Customer *CustomerRequest `json:"customer" binding:"required"`
}

// InStoreSaleRequest cuerpo del POST /pos/sale. Una venta de mostrador
// no pasa por el carrito: trae sus líneas directamente.
type InStoreSaleRequest struct {
	Items         map[string]int `json:"items" binding:"required"`
	PaymentMethod string         `json:"payment_method"`
}
