package request

// AddItemRequest representa el request para sumar unidades al carrito
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// SetQuantityRequest representa el request para fijar una línea del carrito
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}
