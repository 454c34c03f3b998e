package request

// UpdateQuantityRequest representa el request para fijar el stock de un producto
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}
