package entity

// Cart es el mapa producto → cantidad deseada de un cliente.
// Es un valor explícito que el caller (su sesión) posee y pasa a cada
// operación; nunca estado global. El carrito es consultivo: la
// validación final de stock ocurre de nuevo en el checkout.
type Cart map[string]int

// NewCart crea un carrito vacío
func NewCart() Cart {
	return make(Cart)
}

// Quantity retorna la cantidad deseada de un producto (0 si no está)
func (c Cart) Quantity(productID string) int {
	return c[productID]
}

// Lines retorna una copia del contenido del carrito
func (c Cart) Lines() map[string]int {
	lines := make(map[string]int, len(c))
	for pid, qty := range c {
		lines[pid] = qty
	}
	return lines
}

// Empty indica si el carrito no tiene líneas
func (c Cart) Empty() bool {
	return len(c) == 0
}

// clone copia el carrito antes de mutarlo
func (c Cart) clone() Cart {
	next := make(Cart, len(c))
	for pid, qty := range c {
		next[pid] = qty
	}
	return next
}

// With retorna una copia del carrito con la línea fijada en qty.
// Con qty 0 la línea se elimina.
func (c Cart) With(productID string, qty int) Cart {
	next := c.clone()
	if qty > 0 {
		next[productID] = qty
	} else {
		delete(next, productID)
	}
	return next
}
