package cache

import (
	"sync"

	"shop/src/cart/domain/entity"
)

// SessionCartCache guarda en memoria el carrito de cada sesión.
// El transporte de la sesión (cookies, tokens) queda fuera de este
// núcleo; acá solo se indexa por el identificador que entrega la capa web.
type SessionCartCache struct {
	carts map[string]entity.Cart
	mu    sync.RWMutex
}

// NewSessionCartCache crea un nuevo cache de carritos
func NewSessionCartCache() *SessionCartCache {
	return &SessionCartCache{
		carts: make(map[string]entity.Cart),
	}
}

// Get retorna una copia del carrito de la sesión (vacío si no hay)
func (c *SessionCartCache) Get(sessionID string) entity.Cart {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cart, ok := c.carts[sessionID]
	if !ok {
		return entity.NewCart()
	}
	return cart.Lines()
}

// Put reemplaza el carrito de la sesión
func (c *SessionCartCache) Put(sessionID string, cart entity.Cart) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cart.Empty() {
		delete(c.carts, sessionID)
		return
	}
	c.carts[sessionID] = cart.Lines()
}

// Delete descarta el carrito de la sesión
func (c *SessionCartCache) Delete(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.carts, sessionID)
}
