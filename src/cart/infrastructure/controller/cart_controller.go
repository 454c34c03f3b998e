package controller

import (
	"errors"
	"log"
	"net/http"

	"shop/src/cart/application/request"
	"shop/src/cart/application/usecase"
	"shop/src/cart/infrastructure/cache"
	catalogentity "shop/src/catalog/domain/entity"

	"github.com/gin-gonic/gin"
)

// CartController maneja las peticiones HTTP del carrito.
// El carrito se escopea por el header X-Session-ID que entrega la capa web.
type CartController struct {
	carts *cache.SessionCartCache
	svc   *usecase.CartService
}

// NewCartController crea una nueva instancia del controlador
func NewCartController(carts *cache.SessionCartCache, svc *usecase.CartService) *CartController {
	return &CartController{
		carts: carts,
		svc:   svc,
	}
}

// RegisterRoutes registra las rutas del controlador
func (c *CartController) RegisterRoutes(router *gin.RouterGroup) {
	cart := router.Group("/cart")
	{
		cart.GET("", c.GetCart)
		cart.POST("/items", c.AddItem)
		cart.PUT("/items/:product_id", c.SetQuantity)
		cart.DELETE("/items/:product_id", c.RemoveItem)
		cart.DELETE("", c.ClearCart)
	}

	log.Println("Rutas Cart disponibles:")
	log.Println("  GET    /api/v1/cart")
	log.Println("  POST   /api/v1/cart/items")
	log.Println("  PUT    /api/v1/cart/items/:product_id")
	log.Println("  DELETE /api/v1/cart/items/:product_id")
	log.Println("  DELETE /api/v1/cart")
}

func sessionID(ctx *gin.Context) (string, bool) {
	id := ctx.GetHeader("X-Session-ID")
	if id == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header is required"})
		return "", false
	}
	return id, true
}

func respondCartError(ctx *gin.Context, err error) {
	if ise, ok := catalogentity.AsInsufficientStock(err); ok {
		ctx.JSON(http.StatusConflict, gin.H{
			"error":      "Insufficient stock",
			"product_id": ise.ProductID,
			"available":  ise.Available,
		})
		return
	}
	switch {
	case errors.Is(err, catalogentity.ErrProductNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, catalogentity.ErrInvalidQuantity):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
	default:
		log.Printf("Cart store failure: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

// GetCart retorna el carrito resuelto contra el catálogo
func (c *CartController) GetCart(ctx *gin.Context) {
	session, ok := sessionID(ctx)
	if !ok {
		return
	}

	resp, err := c.svc.Summary(ctx.Request.Context(), c.carts.Get(session))
	if err != nil {
		respondCartError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// AddItem suma unidades de un producto al carrito
func (c *CartController) AddItem(ctx *gin.Context) {
	session, ok := sessionID(ctx)
	if !ok {
		return
	}

	var req request.AddItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	cart, err := c.svc.Add(ctx.Request.Context(), c.carts.Get(session), req.ProductID, req.Quantity)
	if err != nil {
		respondCartError(ctx, err)
		return
	}
	c.carts.Put(session, cart)

	ctx.JSON(http.StatusOK, gin.H{"cart_count": len(cart), "quantity": cart.Quantity(req.ProductID)})
}

// SetQuantity fija la línea de un producto; cero la elimina
func (c *CartController) SetQuantity(ctx *gin.Context) {
	session, ok := sessionID(ctx)
	if !ok {
		return
	}
	productID := ctx.Param("product_id")

	var req request.SetQuantityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	cart, err := c.svc.SetQuantity(ctx.Request.Context(), c.carts.Get(session), productID, req.Quantity)
	if err != nil {
		respondCartError(ctx, err)
		return
	}
	c.carts.Put(session, cart)

	ctx.JSON(http.StatusOK, gin.H{"cart_count": len(cart), "quantity": cart.Quantity(productID)})
}

// RemoveItem elimina la línea de un producto
func (c *CartController) RemoveItem(ctx *gin.Context) {
	session, ok := sessionID(ctx)
	if !ok {
		return
	}
	productID := ctx.Param("product_id")

	cart := c.svc.Remove(c.carts.Get(session), productID)
	c.carts.Put(session, cart)

	ctx.JSON(http.StatusOK, gin.H{"cart_count": len(cart)})
}

// ClearCart vacía el carrito de la sesión
func (c *CartController) ClearCart(ctx *gin.Context) {
	session, ok := sessionID(ctx)
	if !ok {
		return
	}

	c.carts.Delete(session)
	ctx.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
