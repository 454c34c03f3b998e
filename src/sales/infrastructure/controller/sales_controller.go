package controller

import (
	"errors"
	"log"
	"net/http"

	cartcache "shop/src/cart/infrastructure/cache"
	catalogentity "shop/src/catalog/domain/entity"
	"shop/src/sales/application/request"
	"shop/src/sales/application/usecase"
	"shop/src/sales/domain/entity"

	"github.com/gin-gonic/gin"
)

// SalesController maneja las peticiones HTTP de checkout, venta de
// mostrador y recibos
type SalesController struct {
	carts    *cartcache.SessionCartCache
	checkout *usecase.CheckoutCoordinator
	inStore  *usecase.InStoreSaleUseCase
	receipt  *usecase.GetReceiptUseCase
}

// NewSalesController crea una nueva instancia del controlador
func NewSalesController(
	carts *cartcache.SessionCartCache,
	checkout *usecase.CheckoutCoordinator,
	inStore *usecase.InStoreSaleUseCase,
	receipt *usecase.GetReceiptUseCase,
) *SalesController {
	return &SalesController{
		carts:    carts,
		checkout: checkout,
		inStore:  inStore,
		receipt:  receipt,
	}
}

// RegisterRoutes registra las rutas del controlador
func (c *SalesController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/checkout", c.Checkout)
	router.POST("/pos/sale", c.InStoreSale)
	router.GET("/sales/:sale_id/receipt", c.GetReceipt)

	log.Println("Rutas Sales disponibles:")
	log.Println("  POST   /api/v1/checkout")
	log.Println("  POST   /api/v1/pos/sale")
	log.Println("  GET    /api/v1/sales/:sale_id/receipt")
}

func respondSaleError(ctx *gin.Context, err error) {
	if ise, ok := catalogentity.AsInsufficientStock(err); ok {
		ctx.JSON(http.StatusConflict, gin.H{
			"error":      "Insufficient stock",
			"product_id": ise.ProductID,
			"available":  ise.Available,
		})
		return
	}
	switch {
	case errors.Is(err, entity.ErrEmptyCheckout), errors.Is(err, entity.ErrSaleMustHaveItems):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrCustomerDetailsRequired):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Customer name, phone and address are required"})
	case errors.Is(err, entity.ErrSaleNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
	case errors.Is(err, catalogentity.ErrProductNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	default:
		log.Printf("Error processing sale: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

// Checkout compromete el carrito de la sesión como venta
func (c *SalesController) Checkout(ctx *gin.Context) {
	session, ok := checkoutSessionID(ctx)
	if !ok {
		return
	}

	var req request.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := c.checkout.Execute(ctx.Request.Context(), session, c.carts.Get(session), &req)
	if err != nil {
		respondSaleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// InStoreSale compromete una venta directa de mostrador
func (c *SalesController) InStoreSale(ctx *gin.Context) {
	var req request.InStoreSaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := c.inStore.Execute(ctx.Request.Context(), &req)
	if err != nil {
		respondSaleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetReceipt retorna el recibo de una venta resuelto contra el catálogo
func (c *SalesController) GetReceipt(ctx *gin.Context) {
	saleID := ctx.Param("sale_id")

	resp, err := c.receipt.Execute(ctx.Request.Context(), saleID)
	if err != nil {
		respondSaleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func checkoutSessionID(ctx *gin.Context) (string, bool) {
	id := ctx.GetHeader("X-Session-ID")
	if id == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header is required"})
		return "", false
	}
	return id, true
}
