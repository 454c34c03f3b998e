package controller

import (
	"errors"
	"log"
	"net/http"

	"shop/src/catalog/application/request"
	"shop/src/catalog/application/usecase"
	"shop/src/catalog/domain/entity"

	"github.com/gin-gonic/gin"
)

// ProductController maneja las peticiones HTTP del catálogo
type ProductController struct {
	listProductsUC    *usecase.ListProductsUseCase
	createProductUC   *usecase.CreateProductUseCase
	updateQuantityUC  *usecase.UpdateQuantityUseCase
	deleteProductUC   *usecase.DeleteProductUseCase
	purgeZeroStockUC  *usecase.PurgeZeroStockUseCase
	exportInventoryUC *usecase.ExportInventoryUseCase
}

// NewProductController crea una nueva instancia del controlador
func NewProductController(
	listProductsUC *usecase.ListProductsUseCase,
	createProductUC *usecase.CreateProductUseCase,
	updateQuantityUC *usecase.UpdateQuantityUseCase,
	deleteProductUC *usecase.DeleteProductUseCase,
	purgeZeroStockUC *usecase.PurgeZeroStockUseCase,
	exportInventoryUC *usecase.ExportInventoryUseCase,
) *ProductController {
	return &ProductController{
		listProductsUC:    listProductsUC,
		createProductUC:   createProductUC,
		updateQuantityUC:  updateQuantityUC,
		deleteProductUC:   deleteProductUC,
		purgeZeroStockUC:  purgeZeroStockUC,
		exportInventoryUC: exportInventoryUC,
	}
}

// RegisterRoutes registra las rutas del controlador
func (c *ProductController) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.GET("", c.ListProducts)
		products.POST("", c.CreateProduct)
		products.PUT("/:product_id/quantity", c.UpdateQuantity)
		products.DELETE("/:product_id", c.DeleteProduct)
		products.POST("/purge-zero-stock", c.PurgeZeroStock)
		products.GET("/export", c.ExportInventory)
	}
	router.GET("/inventory/value", c.InventoryValue)

	log.Println("Rutas Catalog disponibles:")
	log.Println("  GET    /api/v1/products")
	log.Println("  POST   /api/v1/products")
	log.Println("  PUT    /api/v1/products/:product_id/quantity")
	log.Println("  DELETE /api/v1/products/:product_id")
	log.Println("  POST   /api/v1/products/purge-zero-stock")
	log.Println("  GET    /api/v1/products/export")
	log.Println("  GET    /api/v1/inventory/value")
}

// respondError mapea errores de dominio a códigos HTTP.
// Las fallas del store se loguean con contexto y salen como error genérico.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrProductNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, entity.ErrProductNameRequired),
		errors.Is(err, entity.ErrInvalidPrice),
		errors.Is(err, entity.ErrInvalidQuantity):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("Catalog store failure: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

// ListProducts retorna el catálogo completo con el valor de inventario
func (c *ProductController) ListProducts(ctx *gin.Context) {
	resp, err := c.listProductsUC.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// InventoryValue retorna el valor total del inventario (Σ precio × stock)
func (c *ProductController) InventoryValue(ctx *gin.Context) {
	resp, err := c.listProductsUC.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"inventory_value": resp.InventoryValue})
}

// CreateProduct da de alta un producto
func (c *ProductController) CreateProduct(ctx *gin.Context) {
	var req request.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := c.createProductUC.Execute(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateQuantity fija el stock autoritativo de un producto
func (c *ProductController) UpdateQuantity(ctx *gin.Context) {
	productID := ctx.Param("product_id")

	var req request.UpdateQuantityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := c.updateQuantityUC.Execute(ctx.Request.Context(), productID, req.Quantity); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Quantity updated"})
}

// DeleteProduct elimina un producto
func (c *ProductController) DeleteProduct(ctx *gin.Context) {
	productID := ctx.Param("product_id")

	if err := c.deleteProductUC.Execute(ctx.Request.Context(), productID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// PurgeZeroStock elimina los productos agotados
func (c *ProductController) PurgeZeroStock(ctx *gin.Context) {
	resp, err := c.purgeZeroStockUC.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ExportInventory descarga el catálogo como planilla xlsx
func (c *ProductController) ExportInventory(ctx *gin.Context) {
	file, err := c.exportInventoryUC.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename=inventory.xlsx")
	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(ctx.Writer); err != nil {
		log.Printf("Error writing inventory export: %v", err)
	}
}
