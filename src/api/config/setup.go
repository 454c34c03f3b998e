package config

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIConfig contiene la configuración del módulo API
type APIConfig struct {
	Version      string
	StoreBackend string
}

// DefaultAPIConfig devuelve una configuración por defecto
func DefaultAPIConfig() APIConfig {
	return APIConfig{
		Version:      "dev",
		StoreBackend: "memory",
	}
}

// SetupAPIModule registra health check en la raíz y bajo el grupo v1
func SetupAPIModule(router *gin.Engine, v1 *gin.RouterGroup, cfg APIConfig) {
	handler := func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": cfg.Version,
			"store":   cfg.StoreBackend,
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	}

	router.GET("/health", handler)
	v1.GET("/health", handler)
}
