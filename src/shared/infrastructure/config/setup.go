package config

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSSharedConfig contiene la configuración del módulo compartido de CORS
type CORSSharedConfig struct {
	EnableCORS       bool
	AllowedOrigins   []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// DefaultSharedConfig devuelve una configuración por defecto
func DefaultSharedConfig() CORSSharedConfig {
	return CORSSharedConfig{
		EnableCORS:       true,
		AllowedOrigins:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
}

// SetupSharedMiddleware configura los middlewares compartidos
func SetupSharedMiddleware(router *gin.Engine, config CORSSharedConfig) {
	if config.EnableCORS {
		corsCfg := cors.Config{
			AllowOrigins:     config.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Session-ID"},
			AllowCredentials: config.AllowCredentials,
			MaxAge:           config.MaxAge,
		}
		router.Use(cors.New(corsCfg))
	}

	// Aquí se pueden agregar más middlewares compartidos en el futuro
	// Por ejemplo:
	// - Logging
	// - Medición de rendimiento
	// - Autenticación/Autorización
}
