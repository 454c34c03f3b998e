package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	apiConfig "shop/src/api/config"
	cartUseCase "shop/src/cart/application/usecase"
	cartCache "shop/src/cart/infrastructure/cache"
	cartController "shop/src/cart/infrastructure/controller"
	catalogUseCase "shop/src/catalog/application/usecase"
	catalogController "shop/src/catalog/infrastructure/controller"
	catalogPersistence "shop/src/catalog/infrastructure/persistence"
	reportUseCase "shop/src/report/application/usecase"
	reportController "shop/src/report/infrastructure/controller"
	salesUseCase "shop/src/sales/application/usecase"
	salesController "shop/src/sales/infrastructure/controller"
	salesPersistence "shop/src/sales/infrastructure/persistence"
	sharedPort "shop/src/shared/domain/port"
	sharedClient "shop/src/shared/infrastructure/client"
	sharedConfig "shop/src/shared/infrastructure/config"
	"shop/src/shared/infrastructure/metrics"
	sharedPersistence "shop/src/shared/infrastructure/persistence"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq" // Driver de PostgreSQL
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// getEnv obtiene una variable de entorno o devuelve un valor por defecto
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// buildStore elige el backend de persistencia según el entorno:
// Firebase RTDB si hay FIREBASE_DB_URL, Postgres si hay DB_HOST, y
// memoria como fallback de desarrollo.
func buildStore() (sharedPort.Store, string) {
	if os.Getenv("FIREBASE_DB_URL") != "" {
		log.Println("✅ Usando Firebase RTDB como store")
		return sharedClient.NewFirebaseStore(), "firebase"
	}

	if os.Getenv("DB_HOST") != "" {
		dbHost := getEnv("DB_HOST", "localhost")
		dbPort := getEnv("DB_PORT", "5432")
		dbUser := getEnv("DB_USER", "postgres")
		dbPassword := getEnv("DB_PASSWORD", "postgres")
		dbName := getEnv("DB_NAME", "shop_db")

		connStr := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=disable"
		log.Printf("Intentando conectar a %s: %s", dbName, connStr)

		db, err := sql.Open("postgres", connStr)
		if err == nil {
			err = db.Ping()
		}
		if err != nil {
			log.Printf("⚠️  Advertencia: Error al conectar a la base de datos: %v", err)
			log.Println("⚠️  Continuando con store en memoria")
			return sharedPersistence.NewMemoryStore(), "memory"
		}

		store := sharedPersistence.NewPostgresStore(db)
		if err := store.Init(context.Background()); err != nil {
			log.Printf("⚠️  Advertencia: Error al inicializar el esquema: %v", err)
			log.Println("⚠️  Continuando con store en memoria")
			return sharedPersistence.NewMemoryStore(), "memory"
		}

		log.Printf("✅ Conexión a %s establecida con éxito", dbName)
		return store, "postgres"
	}

	log.Println("⚠️  Sin FIREBASE_DB_URL ni DB_HOST: usando store en memoria (los datos no sobreviven reinicios)")
	return sharedPersistence.NewMemoryStore(), "memory"
}

func main() {
	log.Println("🚀 Shop Service - Iniciando...")

	// Cargar variables de entorno desde .env si existe
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Configurar el router con Gin
	router := gin.New()

	// Agregar middlewares básicos necesarios
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Configurar Prometheus metrics si está habilitado
	prometheusEnabled := os.Getenv("PROMETHEUS_ENABLED")
	log.Printf("PROMETHEUS_ENABLED value: '%s'", prometheusEnabled)

	if prometheusEnabled == "true" {
		log.Println("Registering /metrics endpoint for Shop service")
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
		log.Println("/metrics endpoint registered successfully for Shop service")
	} else {
		log.Println("Prometheus metrics disabled for Shop service")
	}

	// Configurar CORS y otros middlewares compartidos
	corsSharedCfg := sharedConfig.DefaultSharedConfig()
	sharedConfig.SetupSharedMiddleware(router, corsSharedCfg)

	// Elegir backend de persistencia
	store, backend := buildStore()

	// API v1 grupo de rutas
	v1 := router.Group("/api/v1")

	// Configurar el módulo API (health check)
	apiCfg := apiConfig.DefaultAPIConfig()
	apiCfg.Version = getEnv("APP_VERSION", "1.0.0")
	apiCfg.StoreBackend = backend
	apiConfig.SetupAPIModule(router, v1, apiCfg)

	// Configurar módulos de dominio
	setupShopModules(v1, store)

	// Iniciar el servidor
	port := getEnv("PORT", "8080")
	log.Printf("✅ Servidor Shop Service iniciado en http://localhost:%s", port)
	log.Printf("✅ Health endpoint: GET http://localhost:%s/health", port)
	router.Run(":" + port)
}

// setupShopModules configura los módulos Catalog, Cart, Sales y Report
func setupShopModules(router *gin.RouterGroup, store sharedPort.Store) {
	log.Println("Configurando módulos Shop...")

	// Infraestructura compartida entre contextos
	ledger := catalogPersistence.NewStoreStockLedger(store)
	productRepo := catalogPersistence.NewStoreProductRepository(store)
	salesLog := salesPersistence.NewStoreSalesLog(store)
	carts := cartCache.NewSessionCartCache()
	salesMetrics := metrics.NewSalesMetrics(prometheus.DefaultRegisterer)

	// Módulo Catalog
	productCtrl := catalogController.NewProductController(
		catalogUseCase.NewListProductsUseCase(productRepo),
		catalogUseCase.NewCreateProductUseCase(productRepo),
		catalogUseCase.NewUpdateQuantityUseCase(productRepo),
		catalogUseCase.NewDeleteProductUseCase(productRepo),
		catalogUseCase.NewPurgeZeroStockUseCase(productRepo),
		catalogUseCase.NewExportInventoryUseCase(productRepo),
	)

	// Módulo Cart
	cartSvc := cartUseCase.NewCartService(ledger)
	cartCtrl := cartController.NewCartController(carts, cartSvc)

	// Módulo Sales
	checkoutUC := salesUseCase.NewCheckoutCoordinator(ledger, salesLog, carts, salesMetrics)
	inStoreUC := salesUseCase.NewInStoreSaleUseCase(checkoutUC)
	receiptUC := salesUseCase.NewGetReceiptUseCase(salesLog, ledger)
	salesCtrl := salesController.NewSalesController(carts, checkoutUC, inStoreUC, receiptUC)

	// Módulo Report
	buildReportUC := reportUseCase.NewBuildReportUseCase(salesLog, ledger)
	exportCSVUC := reportUseCase.NewExportCSVUseCase(salesLog, ledger)
	reportCtrl := reportController.NewReportController(buildReportUC, exportCSVUC)

	// Registrar rutas
	productCtrl.RegisterRoutes(router)
	cartCtrl.RegisterRoutes(router)
	salesCtrl.RegisterRoutes(router)
	reportCtrl.RegisterRoutes(router)

	log.Println("Módulos Shop configurados exitosamente")
}
