package main

import (
	"os"
	"strings"

	"stokgudang/backend/internal/database"
	"stokgudang/backend/internal/handler"
	"stokgudang/backend/internal/middleware"
	"stokgudang/backend/internal/repository"
	"stokgudang/backend/internal/service"
	"stokgudang/backend/internal/store"
	"stokgudang/backend/internal/websocket"
	"stokgudang/backend/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Stok Gudang API
// @version         1.0
// @description     Warehouse stock tracking: barang masuk/keluar, per-gudang stock and inter-warehouse mutasi approval.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Running on plain environment variables is fine
	_ = godotenv.Load("configs/.env")

	log := logger.New(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	recordStore := buildStore(log)

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	inboundRepo := repository.NewInboundRepository(recordStore)
	outboundRepo := repository.NewOutboundRepository(recordStore)
	mutationRepo := repository.NewMutationRepository(recordStore)
	reportRepo := repository.NewReportRepository(recordStore)

	userService := service.NewUserService()
	stockService := service.NewStockService(inboundRepo, outboundRepo)
	mutationService := service.NewMutationService(mutationRepo, outboundRepo, wsHub, log)
	inboundService := service.NewInboundService(inboundRepo)
	outboundService := service.NewOutboundService(outboundRepo, mutationService)
	reportService := service.NewReportService(stockService, reportRepo)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	inboundHandler := handler.NewInboundHandler(inboundService)
	outboundHandler := handler.NewOutboundHandler(outboundService)
	stockHandler := handler.NewStockHandler(stockService)
	mutationHandler := handler.NewMutationHandler(mutationService)
	reportHandler := handler.NewReportHandler(reportService)
	adminHandler := handler.NewAdminHandler(recordStore)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = allowedOrigins()
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	inboundHandler.RegisterRoutes(router.Group(""))
	outboundHandler.RegisterRoutes(router.Group(""))
	stockHandler.RegisterRoutes(router.Group(""))
	mutationHandler.RegisterRoutes(router.Group(""))
	reportHandler.RegisterRoutes(router.Group(""))
	adminHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Msg("server listening")
	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

// buildStore picks the record store backend. Postgres is the default;
// STORE_DRIVER=memory (or missing DB config) falls back to the in-memory
// store so the API can run without a database.
func buildStore(log *logger.Logger) store.RecordStore {
	if os.Getenv("STORE_DRIVER") == "memory" {
		log.Warn().Msg("using in-memory store, data will not survive restarts")
		return store.NewMemoryStore()
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		host := os.Getenv("DB_HOST")
		if host == "" {
			log.Warn().Msg("no DATABASE_URL or DB_HOST set, using in-memory store")
			return store.NewMemoryStore()
		}
		dsn = "postgres://" + envOr("DB_USER", "postgres") + ":" + envOr("DB_PASSWORD", "postgres") +
			"@" + host + ":" + envOr("DB_PORT", "5432") + "/" + envOr("DB_NAME", "stokgudang") +
			"?sslmode=" + envOr("DB_SSLMODE", "disable")
	}

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	log.Info().Msg("connected to PostgreSQL")

	return store.NewGormStore(db)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func allowedOrigins() []string {
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		var origins []string
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			return origins
		}
	}
	return []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000"}
}
