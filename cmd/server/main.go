package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/eezystore/backend/internal/application/catalog"
	orderapp "github.com/eezystore/backend/internal/application/order"
	storefrontapp "github.com/eezystore/backend/internal/application/storefront"
	"github.com/eezystore/backend/internal/infrastructure/auth"
	"github.com/eezystore/backend/internal/infrastructure/config"
	"github.com/eezystore/backend/internal/infrastructure/logger"
	"github.com/eezystore/backend/internal/infrastructure/persistence"
	"github.com/eezystore/backend/internal/interfaces/http/handler"
	"github.com/eezystore/backend/internal/interfaces/http/middleware"
	"github.com/eezystore/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Token blacklist backed by Redis. Losing Redis degrades logout, not the
	// whole storefront, so startup continues without it.
	var tokenBlacklist auth.TokenBlacklist
	if blacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}); err != nil {
		log.Warn("Redis unavailable, token revocation disabled", zap.Error(err))
	} else {
		tokenBlacklist = blacklist
	}

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Initialize application services
	productService := catalogapp.NewProductService(productRepo)
	cartService := storefrontapp.NewCartService(cartRepo, productRepo)
	addressService := storefrontapp.NewAddressService(addressRepo)
	orderService := orderapp.NewOrderService(orderRepo)
	checkoutService := orderapp.NewCheckoutService(cartService, cartRepo, addressRepo, productRepo, orderRepo)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService)
	adminProductHandler := handler.NewAdminProductHandler(productService)
	cartHandler := handler.NewCartHandler(cartService)
	addressHandler := handler.NewAddressHandler(addressService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	orderHandler := handler.NewOrderHandler(orderService)
	adminOrderHandler := handler.NewAdminOrderHandler(orderService)
	authHandler := handler.NewAuthHandler(tokenBlacklist)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Report validation errors by json field name
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// JWT authentication for API routes. Product browsing and liveness
	// endpoints stay public.
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		SkipPaths: []string{
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		SkipPathPrefixes: []string{
			"/api/v1/products",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Public catalog
	productRoutes := router.NewDomainGroup("catalog", "/products")
	productRoutes.GET("", productHandler.List)
	productRoutes.GET("/:id", productHandler.GetByID)
	r.Register(productRoutes)

	// Shopping cart
	cartRoutes := router.NewDomainGroup("cart", "/cart")
	cartRoutes.GET("", cartHandler.Get)
	cartRoutes.POST("/items", cartHandler.AddItem)
	cartRoutes.PUT("/items/:lineId", cartHandler.UpdateItem)
	cartRoutes.DELETE("/items/:lineId", cartHandler.RemoveItem)
	cartRoutes.DELETE("", cartHandler.Clear)
	r.Register(cartRoutes)

	// Address book
	addressRoutes := router.NewDomainGroup("addresses", "/addresses")
	addressRoutes.POST("", addressHandler.Create)
	addressRoutes.GET("", addressHandler.List)
	addressRoutes.GET("/:id", addressHandler.GetByID)
	addressRoutes.POST("/:id/default", addressHandler.SetDefault)
	addressRoutes.DELETE("/:id", addressHandler.Delete)
	r.Register(addressRoutes)

	// Checkout
	checkoutRoutes := router.NewDomainGroup("checkout", "/checkout")
	checkoutRoutes.GET("", checkoutHandler.Preview)
	checkoutRoutes.POST("/place-order", checkoutHandler.PlaceOrder)
	r.Register(checkoutRoutes)

	// Customer orders
	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/:id", orderHandler.GetByID)
	orderRoutes.POST("/:id/items/:itemId/rating", orderHandler.RateItem)
	r.Register(orderRoutes)

	// Session
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.GET("/me", authHandler.Me)
	authRoutes.POST("/logout", authHandler.Logout)
	r.Register(authRoutes)

	// Back office, admin role required
	adminRoutes := router.NewDomainGroup("admin", "/admin")
	adminRoutes.Use(middleware.RequireAdmin())
	adminRoutes.POST("/products", adminProductHandler.Create)
	adminRoutes.GET("/products", adminProductHandler.List)
	adminRoutes.GET("/products/:id", adminProductHandler.GetByID)
	adminRoutes.PUT("/products/:id", adminProductHandler.Update)
	adminRoutes.DELETE("/products/:id", adminProductHandler.Delete)
	adminRoutes.GET("/orders", adminOrderHandler.List)
	adminRoutes.GET("/orders/:id", adminOrderHandler.GetByID)
	adminRoutes.PUT("/orders/:id/status", adminOrderHandler.UpdateStatus)
	r.Register(adminRoutes)

	// System endpoints
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
