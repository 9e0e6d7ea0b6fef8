package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	activityapp "github.com/bolibana/backend/internal/application/activity"
	catalogapp "github.com/bolibana/backend/internal/application/catalog"
	dashboardapp "github.com/bolibana/backend/internal/application/dashboard"
	identityapp "github.com/bolibana/backend/internal/application/identity"
	salesapp "github.com/bolibana/backend/internal/application/sales"
	siteapp "github.com/bolibana/backend/internal/application/site"
	stockapp "github.com/bolibana/backend/internal/application/stock"
	subscriptionapp "github.com/bolibana/backend/internal/application/subscription"
	"github.com/bolibana/backend/internal/domain/site"
	"github.com/bolibana/backend/internal/infrastructure/auth"
	"github.com/bolibana/backend/internal/infrastructure/cache"
	"github.com/bolibana/backend/internal/infrastructure/config"
	"github.com/bolibana/backend/internal/infrastructure/event"
	"github.com/bolibana/backend/internal/infrastructure/logger"
	"github.com/bolibana/backend/internal/infrastructure/persistence"
	"github.com/bolibana/backend/internal/interfaces/http/handler"
	"github.com/bolibana/backend/internal/interfaces/http/middleware"
	"github.com/bolibana/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	_ "github.com/bolibana/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			BoliBana Stock API
//	@version		1.0
//	@description	Multi-site inventory and point of sale backend for small retailers

//	@contact.name	API Support
//	@contact.url	https://github.com/bolibana/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

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

	log.Info("Starting BoliBana Stock backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	brandRepo := persistence.NewGormBrandRepository(db.DB)
	stockRepo := persistence.NewGormStockTransactionRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	siteRepo := persistence.NewGormSiteRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	planRepo := persistence.NewGormPlanRepository(db.DB)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(db.DB)
	activityRepo := persistence.NewGormActivityRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	dashboardRepo := persistence.NewGormDashboardRepository(db.DB)
	stockScope := persistence.NewGormStockTransactionScope(db.DB)
	salesScope := persistence.NewGormSalesTransactionScope(db.DB)

	// Token blacklist backed by Redis, with an in-process fallback so the
	// server still comes up when Redis is unreachable
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing token blacklist", zap.Error(err))
			}
		}()
	}

	// Dashboard cache is optional; nil disables caching
	var dashboardCache dashboardapp.Cache
	if cfg.Dashboard.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, dashboard cache disabled", zap.Error(err))
		} else {
			dashboardCache = redisCache
			defer func() {
				if err := redisCache.Close(); err != nil {
					log.Error("Error closing dashboard cache", zap.Error(err))
				}
			}()
		}
	}

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, siteRepo)
	siteService := siteapp.NewSiteService(siteRepo, planRepo)
	quotaService := subscriptionapp.NewQuotaService(subscriptionRepo, planRepo, siteRepo, productRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, brandRepo, quotaService)
	productService.SetBarcodePrefix(cfg.Barcode.DefaultPrefix)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	brandService := catalogapp.NewBrandService(brandRepo)
	stockService := stockapp.NewStockService(stockScope, stockRepo)
	saleService := salesapp.NewSaleService(salesScope, saleRepo)
	orderService := salesapp.NewOrderService(salesScope, orderRepo)
	planService := subscriptionapp.NewPlanService(planRepo)
	subscriptionService := subscriptionapp.NewSubscriptionService(subscriptionRepo, planRepo)
	activityService := activityapp.NewActivityService(activityRepo)
	notificationService := activityapp.NewNotificationService(notificationRepo)
	dashboardService := dashboardapp.NewDashboardService(
		dashboardRepo, stockRepo, saleRepo, quotaService, dashboardCache, cfg.Dashboard, log,
	)

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	// Activity recorder subscribes to everything and keeps the audit trail
	activityRecorder := activityapp.NewRecorder(activityRepo, log)
	eventBus.Subscribe(activityRecorder)

	// Stock below threshold -> notification for site staff
	lowStockHandler := activityapp.NewLowStockHandler(notificationRepo, log)
	eventBus.Subscribe(lowStockHandler)

	log.Info("Event handlers registered",
		zap.Strings("low_stock_events", lowStockHandler.EventTypes()),
	)

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	authService.SetEventPublisher(eventBus)
	userService.SetEventPublisher(eventBus)
	siteService.SetEventPublisher(eventBus)
	stockService.SetEventPublisher(eventBus)
	saleService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	siteHandler := handler.NewSiteHandler(siteService)
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	brandHandler := handler.NewBrandHandler(brandService)
	stockHandler := handler.NewStockHandler(stockService)
	saleHandler := handler.NewSaleHandler(saleService)
	orderHandler := handler.NewOrderHandler(orderService)
	planHandler := handler.NewPlanHandler(planService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService, quotaService)
	activityHandler := handler.NewActivityHandler(activityService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
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
	// 7. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoints (outside API versioning)
	engine.GET("/health", healthHandler(db, log))
	engine.GET("/healthz", systemHandler.Health)

	// Swagger documentation endpoint, gated by config
	swaggerGuard := middleware.SwaggerProtection(middleware.SwaggerConfig{
		Enabled:     cfg.Swagger.Enabled,
		RequireAuth: cfg.Swagger.RequireAuth,
		AllowedIPs:  cfg.Swagger.AllowedIPs,
	}, middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	}))
	engine.GET("/swagger/*any", swaggerGuard, ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	// Configure skip paths for public endpoints
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Site resolution for site-scoped route groups. The validator checks
	// the site exists and is not suspended before any handler runs.
	siteMW := middleware.SiteMiddlewareWithConfig(middleware.SiteMiddlewareConfig{
		Required:  true,
		Validator: &dbSiteValidator{repo: siteRepo},
		Logger:    log,
	})

	// Authentication (login and refresh are public, the rest require a token)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.Use(middleware.AuthRateLimit(authLimiter))
		log.Info("Auth rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow),
		)
	}
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.Me)
	authRoutes.PUT("/password", authHandler.ChangePassword)

	// Site administration (platform-level, superuser only)
	siteRoutes := router.NewDomainGroup("sites", "/sites")
	siteRoutes.Use(middleware.RequireSuperuser())
	siteRoutes.POST("", siteHandler.Create)
	siteRoutes.GET("", siteHandler.List)
	siteRoutes.GET("/:id", siteHandler.GetByID)
	siteRoutes.PUT("/:id", siteHandler.Update)
	siteRoutes.PUT("/:id/config", siteHandler.UpdateConfig)
	siteRoutes.PUT("/:id/plan", siteHandler.AssignPlan)
	siteRoutes.POST("/:id/activate", siteHandler.Activate)
	siteRoutes.POST("/:id/suspend", siteHandler.Suspend)

	// Own-site configuration (site-scoped; writes require a site admin)
	ownSiteRoutes := router.NewDomainGroup("site", "/site")
	ownSiteRoutes.Use(siteMW)
	ownSiteRoutes.GET("", siteHandler.GetMySite)
	ownSiteRoutes.PUT("/config", middleware.RequireSiteAdmin(), siteHandler.UpdateMyConfig)

	// Plan catalog (reads are open to any authenticated user, writes are
	// superuser only)
	planRoutes := router.NewDomainGroup("plans", "/plans")
	planRoutes.GET("", planHandler.List)
	planRoutes.POST("", middleware.RequireSuperuser(), planHandler.Create)
	planRoutes.PUT("/:id", middleware.RequireSuperuser(), planHandler.Update)
	planRoutes.DELETE("/:id", middleware.RequireSuperuser(), planHandler.Retire)

	// User management (site-scoped, site admin only)
	userRoutes := router.NewDomainGroup("users", "/users")
	userRoutes.Use(siteMW, middleware.RequireSiteAdmin())
	userRoutes.POST("", userHandler.Create)
	userRoutes.GET("", userHandler.List)
	userRoutes.GET("/:id", userHandler.GetByID)
	userRoutes.PUT("/:id", userHandler.Update)
	userRoutes.DELETE("/:id", userHandler.Delete)
	userRoutes.POST("/:id/grant-admin", userHandler.GrantSiteAdmin)
	userRoutes.POST("/:id/revoke-admin", userHandler.RevokeSiteAdmin)
	userRoutes.POST("/:id/activate", userHandler.Activate)
	userRoutes.POST("/:id/deactivate", userHandler.Deactivate)
	userRoutes.POST("/:id/reset-password", userHandler.ResetPassword)

	// Catalog (products, categories, brands)
	productRoutes := router.NewDomainGroup("products", "/products")
	productRoutes.Use(siteMW)
	productRoutes.POST("", productHandler.Create)
	productRoutes.GET("", productHandler.List)
	productRoutes.GET("/scan", productHandler.Scan)
	productRoutes.GET("/excess", productHandler.ListExcess)
	productRoutes.GET("/:id", productHandler.GetByID)
	productRoutes.PUT("/:id", productHandler.Update)
	productRoutes.DELETE("/:id", productHandler.Delete)
	productRoutes.POST("/:id/activate", productHandler.Activate)
	productRoutes.POST("/:id/deactivate", productHandler.Deactivate)
	productRoutes.POST("/:id/barcodes", productHandler.AddBarcode)
	productRoutes.POST("/:id/barcodes/generate", productHandler.GenerateBarcode)
	productRoutes.DELETE("/:id/barcodes/:barcodeId", productHandler.RemoveBarcode)
	productRoutes.PUT("/:id/barcodes/:barcodeId/primary", productHandler.SetPrimaryBarcode)

	categoryRoutes := router.NewDomainGroup("categories", "/categories")
	categoryRoutes.Use(siteMW)
	categoryRoutes.POST("", categoryHandler.Create)
	categoryRoutes.GET("", categoryHandler.List)
	categoryRoutes.GET("/:id", categoryHandler.GetByID)
	categoryRoutes.GET("/:id/children", categoryHandler.Children)
	categoryRoutes.PUT("/:id", categoryHandler.Update)
	categoryRoutes.DELETE("/:id", categoryHandler.Delete)

	brandRoutes := router.NewDomainGroup("brands", "/brands")
	brandRoutes.Use(siteMW)
	brandRoutes.POST("", brandHandler.Create)
	brandRoutes.GET("", brandHandler.List)
	brandRoutes.GET("/:id", brandHandler.GetByID)
	brandRoutes.PUT("/:id", brandHandler.Update)
	brandRoutes.DELETE("/:id", brandHandler.Delete)

	// Stock ledger
	stockRoutes := router.NewDomainGroup("stock", "/stock")
	stockRoutes.Use(siteMW)
	stockRoutes.POST("/transactions", stockHandler.Record)
	stockRoutes.GET("/transactions", stockHandler.List)
	stockRoutes.GET("/transactions/:id", stockHandler.GetByID)
	stockRoutes.POST("/adjustments", stockHandler.Adjust)

	// Point of sale
	saleRoutes := router.NewDomainGroup("sales", "/sales")
	saleRoutes.Use(siteMW)
	saleRoutes.POST("", saleHandler.Create)
	saleRoutes.GET("", saleHandler.List)
	saleRoutes.GET("/:id", saleHandler.GetByID)
	saleRoutes.POST("/:id/items", saleHandler.AddItem)
	saleRoutes.PUT("/:id/items/:itemId", saleHandler.UpdateItem)
	saleRoutes.DELETE("/:id/items/:itemId", saleHandler.RemoveItem)
	saleRoutes.POST("/:id/complete", saleHandler.Complete)
	saleRoutes.POST("/:id/cancel", saleHandler.Cancel)

	// Supplier orders
	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.Use(siteMW)
	orderRoutes.POST("", orderHandler.Create)
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/:id", orderHandler.GetByID)
	orderRoutes.PUT("/:id", orderHandler.Update)
	orderRoutes.DELETE("/:id", orderHandler.Delete)
	orderRoutes.POST("/:id/items", orderHandler.AddItem)
	orderRoutes.DELETE("/:id/items/:itemId", orderHandler.RemoveItem)
	orderRoutes.POST("/:id/confirm", orderHandler.Confirm)
	orderRoutes.POST("/:id/deliver", orderHandler.Deliver)
	orderRoutes.POST("/:id/cancel", orderHandler.Cancel)

	// Subscriptions and quota
	subscriptionRoutes := router.NewDomainGroup("subscriptions", "/subscriptions")
	subscriptionRoutes.Use(siteMW)
	subscriptionRoutes.POST("", subscriptionHandler.Subscribe)
	subscriptionRoutes.GET("", subscriptionHandler.List)
	subscriptionRoutes.GET("/quota", subscriptionHandler.Quota)
	subscriptionRoutes.POST("/:id/pay", subscriptionHandler.MarkPaid)
	subscriptionRoutes.DELETE("/:id", subscriptionHandler.Cancel)

	// Dashboard
	dashboardRoutes := router.NewDomainGroup("dashboard", "/dashboard")
	dashboardRoutes.Use(siteMW)
	dashboardRoutes.GET("", dashboardHandler.Get)

	// Activity log and notifications
	activityRoutes := router.NewDomainGroup("activities", "/activities")
	activityRoutes.Use(siteMW)
	activityRoutes.GET("", activityHandler.List)
	activityRoutes.GET("/entity/:entityId", activityHandler.ListForEntity)

	notificationRoutes := router.NewDomainGroup("notifications", "/notifications")
	notificationRoutes.Use(siteMW)
	notificationRoutes.GET("", notificationHandler.List)
	notificationRoutes.GET("/unread-count", notificationHandler.CountUnread)
	notificationRoutes.POST("/:id/read", notificationHandler.MarkRead)

	// System info (public)
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(authRoutes).
		Register(siteRoutes).
		Register(ownSiteRoutes).
		Register(planRoutes).
		Register(userRoutes).
		Register(productRoutes).
		Register(categoryRoutes).
		Register(brandRoutes).
		Register(stockRoutes).
		Register(saleRoutes).
		Register(orderRoutes).
		Register(subscriptionRoutes).
		Register(dashboardRoutes).
		Register(activityRoutes).
		Register(notificationRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
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

// dbSiteValidator resolves sites from the database for the site middleware.
type dbSiteValidator struct {
	repo site.Repository
}

func (v *dbSiteValidator) ValidateSite(siteID string) (*middleware.SiteInfo, error) {
	id, err := uuid.Parse(siteID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := v.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &middleware.SiteInfo{
		ID:       s.ID,
		Name:     s.Name,
		IsActive: s.IsActive(),
	}, nil
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
