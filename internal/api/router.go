package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/anantha-foods/ordering-system/internal/api/handler"
	"github.com/anantha-foods/ordering-system/internal/api/middleware"
	"github.com/anantha-foods/ordering-system/internal/core/domain"
	"github.com/anantha-foods/ordering-system/internal/core/ports"
	"github.com/anantha-foods/ordering-system/internal/core/service"
	"github.com/anantha-foods/ordering-system/internal/infrastructure/config"
	mongorepo "github.com/anantha-foods/ordering-system/internal/infrastructure/db/mongo"
	redisinfra "github.com/anantha-foods/ordering-system/internal/infrastructure/db/redis"
	"github.com/anantha-foods/ordering-system/internal/infrastructure/geocode"
	"github.com/anantha-foods/ordering-system/internal/infrastructure/payment"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The notifier is constructed by the caller because its worker pool lifecycle
// is tied to the process context, not the router.
func NewRouter(db *mongodriver.Database, rdb *redis.Client, cfg *config.Config, notifier ports.Notifier, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("ordering"))

	// --- Dependencies ---
	home := domain.Coordinate{Lat: cfg.Home.Lat, Lon: cfg.Home.Lon}

	authRepo := mongorepo.NewAuthRepository(db)
	productRepo := mongorepo.NewProductRepository(db)
	cityRepo := mongorepo.NewCityRepository(db)
	orderRepo := mongorepo.NewOrderRepository(db)
	suggestionRepo := mongorepo.NewSuggestionRepository(db)

	geocoder := redisinfra.NewGeocodeCache(rdb, geocode.NewClient(geocode.Config{
		BaseURL: cfg.Geocoder.BaseURL,
		Timeout: cfg.Geocoder.Timeout,
	}, log), log)

	gateway := payment.NewClient(payment.Config{
		KeyID:     cfg.Payment.KeyID,
		KeySecret: cfg.Payment.KeySecret,
	}, log)

	authService := service.NewAuthService(authRepo, cfg.JWTSecret, 24*time.Hour)
	pricingService := service.NewPricingService(cityRepo, geocoder, home, log)
	orderService := service.NewOrderService(orderRepo, productRepo, suggestionRepo, pricingService, notifier, log)
	cityService := service.NewCityService(cityRepo, orderRepo, suggestionRepo, geocoder, notifier, home, log)
	paymentService := service.NewPaymentService(orderRepo, gateway, cfg.Payment.KeySecret, log)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productRepo)
	orderHandler := handler.NewOrderHandler(orderService)
	cityHandler := handler.NewCityHandler(cityService)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Public storefront routes ---
	v1 := e.Group("/v1")
	v1.GET("/products", productHandler.List)
	v1.GET("/products/:id", productHandler.Get)
	v1.GET("/locations", cityHandler.ListLocations)
	v1.POST("/delivery/custom-city-quote", cityHandler.CustomCityQuote)
	v1.POST("/orders", orderHandler.Create)
	v1.GET("/orders/:order_id", orderHandler.Get)
	v1.POST("/payments/order", paymentHandler.Create)
	v1.POST("/payments/verify", paymentHandler.Verify)

	// --- Admin routes ---
	admin := v1.Group("/admin", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	admin.PUT("/locations", cityHandler.UpsertLocation)
	admin.DELETE("/locations/:city", cityHandler.DeleteLocation)
	admin.GET("/cities/pending", cityHandler.PendingCities)
	admin.POST("/cities/approve", cityHandler.ApproveCity)
	admin.PATCH("/orders/:order_id/status", orderHandler.UpdateStatus)
	admin.PUT("/products/:id/inventory", productHandler.SetInventory)

	return e
}
