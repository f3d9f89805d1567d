package router // package router wires middleware and HTTP routes

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/storage-booking/internal/config"
	"github.com/iliyamo/storage-booking/internal/handler"
	"github.com/iliyamo/storage-booking/internal/middleware"
)

// Handlers groups every HTTP handler the API exposes.
type Handlers struct {
	Units        *handler.UnitHandler
	Bookings     *handler.BookingHandler
	Content      *handler.ContentHandler
	Integrations *handler.IntegrationHandler
	Payments     *handler.PaymentHandler
	Customers    *handler.CustomerHandler
	Analytics    *handler.AnalyticsHandler
}

// Options configures the middleware chain.  A nil Redis client disables
// the response cache and the rate limiter.
type Options struct {
	CORSOrigins []string
	Cache       config.CacheConfig
	RateLimit   config.RateLimitConfig
	Redis       *redis.Client
}

// New builds the Echo instance with the full middleware chain and every
// route registered.
func New(opts Options, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.ErrorHandler

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.SessionIdentity())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: origins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, middleware.SessionHeader},
	}))

	RegisterRoutes(e)

	api := e.Group("/api",
		middleware.NewTokenBucket(opts.RateLimit, opts.Redis),
		middleware.NewRedisCache(opts.Cache, opts.Redis),
	)
	api.GET("/", handler.Root)
	RegisterCatalog(api, h.Units, h.Bookings)
	RegisterAdmin(api, h.Units, h.Content, h.Integrations)
	RegisterCustomer(api, h.Customers, h.Payments, h.Analytics)
	return e
}

// RegisterRoutes registers routes outside /api.  Only the health check
// lives there so probes skip rate limiting and caching.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}
