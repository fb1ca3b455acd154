package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/coach-seat-reservation/internal/config"
	"github.com/iliyamo/coach-seat-reservation/internal/handler"
	"github.com/iliyamo/coach-seat-reservation/internal/middleware"
)

// Deps carries everything the routes need.  Redis may be nil, in which
// case caching and rate limiting are disabled.
type Deps struct {
	Coach     *handler.CoachHandler
	Auth      *handler.AuthHandler
	JWTSecret string
	Redis     *redis.Client
	Cache     config.CacheConfig
	Limit     config.BookingLimitConfig
	CORS      config.CORSConfig
}

// RegisterBase installs the global middleware (request log, panic
// recovery, CORS whitelist) and the health check.
func RegisterBase(e *echo.Echo, cors config.CORSConfig) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cors.AllowOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.GET("/healthz", handler.Health)
}

// RegisterRoutes registers the coach API under /v1.
//
//	GET  /v1/coach          public, cached
//	GET  /v1/coach/seats    public, cached
//	POST /v1/book           public, rate limited, purges cache
//	POST /v1/auth/login     operator login
//	GET  /v1/bookings       operator
//	POST /v1/reset          operator, purges cache
//	POST /v1/randomfill     operator, purges cache
func RegisterRoutes(e *echo.Echo, d Deps) {
	RegisterBase(e, d.CORS)

	cache := middleware.NewRedisCache(d.Cache, d.Redis)
	purge := middleware.InvalidateCache(d.Cache, d.Redis)
	limit := middleware.NewTokenBucket(d.Limit, d.Redis)
	operator := middleware.OperatorOnly(d.JWTSecret)

	// Middleware is attached per route: a group with its own middleware
	// would also answer unknown /v1 paths with 401 instead of 404.
	v1 := e.Group("/v1")
	v1.GET("/coach", d.Coach.GetCoach, cache)
	v1.GET("/coach/seats", d.Coach.GetSeatMap, cache)
	v1.POST("/book", d.Coach.Book, limit, purge)
	v1.POST("/auth/login", d.Auth.Login, limit)

	v1.GET("/bookings", d.Coach.ListBookings, operator)
	v1.POST("/reset", d.Coach.Reset, operator, purge)
	v1.POST("/randomfill", d.Coach.RandomFill, operator, purge)
}
