package router // package router defines how HTTP routes are registered for the API

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cleaning-service-api/internal/config"
	"github.com/iliyamo/cleaning-service-api/internal/handler"
	"github.com/iliyamo/cleaning-service-api/internal/middleware"
)

// New builds the Echo instance with the full route table and the
// cross-cutting middleware. Routes:
//
//	POST /api/auth/register        public
//	POST /api/auth/login           public
//	GET  /api/auth/me              bearer
//	GET  /api/services             public, Redis-cached
//	GET  /api/bookings             bearer
//	POST /api/bookings             bearer
//	PUT  /api/bookings/:id         bearer
//	DELETE /api/bookings/:id       bearer (soft cancel)
//	DELETE /api/bookings/permanently/:id  bearer (hard delete)
//	GET  /healthz                  public
//
// Unknown routes answer a generic 404 and uncaught handler errors a
// generic 500; neither leaks internal detail.
func New(cfg config.Config, rdb *redis.Client, a *handler.AuthHandler, s *handler.ServiceHandler, b *handler.BookingHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	e.GET("/healthz", handler.Health)

	// Public auth operations.
	auth := e.Group("/api/auth")
	auth.POST("/register", a.Register)
	auth.POST("/login", a.Login)
	auth.GET("/me", a.Me, middleware.JWTAuth(cfg.JWTSecret))

	// Public read-only catalog, cached in Redis.
	e.GET("/api/services", s.List, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	// Booking lifecycle, all bearer-authenticated.
	bookings := e.Group("/api/bookings", middleware.JWTAuth(cfg.JWTSecret))
	bookings.GET("", b.List)
	bookings.POST("", b.Create)
	bookings.PUT("/:id", b.Update)
	bookings.DELETE("/:id", b.Cancel)
	bookings.DELETE("/permanently/:id", b.Purge)

	return e
}

// errorHandler genericizes everything Echo itself raises: unknown routes
// become a plain 404 and anything else a plain 500, with the original
// error logged server-side only.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if he, ok := err.(*echo.HTTPError); ok && he.Code == http.StatusNotFound {
		_ = c.JSON(http.StatusNotFound, echo.Map{"message": "Route not found"})
		return
	}
	if he, ok := err.(*echo.HTTPError); ok && he.Code == http.StatusMethodNotAllowed {
		_ = c.JSON(http.StatusNotFound, echo.Map{"message": "Route not found"})
		return
	}
	c.Logger().Errorf("unhandled error: %v", err)
	_ = c.JSON(http.StatusInternalServerError, echo.Map{"message": "Something went wrong!"})
}
