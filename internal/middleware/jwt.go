package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "errors"   // sentinel comparison for token failures
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/cleaning-service-api/internal/utils"
)

// userIDKey is the context key under which the authenticated user's id
// is stored for handlers.
const userIDKey = "user_id"

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject into the request context. The provided
// secret must match the one used when issuing tokens. Every
// booking-mutating route is wrapped by this middleware, so handlers can
// rely on UserID(c) returning a verified identity. The three failure
// modes (missing token, malformed token, expired token) all answer 401
// but carry distinct error messages.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            uid, err := utils.ParseAccessToken(secret, raw)
            if err != nil {
                if errors.Is(err, utils.ErrTokenExpired) {
                    return c.JSON(http.StatusUnauthorized, echo.Map{"message": "token expired"})
                }
                return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid token"})
            }

            c.Set(userIDKey, uid)
            return next(c)
        }
    }
}

// UserID returns the authenticated user's id set by JWTAuth, or 0 when
// the request is unauthenticated.
func UserID(c echo.Context) uint64 {
    if v, ok := c.Get(userIDKey).(uint64); ok {
        return v
    }
    return 0
}
