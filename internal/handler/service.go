package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cleaning-service-api/internal/model"
)

// Catalog lists the cleaning-service reference data.
type Catalog interface {
	List(ctx context.Context) ([]model.Service, error)
}

// ServiceHandler serves the public, read-only service catalog.
type ServiceHandler struct {
	Services Catalog
}

func NewServiceHandler(s Catalog) *ServiceHandler { return &ServiceHandler{Services: s} }

// List returns every catalog entry ordered by name. No authentication:
// the catalog is public reference data.
func (h *ServiceHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	services, err := h.Services.List(ctx)
	if err != nil {
		c.Logger().Errorf("services: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	return c.JSON(http.StatusOK, services)
}
