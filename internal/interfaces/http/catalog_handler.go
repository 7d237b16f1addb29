package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
)

// CatalogHandler categorías y proveedores (solo lectura).
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Categories GET /api/categories
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.Categories(c.UserContext())
	if err != nil {
		return writeError(c, err, genericFailure)
	}
	return c.JSON(out)
}

// Suppliers GET /api/suppliers (solo activos)
func (h *CatalogHandler) Suppliers(c *fiber.Ctx) error {
	out, err := h.uc.Suppliers(c.UserContext())
	if err != nil {
		return writeError(c, err, genericFailure)
	}
	return c.JSON(out)
}
