package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/ventas-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del tablero.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats devuelve los agregados del tablero.
// GET /api/dashboard/stats
//
// Respuesta: DashboardStatsDTO (monthly_sales, sales_count, total_stock, product_count,
// inventory_value, low_stock_count, date_label). Se sirve desde caché mientras esté vigente.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.UserContext())
	if err != nil {
		return writeError(c, err, genericFailure)
	}
	return c.JSON(stats)
}
