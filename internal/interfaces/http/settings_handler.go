package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
)

// SettingsHandler configuración general clave/valor.
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get GET /api/config → {clave: valor}
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.All(c.UserContext())
	if err != nil {
		return writeError(c, err, genericFailure)
	}
	return c.JSON(out)
}

// Set POST /api/config {config_key, config_value}
func (h *SettingsHandler) Set(c *fiber.Ctx) error {
	var in dto.SettingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.Set(c.UserContext(), in); err != nil {
		return writeError(c, err, genericFailure)
	}
	return c.JSON(fiber.Map{"message": "Configuración guardada"})
}
