package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/sales"
)

// SaleHandler registro y consulta de ventas.
type SaleHandler struct {
	create *sales.CreateSaleUseCase
	query  *sales.QueryUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(create *sales.CreateSaleUseCase, query *sales.QueryUseCase) *SaleHandler {
	return &SaleHandler{create: create, query: query}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Inserta la venta, una línea por item y descuenta el stock en una sola transacción.
// @Description  El usuario que registra se toma del token.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "items, totales y método de pago"
// @Success      201   {object}  dto.SaleCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.create.Execute(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err, saleFailure)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/sales
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.query.List(c.UserContext(), pageFrom(c))
	if err != nil {
		return writeError(c, err, genericFailure)
	}
	return c.JSON(out)
}

// GetByID GET /api/sales/:id con sus líneas.
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.query.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, genericFailure)
	}
	return c.JSON(out)
}

// Receipt GET /api/sales/:id/receipt devuelve el comprobante en PDF.
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	pdf, sale, err := h.query.Receipt(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, genericFailure)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", sale.SaleNumber+".pdf"))
	return c.Send(pdf)
}
