package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/journal"
)

// OutsetHandler maneja las salidas de mercancía (protegido).
type OutsetHandler struct {
	journal *journal.MovementJournal
}

// NewOutsetHandler construye el handler de salidas.
func NewOutsetHandler(j *journal.MovementJournal) *OutsetHandler {
	return &OutsetHandler{journal: j}
}

// Create godoc
// @Summary      Registrar salida de mercancía
// @Description  Resta quantity del stock del SKU (falla con 409 si no
//               alcanza) y persiste el registro con cliente y factura.
// @Tags         outset
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOutsetRequest  true  "sku, quantity, customerName, invoiceNo, bin opcional"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/outset [post]
func (h *OutsetHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOutsetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	outset, item, err := h.journal.RecordOutset(c.Context(), journal.OutsetInput{
		SKU:          in.SKU,
		Quantity:     in.Quantity,
		CustomerName: in.CustomerName,
		InvoiceNo:    in.InvoiceNo,
		Bin:          in.Bin,
		Actor:        Actor(c),
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":       "salida registrada",
		"outset":        dto.ToOutsetResponse(outset),
		"inventoryItem": dto.ToStockItemResponse(item),
	})
}

// List godoc
// @Summary      Listar salidas recientes
// @Tags         outset
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de registros (default 50)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}   dto.OutsetResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/outset [get]
func (h *OutsetHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	outsets, err := h.journal.ListOutsets(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]*dto.OutsetResponse, 0, len(outsets))
	for _, o := range outsets {
		out = append(out, dto.ToOutsetResponse(o))
	}
	return c.JSON(out)
}
