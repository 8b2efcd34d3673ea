package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/journal"
)

// InsetHandler maneja las entradas de mercancía (protegido).
type InsetHandler struct {
	journal *journal.MovementJournal
}

// NewInsetHandler construye el handler de entradas.
func NewInsetHandler(j *journal.MovementJournal) *InsetHandler {
	return &InsetHandler{journal: j}
}

// Create godoc
// @Summary      Registrar entrada de mercancía
// @Description  Suma quantity al stock del SKU y persiste el registro
//               histórico con el usuario que lo recibió, en una transacción.
// @Tags         inset
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInsetRequest  true  "sku, orderNo, bin, quantity, productName"
// @Success      201   {object}  dto.CreateInsetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/inset [post]
func (h *InsetHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInsetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inset, item, err := h.journal.RecordInset(c.Context(), journal.InsetInput{
		SKU:      in.SKU,
		OrderNo:  in.OrderNo,
		Bin:      in.Bin,
		Quantity: in.Quantity,
		Name:     in.ProductName,
		Actor:    Actor(c),
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateInsetResponse{
		Message:       "entrada registrada",
		Inset:         dto.ToInsetResponse(inset),
		InventoryItem: dto.ToStockItemResponse(item),
	})
}

// List godoc
// @Summary      Listar entradas recientes
// @Tags         inset
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de registros (default 50)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}   dto.InsetResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inset [get]
func (h *InsetHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	insets, err := h.journal.ListInsets(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]*dto.InsetResponse, 0, len(insets))
	for _, in := range insets {
		out = append(out, dto.ToInsetResponse(in))
	}
	return c.JSON(out)
}
