package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/query"
)

// InventoryHandler maneja las peticiones HTTP de inventario (protegido).
type InventoryHandler struct {
	ledger  *ledger.StockLedger
	queries *query.InventoryQueryService
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(l *ledger.StockLedger, q *query.InventoryQueryService) *InventoryHandler {
	return &InventoryHandler{ledger: l, queries: q}
}

// GetInventory godoc
// @Summary      Listar inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        order  query  string  false  "sku (default) o recent"
// @Success      200  {array}   dto.StockItemResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) GetInventory(c *fiber.Ctx) error {
	items, err := h.queries.ListAll(c.Context(), c.Query("order"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.ToStockItemResponses(items))
}

// UpdateQuantity godoc
// @Summary      Ajustar cantidad de un SKU
// @Description  change positivo suma, negativo resta (con piso en cero);
//               bin no vacío reubica el item. Ajuste directo: no genera
//               registro en el diario de movimientos.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateQuantityRequest  true  "sku, change, bin"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/update [post]
func (h *InventoryHandler) UpdateQuantity(c *fiber.Ctx) error {
	var in dto.UpdateQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.ledger.ApplyDelta(c.Context(), ledger.DeltaInput{
		SKU:   in.SKU,
		Delta: in.Change,
		Bin:   in.Bin,
		Actor: Actor(c),
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.ToStockItemResponse(item))
}

// GetStats godoc
// @Summary      Contadores del tablero de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "umbral de stock bajo (default: configurado)"
// @Success      200  {object}  dto.InventoryStatsResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory/stats [get]
func (h *InventoryHandler) GetStats(c *fiber.Ctx) error {
	lowStock, err := h.queries.LowStockCount(c.Context(), int64(c.QueryInt("threshold", 0)))
	if err != nil {
		return mapDomainError(c, err)
	}
	bins, err := h.queries.DistinctBinCount(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.InventoryStatsResponse{
		LowStockCount: lowStock,
		DistinctBins:  bins,
	})
}

// Reconcile godoc
// @Summary      Verificar consistencia libro/diario
// @Description  Compara la cantidad de cada SKU contra entradas − salidas del
//               diario y devuelve las discrepancias encontradas.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory/reconcile [get]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	findings, err := h.queries.Reconcile(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.ReconcileFindingDTO, 0, len(findings))
	for _, f := range findings {
		out = append(out, dto.ReconcileFindingDTO{
			SKU:             f.SKU,
			LedgerQuantity:  f.LedgerQuantity,
			JournalQuantity: f.JournalQuantity,
		})
	}
	return c.JSON(fiber.Map{
		"consistent": len(out) == 0,
		"findings":   out,
	})
}
