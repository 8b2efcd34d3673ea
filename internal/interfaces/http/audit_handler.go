package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// AuditHandler consulta de la bitácora de auditoría (protegido).
type AuditHandler struct {
	uc *audit.AuditLog
}

// NewAuditHandler construye el handler de auditoría.
func NewAuditHandler(uc *audit.AuditLog) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Listar entradas de auditoría
// @Description  Bitácora append-only de mutaciones, de la más reciente a la
//               más antigua. document_id filtra la historia de un documento.
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        document_id  query  string  false  "filtrar por documento"
// @Param        limit        query  int     false  "máximo de registros (default 50)"
// @Param        offset       query  int     false  "desplazamiento"
// @Success      200  {array}   dto.AuditEntryResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/audit [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	if docID := c.Query("document_id"); docID != "" {
		list, err := h.uc.ListByDocument(c.Context(), docID)
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(toAuditResponses(list))
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toAuditResponses(list))
}

func toAuditResponses(entries []*entity.AuditEntry) []*dto.AuditEntryResponse {
	out := make([]*dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ToAuditEntryResponse(e))
	}
	return out
}
