package audit

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// AuditLog consultas de solo lectura sobre la bitácora. Las escrituras no
// pasan por aquí: cada caso de uso escribe su entrada dentro de su propia
// transacción.
type AuditLog struct {
	repo repository.AuditRepository
}

// NewAuditLog construye el caso de uso de consulta de auditoría.
func NewAuditLog(repo repository.AuditRepository) *AuditLog {
	return &AuditLog{repo: repo}
}

// List devuelve entradas de la más reciente a la más antigua.
func (uc *AuditLog) List(ctx context.Context, limit, offset int) ([]*entity.AuditEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.List(ctx, limit, offset)
}

// ListByDocument devuelve la historia completa de un documento, de la más
// antigua a la más reciente (orden de reconstrucción).
func (uc *AuditLog) ListByDocument(ctx context.Context, documentID string) ([]*entity.AuditEntry, error) {
	return uc.repo.ListByDocument(ctx, documentID)
}
