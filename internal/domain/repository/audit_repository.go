package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// AuditRepository define el puerto de la bitácora de auditoría (append-only).
// Create debe ejecutarse en la misma transacción que la mutación que registra.
type AuditRepository interface {
	Create(ctx context.Context, entry *entity.AuditEntry) error
	// List devuelve entradas de la más reciente a la más antigua.
	List(ctx context.Context, limit, offset int) ([]*entity.AuditEntry, error)
	// ListByDocument devuelve la historia de un documento (reconstrucción).
	ListByDocument(ctx context.Context, documentID string) ([]*entity.AuditEntry, error)
}
