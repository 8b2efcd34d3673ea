package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación de AuditRepository sobre PostgreSQL (usable con
// pool o tx). La tabla es append-only: no hay Update ni Delete.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create persiste una entrada de auditoría.
func (r *AuditRepo) Create(ctx context.Context, entry *entity.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO audit_entries (id, action_type, collection_name, document_id, old_quantity, new_quantity, user_id, user_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.ActionType, entry.CollectionName, entry.DocumentID,
		entry.Changes.OldQuantity, entry.Changes.NewQuantity,
		entry.User.ID, entry.User.Name, entry.CreatedAt,
	)
	if err != nil {
		return wrapErr("create audit entry", err)
	}
	return nil
}

// List devuelve entradas de la más reciente a la más antigua.
func (r *AuditRepo) List(ctx context.Context, limit, offset int) ([]*entity.AuditEntry, error) {
	query := `
		SELECT id, action_type, collection_name, document_id, old_quantity, new_quantity, user_id, user_name, created_at
		FROM audit_entries
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, wrapErr("list audit entries", err)
	}
	defer rows.Close()
	return scanAuditEntries(rows)
}

// ListByDocument devuelve la historia completa de un documento, más antigua
// primero (orden de reconstrucción).
func (r *AuditRepo) ListByDocument(ctx context.Context, documentID string) ([]*entity.AuditEntry, error) {
	query := `
		SELECT id, action_type, collection_name, document_id, old_quantity, new_quantity, user_id, user_name, created_at
		FROM audit_entries
		WHERE document_id = $1
		ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, wrapErr("list audit by document", err)
	}
	defer rows.Close()
	return scanAuditEntries(rows)
}

func scanAuditEntries(rows pgx.Rows) ([]*entity.AuditEntry, error) {
	var list []*entity.AuditEntry
	for rows.Next() {
		var e entity.AuditEntry
		if err := rows.Scan(&e.ID, &e.ActionType, &e.CollectionName, &e.DocumentID,
			&e.Changes.OldQuantity, &e.Changes.NewQuantity,
			&e.User.ID, &e.User.Name, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
