package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del diario de movimientos sobre PostgreSQL
// (usable con pool o tx). Dos tablas append-only: insets y outsets.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// CreateInset persiste un registro de entrada.
func (r *MovementRepo) CreateInset(ctx context.Context, inset *entity.Inset) error {
	if inset.ID == "" {
		inset.ID = uuid.New().String()
	}
	query := `
		INSERT INTO insets (id, sku, name, order_no, bin, quantity, user_id, user_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		inset.ID, inset.SKU, inset.Name, inset.OrderNo, inset.Bin, inset.Quantity,
		inset.User.ID, inset.User.Name, inset.CreatedAt,
	)
	if err != nil {
		return wrapErr("create inset", err)
	}
	return nil
}

// CreateOutset persiste un registro de salida.
func (r *MovementRepo) CreateOutset(ctx context.Context, outset *entity.Outset) error {
	if outset.ID == "" {
		outset.ID = uuid.New().String()
	}
	query := `
		INSERT INTO outsets (id, sku, name, bin, quantity, invoice_no, customer_name, user_id, user_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		outset.ID, outset.SKU, outset.Name, outset.Bin, outset.Quantity,
		outset.InvoiceNo, outset.CustomerName,
		outset.User.ID, outset.User.Name, outset.CreatedAt,
	)
	if err != nil {
		return wrapErr("create outset", err)
	}
	return nil
}

// ListInsets lista entradas de la más reciente a la más antigua.
func (r *MovementRepo) ListInsets(ctx context.Context, limit, offset int) ([]*entity.Inset, error) {
	query := `
		SELECT id, sku, name, order_no, bin, quantity, user_id, user_name, created_at
		FROM insets
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, wrapErr("list insets", err)
	}
	defer rows.Close()
	var list []*entity.Inset
	for rows.Next() {
		var in entity.Inset
		if err := rows.Scan(&in.ID, &in.SKU, &in.Name, &in.OrderNo, &in.Bin, &in.Quantity,
			&in.User.ID, &in.User.Name, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inset: %w", err)
		}
		list = append(list, &in)
	}
	return list, rows.Err()
}

// ListOutsets lista salidas de la más reciente a la más antigua.
func (r *MovementRepo) ListOutsets(ctx context.Context, limit, offset int) ([]*entity.Outset, error) {
	query := `
		SELECT id, sku, name, bin, quantity, invoice_no, customer_name, user_id, user_name, created_at
		FROM outsets
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, wrapErr("list outsets", err)
	}
	defer rows.Close()
	var list []*entity.Outset
	for rows.Next() {
		var out entity.Outset
		if err := rows.Scan(&out.ID, &out.SKU, &out.Name, &out.Bin, &out.Quantity,
			&out.InvoiceNo, &out.CustomerName,
			&out.User.ID, &out.User.Name, &out.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outset: %w", err)
		}
		list = append(list, &out)
	}
	return list, rows.Err()
}
