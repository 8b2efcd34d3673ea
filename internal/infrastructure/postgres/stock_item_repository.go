package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL
// (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

// Get obtiene el item por SKU; nil, nil si no existe.
func (r *StockItemRepo) Get(ctx context.Context, sku string) (*entity.StockItem, error) {
	query := `
		SELECT id, sku, name, bin, quantity, created_at, updated_at
		FROM stock_items WHERE sku = $1`
	var s entity.StockItem
	err := r.q.QueryRow(ctx, query, sku).Scan(
		&s.ID, &s.SKU, &s.Name, &s.Bin, &s.Quantity, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get stock item", err)
	}
	return &s, nil
}

// ApplyDelta muta la cantidad en una sola sentencia condicional: nunca
// leer-luego-escribir, así dos peticiones concurrentes sobre el mismo SKU
// serializan en la fila y no se pierden actualizaciones.
//   - delta > 0: upsert; crea el item si el SKU no existe.
//   - delta < 0: update con piso en cero; sin fila afectada (SKU inexistente
//     o cantidad insuficiente) retorna domain.ErrInsufficientStock.
//
// bin/name vacíos conservan el valor actual (NULLIF + COALESCE).
func (r *StockItemRepo) ApplyDelta(ctx context.Context, sku string, delta int64, bin, name string) (*entity.StockItem, error) {
	if delta > 0 {
		query := `
			INSERT INTO stock_items (id, sku, name, bin, quantity, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, now(), now())
			ON CONFLICT (sku) DO UPDATE SET
				quantity   = stock_items.quantity + EXCLUDED.quantity,
				name       = COALESCE(NULLIF(EXCLUDED.name, ''), stock_items.name),
				bin        = COALESCE(NULLIF(EXCLUDED.bin, ''), stock_items.bin),
				updated_at = now()
			RETURNING id, sku, name, bin, quantity, created_at, updated_at`
		var s entity.StockItem
		err := r.q.QueryRow(ctx, query, uuid.New().String(), sku, name, bin, delta).Scan(
			&s.ID, &s.SKU, &s.Name, &s.Bin, &s.Quantity, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, wrapErr("apply delta (in)", err)
		}
		return &s, nil
	}

	query := `
		UPDATE stock_items SET
			quantity   = quantity + $2,
			bin        = COALESCE(NULLIF($3, ''), bin),
			name       = COALESCE(NULLIF($4, ''), name),
			updated_at = now()
		WHERE sku = $1 AND quantity + $2 >= 0
		RETURNING id, sku, name, bin, quantity, created_at, updated_at`
	var s entity.StockItem
	err := r.q.QueryRow(ctx, query, sku, delta, bin, name).Scan(
		&s.ID, &s.SKU, &s.Name, &s.Bin, &s.Quantity, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// SKU inexistente o cantidad insuficiente: mismo veredicto.
			return nil, domain.ErrInsufficientStock
		}
		return nil, wrapErr("apply delta (out)", err)
	}
	return &s, nil
}
