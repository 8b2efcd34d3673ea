package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.InventoryQueryRepository = (*InventoryQueryRepo)(nil)

// InventoryQueryRepo consultas de solo lectura sobre el libro de stock y el
// diario de movimientos. Read-committed: nunca ve mutaciones sin confirmar.
type InventoryQueryRepo struct {
	q Querier
}

// NewInventoryQueryRepository construye el adaptador de consultas.
func NewInventoryQueryRepository(q Querier) *InventoryQueryRepo {
	return &InventoryQueryRepo{q: q}
}

// List devuelve el inventario completo en el orden pedido: SKU ascendente
// (vista canónica) o createdAt descendente (vista de recencia).
func (r *InventoryQueryRepo) List(ctx context.Context, orderBy string) ([]*entity.StockItem, error) {
	query := `
		SELECT id, sku, name, bin, quantity, created_at, updated_at
		FROM stock_items`
	if orderBy == repository.OrderByRecent {
		query += " ORDER BY created_at DESC"
	} else {
		query += " ORDER BY sku ASC"
	}
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, wrapErr("list stock items", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		var s entity.StockItem
		if err := rows.Scan(&s.ID, &s.SKU, &s.Name, &s.Bin, &s.Quantity, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// LowStockCount cuenta items con cantidad por debajo del umbral.
func (r *InventoryQueryRepo) LowStockCount(ctx context.Context, threshold int64) (int64, error) {
	query := `SELECT COUNT(*) FROM stock_items WHERE quantity < $1`
	var count int64
	if err := r.q.QueryRow(ctx, query, threshold).Scan(&count); err != nil {
		return 0, wrapErr("low stock count", err)
	}
	return count, nil
}

// DistinctBinCount cuenta ubicaciones distintas no vacías.
func (r *InventoryQueryRepo) DistinctBinCount(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(DISTINCT bin) FROM stock_items WHERE bin <> ''`
	var count int64
	if err := r.q.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, wrapErr("distinct bin count", err)
	}
	return count, nil
}

// MovementTotals agrega por SKU las sumas del diario junto a la cantidad del
// libro; base del chequeo entradas − salidas == cantidad.
func (r *InventoryQueryRepo) MovementTotals(ctx context.Context) ([]repository.MovementTotal, error) {
	query := `
		SELECT s.sku, s.quantity,
		       COALESCE(i.total, 0) AS inset_total,
		       COALESCE(o.total, 0) AS outset_total
		FROM stock_items s
		LEFT JOIN (SELECT sku, SUM(quantity) AS total FROM insets GROUP BY sku) i ON i.sku = s.sku
		LEFT JOIN (SELECT sku, SUM(quantity) AS total FROM outsets GROUP BY sku) o ON o.sku = s.sku
		ORDER BY s.sku ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, wrapErr("movement totals", err)
	}
	defer rows.Close()
	var list []repository.MovementTotal
	for rows.Next() {
		var t repository.MovementTotal
		if err := rows.Scan(&t.SKU, &t.Quantity, &t.InsetTotal, &t.OutsetTotal); err != nil {
			return nil, fmt.Errorf("scan movement total: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
