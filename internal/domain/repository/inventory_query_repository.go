package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Ordenamientos soportados por List. La vista canónica de inventario usa SKU
// ascendente; las vistas de recepción usan recencia (createdAt descendente).
const (
	OrderBySKU    = "sku"
	OrderByRecent = "recent"
)

// MovementTotal agrega, por SKU, la suma de entradas y salidas del diario
// junto a la cantidad actual del libro. Base del chequeo de reconstrucción.
type MovementTotal struct {
	SKU         string
	Quantity    int64 // cantidad actual en el libro
	InsetTotal  int64
	OutsetTotal int64
}

// InventoryQueryRepository define las proyecciones de solo lectura sobre el
// estado del libro. Nunca muta; consistencia read-committed.
type InventoryQueryRepository interface {
	List(ctx context.Context, orderBy string) ([]*entity.StockItem, error)
	LowStockCount(ctx context.Context, threshold int64) (int64, error)
	DistinctBinCount(ctx context.Context) (int64, error)
	MovementTotals(ctx context.Context) ([]MovementTotal, error)
}
