package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// StockItemRepository define el puerto para leer y mutar existencias por SKU.
// ApplyDelta es la única primitiva de mutación: una sola operación condicional
// (upsert con piso en cero) para que dos peticiones concurrentes sobre el
// mismo SKU nunca pierdan actualizaciones.
type StockItemRepository interface {
	// Get devuelve el item o nil, nil si el SKU no existe.
	Get(ctx context.Context, sku string) (*entity.StockItem, error)
	// ApplyDelta suma delta a la cantidad (creando el item si delta > 0 y el
	// SKU no existe) y devuelve el estado resultante. Bin/name no vacíos
	// sobreescriben (last-writer-wins). Si el resultado quedaría negativo
	// retorna domain.ErrInsufficientStock sin mutar nada.
	ApplyDelta(ctx context.Context, sku string, delta int64, bin, name string) (*entity.StockItem, error)
}
