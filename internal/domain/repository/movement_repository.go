package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// MovementRepository define el puerto del diario de movimientos: dos logs
// append-only, entradas (insets) y salidas (outsets).
type MovementRepository interface {
	CreateInset(ctx context.Context, inset *entity.Inset) error
	CreateOutset(ctx context.Context, outset *entity.Outset) error
	ListInsets(ctx context.Context, limit, offset int) ([]*entity.Inset, error)
	ListOutsets(ctx context.Context, limit, offset int) ([]*entity.Outset, error)
}
