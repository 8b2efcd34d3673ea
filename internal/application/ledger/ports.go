package ledger

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la mutación de cantidad, su
// entrada de auditoría y el registro de movimiento confirmen como una unidad:
// ningún lector observa una cosa sin las otras.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockItemRepository,
		auditRepo repository.AuditRepository,
		movRepo repository.MovementRepository,
	) error) error
}
