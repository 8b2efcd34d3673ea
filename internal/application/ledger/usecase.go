package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// StockLedger es el dueño de la cantidad autoritativa por SKU. Toda mutación
// pasa por ApplyDelta: aplica el delta con piso en cero y escribe exactamente
// una entrada de auditoría en la misma transacción.
type StockLedger struct {
	txRunner TxRunner
}

// NewStockLedger construye el libro de stock.
func NewStockLedger(txRunner TxRunner) *StockLedger {
	return &StockLedger{txRunner: txRunner}
}

// DeltaInput entrada para ApplyDelta. Delta positivo = entrada, negativo =
// salida. Bin/Name no vacíos sobreescriben los del item (reubicación/renombre
// explícitos del contrato, no un efecto accidental).
type DeltaInput struct {
	SKU   string
	Delta int64
	Bin   string
	Name  string
	Actor entity.Actor
}

func (in DeltaInput) validate() error {
	if in.SKU == "" {
		return &domain.ValidationError{Field: "sku"}
	}
	if in.Delta == 0 {
		return &domain.ValidationError{Field: "delta"}
	}
	if in.Actor.ID == "" {
		return &domain.ValidationError{Field: "actor"}
	}
	return nil
}

// ApplyDelta valida, abre una transacción y aplica el delta con su auditoría.
// SKU no visto + delta positivo crea el item (upsert); delta que dejaría la
// cantidad negativa falla con InsufficientStockError indicando el disponible.
func (uc *StockLedger) ApplyDelta(ctx context.Context, in DeltaInput) (*entity.StockItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var item *entity.StockItem
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockItemRepository,
		auditRepo repository.AuditRepository,
		_ repository.MovementRepository,
	) error {
		var err error
		item, err = applyDelta(ctx, stockRepo, auditRepo, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ApplyDeltaInTx aplica el delta usando los repositorios del caller (misma
// transacción); lo usa el diario de movimientos para que mutación, auditoría
// y registro de movimiento confirmen juntos.
func (uc *StockLedger) ApplyDeltaInTx(
	ctx context.Context,
	stockRepo repository.StockItemRepository,
	auditRepo repository.AuditRepository,
	in DeltaInput,
) (*entity.StockItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return applyDelta(ctx, stockRepo, auditRepo, in)
}

// applyDelta ejecuta la primitiva: una operación condicional en el repo
// (nunca leer-luego-escribir) y la entrada de auditoría que la acompaña.
func applyDelta(
	ctx context.Context,
	stockRepo repository.StockItemRepository,
	auditRepo repository.AuditRepository,
	in DeltaInput,
) (*entity.StockItem, error) {
	item, err := stockRepo.ApplyDelta(ctx, in.SKU, in.Delta, in.Bin, in.Name)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			available := int64(0)
			if cur, gerr := stockRepo.Get(ctx, in.SKU); gerr == nil && cur != nil {
				available = cur.Quantity
			}
			return nil, &domain.InsufficientStockError{
				SKU:       in.SKU,
				Available: available,
				Requested: -in.Delta,
			}
		}
		return nil, err
	}

	actionType := entity.ActionUpdate
	if in.Delta > 0 {
		actionType = entity.ActionCreate
	}
	entry := &entity.AuditEntry{
		ID:             uuid.New().String(),
		ActionType:     actionType,
		CollectionName: entity.CollectionInventory,
		DocumentID:     item.ID,
		Changes: entity.AuditChanges{
			OldQuantity: item.Quantity - in.Delta,
			NewQuantity: item.Quantity,
		},
		User:      in.Actor,
		CreatedAt: time.Now(),
	}
	if err := auditRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return item, nil
}
