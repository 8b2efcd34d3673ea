package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// MovementJournal registra movimientos históricos (insets y outsets) sobre el
// libro de stock. Cada registro confirma en la misma transacción que la
// mutación de cantidad y su auditoría: el diario nunca queda huérfano del libro.
type MovementJournal struct {
	txRunner ledger.TxRunner
	ledger   *ledger.StockLedger
	movRepo  repository.MovementRepository // fuera de tx, para listados
}

// NewMovementJournal construye el diario.
func NewMovementJournal(txRunner ledger.TxRunner, stockLedger *ledger.StockLedger, movRepo repository.MovementRepository) *MovementJournal {
	return &MovementJournal{txRunner: txRunner, ledger: stockLedger, movRepo: movRepo}
}

// InsetInput entrada para RecordInset. Todos los campos son requeridos.
type InsetInput struct {
	SKU      string
	OrderNo  string
	Bin      string
	Quantity int64
	Name     string
	Actor    entity.Actor
}

func (in InsetInput) validate() error {
	switch {
	case in.SKU == "":
		return &domain.ValidationError{Field: "sku"}
	case in.OrderNo == "":
		return &domain.ValidationError{Field: "orderNo"}
	case in.Bin == "":
		return &domain.ValidationError{Field: "bin"}
	case in.Quantity <= 0:
		return &domain.ValidationError{Field: "quantity"}
	case in.Name == "":
		return &domain.ValidationError{Field: "productName"}
	case in.Actor.ID == "":
		return &domain.ValidationError{Field: "actor"}
	}
	return nil
}

// OutsetInput entrada para RecordOutset. Bin es opcional: vacío conserva la
// ubicación actual del item.
type OutsetInput struct {
	SKU          string
	Quantity     int64
	CustomerName string
	InvoiceNo    string
	Bin          string
	Actor        entity.Actor
}

func (in OutsetInput) validate() error {
	switch {
	case in.SKU == "":
		return &domain.ValidationError{Field: "sku"}
	case in.Quantity <= 0:
		return &domain.ValidationError{Field: "quantity"}
	case in.CustomerName == "":
		return &domain.ValidationError{Field: "customerName"}
	case in.InvoiceNo == "":
		return &domain.ValidationError{Field: "invoiceNo"}
	case in.Actor.ID == "":
		return &domain.ValidationError{Field: "actor"}
	}
	return nil
}

// RecordInset aplica la entrada al libro (+quantity) y persiste el registro
// Inset con su entrada de auditoría, todo en una transacción. Devuelve el
// registro y el stock resultante.
func (j *MovementJournal) RecordInset(ctx context.Context, in InsetInput) (*entity.Inset, *entity.StockItem, error) {
	if err := in.validate(); err != nil {
		return nil, nil, err
	}
	var (
		inset *entity.Inset
		item  *entity.StockItem
	)
	err := j.txRunner.Run(ctx, func(
		stockRepo repository.StockItemRepository,
		auditRepo repository.AuditRepository,
		movRepo repository.MovementRepository,
	) error {
		var err error
		item, err = j.ledger.ApplyDeltaInTx(ctx, stockRepo, auditRepo, ledger.DeltaInput{
			SKU:   in.SKU,
			Delta: in.Quantity,
			Bin:   in.Bin,
			Name:  in.Name,
			Actor: in.Actor,
		})
		if err != nil {
			return err
		}
		now := time.Now()
		inset = &entity.Inset{
			ID:        uuid.New().String(),
			SKU:       in.SKU,
			Name:      in.Name,
			OrderNo:   in.OrderNo,
			Bin:       in.Bin,
			Quantity:  in.Quantity,
			User:      in.Actor,
			CreatedAt: now,
		}
		if err := movRepo.CreateInset(ctx, inset); err != nil {
			return err
		}
		return auditRepo.Create(ctx, movementAudit(entity.CollectionInset, inset.ID, in.Quantity, in.Actor, now))
	})
	if err != nil {
		return nil, nil, err
	}
	return inset, item, nil
}

// RecordOutset aplica la salida al libro (−quantity) y persiste el registro
// Outset con su auditoría, en una transacción. El faltante se reporta con el
// disponible actual del SKU (InsufficientStockError).
func (j *MovementJournal) RecordOutset(ctx context.Context, in OutsetInput) (*entity.Outset, *entity.StockItem, error) {
	if err := in.validate(); err != nil {
		return nil, nil, err
	}
	var (
		outset *entity.Outset
		item   *entity.StockItem
	)
	err := j.txRunner.Run(ctx, func(
		stockRepo repository.StockItemRepository,
		auditRepo repository.AuditRepository,
		movRepo repository.MovementRepository,
	) error {
		var err error
		item, err = j.ledger.ApplyDeltaInTx(ctx, stockRepo, auditRepo, ledger.DeltaInput{
			SKU:   in.SKU,
			Delta: -in.Quantity,
			Bin:   in.Bin,
			Actor: in.Actor,
		})
		if err != nil {
			return err
		}
		now := time.Now()
		bin := in.Bin
		if bin == "" {
			bin = item.Bin
		}
		outset = &entity.Outset{
			ID:           uuid.New().String(),
			SKU:          in.SKU,
			Name:         item.Name,
			Bin:          bin,
			Quantity:     in.Quantity,
			InvoiceNo:    in.InvoiceNo,
			CustomerName: in.CustomerName,
			User:         in.Actor,
			CreatedAt:    now,
		}
		if err := movRepo.CreateOutset(ctx, outset); err != nil {
			return err
		}
		return auditRepo.Create(ctx, movementAudit(entity.CollectionOutset, outset.ID, in.Quantity, in.Actor, now))
	})
	if err != nil {
		return nil, nil, err
	}
	return outset, item, nil
}

// ListInsets devuelve las entradas más recientes primero.
func (j *MovementJournal) ListInsets(ctx context.Context, limit, offset int) ([]*entity.Inset, error) {
	return j.movRepo.ListInsets(ctx, limit, offset)
}

// ListOutsets devuelve las salidas más recientes primero.
func (j *MovementJournal) ListOutsets(ctx context.Context, limit, offset int) ([]*entity.Outset, error) {
	return j.movRepo.ListOutsets(ctx, limit, offset)
}

// movementAudit construye la entrada de auditoría del documento de movimiento
// recién creado (colección Inset/Outset, siempre CREATE).
func movementAudit(collection, documentID string, quantity int64, actor entity.Actor, now time.Time) *entity.AuditEntry {
	return &entity.AuditEntry{
		ID:             uuid.New().String(),
		ActionType:     entity.ActionCreate,
		CollectionName: collection,
		DocumentID:     documentID,
		Changes:        entity.AuditChanges{OldQuantity: 0, NewQuantity: quantity},
		User:           actor,
		CreatedAt:      now,
	}
}
