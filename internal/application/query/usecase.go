package query

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// DefaultLowStockThreshold umbral de stock bajo cuando no se configura otro.
const DefaultLowStockThreshold = 5

// InventoryQueryService proyecciones de solo lectura sobre el libro de stock.
// Nunca levanta errores de negocio; los fallos de persistencia propagan tal cual.
type InventoryQueryService struct {
	repo      repository.InventoryQueryRepository
	log       *logger.Logger
	threshold int64
}

// NewInventoryQueryService construye el servicio. threshold <= 0 usa el default.
func NewInventoryQueryService(repo repository.InventoryQueryRepository, log *logger.Logger, threshold int64) *InventoryQueryService {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return &InventoryQueryService{repo: repo, log: log, threshold: threshold}
}

// ListAll devuelve el inventario completo. order acepta repository.OrderBySKU
// (vista canónica, SKU ascendente) o repository.OrderByRecent (createdAt
// descendente); cualquier otro valor cae en SKU ascendente.
func (s *InventoryQueryService) ListAll(ctx context.Context, order string) ([]*entity.StockItem, error) {
	if order != repository.OrderByRecent {
		order = repository.OrderBySKU
	}
	return s.repo.List(ctx, order)
}

// LowStockCount cuenta los items con cantidad por debajo del umbral.
// threshold <= 0 usa el umbral configurado del servicio.
func (s *InventoryQueryService) LowStockCount(ctx context.Context, threshold int64) (int64, error) {
	if threshold <= 0 {
		threshold = s.threshold
	}
	return s.repo.LowStockCount(ctx, threshold)
}

// DistinctBinCount cuenta las ubicaciones (bins) distintas no vacías en uso.
func (s *InventoryQueryService) DistinctBinCount(ctx context.Context) (int64, error) {
	return s.repo.DistinctBinCount(ctx)
}

// Finding una discrepancia de reconstrucción: la cantidad del libro no
// coincide con entradas − salidas del diario para ese SKU.
type Finding struct {
	SKU             string
	LedgerQuantity  int64
	JournalQuantity int64
}

// Reconcile verifica, SKU por SKU, que sum(insets) − sum(outsets) iguale la
// cantidad del libro. Cada discrepancia se loggea como error (nunca se
// descarta en silencio) y se devuelve para reconciliación manual. Lista vacía
// significa historia y libro consistentes.
func (s *InventoryQueryService) Reconcile(ctx context.Context) ([]Finding, error) {
	totals, err := s.repo.MovementTotals(ctx)
	if err != nil {
		return nil, err
	}
	var findings []Finding
	for _, t := range totals {
		journalQty := t.InsetTotal - t.OutsetTotal
		if journalQty == t.Quantity {
			continue
		}
		f := Finding{SKU: t.SKU, LedgerQuantity: t.Quantity, JournalQuantity: journalQty}
		findings = append(findings, f)
		s.log.Error().
			Err(domain.ErrInconsistent).
			Str("sku", f.SKU).
			Int64("ledger_quantity", f.LedgerQuantity).
			Int64("journal_quantity", f.JournalQuantity).
			Msg("discrepancia libro/diario detectada")
	}
	return findings, nil
}
