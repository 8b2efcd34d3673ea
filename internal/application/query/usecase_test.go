package query_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/journal"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/query"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memstore"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

var testActor = entity.Actor{ID: "u-1", Name: "Bodeguero"}

type fixture struct {
	store   *memstore.Store
	ledger  *ledger.StockLedger
	journal *journal.MovementJournal
	queries *query.InventoryQueryService
}

func newFixture() *fixture {
	store := memstore.New()
	stockLedger := ledger.NewStockLedger(store)
	return &fixture{
		store:   store,
		ledger:  stockLedger,
		journal: journal.NewMovementJournal(store, stockLedger, store.Movements()),
		queries: query.NewInventoryQueryService(store.Queries(), logger.Nop(), 0),
	}
}

func (f *fixture) inset(t *testing.T, sku, bin string, qty int64) {
	t.Helper()
	_, _, err := f.journal.RecordInset(context.Background(), journal.InsetInput{
		SKU:      sku,
		OrderNo:  "OC-1",
		Bin:      bin,
		Quantity: qty,
		Name:     "Producto " + sku,
		Actor:    testActor,
	})
	require.NoError(t, err)
}

func (f *fixture) outset(t *testing.T, sku string, qty int64) {
	t.Helper()
	_, _, err := f.journal.RecordOutset(context.Background(), journal.OutsetInput{
		SKU:          sku,
		Quantity:     qty,
		CustomerName: "Cliente",
		InvoiceNo:    "F-1",
		Actor:        testActor,
	})
	require.NoError(t, err)
}

// Vista canónica: SKU ascendente, sin importar el orden de llegada.
func TestListAll_OrdenPorSKU(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.inset(t, "SKU-C", "A-01", 3)
	f.inset(t, "SKU-A", "A-02", 7)
	f.inset(t, "SKU-B", "A-03", 5)

	items, err := f.queries.ListAll(ctx, "")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "SKU-A", items[0].SKU)
	assert.Equal(t, "SKU-B", items[1].SKU)
	assert.Equal(t, "SKU-C", items[2].SKU)

	// Cualquier valor desconocido de order cae en la vista canónica.
	items, err = f.queries.ListAll(ctx, "whatever")
	require.NoError(t, err)
	assert.Equal(t, "SKU-A", items[0].SKU)
}

func TestListAll_OrdenPorRecencia(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.inset(t, "SKU-A", "A-01", 1)
	f.inset(t, "SKU-B", "A-02", 1)

	items, err := f.queries.ListAll(ctx, repository.OrderByRecent)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// createdAt descendente: el más reciente primero (o empate estable).
	assert.False(t, items[0].CreatedAt.Before(items[1].CreatedAt))
}

// Contadores del tablero: items bajo el umbral y ubicaciones distintas.
func TestStats_LowStockYBins(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.inset(t, "SKU-A", "A-01", 2)  // bajo el umbral (5)
	f.inset(t, "SKU-B", "A-01", 4)  // bajo el umbral, mismo bin
	f.inset(t, "SKU-C", "B-07", 5)  // justo en el umbral: no cuenta
	f.inset(t, "SKU-D", "C-03", 20) // holgado

	low, err := f.queries.LowStockCount(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), low)

	bins, err := f.queries.DistinctBinCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), bins)
}

func TestLowStockCount_UmbralExplicito(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.inset(t, "SKU-A", "A-01", 2)
	f.inset(t, "SKU-B", "A-02", 9)

	low, err := f.queries.LowStockCount(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), low)
}

// Historia y libro consistentes cuando todo pasa por el diario.
func TestReconcile_Consistente(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.inset(t, "SKU-A", "A-01", 10)
	f.outset(t, "SKU-A", 4)
	f.inset(t, "SKU-B", "A-02", 3)

	findings, err := f.queries.Reconcile(ctx)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

// Un ajuste directo del libro no pasa por el diario: Reconcile debe
// reportar la discrepancia con ambas cantidades.
func TestReconcile_DetectaAjusteDirecto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.inset(t, "SKU-A", "A-01", 10)

	_, err := f.ledger.ApplyDelta(ctx, ledger.DeltaInput{
		SKU: "SKU-A", Delta: -2, Actor: testActor,
	})
	require.NoError(t, err)

	findings, err := f.queries.Reconcile(ctx)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "SKU-A", findings[0].SKU)
	assert.Equal(t, int64(8), findings[0].LedgerQuantity)
	assert.Equal(t, int64(10), findings[0].JournalQuantity)
}
