package ledger_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memstore"
)

var testActor = entity.Actor{ID: "u-1", Name: "Bodeguero"}

func newLedger() (*ledger.StockLedger, *memstore.Store) {
	store := memstore.New()
	return ledger.NewStockLedger(store), store
}

func TestApplyDelta_Validacion(t *testing.T) {
	uc, _ := newLedger()
	ctx := context.Background()

	cases := []struct {
		name  string
		in    ledger.DeltaInput
		field string
	}{
		{"sin sku", ledger.DeltaInput{Delta: 1, Actor: testActor}, "sku"},
		{"delta cero", ledger.DeltaInput{SKU: "SKU-1", Delta: 0, Actor: testActor}, "delta"},
		{"sin actor", ledger.DeltaInput{SKU: "SKU-1", Delta: 1}, "actor"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.ApplyDelta(ctx, tc.in)
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

// Delta positivo sobre SKU no visto crea el item con esa cantidad.
func TestApplyDelta_CreaItemNuevo(t *testing.T) {
	uc, store := newLedger()
	ctx := context.Background()

	item, err := uc.ApplyDelta(ctx, ledger.DeltaInput{
		SKU: "SKU-1", Delta: 10, Bin: "A-01", Name: "Tornillos", Actor: testActor,
	})
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, int64(10), item.Quantity)
	assert.Equal(t, "A-01", item.Bin)
	assert.Equal(t, "Tornillos", item.Name)
	assert.NotEmpty(t, item.ID)

	// La mutación deja exactamente una entrada de auditoría con el
	// antes/después de la cantidad.
	entries, err := store.Audits().List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, entity.ActionCreate, e.ActionType)
	assert.Equal(t, entity.CollectionInventory, e.CollectionName)
	assert.Equal(t, item.ID, e.DocumentID)
	assert.Equal(t, int64(0), e.Changes.OldQuantity)
	assert.Equal(t, int64(10), e.Changes.NewQuantity)
	assert.Equal(t, testActor, e.User)
}

// Delta negativo sobre SKU no visto falla; no aparece ningún item.
func TestApplyDelta_NegativoSobreSKUInexistente(t *testing.T) {
	uc, store := newLedger()
	ctx := context.Background()

	_, err := uc.ApplyDelta(ctx, ledger.DeltaInput{SKU: "NOPE", Delta: -1, Actor: testActor})
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "NOPE", stockErr.SKU)
	assert.Equal(t, int64(0), stockErr.Available)
	assert.Equal(t, int64(1), stockErr.Requested)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := store.StockItems().Get(ctx, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// Stock insuficiente: la cantidad no cambia y no queda auditoría de la
// operación fallida.
func TestApplyDelta_InsuficienteNoMuta(t *testing.T) {
	uc, store := newLedger()
	ctx := context.Background()

	_, err := uc.ApplyDelta(ctx, ledger.DeltaInput{SKU: "SKU-1", Delta: 3, Actor: testActor})
	require.NoError(t, err)

	_, err = uc.ApplyDelta(ctx, ledger.DeltaInput{SKU: "SKU-1", Delta: -5, Actor: testActor})
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(3), stockErr.Available)
	assert.Equal(t, int64(5), stockErr.Requested)

	item, err := store.StockItems().Get(ctx, "SKU-1")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, int64(3), item.Quantity)

	entries, err := store.Audits().List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "la operación fallida no debe dejar auditoría")
}

// Bin y name no vacíos sobreescriben; vacíos conservan lo existente.
func TestApplyDelta_BinYNameLastWriterWins(t *testing.T) {
	uc, store := newLedger()
	ctx := context.Background()

	_, err := uc.ApplyDelta(ctx, ledger.DeltaInput{
		SKU: "SKU-1", Delta: 5, Bin: "A-01", Name: "Tornillos", Actor: testActor,
	})
	require.NoError(t, err)

	item, err := uc.ApplyDelta(ctx, ledger.DeltaInput{SKU: "SKU-1", Delta: 2, Actor: testActor})
	require.NoError(t, err)
	assert.Equal(t, "A-01", item.Bin, "bin vacío conserva el actual")
	assert.Equal(t, "Tornillos", item.Name)

	item, err = uc.ApplyDelta(ctx, ledger.DeltaInput{SKU: "SKU-1", Delta: 1, Bin: "B-07", Actor: testActor})
	require.NoError(t, err)
	assert.Equal(t, "B-07", item.Bin, "bin no vacío reubica")

	got, err := store.StockItems().Get(ctx, "SKU-1")
	require.NoError(t, err)
	assert.Equal(t, int64(8), got.Quantity)
}

// Auditoría UPDATE para deltas negativos con el antes/después correcto.
func TestApplyDelta_AuditoriaDeSalida(t *testing.T) {
	uc, store := newLedger()
	ctx := context.Background()

	_, err := uc.ApplyDelta(ctx, ledger.DeltaInput{SKU: "SKU-1", Delta: 10, Actor: testActor})
	require.NoError(t, err)
	_, err = uc.ApplyDelta(ctx, ledger.DeltaInput{SKU: "SKU-1", Delta: -4, Actor: testActor})
	require.NoError(t, err)

	entries, err := store.Audits().List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var update *entity.AuditEntry
	for _, e := range entries {
		if e.ActionType == entity.ActionUpdate {
			update = e
		}
	}
	require.NotNil(t, update)
	assert.Equal(t, int64(10), update.Changes.OldQuantity)
	assert.Equal(t, int64(6), update.Changes.NewQuantity)
}

// N retiros concurrentes de 1 sobre un stock de N: todos deben confirmar y
// la cantidad final debe ser exactamente cero (sin lost updates).
func TestApplyDelta_RetirosConcurrentesDrenanExacto(t *testing.T) {
	uc, store := newLedger()
	ctx := context.Background()

	const n = 100
	_, err := uc.ApplyDelta(ctx, ledger.DeltaInput{SKU: "SKU-1", Delta: n, Actor: testActor})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.ApplyDelta(ctx, ledger.DeltaInput{SKU: "SKU-1", Delta: -1, Actor: testActor})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	item, err := store.StockItems().Get(ctx, "SKU-1")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, int64(0), item.Quantity)

	// El retiro n+1 encuentra el stock drenado.
	_, err = uc.ApplyDelta(ctx, ledger.DeltaInput{SKU: "SKU-1", Delta: -1, Actor: testActor})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	entries, err := store.Audits().List(ctx, n+10, 0)
	require.NoError(t, err)
	assert.Len(t, entries, n+1, "una entrada de auditoría por mutación confirmada")
}
