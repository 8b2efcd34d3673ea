package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/journal"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/query"
	apphttp "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memstore"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// setupApp levanta la API completa sobre el store en memoria y devuelve la
// app más un token válido (usuario registrado vía /api/auth).
func setupApp(t *testing.T) (*fiber.App, string) {
	t.Helper()

	store := memstore.New()
	stockLedger := ledger.NewStockLedger(store)
	movementJournal := journal.NewMovementJournal(store, stockLedger, store.Movements())
	queryService := query.NewInventoryQueryService(store.Queries(), logger.Nop(), 0)
	auditLog := audit.NewAuditLog(store.Audits())
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Ledger:    stockLedger,
		Journal:   movementJournal,
		Queries:   queryService,
		AuditLog:  auditLog,
		AuthUC:    authUC,
		JWTSecret: testJWTSecret,
	})

	// Registro + login para obtener un token real.
	doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    "bodeguero@example.com",
		"password": "supersegura1",
		"name":     "Bodeguero",
	})
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "bodeguero@example.com",
		"password": "supersegura1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login struct {
		Token string `json:"token"`
	}
	decode(t, resp, &login)
	require.NotEmpty(t, login.Token)

	return app, login.Token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestRouter_RutasProtegidasSinToken(t *testing.T) {
	app, _ := setupApp(t)

	for _, path := range []string{"/api/inventory", "/api/inset", "/api/outset", "/api/audit"} {
		resp := doJSON(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		resp.Body.Close()
	}
}

func TestRouter_FlujoEntradaInventario(t *testing.T) {
	app, token := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/inset", token, map[string]any{
		"sku":         "SKU-1",
		"orderNo":     "OC-2024-001",
		"bin":         "A-01",
		"quantity":    10,
		"productName": "Tornillos",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Message       string `json:"message"`
		InventoryItem struct {
			SKU         string `json:"sku"`
			ProductName string `json:"productName"`
			Quantity    int64  `json:"quantity"`
		} `json:"inventoryItem"`
	}
	decode(t, resp, &created)
	assert.Equal(t, int64(10), created.InventoryItem.Quantity)
	assert.Equal(t, "Tornillos", created.InventoryItem.ProductName)

	// El listado expone name y el alias productName con el mismo valor.
	resp = doJSON(t, app, http.MethodGet, "/api/inventory", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var items []struct {
		SKU         string `json:"sku"`
		Name        string `json:"name"`
		ProductName string `json:"productName"`
		Bin         string `json:"bin"`
		Quantity    int64  `json:"quantity"`
	}
	decode(t, resp, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "Tornillos", items[0].Name)
	assert.Equal(t, "Tornillos", items[0].ProductName)
	assert.Equal(t, "A-01", items[0].Bin)
}

func TestRouter_SalidaInsuficiente409(t *testing.T) {
	app, token := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/inset", token, map[string]any{
		"sku": "SKU-1", "orderNo": "OC-1", "bin": "A-01", "quantity": 3, "productName": "Tornillos",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/outset", token, map[string]any{
		"sku": "SKU-1", "quantity": 5, "customerName": "Cliente", "invoiceNo": "F-1",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var errBody struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	decode(t, resp, &errBody)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)
	assert.Contains(t, errBody.Message, "disponible 3")
}

func TestRouter_ValidacionNombraElCampo(t *testing.T) {
	app, token := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/inset", token, map[string]any{
		"sku": "SKU-1", "bin": "A-01", "quantity": 3, "productName": "Tornillos",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	decode(t, resp, &errBody)
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.Contains(t, errBody.Message, "orderNo")
}

func TestRouter_UpdateQuantityYStats(t *testing.T) {
	app, token := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/inventory/update", token, map[string]any{
		"sku": "SKU-1", "change": 2, "bin": "A-01",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	// El item actualizado viaja directo en el cuerpo, sin envoltura.
	var updated struct {
		SKU         string `json:"sku"`
		ProductName string `json:"productName"`
		Quantity    int64  `json:"quantity"`
	}
	decode(t, resp, &updated)
	assert.Equal(t, "SKU-1", updated.SKU)
	assert.Equal(t, int64(2), updated.Quantity)

	resp = doJSON(t, app, http.MethodGet, "/api/inventory/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats struct {
		LowStockCount int64 `json:"lowStockCount"`
		DistinctBins  int64 `json:"distinctBins"`
	}
	decode(t, resp, &stats)
	assert.Equal(t, int64(1), stats.LowStockCount)
	assert.Equal(t, int64(1), stats.DistinctBins)
}

// ?threshold= sobreescribe el umbral configurado de stock bajo.
func TestRouter_StatsUmbralPorQuery(t *testing.T) {
	app, token := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/inventory/update", token, map[string]any{
		"sku": "SKU-1", "change": 50, "bin": "A-01",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var stats struct {
		LowStockCount int64 `json:"lowStockCount"`
	}

	// Con el umbral por defecto (5), 50 unidades no cuentan como stock bajo.
	resp = doJSON(t, app, http.MethodGet, "/api/inventory/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &stats)
	assert.Equal(t, int64(0), stats.LowStockCount)

	resp = doJSON(t, app, http.MethodGet, "/api/inventory/stats?threshold=100", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &stats)
	assert.Equal(t, int64(1), stats.LowStockCount)
}

func TestRouter_ReconcileReportaAjusteDirecto(t *testing.T) {
	app, token := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/inset", token, map[string]any{
		"sku": "SKU-1", "orderNo": "OC-1", "bin": "A-01", "quantity": 10, "productName": "Tornillos",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Consistente mientras todo pasa por el diario.
	resp = doJSON(t, app, http.MethodGet, "/api/inventory/reconcile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rec struct {
		Consistent bool `json:"consistent"`
		Findings   []struct {
			SKU             string `json:"sku"`
			LedgerQuantity  int64  `json:"ledgerQuantity"`
			JournalQuantity int64  `json:"journalQuantity"`
		} `json:"findings"`
	}
	decode(t, resp, &rec)
	assert.True(t, rec.Consistent)

	// El ajuste directo no genera movimiento: aparece la discrepancia.
	resp = doJSON(t, app, http.MethodPost, "/api/inventory/update", token, map[string]any{
		"sku": "SKU-1", "change": -2,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/inventory/reconcile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &rec)
	assert.False(t, rec.Consistent)
	require.Len(t, rec.Findings, 1)
	assert.Equal(t, int64(8), rec.Findings[0].LedgerQuantity)
	assert.Equal(t, int64(10), rec.Findings[0].JournalQuantity)
}

func TestRouter_AuditListaEntradas(t *testing.T) {
	app, token := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/inset", token, map[string]any{
		"sku": "SKU-1", "orderNo": "OC-1", "bin": "A-01", "quantity": 10, "productName": "Tornillos",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/audit", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []struct {
		ActionType     string `json:"actionType"`
		CollectionName string `json:"collectionName"`
	}
	decode(t, resp, &entries)
	assert.Len(t, entries, 2, "mutación de inventario + documento Inset")
}

func TestRouter_RegisterDuplicado409(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    "bodeguero@example.com",
		"password": "supersegura1",
		"name":     "Otro",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}
