package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validación con campo",
			err:        &domain.ValidationError{Field: "sku"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION",
		},
		{
			name:       "stock insuficiente detallado",
			err:        &domain.InsufficientStockError{SKU: "SKU-1", Available: 3, Requested: 5},
			wantStatus: http.StatusConflict,
			wantCode:   "INSUFFICIENT_STOCK",
		},
		{
			name:       "no encontrado",
			err:        domain.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "fallo transitorio de persistencia",
			err:        fmt.Errorf("conexión perdida: %w", domain.ErrTransient),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "TRANSIENT",
		},
		{
			name:       "error desconocido",
			err:        fmt.Errorf("algo inesperado"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return mapDomainError(c, tc.err)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.wantCode, body.Code)
		})
	}
}
