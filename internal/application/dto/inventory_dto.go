package dto

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// UpdateQuantityRequest body para POST /api/inventory/update.
// change positivo suma stock, negativo resta; bin no vacío reubica el item.
type UpdateQuantityRequest struct {
	SKU    string `json:"sku"`
	Change int64  `json:"change"`
	Bin    string `json:"bin,omitempty"`
}

// StockItemResponse proyección de lectura de un item. Lleva name y el alias
// productName que espera la capa de presentación; el alias existe solo en
// esta frontera, nunca se duplica en almacenamiento.
type StockItemResponse struct {
	ID          string    `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	ProductName string    `json:"productName"`
	Bin         string    `json:"bin"`
	Quantity    int64     `json:"quantity"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToStockItemResponse mapea la entidad a la vista con alias productName.
func ToStockItemResponse(item *entity.StockItem) *StockItemResponse {
	if item == nil {
		return nil
	}
	return &StockItemResponse{
		ID:          item.ID,
		SKU:         item.SKU,
		Name:        item.Name,
		ProductName: item.Name,
		Bin:         item.Bin,
		Quantity:    item.Quantity,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// ToStockItemResponses mapea una lista completa.
func ToStockItemResponses(items []*entity.StockItem) []*StockItemResponse {
	out := make([]*StockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ToStockItemResponse(it))
	}
	return out
}

// InventoryStatsResponse contadores para el tablero de inventario.
type InventoryStatsResponse struct {
	LowStockCount int64 `json:"lowStockCount"`
	DistinctBins  int64 `json:"distinctBins"`
}

// ReconcileFindingDTO una discrepancia entre el libro y el diario de movimientos.
type ReconcileFindingDTO struct {
	SKU             string `json:"sku"`
	LedgerQuantity  int64  `json:"ledgerQuantity"`
	JournalQuantity int64  `json:"journalQuantity"`
}
