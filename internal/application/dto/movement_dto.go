package dto

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// CreateInsetRequest body para POST /api/inset. Todos los campos requeridos.
type CreateInsetRequest struct {
	SKU         string `json:"sku"`
	OrderNo     string `json:"orderNo"`
	Bin         string `json:"bin"`
	Quantity    int64  `json:"quantity"`
	ProductName string `json:"productName"`
}

// CreateOutsetRequest body para POST /api/outset.
type CreateOutsetRequest struct {
	SKU          string `json:"sku"`
	Quantity     int64  `json:"quantity"`
	CustomerName string `json:"customerName"`
	InvoiceNo    string `json:"invoiceNo"`
	Bin          string `json:"bin,omitempty"`
}

// ActorDTO atribución de usuario en registros históricos.
type ActorDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// InsetResponse registro histórico de una entrada.
type InsetResponse struct {
	ID        string    `json:"id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	OrderNo   string    `json:"orderNo"`
	Bin       string    `json:"bin"`
	Quantity  int64     `json:"quantity"`
	User      ActorDTO  `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

// OutsetResponse registro histórico de una salida.
type OutsetResponse struct {
	ID           string    `json:"id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	Bin          string    `json:"bin"`
	Quantity     int64     `json:"quantity"`
	InvoiceNo    string    `json:"invoiceNo"`
	CustomerName string    `json:"customerName"`
	User         ActorDTO  `json:"user"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateInsetResponse respuesta de POST /api/inset: registro + stock actualizado.
type CreateInsetResponse struct {
	Message       string             `json:"message"`
	Inset         *InsetResponse     `json:"inset"`
	InventoryItem *StockItemResponse `json:"inventoryItem"`
}

// ToInsetResponse mapea la entidad Inset a su vista.
func ToInsetResponse(in *entity.Inset) *InsetResponse {
	if in == nil {
		return nil
	}
	return &InsetResponse{
		ID:        in.ID,
		SKU:       in.SKU,
		Name:      in.Name,
		OrderNo:   in.OrderNo,
		Bin:       in.Bin,
		Quantity:  in.Quantity,
		User:      ActorDTO{ID: in.User.ID, Name: in.User.Name},
		CreatedAt: in.CreatedAt,
	}
}

// ToOutsetResponse mapea la entidad Outset a su vista.
func ToOutsetResponse(out *entity.Outset) *OutsetResponse {
	if out == nil {
		return nil
	}
	return &OutsetResponse{
		ID:           out.ID,
		SKU:          out.SKU,
		Name:         out.Name,
		Bin:          out.Bin,
		Quantity:     out.Quantity,
		InvoiceNo:    out.InvoiceNo,
		CustomerName: out.CustomerName,
		User:         ActorDTO{ID: out.User.ID, Name: out.User.Name},
		CreatedAt:    out.CreatedAt,
	}
}
