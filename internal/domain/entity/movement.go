package entity

import "time"

// Inset es un movimiento entrante (recepción). Append-only; la cantidad es
// siempre positiva y quedó aplicada en el libro antes de persistir el registro.
type Inset struct {
	ID        string
	SKU       string
	Name      string
	OrderNo   string // orden de compra asociada
	Bin       string
	Quantity  int64
	User      Actor
	CreatedAt time.Time
}

// Outset es un movimiento saliente (despacho/consumo). Append-only.
type Outset struct {
	ID           string
	SKU          string
	Name         string
	Bin          string
	Quantity     int64
	InvoiceNo    string
	CustomerName string
	User         Actor
	CreatedAt    time.Time
}
