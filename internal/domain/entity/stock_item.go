package entity

import "time"

// StockItem representa la existencia actual de un SKU en el almacén.
// El SKU es la llave natural: único, inmutable una vez creado.
// La cantidad nunca baja de cero y solo se muta vía el libro de stock.
type StockItem struct {
	ID        string
	SKU       string
	Name      string // nombre visible; el último escritor puede sobreescribirlo
	Bin       string // ubicación física actual; last-writer-wins
	Quantity  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
