package entity

import "time"

// Tipos de acción del registro de auditoría.
// CREATE corresponde a un movimiento entrante (delta positivo) y UPDATE a uno
// saliente, igual que el sistema original; no distingue creación de fila.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
)

// Colecciones lógicas que aparecen en CollectionName.
const (
	CollectionInventory = "Inventory"
	CollectionInset     = "Inset"
	CollectionOutset    = "Outset"
)

// Actor identifica al usuario que ejecuta una operación.
// Se copia denormalizado en auditoría y movimientos para que la historia
// sobreviva a cambios de identidad.
type Actor struct {
	ID   string
	Name string
}

// AuditChanges captura el antes/después de la cantidad mutada.
type AuditChanges struct {
	OldQuantity int64
	NewQuantity int64
}

// AuditEntry es un registro inmutable de un cambio de estado: quién, qué
// colección, qué documento y los valores antes/después. Append-only;
// exactamente uno por mutación confirmada.
type AuditEntry struct {
	ID             string
	ActionType     string // CREATE | UPDATE
	CollectionName string // Inventory | Inset | Outset
	DocumentID     string // referencia al documento mutado, no propiedad
	Changes        AuditChanges
	User           Actor
	CreatedAt      time.Time
}
