package entity

import "time"

// User representa un usuario del sistema; su id y nombre viajan como Actor
// en auditoría y movimientos.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano después de persistir
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
