package dto

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// AuditChangesDTO snapshot antes/después de la cantidad, anidado como lo
// esperan los consumidores históricos ({oldValue:{quantity},newValue:{quantity}}).
type AuditChangesDTO struct {
	OldValue QuantitySnapshot `json:"oldValue"`
	NewValue QuantitySnapshot `json:"newValue"`
}

// QuantitySnapshot valor puntual de la cantidad.
type QuantitySnapshot struct {
	Quantity int64 `json:"quantity"`
}

// AuditEntryResponse una entrada de la bitácora de auditoría.
type AuditEntryResponse struct {
	ID             string          `json:"id"`
	ActionType     string          `json:"actionType"`
	CollectionName string          `json:"collectionName"`
	DocumentID     string          `json:"documentId"`
	Changes        AuditChangesDTO `json:"changes"`
	User           ActorDTO        `json:"user"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToAuditEntryResponse mapea la entidad a su vista.
func ToAuditEntryResponse(e *entity.AuditEntry) *AuditEntryResponse {
	if e == nil {
		return nil
	}
	return &AuditEntryResponse{
		ID:             e.ID,
		ActionType:     e.ActionType,
		CollectionName: e.CollectionName,
		DocumentID:     e.DocumentID,
		Changes: AuditChangesDTO{
			OldValue: QuantitySnapshot{Quantity: e.Changes.OldQuantity},
			NewValue: QuantitySnapshot{Quantity: e.Changes.NewQuantity},
		},
		User:      ActorDTO{ID: e.User.ID, Name: e.User.Name},
		CreatedAt: e.CreatedAt,
	}
}
