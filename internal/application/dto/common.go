package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WarningsResponse advertencias de persistencia o de carga.
type WarningsResponse struct {
	Warnings []string `json:"warnings"`
}

// SyncStatusResponse colecciones cuyo documento guardado difiere del estado en memoria.
type SyncStatusResponse struct {
	Pending []string `json:"pending"`
}

// ResyncResponse resultado de volver a escribir las colecciones pendientes.
type ResyncResponse struct {
	Written  []string `json:"written"`
	Warnings []string `json:"warnings,omitempty"`
}

// RevisionResponse copia histórica de una colección.
type RevisionResponse struct {
	ID      int64            `json:"id"`
	SavedAt time.Time        `json:"saved_at"`
	Total   *decimal.Decimal `json:"total,omitempty"`
	Size    int              `json:"size"`
}

// RevisionListResponse historial de una colección, la copia más reciente primero.
type RevisionListResponse struct {
	Collection string             `json:"collection"`
	Items      []RevisionResponse `json:"items"`
}
