package dto

import "time"

// RecordMovementRequest body para POST /api/inventory/movements.
type RecordMovementRequest struct {
	ProductID string `json:"product_id"`
	Kind      string `json:"kind"`       // entrada | salida
	Quantity  int64  `json:"quantity"`   // > 0
	Reference string `json:"reference"`  // opcional: lote, factura, etc.
}

// MovementResponse salida de un movimiento del ledger.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Kind        string    `json:"kind"`
	Quantity    int64     `json:"quantity"`
	Date        time.Time `json:"date"`
	Reference   string    `json:"reference,omitempty"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ImportSummaryResponse resumen de una carga masiva.
type ImportSummaryResponse struct {
	TotalRows       int `json:"total_rows"`
	Created         int `json:"created"`
	Updated         int `json:"updated"`
	Movements       int `json:"movements"`
	SkippedOptional int `json:"skipped_optional"` // filas con campos opcionales ignorados
}
