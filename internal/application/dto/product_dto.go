package dto

import "time"

// CreateProductRequest entrada para crear un producto.
// InitialStock es opcional: si es > 0 se registra como un movimiento de
// entrada a través del ledger; el stock nunca se escribe directo.
type CreateProductRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Category     string `json:"category"` // nombre; se crea si no existe
	Brand        string `json:"brand"`    // nombre; se crea si no existe
	StockMinimo  int64  `json:"stock_minimo"`
	InitialStock int64  `json:"initial_stock"`
}

// UpdateProductRequest entrada para actualizar un producto.
// StockActual no es editable: solo el reconciliador lo escribe.
type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Brand       *string `json:"brand"`
	StockMinimo *int64  `json:"stock_minimo"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	StockActual int64     `json:"stock_actual"`
	StockMinimo int64     `json:"stock_minimo"`
	Status      string    `json:"status"` // sin stock | stock bajo | normal
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
