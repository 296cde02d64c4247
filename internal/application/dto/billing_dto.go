package dto

import "github.com/shopspring/decimal"

// CreateInvoiceRequest body para POST /api/invoices.
// El precio unitario es un insumo externo por línea; la aplicación no mantiene
// lista de precios.
type CreateInvoiceRequest struct {
	CustomerName     string               `json:"customer_name"`
	CustomerLastName string               `json:"customer_last_name"`
	CustomerRUT      string               `json:"customer_rut"` // opcional; si viene, se valida el dígito verificador
	Items            []InvoiceItemRequest `json:"items"`
}

// InvoiceItemRequest una línea de la factura.
type InvoiceItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// InvoiceResponse salida de una factura con su detalle.
type InvoiceResponse struct {
	ID               string                `json:"id"`
	CustomerName     string                `json:"customer_name"`
	CustomerLastName string                `json:"customer_last_name,omitempty"`
	CustomerRUT      string                `json:"customer_rut,omitempty"`
	Date             string                `json:"date"`
	Total            decimal.Decimal       `json:"total"`
	Lines            []InvoiceLineResponse `json:"lines"`
}

// InvoiceLineResponse una línea del detalle.
type InvoiceLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Category    string          `json:"category,omitempty"`
	Brand       string          `json:"brand,omitempty"`
}

// InsufficientStockResponse rechazo estructurado por falta de stock: qué
// producto falló y cuánto faltó.
type InsufficientStockResponse struct {
	Code        string `json:"code"` // INSUFFICIENT_STOCK
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Available   int64  `json:"available"`
	Requested   int64  `json:"requested"`
}
