package entity

import "github.com/shopspring/decimal"

// InvoiceLine representa una línea de detalle de una factura.
//
// CategoryName y BrandName son snapshots informativos tomados al facturar;
// no se mantienen sincronizados con el producto.
type InvoiceLine struct {
	ID           string
	InvoiceID    string
	ProductID    string
	ProductName  string          // snapshot del nombre al momento de facturar
	Quantity     int64           // > 0
	UnitPrice    decimal.Decimal // precio externo entregado por línea
	Subtotal     decimal.Decimal // Quantity * UnitPrice
	CategoryName string
	BrandName    string
}
