package repository

import "github.com/dataeasy/dataeasy-api/internal/domain/entity"

// InvoiceRepository puerto de persistencia de facturas y sus líneas.
// La factura es dueña exclusiva de sus líneas (borrado en cascada).
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateLine(line *entity.InvoiceLine) error
	GetByID(id string) (*entity.Invoice, error)
	GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error)
	// UpdatePDF guarda la representación gráfica renderizada sobre la factura.
	UpdatePDF(id string, pdf []byte) error
}
