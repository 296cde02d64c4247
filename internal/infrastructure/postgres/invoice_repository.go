package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dataeasy/dataeasy-api/internal/domain"
	"github.com/dataeasy/dataeasy-api/internal/domain/entity"
	"github.com/dataeasy/dataeasy-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository sobre PostgreSQL (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de facturas. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create inserta la cabecera de la factura. El PDF queda NULL hasta la primera
// descarga.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, customer_name, customer_last_name, customer_rut, date, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CustomerName, invoice.CustomerLastName, invoice.CustomerRUT,
		invoice.Date, invoice.Total, invoice.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateLine inserta una línea de detalle con sus snapshots.
func (r *InvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	query := `
		INSERT INTO invoice_lines (id, invoice_id, product_id, product_name, quantity, unit_price, subtotal, category_name, brand_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.InvoiceID, line.ProductID, line.ProductName, line.Quantity,
		line.UnitPrice, line.Subtotal, line.CategoryName, line.BrandName,
	)
	if err != nil {
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID, incluyendo el PDF si ya fue renderizado.
// (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `
		SELECT id, customer_name, customer_last_name, customer_rut, date, total, pdf, created_at
		FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.CustomerName, &inv.CustomerLastName, &inv.CustomerRUT,
		&inv.Date, &inv.Total, &inv.PDF, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetLinesByInvoiceID obtiene las líneas de una factura en orden de inserción.
func (r *InvoiceRepo) GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error) {
	query := `
		SELECT id, invoice_id, COALESCE(product_id::text, ''), product_name, quantity, unit_price, subtotal, category_name, brand_name
		FROM invoice_lines WHERE invoice_id = $1
		ORDER BY seq`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.InvoiceLine
	for rows.Next() {
		var l entity.InvoiceLine
		if err := rows.Scan(
			&l.ID, &l.InvoiceID, &l.ProductID, &l.ProductName, &l.Quantity,
			&l.UnitPrice, &l.Subtotal, &l.CategoryName, &l.BrandName,
		); err != nil {
			return nil, fmt.Errorf("get invoice lines scan: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// UpdatePDF guarda el PDF renderizado sobre la factura. ErrNotFound si no existe.
func (r *InvoiceRepo) UpdatePDF(id string, pdf []byte) error {
	tag, err := r.q.Exec(context.Background(), `UPDATE invoices SET pdf = $2 WHERE id = $1`, id, pdf)
	if err != nil {
		return fmt.Errorf("update invoice pdf: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
