package billing

import (
	"context"
	"time"

	"github.com/dataeasy/dataeasy-api/internal/domain/entity"
	"github.com/dataeasy/dataeasy-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye
// los repositorios de inventario y facturación. La factura, sus líneas, los
// movimientos de salida y la reconciliación del stock se confirman juntos o
// no se confirma nada.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// InventoryService integra facturación con el ledger de inventario.
// RecordSalidaInTx registra la salida con los repositorios del caller (misma
// transacción, fila del producto ya bloqueada) y reconcilia el stock. Si
// retorna error (ej: InsufficientStockError) el caller debe hacer rollback.
type InventoryService interface {
	RecordSalidaInTx(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		product *entity.Product,
		quantity int64,
		now time.Time,
		reference string, // ID de la factura
	) error
}

// InvoicePDFGenerator renderiza la representación gráfica de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, lines []*entity.InvoiceLine) ([]byte, error)
}
