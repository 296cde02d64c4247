package billing

import (
	"context"
	"fmt"

	"github.com/dataeasy/dataeasy-api/internal/domain"
	"github.com/dataeasy/dataeasy-api/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura y la
// persiste sobre el registro para no renderizar dos veces.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(invoiceRepo repository.InvoiceRepository, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{invoiceRepo: invoiceRepo, generator: generator}
}

// DownloadInvoicePDF devuelve el PDF de la factura. Si la factura ya tiene el
// artefacto guardado lo reutiliza; si no, lo renderiza y lo guarda.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	filename = fmt.Sprintf("factura_%s.pdf", inv.ID)
	if len(inv.PDF) > 0 {
		return inv.PDF, filename, nil
	}

	lines, err := uc.invoiceRepo.GetLinesByInvoiceID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener detalles: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, lines)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	// Persistir el artefacto sobre la factura; si falla la escritura el PDF
	// generado sigue siendo válido para esta descarga.
	if err := uc.invoiceRepo.UpdatePDF(invoiceID, pdfBytes); err != nil {
		return nil, "", fmt.Errorf("pdf: guardar artefacto: %w", err)
	}

	return pdfBytes, filename, nil
}
