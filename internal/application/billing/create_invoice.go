package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dataeasy/dataeasy-api/internal/application/dto"
	"github.com/dataeasy/dataeasy-api/internal/domain"
	"github.com/dataeasy/dataeasy-api/internal/domain/entity"
	"github.com/dataeasy/dataeasy-api/internal/domain/repository"
	"github.com/dataeasy/dataeasy-api/pkg/rut"
)

// CreateInvoiceUseCase crea una factura y descuenta el inventario en una sola
// transacción.
//
// Ciclo por intento: RECEIVED (parseo) → VALIDATING (RUT y líneas) →
// COMMITTED o REJECTED. El chequeo de stock y el descuento ocurren con la fila
// del producto bloqueada (SELECT FOR UPDATE) dentro de la transacción, de modo
// que dos facturas concurrentes sobre el mismo producto no pueden pasar ambas
// la validación con una lectura rancia. Un rechazo no deja estado parcial:
// sin factura, sin líneas, sin movimientos.
type CreateInvoiceUseCase struct {
	txRunner     BillingTxRunner
	inventory    InventoryService
	invoiceRepo  repository.InvoiceRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
}

// NewCreateInvoiceUseCase construye el caso de uso.
func NewCreateInvoiceUseCase(
	txRunner BillingTxRunner,
	inventory InventoryService,
	invoiceRepo repository.InvoiceRepository,
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		txRunner:     txRunner,
		inventory:    inventory,
		invoiceRepo:  invoiceRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
	}
}

// CreateInvoice valida y confirma una venta multi-línea contra el stock actual.
//
// Errores: ErrInvalidInput si faltan datos, el RUT no pasa el dígito
// verificador o alguna línea es inválida (nada se escribe);
// InsufficientStockError si alguna línea pide más que el stock disponible (la
// factura completa se rechaza aunque otras líneas alcanzaran); ErrConflict si
// la BD detectó un conflicto de serialización (reintentar el intento completo).
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerName == "" && in.CustomerRUT == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	customerRUT := ""
	if in.CustomerRUT != "" {
		if !rut.Validate(in.CustomerRUT) {
			return nil, domain.ErrInvalidInput
		}
		customerRUT = rut.Format(in.CustomerRUT)
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 || item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	invoiceID := uuid.New().String() // referencia de los movimientos de salida
	var inv *entity.Invoice
	var lines []*entity.InvoiceLine

	err := uc.txRunner.RunBilling(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		total := decimal.Zero
		lines = lines[:0]

		// Las líneas se procesan en el orden del payload. Cada una bloquea la
		// fila del producto, valida contra el stock reconciliado y registra la
		// salida; la siguiente línea del mismo producto ve el stock ya
		// descontado.
		for _, item := range in.Items {
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if err := uc.inventory.RecordSalidaInTx(
				movRepo, productRepo, product, item.Quantity, now, invoiceID,
			); err != nil {
				return err
			}

			subtotal := item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity))
			total = total.Add(subtotal)
			lines = append(lines, &entity.InvoiceLine{
				ID:           uuid.New().String(),
				InvoiceID:    invoiceID,
				ProductID:    product.ID,
				ProductName:  product.Name,
				Quantity:     item.Quantity,
				UnitPrice:    item.UnitPrice,
				Subtotal:     subtotal,
				CategoryName: uc.categoryName(product.CategoryID),
				BrandName:    uc.brandName(product.BrandID),
			})
		}

		inv = &entity.Invoice{
			ID:               invoiceID,
			CustomerName:     in.CustomerName,
			CustomerLastName: in.CustomerLastName,
			CustomerRUT:      customerRUT,
			Date:             now,
			Total:            total,
			CreatedAt:        now,
		}
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, line := range lines {
			if err := invoiceRepo.CreateLine(line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toInvoiceResponse(inv, lines), nil
}

// GetInvoice obtiene una factura por ID con su detalle completo.
func (uc *CreateInvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.invoiceRepo.GetLinesByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, lines), nil
}

// categoryName resuelve el snapshot del nombre de la categoría; vacío si el
// producto no tiene o la categoría ya no existe.
func (uc *CreateInvoiceUseCase) categoryName(categoryID string) string {
	if categoryID == "" {
		return ""
	}
	cat, err := uc.categoryRepo.GetByID(categoryID)
	if err != nil || cat == nil {
		return ""
	}
	return cat.Name
}

func (uc *CreateInvoiceUseCase) brandName(brandID string) string {
	if brandID == "" {
		return ""
	}
	brand, err := uc.brandRepo.GetByID(brandID)
	if err != nil || brand == nil {
		return ""
	}
	return brand.Name
}

func toInvoiceResponse(inv *entity.Invoice, lines []*entity.InvoiceLine) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:               inv.ID,
		CustomerName:     inv.CustomerName,
		CustomerLastName: inv.CustomerLastName,
		CustomerRUT:      inv.CustomerRUT,
		Date:             inv.Date.Format("2006-01-02"),
		Total:            inv.Total,
		Lines:            make([]dto.InvoiceLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.InvoiceLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
			Category:    l.CategoryName,
			Brand:       l.BrandName,
		})
	}
	return resp
}
