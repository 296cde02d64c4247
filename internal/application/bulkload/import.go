package bulkload

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dataeasy/dataeasy-api/internal/application/dto"
	"github.com/dataeasy/dataeasy-api/internal/domain"
	"github.com/dataeasy/dataeasy-api/internal/domain/entity"
	"github.com/dataeasy/dataeasy-api/internal/domain/repository"
)

// ImportUseCase carga productos y stock desde un archivo CSV.
//
// El archivo se valida completo antes de tocar la base: columnas obligatorias
// ausentes o valores no numéricos en campos requeridos abortan la carga entera.
// Las filas válidas se aplican en una única transacción; la columna de stock
// del archivo es un valor objetivo, la diferencia contra el stock vigente se
// registra como entrada o salida en el ledger.
type ImportUseCase struct {
	txRunner  BulkTxRunner
	inventory InventoryService
}

// NewImportUseCase crea el caso de uso de carga masiva.
func NewImportUseCase(txRunner BulkTxRunner, inventory InventoryService) *ImportUseCase {
	return &ImportUseCase{txRunner: txRunner, inventory: inventory}
}

// importRow fila ya parseada y validada del archivo.
type importRow struct {
	line        int // número de fila en el archivo, 1-based incluyendo encabezado
	name        string
	category    string
	brand       string
	stock       int64
	stockMinimo int64
	description string
	hasDesc     bool
}

// ImportCSV procesa un archivo CSV de inventario y devuelve el resumen de la
// carga. Si retorna error no se persistió ninguna fila.
func (uc *ImportUseCase) ImportCSV(ctx context.Context, r io.Reader) (*dto.ImportSummaryResponse, error) {
	rows, skippedOptional, err := parseFile(r)
	if err != nil {
		return nil, err
	}

	summary := &dto.ImportSummaryResponse{
		TotalRows:       len(rows),
		SkippedOptional: skippedOptional,
	}
	if len(rows) == 0 {
		return summary, nil
	}

	lote := "carga:" + uuid.New().String()
	now := time.Now()

	err = uc.txRunner.RunBulk(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		categoryRepo repository.CategoryRepository,
		brandRepo repository.BrandRepository,
	) error {
		for _, row := range rows {
			if err := uc.applyRow(movRepo, productRepo, categoryRepo, brandRepo, row, lote, now, summary); err != nil {
				return fmt.Errorf("fila %d: %w", row.line, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// applyRow inserta o actualiza el producto de la fila y materializa la
// diferencia de stock como movimiento. Corre dentro de la transacción del
// lote.
func (uc *ImportUseCase) applyRow(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
	row importRow,
	lote string,
	now time.Time,
	summary *dto.ImportSummaryResponse,
) error {
	var categoryID, brandID string
	if row.category != "" {
		cat, err := categoryRepo.GetOrCreate(row.category)
		if err != nil {
			return err
		}
		categoryID = cat.ID
	}
	if row.brand != "" {
		brand, err := brandRepo.GetOrCreate(row.brand)
		if err != nil {
			return err
		}
		brandID = brand.ID
	}

	existing, err := productRepo.GetByName(row.name)
	if err != nil {
		return err
	}

	var product *entity.Product
	var previousStock int64
	if existing == nil {
		product = &entity.Product{
			ID:          uuid.New().String(),
			Name:        row.name,
			Description: row.description,
			CategoryID:  categoryID,
			BrandID:     brandID,
			StockMinimo: row.stockMinimo,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := productRepo.Create(product); err != nil {
			return err
		}
		summary.Created++
	} else {
		product, err = productRepo.GetForUpdate(existing.ID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrConflict
		}
		previousStock = product.StockActual
		product.CategoryID = categoryID
		product.BrandID = brandID
		product.StockMinimo = row.stockMinimo
		if row.hasDesc {
			product.Description = row.description
		}
		product.UpdatedAt = now
		if err := productRepo.Update(product); err != nil {
			return err
		}
		summary.Updated++
	}

	delta := row.stock - previousStock
	switch {
	case delta > 0:
		if err := uc.inventory.RecordEntradaInTx(movRepo, productRepo, product, delta, now, lote); err != nil {
			return err
		}
		summary.Movements++
	case delta < 0:
		if err := uc.inventory.RecordSalidaInTx(movRepo, productRepo, product, -delta, now, lote); err != nil {
			return err
		}
		summary.Movements++
	}
	return nil
}

// parseFile lee y valida el archivo completo. Devuelve las filas listas para
// aplicar y cuántas tuvieron campos opcionales ausentes.
func parseFile(r io.Reader) ([]importRow, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, 0, fmt.Errorf("archivo vacío: %w", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("encabezado ilegible: %w", domain.ErrInvalidInput)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	idx := mapHeader(header)
	if missing := missingRequired(idx); len(missing) > 0 {
		return nil, 0, &domain.MissingColumnsError{Columns: missing}
	}

	var rows []importRow
	skippedOptional := 0
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, 0, fmt.Errorf("fila %d ilegible: %w", line, domain.ErrInvalidInput)
		}
		if isBlankRecord(record) {
			continue
		}

		row, skipped, err := parseRow(record, idx, line)
		if err != nil {
			return nil, 0, err
		}
		if skipped {
			skippedOptional++
		}
		rows = append(rows, row)
	}
	return rows, skippedOptional, nil
}

// parseRow valida una fila. Los campos obligatorios faltantes o no numéricos
// son errores; los opcionales ausentes solo se contabilizan.
func parseRow(record []string, idx map[string]int, line int) (importRow, bool, error) {
	row := importRow{line: line}

	name, ok := cell(record, idx, colNombreProducto)
	if !ok || name == "" {
		return row, false, fmt.Errorf("fila %d: %s vacío: %w", line, colNombreProducto, domain.ErrInvalidInput)
	}
	row.name = name
	row.category, _ = cell(record, idx, colCategoria)
	row.brand, _ = cell(record, idx, colMarca)

	stock, err := requiredInt(record, idx, colStockActual, line)
	if err != nil {
		return row, false, err
	}
	row.stock = stock

	minimo, err := requiredInt(record, idx, colStockMinimo, line)
	if err != nil {
		return row, false, err
	}
	row.stockMinimo = minimo

	skipped := false
	if _, declared := idx[colDescripcion]; declared {
		desc, present := cell(record, idx, colDescripcion)
		if present {
			row.description = desc
			row.hasDesc = true
		} else {
			skipped = true
		}
	}
	return row, skipped, nil
}

// requiredInt parsea un campo numérico obligatorio, >= 0.
func requiredInt(record []string, idx map[string]int, col string, line int) (int64, error) {
	raw, ok := cell(record, idx, col)
	if !ok || raw == "" {
		return 0, fmt.Errorf("fila %d: %s vacío: %w", line, col, domain.ErrInvalidInput)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("fila %d: %s no numérico (%q): %w", line, col, raw, domain.ErrInvalidInput)
	}
	if v < 0 {
		return 0, fmt.Errorf("fila %d: %s negativo: %w", line, col, domain.ErrInvalidInput)
	}
	return v, nil
}

// cell devuelve la celda de la columna si la fila la alcanza.
func cell(record []string, idx map[string]int, col string) (string, bool) {
	i, ok := idx[col]
	if !ok || i >= len(record) {
		return "", false
	}
	return strings.TrimSpace(record[i]), true
}

func isBlankRecord(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
