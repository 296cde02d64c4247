package bulkload

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"

	"github.com/dataeasy/dataeasy-api/internal/domain/entity"
	"github.com/dataeasy/dataeasy-api/internal/domain/repository"
)

// exportHeader encabezados del archivo exportado. Normalizados equivalen a
// las columnas que la importación exige, así un archivo exportado se puede
// volver a importar sin edición.
var exportHeader = []string{
	"Nombre Producto", "Categoría", "Marca", "Stock Actual", "Stock Mínimo", "Estado",
}

// ExportUseCase genera el archivo CSV del inventario vigente.
type ExportUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
}

// NewExportUseCase crea el caso de uso de exportación.
func NewExportUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
) *ExportUseCase {
	return &ExportUseCase{productRepo: productRepo, categoryRepo: categoryRepo, brandRepo: brandRepo}
}

// ExportCSV serializa todos los productos con su categoría, marca, stock y
// estado derivado. Devuelve el contenido y el nombre de archivo sugerido.
func (uc *ExportUseCase) ExportCSV(ctx context.Context) ([]byte, string, error) {
	products, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, "", err
	}

	categories, err := uc.categoryRepo.List()
	if err != nil {
		return nil, "", err
	}
	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	brands, err := uc.brandRepo.List()
	if err != nil {
		return nil, "", err
	}
	brandNames := make(map[string]string, len(brands))
	for _, b := range brands {
		brandNames[b.ID] = b.Name
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, "", err
	}
	for _, p := range products {
		record := []string{
			p.Name,
			categoryNames[p.CategoryID],
			brandNames[p.BrandID],
			strconv.FormatInt(p.StockActual, 10),
			strconv.FormatInt(p.StockMinimo, 10),
			statusLabel(p),
		}
		if err := w.Write(record); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "inventario.csv", nil
}

// statusLabel etiqueta de estado para la columna Estado.
func statusLabel(p *entity.Product) string {
	switch p.StockStatus() {
	case entity.StockStatusSinStock:
		return "Sin stock"
	case entity.StockStatusStockBajo:
		return "Stock bajo"
	default:
		return "Normal"
	}
}
