package entity

import "time"

// Product representa un producto del inventario.
//
// StockActual es un valor derivado: la suma de entradas menos salidas del
// ledger de movimientos. Solo el reconciliador de stock puede escribirlo
// (repository.ProductRepository.UpdateStock); cualquier otro escritor debe
// pasar por el ledger.
type Product struct {
	ID          string
	Name        string // único (case-insensitive)
	Description string
	CategoryID  string // vacío = sin categoría
	BrandID     string // vacío = sin marca
	StockActual int64  // cache derivado del ledger; puede ser negativo si el ledger fue violado
	StockMinimo int64  // umbral de alerta, >= 0
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EnAlertaStock indica si el producto está en o por debajo del stock mínimo.
// Solo para reportes; no es un invariante del núcleo.
func (p *Product) EnAlertaStock() bool {
	return p.StockActual <= p.StockMinimo
}

// Estados derivados para exportación y reportes.
const (
	StockStatusSinStock  = "sin stock"
	StockStatusStockBajo = "stock bajo"
	StockStatusNormal    = "normal"
)

// StockStatus devuelve la etiqueta de estado del producto según su stock.
func (p *Product) StockStatus() string {
	switch {
	case p.StockActual <= 0:
		return StockStatusSinStock
	case p.StockActual <= p.StockMinimo:
		return StockStatusStockBajo
	default:
		return StockStatusNormal
	}
}
