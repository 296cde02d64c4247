package repository

import "github.com/dataeasy/dataeasy-api/internal/domain/entity"

// ProductRepository puerto de persistencia de productos.
//
// UpdateStock es el único camino de escritura de StockActual y está reservado
// al reconciliador de stock: actualiza solo stock_actual y updated_at, nunca
// vuelve a disparar movimientos. Si el producto no existe es un no-op.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByName busca por nombre sin distinguir mayúsculas/acentos de caja.
	GetByName(name string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE).
	// Retorna (nil, nil) si no existe.
	GetForUpdate(id string) (*entity.Product, error)
	// Update modifica nombre, descripción, categoría, marca y stock mínimo.
	// No toca StockActual.
	Update(product *entity.Product) error
	// UpdateStock persiste el stock derivado. Reservado al reconciliador.
	UpdateStock(id string, stock int64) error
	// List busca por nombre/categoría/marca con paginación; retorna también el
	// total sin paginar.
	List(query string, limit, offset int) ([]*entity.Product, int, error)
	// ListAll retorna todos los productos ordenados por nombre (exportación).
	ListAll() ([]*entity.Product, error)
	// Delete elimina el producto; sus movimientos caen en cascada (el ledger
	// pierde esa historia).
	Delete(id string) error
}
