package repository

import "github.com/dataeasy/dataeasy-api/internal/domain/entity"

// MovementRepository puerto de persistencia del ledger de movimientos.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	Delete(id string) error
	// SumByKind suma las cantidades de los movimientos de un producto por tipo
	// (entrada o salida). 0 si no hay movimientos.
	SumByKind(productID, kind string) (int64, error)
	// List lista movimientos ordenados por fecha descendente. productID vacío
	// lista todos los productos.
	List(productID string, limit, offset int) ([]*entity.Movement, error)
}
