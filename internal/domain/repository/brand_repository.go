package repository

import "github.com/dataeasy/dataeasy-api/internal/domain/entity"

// BrandRepository puerto de persistencia de marcas.
type BrandRepository interface {
	// GetOrCreate busca la marca por nombre (case-insensitive) y la crea si no
	// existe.
	GetOrCreate(name string) (*entity.Brand, error)
	GetByID(id string) (*entity.Brand, error)
	List() ([]*entity.Brand, error)
}
