package repository

import "github.com/dataeasy/dataeasy-api/internal/domain/entity"

// CategoryRepository puerto de persistencia de categorías.
type CategoryRepository interface {
	// GetOrCreate busca la categoría por nombre (case-insensitive) y la crea
	// si no existe.
	GetOrCreate(name string) (*entity.Category, error)
	GetByID(id string) (*entity.Category, error)
	List() ([]*entity.Category, error)
}
