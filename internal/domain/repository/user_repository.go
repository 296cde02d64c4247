package repository

import "github.com/dataeasy/dataeasy-api/internal/domain/entity"

// UserRepository puerto de persistencia de usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByUsername(username string) (*entity.User, error)
	List() ([]*entity.User, error)
}
