package entity

import "time"

// Roles de la aplicación.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// ValidRole indica si el rol es uno de los conocidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleBodeguero || role == RoleVendedor
}

// User representa un usuario de la aplicación.
type User struct {
	ID           string
	Username     string // único
	PasswordHash string // bcrypt
	Role         string
	CreatedAt    time.Time
}
