package entity

import "time"

// Brand representa una marca. Igual que Category: catálogo de nombre único
// creado bajo demanda.
type Brand struct {
	ID        string
	Name      string // único (case-insensitive)
	CreatedAt time.Time
}
