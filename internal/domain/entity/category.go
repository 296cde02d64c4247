package entity

import "time"

// Category representa una categoría de productos. Entidad de catálogo con
// nombre único; se crea bajo demanda ("get or create") en la carga masiva.
type Category struct {
	ID        string
	Name      string // único (case-insensitive)
	CreatedAt time.Time
}
