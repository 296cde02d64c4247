package dto

// CreateCatalogRequest entrada para crear una categoría o marca.
type CreateCatalogRequest struct {
	Name string `json:"name"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BrandResponse salida de una marca.
type BrandResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
