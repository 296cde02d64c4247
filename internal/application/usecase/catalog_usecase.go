package usecase

import (
	"context"
	"strings"

	"github.com/dataeasy/dataeasy-api/internal/application/dto"
	"github.com/dataeasy/dataeasy-api/internal/domain"
	"github.com/dataeasy/dataeasy-api/internal/domain/repository"
)

// CatalogUseCase administra los catálogos de categorías y marcas. Ambos son
// listas de nombres únicos que también se crean bajo demanda desde la carga
// masiva y la creación de productos.
type CatalogUseCase struct {
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(categoryRepo repository.CategoryRepository, brandRepo repository.BrandRepository) *CatalogUseCase {
	return &CatalogUseCase{categoryRepo: categoryRepo, brandRepo: brandRepo}
}

// CreateCategory crea la categoría si no existe; si existe la retorna
// (idempotente, igual que la carga masiva).
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, in dto.CreateCatalogRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	cat, err := uc.categoryRepo.GetOrCreate(name)
	if err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: cat.ID, Name: cat.Name}, nil
}

// ListCategories lista todas las categorías ordenadas por nombre.
func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	cats, err := uc.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

// CreateBrand crea la marca si no existe; si existe la retorna.
func (uc *CatalogUseCase) CreateBrand(ctx context.Context, in dto.CreateCatalogRequest) (*dto.BrandResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	brand, err := uc.brandRepo.GetOrCreate(name)
	if err != nil {
		return nil, err
	}
	return &dto.BrandResponse{ID: brand.ID, Name: brand.Name}, nil
}

// ListBrands lista todas las marcas ordenadas por nombre.
func (uc *CatalogUseCase) ListBrands(ctx context.Context) ([]dto.BrandResponse, error) {
	brands, err := uc.brandRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.BrandResponse, 0, len(brands))
	for _, b := range brands {
		out = append(out, dto.BrandResponse{ID: b.ID, Name: b.Name})
	}
	return out, nil
}
