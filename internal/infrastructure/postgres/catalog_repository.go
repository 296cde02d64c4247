package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dataeasy/dataeasy-api/internal/domain/entity"
	"github.com/dataeasy/dataeasy-api/internal/domain/repository"
)

// Categorías y marcas comparten la misma forma: catálogo de nombres únicos
// (case-insensitive) creado bajo demanda. El upsert usa el índice único sobre
// lower(name) para resolver la carrera entre dos cargas simultáneas del mismo
// nombre.

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// GetOrCreate busca la categoría por nombre y la crea si no existe.
func (r *CategoryRepo) GetOrCreate(name string) (*entity.Category, error) {
	query := `
		INSERT INTO categories (id, name, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT ((lower(name)))
		DO UPDATE SET name = categories.name
		RETURNING id, name, created_at`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query,
		uuid.New().String(), strings.TrimSpace(name), time.Now(),
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get or create category: %w", err)
	}
	return &c, nil
}

// GetByID obtiene una categoría por ID. (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	query := `SELECT id, name, created_at FROM categories WHERE id = $1`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, id).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// List lista las categorías por nombre.
func (r *CategoryRepo) List() ([]*entity.Category, error) {
	query := `SELECT id, name, created_at FROM categories ORDER BY lower(name)`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("list categories scan: %w", err)
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

var _ repository.BrandRepository = (*BrandRepo)(nil)

// BrandRepo implementación de BrandRepository sobre PostgreSQL (usable con pool o tx).
type BrandRepo struct {
	q Querier
}

// NewBrandRepository construye el adaptador de marcas. Pasar pool o tx (Querier).
func NewBrandRepository(q Querier) *BrandRepo {
	return &BrandRepo{q: q}
}

// GetOrCreate busca la marca por nombre y la crea si no existe.
func (r *BrandRepo) GetOrCreate(name string) (*entity.Brand, error) {
	query := `
		INSERT INTO brands (id, name, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT ((lower(name)))
		DO UPDATE SET name = brands.name
		RETURNING id, name, created_at`
	var b entity.Brand
	err := r.q.QueryRow(context.Background(), query,
		uuid.New().String(), strings.TrimSpace(name), time.Now(),
	).Scan(&b.ID, &b.Name, &b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get or create brand: %w", err)
	}
	return &b, nil
}

// GetByID obtiene una marca por ID. (nil, nil) si no existe.
func (r *BrandRepo) GetByID(id string) (*entity.Brand, error) {
	query := `SELECT id, name, created_at FROM brands WHERE id = $1`
	var b entity.Brand
	err := r.q.QueryRow(context.Background(), query, id).Scan(&b.ID, &b.Name, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return &b, nil
}

// List lista las marcas por nombre.
func (r *BrandRepo) List() ([]*entity.Brand, error) {
	query := `SELECT id, name, created_at FROM brands ORDER BY lower(name)`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var brands []*entity.Brand
	for rows.Next() {
		var b entity.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("list brands scan: %w", err)
		}
		brands = append(brands, &b)
	}
	return brands, rows.Err()
}
