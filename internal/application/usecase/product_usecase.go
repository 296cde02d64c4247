package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dataeasy/dataeasy-api/internal/application/dto"
	"github.com/dataeasy/dataeasy-api/internal/application/inventory"
	"github.com/dataeasy/dataeasy-api/internal/domain"
	"github.com/dataeasy/dataeasy-api/internal/domain/entity"
	"github.com/dataeasy/dataeasy-api/internal/domain/repository"
)

// ProductUseCase administra el catálogo de productos. El stock nunca se
// escribe desde aquí: el stock inicial de un producto nuevo entra como
// movimiento de entrada a través del ledger.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
	ledger       *inventory.LedgerUseCase
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
	ledger *inventory.LedgerUseCase,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		ledger:       ledger,
	}
}

// Create crea un producto. El nombre es único sin distinguir mayúsculas;
// ErrDuplicate si ya existe. Si InitialStock > 0 se registra la entrada
// inicial en el ledger y el stock queda reconciliado.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.StockMinimo < 0 || in.InitialStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if existing, err := uc.productRepo.GetByName(name); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}

	categoryID, err := uc.resolveCategory(in.Category)
	if err != nil {
		return nil, err
	}
	brandID, err := uc.resolveBrand(in.Brand)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		CategoryID:  categoryID,
		BrandID:     brandID,
		StockMinimo: in.StockMinimo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}

	if in.InitialStock > 0 {
		if _, err := uc.ledger.RecordMovement(ctx, inventory.RecordMovementInput{
			ProductID: product.ID,
			Kind:      entity.MovementEntrada,
			Quantity:  in.InitialStock,
			Reference: "stock inicial",
		}); err != nil {
			return nil, err
		}
		product.StockActual = in.InitialStock
	}
	return uc.toResponse(product), nil
}

// Update modifica los campos editables del producto. StockActual no es
// editable; el nombre nuevo debe seguir siendo único.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		if other, err := uc.productRepo.GetByName(name); err != nil {
			return nil, err
		} else if other != nil && other.ID != product.ID {
			return nil, domain.ErrDuplicate
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		categoryID, err := uc.resolveCategory(*in.Category)
		if err != nil {
			return nil, err
		}
		product.CategoryID = categoryID
	}
	if in.Brand != nil {
		brandID, err := uc.resolveBrand(*in.Brand)
		if err != nil {
			return nil, err
		}
		product.BrandID = brandID
	}
	if in.StockMinimo != nil {
		if *in.StockMinimo < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.StockMinimo = *in.StockMinimo
	}
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return uc.toResponse(product), nil
}

// Get obtiene un producto por ID.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(product), nil
}

// List busca productos por nombre, categoría o marca, con paginación.
func (uc *ProductUseCase) List(ctx context.Context, query string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, total, err := uc.productRepo.List(strings.TrimSpace(query), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *uc.toResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina el producto y, en cascada, sus movimientos. La historia del
// ledger de ese producto se pierde; las líneas de facturas ya emitidas
// conservan sus snapshots.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(id)
}

func (uc *ProductUseCase) resolveCategory(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	cat, err := uc.categoryRepo.GetOrCreate(name)
	if err != nil {
		return "", err
	}
	return cat.ID, nil
}

func (uc *ProductUseCase) resolveBrand(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	brand, err := uc.brandRepo.GetOrCreate(name)
	if err != nil {
		return "", err
	}
	return brand.ID, nil
}

func (uc *ProductUseCase) toResponse(p *entity.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StockActual: p.StockActual,
		StockMinimo: p.StockMinimo,
		Status:      p.StockStatus(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.CategoryID != "" {
		if cat, err := uc.categoryRepo.GetByID(p.CategoryID); err == nil && cat != nil {
			resp.Category = cat.Name
		}
	}
	if p.BrandID != "" {
		if brand, err := uc.brandRepo.GetByID(p.BrandID); err == nil && brand != nil {
			resp.Brand = brand.Name
		}
	}
	return resp
}
