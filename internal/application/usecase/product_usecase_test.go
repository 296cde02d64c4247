package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataeasy/dataeasy-api/internal/application/dto"
	"github.com/dataeasy/dataeasy-api/internal/application/inventory"
	"github.com/dataeasy/dataeasy-api/internal/application/usecase"
	"github.com/dataeasy/dataeasy-api/internal/domain"
	"github.com/dataeasy/dataeasy-api/internal/domain/entity"
	"github.com/dataeasy/dataeasy-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del CRUD de productos. El stock inicial de un producto nuevo debe
// entrar como entrada del ledger, nunca como escritura directa.
// ──────────────────────────────────────────────────────────────────────────────

type productFixture struct {
	store *memory.Store
	uc    *usecase.ProductUseCase
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	ledger := inventory.NewLedgerUseCase(runner, store.Movements())
	uc := usecase.NewProductUseCase(store.Products(), store.Categories(), store.Brands(), ledger)
	return &productFixture{store: store, uc: uc}
}

func TestCreateProduct_ConStockInicial_GeneraEntrada(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	p, err := f.uc.Create(ctx, dto.CreateProductRequest{
		Name:         "Taladro Percutor",
		Category:     "Herramientas",
		Brand:        "Bosch",
		StockMinimo:  3,
		InitialStock: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), p.StockActual)
	assert.Equal(t, "Herramientas", p.Category)
	assert.Equal(t, "Bosch", p.Brand)

	// El stock debe estar respaldado por un movimiento de entrada.
	movements, err := f.store.Movements().List(p.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, entity.MovementEntrada, movements[0].Kind)
	assert.Equal(t, int64(12), movements[0].Quantity)
	assert.Equal(t, "stock inicial", movements[0].Reference)
}

func TestCreateProduct_SinStockInicial_SinMovimientos(t *testing.T) {
	f := newProductFixture(t)

	p, err := f.uc.Create(context.Background(), dto.CreateProductRequest{Name: "Martillo"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.StockActual)

	movements, err := f.store.Movements().List(p.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestCreateProduct_NombreDuplicado(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, dto.CreateProductRequest{Name: "Sierra Circular"})
	require.NoError(t, err)

	// Sin distinguir mayúsculas.
	_, err = f.uc.Create(ctx, dto.CreateProductRequest{Name: "SIERRA CIRCULAR"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateProduct_EntradasInvalidas(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	casos := []dto.CreateProductRequest{
		{Name: ""},
		{Name: "   "},
		{Name: "Lijadora", StockMinimo: -1},
		{Name: "Lijadora", InitialStock: -5},
	}
	for _, in := range casos {
		_, err := f.uc.Create(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestUpdateProduct_NoTocaElStock(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	p, err := f.uc.Create(ctx, dto.CreateProductRequest{Name: "Esmeril", InitialStock: 7})
	require.NoError(t, err)

	nuevoNombre := "Esmeril Angular"
	minimo := int64(4)
	updated, err := f.uc.Update(ctx, p.ID, dto.UpdateProductRequest{
		Name:        &nuevoNombre,
		StockMinimo: &minimo,
	})
	require.NoError(t, err)
	assert.Equal(t, "Esmeril Angular", updated.Name)
	assert.Equal(t, int64(4), updated.StockMinimo)
	assert.Equal(t, int64(7), updated.StockActual, "el update no debe alterar el stock derivado")
}

func TestUpdateProduct_NombreYaUsado(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, dto.CreateProductRequest{Name: "Atornillador"})
	require.NoError(t, err)
	p, err := f.uc.Create(ctx, dto.CreateProductRequest{Name: "Rotomartillo"})
	require.NoError(t, err)

	ocupado := "atornillador"
	_, err = f.uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &ocupado})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdateProduct_Inexistente(t *testing.T) {
	f := newProductFixture(t)

	nombre := "Nuevo"
	_, err := f.uc.Update(context.Background(), "no-existe", dto.UpdateProductRequest{Name: &nombre})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteProduct_EliminaSusMovimientos(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	p, err := f.uc.Create(ctx, dto.CreateProductRequest{Name: "Compresor", InitialStock: 9})
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(ctx, p.ID))

	_, err = f.uc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	movements, err := f.store.Movements().List(p.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, movements, "borrar el producto debe arrastrar su ledger")
}

func TestDeleteProduct_Inexistente(t *testing.T) {
	f := newProductFixture(t)
	assert.ErrorIs(t, f.uc.Delete(context.Background(), "no-existe"), domain.ErrNotFound)
}

func TestListProducts_BuscaYPagina(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	for _, name := range []string{"Taladro A", "Taladro B", "Martillo"} {
		_, err := f.uc.Create(ctx, dto.CreateProductRequest{Name: name})
		require.NoError(t, err)
	}

	list, err := f.uc.List(ctx, "taladro", dto.PageRequest{Limit: 1, Offset: 0})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Taladro A", list.Items[0].Name)
	assert.Equal(t, 2, list.Page.Total)

	list, err = f.uc.List(ctx, "taladro", dto.PageRequest{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Taladro B", list.Items[0].Name)
}

func TestCatalog_GetOrCreateIdempotente(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewCatalogUseCase(store.Categories(), store.Brands())
	ctx := context.Background()

	a, err := uc.CreateCategory(ctx, dto.CreateCatalogRequest{Name: "Eléctricas"})
	require.NoError(t, err)
	b, err := uc.CreateCategory(ctx, dto.CreateCatalogRequest{Name: "eléctricas"})
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID, "mismo nombre (sin mayúsculas) debe resolver a la misma categoría")

	categories, err := uc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)

	_, err = uc.CreateBrand(ctx, dto.CreateCatalogRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
