package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataeasy/dataeasy-api/internal/application/billing"
	"github.com/dataeasy/dataeasy-api/internal/application/dto"
	"github.com/dataeasy/dataeasy-api/internal/application/inventory"
	"github.com/dataeasy/dataeasy-api/internal/domain"
	"github.com/dataeasy/dataeasy-api/internal/domain/entity"
	"github.com/dataeasy/dataeasy-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de emisión de facturas: la factura, sus líneas, los movimientos de
// salida y la reconciliación del stock se confirman juntos o no se confirma
// nada. Ninguna línea puede dejar stock negativo, y el rechazo de una línea
// rechaza la factura completa.
// ──────────────────────────────────────────────────────────────────────────────

type billingFixture struct {
	store *memory.Store
	uc    *billing.CreateInvoiceUseCase
}

func newBillingFixture(t *testing.T) *billingFixture {
	t.Helper()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	ledger := inventory.NewLedgerUseCase(runner, store.Movements())
	return &billingFixture{
		store: store,
		uc: billing.NewCreateInvoiceUseCase(
			runner, ledger, store.Invoices(), store.Categories(), store.Brands(),
		),
	}
}

func (f *billingFixture) seedProduct(t *testing.T, name string, stock int64) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		StockActual: stock,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	require.NoError(t, f.store.Products().Create(p))
	return p
}

func (f *billingFixture) stockOf(t *testing.T, productID string) int64 {
	t.Helper()
	p, err := f.store.Products().GetByID(productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.StockActual
}

func (f *billingFixture) allMovements(t *testing.T) []*entity.Movement {
	t.Helper()
	movs, err := f.store.Movements().List("", 100, 0)
	require.NoError(t, err)
	return movs
}

func TestCreateInvoice_DescuentaStockYGeneraSalida(t *testing.T) {
	f := newBillingFixture(t)
	p := f.seedProduct(t, "Taladro", 10)

	precio := decimal.RequireFromString("1500.50")
	resp, err := f.uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerName: "Ana",
		Items: []dto.InvoiceItemRequest{
			{ProductID: p.ID, Quantity: 4, UnitPrice: precio},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, int64(6), f.stockOf(t, p.ID))

	// Exactamente un movimiento de salida, referenciando la factura.
	movs := f.allMovements(t)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementSalida, movs[0].Kind)
	assert.Equal(t, int64(4), movs[0].Quantity)
	assert.Equal(t, resp.ID, movs[0].Reference)

	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "Taladro", resp.Lines[0].ProductName)
	assert.True(t, resp.Lines[0].Subtotal.Equal(decimal.RequireFromString("6002.00")),
		"subtotal = cantidad x precio unitario, obtuvo %s", resp.Lines[0].Subtotal)
	assert.True(t, resp.Total.Equal(resp.Lines[0].Subtotal))
}

func TestCreateInvoice_StockInsuficienteEsAtomico(t *testing.T) {
	f := newBillingFixture(t)
	p := f.seedProduct(t, "Martillo", 5)

	_, err := f.uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerName: "Pedro",
		Items: []dto.InvoiceItemRequest{
			{ProductID: p.ID, Quantity: 7, UnitPrice: decimal.NewFromInt(1000)},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(5), insufficient.Available)
	assert.Equal(t, int64(7), insufficient.Requested)

	assert.Equal(t, int64(5), f.stockOf(t, p.ID), "el rechazo no debe tocar el stock")
	assert.Empty(t, f.allMovements(t), "el rechazo no debe dejar movimientos")
}

func TestCreateInvoice_MultilineaRechazaCompleta(t *testing.T) {
	f := newBillingFixture(t)
	a := f.seedProduct(t, "Producto A", 3)
	b := f.seedProduct(t, "Producto B", 10)

	// La línea de A excede su stock: aunque la de B alcanza, la factura entera
	// se rechaza y ningún producto queda descontado.
	_, err := f.uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerName: "Luis",
		Items: []dto.InvoiceItemRequest{
			{ProductID: a.ID, Quantity: 5, UnitPrice: decimal.NewFromInt(100)},
			{ProductID: b.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(200)},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(3), f.stockOf(t, a.ID))
	assert.Equal(t, int64(10), f.stockOf(t, b.ID))
	assert.Empty(t, f.allMovements(t))
}

func TestCreateInvoice_MismoProductoEnDosLineas(t *testing.T) {
	f := newBillingFixture(t)
	p := f.seedProduct(t, "Sierra", 5)

	// La segunda línea ve el stock ya descontado por la primera: 3 + 3 > 5.
	_, err := f.uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerName: "Rosa",
		Items: []dto.InvoiceItemRequest{
			{ProductID: p.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(100)},
			{ProductID: p.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(2), insufficient.Available, "la segunda línea debe ver el stock ya descontado")

	assert.Equal(t, int64(5), f.stockOf(t, p.ID))
	assert.Empty(t, f.allMovements(t))
}

func TestCreateInvoice_ValidacionesDeEntrada(t *testing.T) {
	f := newBillingFixture(t)
	p := f.seedProduct(t, "Lijadora", 10)

	casos := []dto.CreateInvoiceRequest{
		{CustomerName: "Ana"}, // sin líneas
		{Items: []dto.InvoiceItemRequest{{ProductID: p.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(1)}}}, // sin cliente
		{CustomerName: "Ana", Items: []dto.InvoiceItemRequest{{ProductID: p.ID, Quantity: 0, UnitPrice: decimal.NewFromInt(1)}}},
		{CustomerName: "Ana", Items: []dto.InvoiceItemRequest{{ProductID: p.ID, Quantity: -1, UnitPrice: decimal.NewFromInt(1)}}},
		{CustomerName: "Ana", Items: []dto.InvoiceItemRequest{{ProductID: p.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(-5)}}},
		{CustomerName: "Ana", CustomerRUT: "12345678-4", Items: []dto.InvoiceItemRequest{{ProductID: p.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(1)}}}, // dv incorrecto
	}
	for i, in := range casos {
		_, err := f.uc.CreateInvoice(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "caso %d", i)
	}
	assert.Equal(t, int64(10), f.stockOf(t, p.ID))
	assert.Empty(t, f.allMovements(t))
}

func TestCreateInvoice_RUTValidoSeNormaliza(t *testing.T) {
	f := newBillingFixture(t)
	p := f.seedProduct(t, "Compresor", 10)

	resp, err := f.uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerName: "Ana",
		CustomerRUT:  "12.345.678-5",
		Items: []dto.InvoiceItemRequest{
			{ProductID: p.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(9990)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "12345678-5", resp.CustomerRUT)
}

func TestCreateInvoice_ProductoInexistente(t *testing.T) {
	f := newBillingFixture(t)

	_, err := f.uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerName: "Ana",
		Items: []dto.InvoiceItemRequest{
			{ProductID: uuid.New().String(), Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetInvoice_RecuperaDetalleCompleto(t *testing.T) {
	f := newBillingFixture(t)

	cat, err := f.store.Categories().GetOrCreate("Herramientas")
	require.NoError(t, err)
	marca, err := f.store.Brands().GetOrCreate("Bosch")
	require.NoError(t, err)

	p := &entity.Product{
		ID:          uuid.New().String(),
		Name:        "Esmeril",
		CategoryID:  cat.ID,
		BrandID:     marca.ID,
		StockActual: 8,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	require.NoError(t, f.store.Products().Create(p))

	created, err := f.uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerName: "Carla",
		Items: []dto.InvoiceItemRequest{
			{ProductID: p.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(25990)},
		},
	})
	require.NoError(t, err)

	got, err := f.uc.GetInvoice(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "Esmeril", got.Lines[0].ProductName)
	assert.Equal(t, "Herramientas", got.Lines[0].Category, "la línea guarda el snapshot de la categoría")
	assert.Equal(t, "Bosch", got.Lines[0].Brand)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(51980)))
}

func TestGetInvoice_Inexistente(t *testing.T) {
	f := newBillingFixture(t)

	_, err := f.uc.GetInvoice(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
