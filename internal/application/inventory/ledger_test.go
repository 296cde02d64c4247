package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataeasy/dataeasy-api/internal/application/inventory"
	"github.com/dataeasy/dataeasy-api/internal/domain"
	"github.com/dataeasy/dataeasy-api/internal/domain/entity"
	"github.com/dataeasy/dataeasy-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del ledger de inventario: el stock de un producto es siempre la suma
// de sus entradas menos sus salidas, recalculada sincrónicamente en cada
// mutación del ledger. Ninguna salida puede dejar el stock negativo.
// ──────────────────────────────────────────────────────────────────────────────

type ledgerFixture struct {
	store  *memory.Store
	ledger *inventory.LedgerUseCase
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	return &ledgerFixture{
		store:  store,
		ledger: inventory.NewLedgerUseCase(runner, store.Movements()),
	}
}

// seedProduct crea un producto directamente en el repositorio, con el stock
// derivado ya fijado en el valor dado (como si el ledger lo respaldara).
func (f *ledgerFixture) seedProduct(t *testing.T, name string, stock int64) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		StockActual: stock,
		StockMinimo: 2,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	require.NoError(t, f.store.Products().Create(p))
	return p
}

func (f *ledgerFixture) stockOf(t *testing.T, productID string) int64 {
	t.Helper()
	p, err := f.store.Products().GetByID(productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.StockActual
}

func TestRecordMovement_EntradaAumentaStock(t *testing.T) {
	f := newLedgerFixture(t)
	p := f.seedProduct(t, "Taladro", 0)

	id, err := f.ledger.RecordMovement(context.Background(), inventory.RecordMovementInput{
		ProductID: p.ID, Kind: entity.MovementEntrada, Quantity: 5,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, int64(5), f.stockOf(t, p.ID))

	_, err = f.ledger.RecordMovement(context.Background(), inventory.RecordMovementInput{
		ProductID: p.ID, Kind: entity.MovementEntrada, Quantity: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(8), f.stockOf(t, p.ID), "el stock debe ser la suma de las entradas")
}

func TestRecordMovement_SalidaDescuentaStock(t *testing.T) {
	f := newLedgerFixture(t)
	p := f.seedProduct(t, "Martillo", 0)

	_, err := f.ledger.RecordMovement(context.Background(), inventory.RecordMovementInput{
		ProductID: p.ID, Kind: entity.MovementEntrada, Quantity: 10,
	})
	require.NoError(t, err)

	_, err = f.ledger.RecordMovement(context.Background(), inventory.RecordMovementInput{
		ProductID: p.ID, Kind: entity.MovementSalida, Quantity: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), f.stockOf(t, p.ID))
}

func TestRecordMovement_SalidaExactaDejaCero(t *testing.T) {
	f := newLedgerFixture(t)
	p := f.seedProduct(t, "Sierra", 0)

	_, err := f.ledger.RecordMovement(context.Background(), inventory.RecordMovementInput{
		ProductID: p.ID, Kind: entity.MovementEntrada, Quantity: 5,
	})
	require.NoError(t, err)

	// Salida por el stock completo: caso borde permitido, queda en cero.
	_, err = f.ledger.RecordMovement(context.Background(), inventory.RecordMovementInput{
		ProductID: p.ID, Kind: entity.MovementSalida, Quantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), f.stockOf(t, p.ID))
}

func TestRecordMovement_SalidaInsuficienteRechazada(t *testing.T) {
	f := newLedgerFixture(t)
	p := f.seedProduct(t, "Lijadora", 0)

	_, err := f.ledger.RecordMovement(context.Background(), inventory.RecordMovementInput{
		ProductID: p.ID, Kind: entity.MovementEntrada, Quantity: 5,
	})
	require.NoError(t, err)

	_, err = f.ledger.RecordMovement(context.Background(), inventory.RecordMovementInput{
		ProductID: p.ID, Kind: entity.MovementSalida, Quantity: 7,
	})
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, p.ID, insufficient.ProductID)
	assert.Equal(t, "Lijadora", insufficient.ProductName)
	assert.Equal(t, int64(5), insufficient.Available)
	assert.Equal(t, int64(7), insufficient.Requested)

	// El rechazo no debe dejar rastro: stock intacto y una sola entrada en el
	// ledger.
	assert.Equal(t, int64(5), f.stockOf(t, p.ID))
	movs, listErr := f.ledger.ListMovements(context.Background(), p.ID, 50, 0)
	require.NoError(t, listErr)
	assert.Len(t, movs, 1)
}

func TestRecordMovement_EntradasInvalidas(t *testing.T) {
	f := newLedgerFixture(t)
	p := f.seedProduct(t, "Atornillador", 10)

	casos := []inventory.RecordMovementInput{
		{ProductID: p.ID, Kind: entity.MovementEntrada, Quantity: 0},
		{ProductID: p.ID, Kind: entity.MovementEntrada, Quantity: -3},
		{ProductID: p.ID, Kind: "ajuste", Quantity: 1},
		{ProductID: "", Kind: entity.MovementEntrada, Quantity: 1},
	}
	for _, input := range casos {
		_, err := f.ledger.RecordMovement(context.Background(), input)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "input %+v", input)
	}
	assert.Equal(t, int64(10), f.stockOf(t, p.ID))
}

func TestRecordMovement_ProductoInexistente(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.ledger.RecordMovement(context.Background(), inventory.RecordMovementInput{
		ProductID: uuid.New().String(), Kind: entity.MovementEntrada, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteMovement_Reconcilia(t *testing.T) {
	f := newLedgerFixture(t)
	p := f.seedProduct(t, "Compresor", 0)

	primera, err := f.ledger.RecordMovement(context.Background(), inventory.RecordMovementInput{
		ProductID: p.ID, Kind: entity.MovementEntrada, Quantity: 10,
	})
	require.NoError(t, err)
	_, err = f.ledger.RecordMovement(context.Background(), inventory.RecordMovementInput{
		ProductID: p.ID, Kind: entity.MovementEntrada, Quantity: 5,
	})
	require.NoError(t, err)
	require.Equal(t, int64(15), f.stockOf(t, p.ID))

	require.NoError(t, f.ledger.DeleteMovement(context.Background(), primera))
	assert.Equal(t, int64(5), f.stockOf(t, p.ID), "borrar una entrada resta su cantidad del stock")
}

func TestDeleteMovement_EntradaPuedeDejarStockNegativo(t *testing.T) {
	f := newLedgerFixture(t)
	p := f.seedProduct(t, "Generador", 0)

	entrada, err := f.ledger.RecordMovement(context.Background(), inventory.RecordMovementInput{
		ProductID: p.ID, Kind: entity.MovementEntrada, Quantity: 10,
	})
	require.NoError(t, err)
	_, err = f.ledger.RecordMovement(context.Background(), inventory.RecordMovementInput{
		ProductID: p.ID, Kind: entity.MovementSalida, Quantity: 8,
	})
	require.NoError(t, err)

	// Borrar la entrada que respaldaba la salida. El reconciliador no recorta:
	// el negativo queda visible.
	require.NoError(t, f.ledger.DeleteMovement(context.Background(), entrada))
	assert.Equal(t, int64(-8), f.stockOf(t, p.ID))
}

func TestDeleteMovement_Inexistente(t *testing.T) {
	f := newLedgerFixture(t)

	err := f.ledger.DeleteMovement(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReconcileProduct_CorrigeStockDesalineado(t *testing.T) {
	f := newLedgerFixture(t)
	// Producto sembrado con un stock que el ledger no respalda.
	p := f.seedProduct(t, "Esmeril", 7)

	require.NoError(t, f.ledger.ReconcileProduct(context.Background(), p.ID))
	assert.Equal(t, int64(0), f.stockOf(t, p.ID), "ledger vacío reconcilia a cero")
}

func TestReconcileProduct_Idempotente(t *testing.T) {
	f := newLedgerFixture(t)
	p := f.seedProduct(t, "Taladro percutor", 0)

	_, err := f.ledger.RecordMovement(context.Background(), inventory.RecordMovementInput{
		ProductID: p.ID, Kind: entity.MovementEntrada, Quantity: 9,
	})
	require.NoError(t, err)
	_, err = f.ledger.RecordMovement(context.Background(), inventory.RecordMovementInput{
		ProductID: p.ID, Kind: entity.MovementSalida, Quantity: 2,
	})
	require.NoError(t, err)

	require.NoError(t, f.ledger.ReconcileProduct(context.Background(), p.ID))
	require.NoError(t, f.ledger.ReconcileProduct(context.Background(), p.ID))
	assert.Equal(t, int64(7), f.stockOf(t, p.ID), "sin cambios en el ledger la reconciliación es estable")
}

func TestReconcileProduct_ProductoInexistenteEsNoOp(t *testing.T) {
	f := newLedgerFixture(t)

	err := f.ledger.ReconcileProduct(context.Background(), uuid.New().String())
	assert.NoError(t, err)
}

func TestListMovements_OrdenDescendente(t *testing.T) {
	f := newLedgerFixture(t)
	p := f.seedProduct(t, "Cortadora", 0)

	for i := 0; i < 3; i++ {
		_, err := f.ledger.RecordMovement(context.Background(), inventory.RecordMovementInput{
			ProductID: p.ID, Kind: entity.MovementEntrada, Quantity: int64(i + 1),
		})
		require.NoError(t, err)
	}

	movs, err := f.ledger.ListMovements(context.Background(), p.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, movs, 3)
	for i := 1; i < len(movs); i++ {
		assert.False(t, movs[i-1].Date.Before(movs[i].Date), "los movimientos deben venir del más reciente al más antiguo")
	}
}
