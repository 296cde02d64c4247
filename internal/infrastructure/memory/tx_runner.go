package memory

import (
	"context"

	"github.com/dataeasy/dataeasy-api/internal/application/billing"
	"github.com/dataeasy/dataeasy-api/internal/application/bulkload"
	"github.com/dataeasy/dataeasy-api/internal/application/inventory"
	"github.com/dataeasy/dataeasy-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner      = (*TxRunner)(nil)
	_ billing.BillingTxRunner = (*TxRunner)(nil)
	_ bulkload.BulkTxRunner   = (*TxRunner)(nil)
)

// TxRunner ejecuta funciones transaccionales sobre un Store. La transacción
// trabaja sobre un clon del estado y el commit lo intercambia por el vigente;
// si fn devuelve error el clon se descarta y nada queda persistido.
type TxRunner struct {
	store *Store
}

// NewTxRunner crea un TxRunner sobre el Store dado.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn sobre los repositorios de inventario dentro de una
// transacción simulada.
func (t *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return t.inTx(ctx, func(sess session) error {
		return fn(&movementRepo{sess: sess}, &productRepo{sess: sess})
	})
}

// RunBilling ejecuta fn con los repositorios de inventario y facturación.
func (t *TxRunner) RunBilling(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	return t.inTx(ctx, func(sess session) error {
		return fn(&movementRepo{sess: sess}, &productRepo{sess: sess}, &invoiceRepo{sess: sess})
	})
}

// RunBulk ejecuta fn con los repositorios que usa la carga masiva.
func (t *TxRunner) RunBulk(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
) error) error {
	return t.inTx(ctx, func(sess session) error {
		return fn(&movementRepo{sess: sess}, &productRepo{sess: sess},
			&categoryRepo{sess: sess}, &brandRepo{sess: sess})
	})
}

func (t *TxRunner) inTx(ctx context.Context, fn func(sess session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()

	t.store.mu.Lock()
	clone := t.store.data.clone()
	t.store.mu.Unlock()

	if err := fn(&txSession{d: clone}); err != nil {
		return err
	}

	t.store.mu.Lock()
	t.store.data = clone
	t.store.mu.Unlock()
	return nil
}
