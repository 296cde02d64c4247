package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dataeasy/dataeasy-api/internal/application/billing"
	"github.com/dataeasy/dataeasy-api/internal/application/bulkload"
	"github.com/dataeasy/dataeasy-api/internal/application/inventory"
	"github.com/dataeasy/dataeasy-api/internal/domain"
	"github.com/dataeasy/dataeasy-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner      = (*TxRunner)(nil)
	_ billing.BillingTxRunner = (*TxRunner)(nil)
	_ bulkload.BulkTxRunner   = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Los
// conflictos de serialización y deadlocks se traducen a domain.ErrConflict
// para que la capa HTTP pida reintentar el intento completo.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos de inventario atados a
// la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.inTx(ctx, func(tx Querier) error {
		return fn(NewMovementRepository(tx), NewProductRepository(tx))
	})
}

// RunBilling inicia una transacción con los repos de inventario y facturación
// (emisión de facturas).
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	return r.inTx(ctx, func(tx Querier) error {
		return fn(NewMovementRepository(tx), NewProductRepository(tx), NewInvoiceRepository(tx))
	})
}

// RunBulk inicia una transacción con los repos que usa la carga masiva.
func (r *TxRunner) RunBulk(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
) error) error {
	return r.inTx(ctx, func(tx Querier) error {
		return fn(NewMovementRepository(tx), NewProductRepository(tx),
			NewCategoryRepository(tx), NewBrandRepository(tx))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConflict
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
