package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dataeasy/dataeasy-api/internal/domain"
	"github.com/dataeasy/dataeasy-api/internal/domain/entity"
	"github.com/dataeasy/dataeasy-api/internal/domain/repository"
)

// LedgerUseCase administra el ledger de movimientos de stock: el registro
// append/delete que es la única fuente de verdad del stock.
//
// Contrato de efectos: todo Record o Delete exitoso ejecuta exactamente una
// reconciliación del producto afectado dentro de la misma transacción, con la
// fila del producto bloqueada (SELECT FOR UPDATE). La reconciliación es una
// llamada explícita en este código, no un hook del framework, para que el
// orden sea verificable en tests.
type LedgerUseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository // lecturas fuera de transacción
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, movRepo repository.MovementRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, movRepo: movRepo}
}

// RecordMovementInput entrada para registrar un movimiento.
type RecordMovementInput struct {
	ProductID string
	Kind      string // entrada | salida
	Quantity  int64  // > 0
	Reference string // opcional
}

// RecordMovement registra un movimiento y reconcilia el stock del producto en
// una sola transacción. Retorna el ID del movimiento creado.
//
// Errores: ErrInvalidInput si la cantidad no es positiva o el tipo no es
// entrada/salida (antes de tocar la BD); ErrNotFound si el producto no existe;
// InsufficientStockError si una salida dejaría el stock negativo.
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, input RecordMovementInput) (string, error) {
	if input.ProductID == "" || input.Quantity <= 0 || !entity.ValidMovementKind(input.Kind) {
		return "", domain.ErrInvalidInput
	}

	now := time.Now()
	var movementID string
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if input.Kind == entity.MovementSalida && input.Quantity > product.StockActual {
			return &domain.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Available:   product.StockActual,
				Requested:   input.Quantity,
			}
		}
		id, err := recordInTx(movRepo, productRepo, product.ID, input.Kind, input.Quantity, now, input.Reference)
		if err != nil {
			return err
		}
		movementID = id
		return nil
	})
	if err != nil {
		return "", err
	}
	return movementID, nil
}

// DeleteMovement elimina un movimiento del ledger y reconcilia el producto
// afectado en la misma transacción. ErrNotFound si el movimiento no existe.
//
// Eliminar entradas puede dejar stock negativo; el reconciliador no recorta,
// el valor queda visible para auditoría.
func (uc *LedgerUseCase) DeleteMovement(ctx context.Context, movementID string) error {
	if movementID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		mov, err := movRepo.GetByID(movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		// Bloquear el producto antes de mutar su ledger. Si el producto ya no
		// existe, el delete del movimiento sigue siendo válido y la
		// reconciliación será un no-op.
		if _, err := productRepo.GetForUpdate(mov.ProductID); err != nil {
			return err
		}
		if err := movRepo.Delete(movementID); err != nil {
			return err
		}
		return Reconcile(movRepo, productRepo, mov.ProductID)
	})
}

// ReconcileProduct recalcula el stock de un producto desde su ledger. Operación
// administrativa idempotente: sin cambios en el ledger, dos llamadas seguidas
// producen el mismo valor. Producto inexistente es un no-op.
func (uc *LedgerUseCase) ReconcileProduct(ctx context.Context, productID string) error {
	if productID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		return Reconcile(movRepo, productRepo, productID)
	})
}

// ListMovements lista movimientos (todos o de un producto) por fecha descendente.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, productID string, limit, offset int) ([]*entity.Movement, error) {
	return uc.movRepo.List(productID, limit, offset)
}

// RecordSalidaInTx registra una salida usando los repositorios del caller
// (misma transacción). El caller ya debe tener la fila del producto bloqueada
// vía GetForUpdate. Implementa la integración facturación/carga masiva →
// ledger: si retorna error el caller debe hacer rollback.
func (uc *LedgerUseCase) RecordSalidaInTx(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	quantity int64,
	now time.Time,
	reference string,
) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if quantity > product.StockActual {
		return &domain.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Available:   product.StockActual,
			Requested:   quantity,
		}
	}
	_, err := recordInTx(movRepo, productRepo, product.ID, entity.MovementSalida, quantity, now, reference)
	return err
}

// RecordEntradaInTx registra una entrada usando los repositorios del caller
// (misma transacción, fila del producto ya bloqueada).
func (uc *LedgerUseCase) RecordEntradaInTx(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	quantity int64,
	now time.Time,
	reference string,
) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	_, err := recordInTx(movRepo, productRepo, product.ID, entity.MovementEntrada, quantity, now, reference)
	return err
}

// recordInTx inserta el movimiento y reconcilia. Asume validación y bloqueo
// hechos por el caller.
func recordInTx(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	productID, kind string,
	quantity int64,
	now time.Time,
	reference string,
) (string, error) {
	mov := &entity.Movement{
		ID:        uuid.New().String(),
		ProductID: productID,
		Kind:      kind,
		Quantity:  quantity,
		Date:      now,
		CreatedAt: now,
		Reference: reference,
	}
	if err := movRepo.Create(mov); err != nil {
		return "", err
	}
	if err := Reconcile(movRepo, productRepo, productID); err != nil {
		return "", err
	}
	return mov.ID, nil
}

// Reconcile recalcula el stock autoritativo de un producto desde el ledger:
//
//	stock = Σ cantidades entrada − Σ cantidades salida
//
// y lo persiste por el camino de escritura UpdateStock, que jamás vuelve a
// disparar una reconciliación. No recorta valores negativos. Si el producto no
// existe, UpdateStock no afecta filas y la llamada es un no-op benigno.
func Reconcile(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	productID string,
) error {
	totalIn, err := movRepo.SumByKind(productID, entity.MovementEntrada)
	if err != nil {
		return err
	}
	totalOut, err := movRepo.SumByKind(productID, entity.MovementSalida)
	if err != nil {
		return err
	}
	return productRepo.UpdateStock(productID, totalIn-totalOut)
}
