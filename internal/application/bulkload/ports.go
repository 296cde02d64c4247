package bulkload

import (
	"context"
	"time"

	"github.com/dataeasy/dataeasy-api/internal/domain/entity"
	"github.com/dataeasy/dataeasy-api/internal/domain/repository"
)

// BulkTxRunner ejecuta la carga completa de un archivo dentro de una única
// transacción. Si fn devuelve error no se persiste ninguna fila.
type BulkTxRunner interface {
	RunBulk(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		categoryRepo repository.CategoryRepository,
		brandRepo repository.BrandRepository,
	) error) error
}

// InventoryService integra la carga masiva con el ledger de inventario. Las
// diferencias de stock contra el archivo se materializan como movimientos
// dentro de la transacción del caller, nunca como escrituras directas del
// stock.
type InventoryService interface {
	RecordEntradaInTx(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		product *entity.Product,
		quantity int64,
		now time.Time,
		reference string,
	) error
	RecordSalidaInTx(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		product *entity.Product,
		quantity int64,
		now time.Time,
		reference string,
	) error
}
