package repository

import (
	"context"
	"time"

	"github.com/dataeasy/dataeasy-api/internal/domain/entity"
)

// InventoryTotals conteos generales del inventario.
type InventoryTotals struct {
	Products   int
	StockTotal int64
	Categories int
	Brands     int
	Movements  int
}

// CategoryStockResult stock agregado por categoría. Los productos sin
// categoría se agrupan bajo "Sin categoría".
type CategoryStockResult struct {
	Category string
	Total    int64
}

// BrandCriticalResult cantidad de productos en stock crítico por marca.
type BrandCriticalResult struct {
	Brand string
	Count int
}

// MonthlyMovementResult total de unidades movidas en un mes por tipo.
type MonthlyMovementResult struct {
	Month time.Time // primer día del mes
	Kind  string    // entrada | salida
	Total int64
}

// AnalyticsRepository define las consultas de lectura para el dashboard y las
// estadísticas. Las implementaciones son read-only.
type AnalyticsRepository interface {
	// GetTotals devuelve los conteos generales del inventario.
	GetTotals(ctx context.Context) (*InventoryTotals, error)

	// GetLowStockProducts devuelve los productos con stock bajo el mínimo,
	// ordenados de menor a mayor stock. limit <= 0 devuelve todos.
	GetLowStockProducts(ctx context.Context, limit int) ([]*entity.Product, error)

	// GetOutOfStockProducts devuelve los productos con stock cero o negativo.
	GetOutOfStockProducts(ctx context.Context) ([]*entity.Product, error)

	// GetRecentMovements devuelve los últimos movimientos con el nombre del
	// producto resuelto.
	GetRecentMovements(ctx context.Context, limit int) ([]*entity.Movement, map[string]string, error)

	// GetStockByCategory devuelve el stock agregado por categoría, de mayor a menor.
	GetStockByCategory(ctx context.Context) ([]CategoryStockResult, error)

	// GetCriticalStockByBrand devuelve cuántos productos de cada marca están
	// bajo su stock mínimo, de mayor a menor.
	GetCriticalStockByBrand(ctx context.Context) ([]BrandCriticalResult, error)

	// GetMovementsByMonth devuelve las unidades movidas por mes y tipo dentro
	// del rango [from, to].
	GetMovementsByMonth(ctx context.Context, from, to time.Time) ([]MonthlyMovementResult, error)
}
