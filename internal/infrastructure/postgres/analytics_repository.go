package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dataeasy/dataeasy-api/internal/domain/entity"
	"github.com/dataeasy/dataeasy-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard y las estadísticas.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetTotals devuelve los conteos generales del inventario. Los subselects van
// en una sola consulta para que el snapshot sea consistente.
func (r *AnalyticsRepo) GetTotals(ctx context.Context) (*repository.InventoryTotals, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM products)                          AS products,
	    (SELECT COALESCE(SUM(stock_actual), 0) FROM products)    AS stock_total,
	    (SELECT COUNT(*) FROM categories)                        AS categories,
	    (SELECT COUNT(*) FROM brands)                            AS brands,
	    (SELECT COUNT(*) FROM movements)                         AS movements`
	var t repository.InventoryTotals
	err := r.pool.QueryRow(ctx, query).Scan(
		&t.Products, &t.StockTotal, &t.Categories, &t.Brands, &t.Movements,
	)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTotals: %w", err)
	}
	return &t, nil
}

// GetLowStockProducts devuelve los productos con stock positivo pero en o bajo
// su mínimo, del más crítico al menos. limit <= 0 devuelve todos.
func (r *AnalyticsRepo) GetLowStockProducts(ctx context.Context, limit int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE stock_actual > 0 AND stock_actual <= stock_minimo
		ORDER BY stock_actual ASC, lower(name)`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	return r.queryProducts(ctx, query, args...)
}

// GetOutOfStockProducts devuelve los productos con stock cero o negativo.
func (r *AnalyticsRepo) GetOutOfStockProducts(ctx context.Context) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE stock_actual <= 0
		ORDER BY stock_actual ASC, lower(name)`
	return r.queryProducts(ctx, query)
}

// GetRecentMovements devuelve los últimos movimientos con los nombres de
// producto resueltos en un mapa aparte.
func (r *AnalyticsRepo) GetRecentMovements(ctx context.Context, limit int) ([]*entity.Movement, map[string]string, error) {
	const query = `
		SELECT m.id, m.product_id, m.kind, m.quantity, m.date, m.created_at, m.reference,
		       p.name
		FROM movements m
		JOIN products p ON p.id = m.product_id
		ORDER BY m.date DESC, m.created_at DESC
		LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("analytics.GetRecentMovements: %w", err)
	}
	defer rows.Close()

	var movements []*entity.Movement
	names := make(map[string]string)
	for rows.Next() {
		var m entity.Movement
		var productName string
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.Date, &m.CreatedAt, &m.Reference,
			&productName,
		); err != nil {
			return nil, nil, fmt.Errorf("analytics.GetRecentMovements scan: %w", err)
		}
		movements = append(movements, &m)
		names[m.ProductID] = productName
	}
	return movements, names, rows.Err()
}

// GetStockByCategory devuelve el stock agregado por categoría de mayor a
// menor. Los productos sin categoría se agrupan bajo "Sin categoría".
func (r *AnalyticsRepo) GetStockByCategory(ctx context.Context) ([]repository.CategoryStockResult, error) {
	const query = `
		SELECT COALESCE(c.name, 'Sin categoría') AS category,
		       COALESCE(SUM(p.stock_actual), 0)  AS total
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		GROUP BY c.name
		ORDER BY total DESC, category`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetStockByCategory: %w", err)
	}
	defer rows.Close()

	var results []repository.CategoryStockResult
	for rows.Next() {
		var row repository.CategoryStockResult
		if err := rows.Scan(&row.Category, &row.Total); err != nil {
			return nil, fmt.Errorf("analytics.GetStockByCategory scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetCriticalStockByBrand devuelve cuántos productos de cada marca están en o
// bajo su stock mínimo, de mayor a menor.
func (r *AnalyticsRepo) GetCriticalStockByBrand(ctx context.Context) ([]repository.BrandCriticalResult, error) {
	const query = `
		SELECT COALESCE(b.name, 'Sin marca') AS brand,
		       COUNT(*)                      AS critical
		FROM products p
		LEFT JOIN brands b ON b.id = p.brand_id
		WHERE p.stock_actual <= p.stock_minimo
		GROUP BY b.name
		ORDER BY critical DESC, brand`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetCriticalStockByBrand: %w", err)
	}
	defer rows.Close()

	var results []repository.BrandCriticalResult
	for rows.Next() {
		var row repository.BrandCriticalResult
		if err := rows.Scan(&row.Brand, &row.Count); err != nil {
			return nil, fmt.Errorf("analytics.GetCriticalStockByBrand scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetMovementsByMonth devuelve las unidades movidas por mes y tipo dentro del
// rango [from, to].
func (r *AnalyticsRepo) GetMovementsByMonth(ctx context.Context, from, to time.Time) ([]repository.MonthlyMovementResult, error) {
	const query = `
		SELECT date_trunc('month', date) AS month,
		       kind,
		       SUM(quantity)             AS total
		FROM movements
		WHERE date BETWEEN $1 AND $2
		GROUP BY 1, 2
		ORDER BY 1, 2`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetMovementsByMonth: %w", err)
	}
	defer rows.Close()

	var results []repository.MonthlyMovementResult
	for rows.Next() {
		var row repository.MonthlyMovementResult
		if err := rows.Scan(&row.Month, &row.Kind, &row.Total); err != nil {
			return nil, fmt.Errorf("analytics.GetMovementsByMonth scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

func (r *AnalyticsRepo) queryProducts(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		p, err := scanProductRows(rows)
		if err != nil {
			return nil, fmt.Errorf("analytics products scan: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func scanProductRows(rows pgx.Rows) (*entity.Product, error) {
	var p entity.Product
	err := rows.Scan(
		&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.BrandID,
		&p.StockActual, &p.StockMinimo, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
