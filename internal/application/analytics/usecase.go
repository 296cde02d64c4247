package analytics

import (
	"context"
	"time"

	"github.com/dataeasy/dataeasy-api/internal/application/dto"
	"github.com/dataeasy/dataeasy-api/internal/domain"
	"github.com/dataeasy/dataeasy-api/internal/domain/entity"
	"github.com/dataeasy/dataeasy-api/internal/domain/repository"
)

// DefaultStatisticsRange rango por defecto de las estadísticas cuando el
// cliente no entrega fechas.
const DefaultStatisticsRange = 180 * 24 * time.Hour

// UseCase arma el dashboard y las estadísticas a partir de las consultas de
// lectura. No muta nada.
type UseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(analyticsRepo repository.AnalyticsRepository) *UseCase {
	return &UseCase{analyticsRepo: analyticsRepo}
}

// Dashboard devuelve los productos en alerta de stock y los últimos
// movimientos para la página de inicio.
func (uc *UseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	lowStock, err := uc.analyticsRepo.GetLowStockProducts(ctx, 10)
	if err != nil {
		return nil, err
	}
	movements, productNames, err := uc.analyticsRepo.GetRecentMovements(ctx, 10)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		LowStockProducts: toProductResponses(lowStock),
		RecentMovements:  make([]dto.MovementResponse, 0, len(movements)),
	}
	for _, m := range movements {
		resp.RecentMovements = append(resp.RecentMovements, dto.MovementResponse{
			ID:          m.ID,
			ProductID:   m.ProductID,
			ProductName: productNames[m.ProductID],
			Kind:        m.Kind,
			Quantity:    m.Quantity,
			Date:        m.Date,
			Reference:   m.Reference,
		})
	}
	return resp, nil
}

// Statistics devuelve los totales y las series de gráficos para el rango
// [from, to]. Fechas en cero aplican el rango por defecto terminando hoy.
func (uc *UseCase) Statistics(ctx context.Context, from, to time.Time) (*dto.StatisticsResponse, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.Add(-DefaultStatisticsRange)
	}
	if from.After(to) {
		return nil, domain.ErrInvalidInput
	}

	totals, err := uc.analyticsRepo.GetTotals(ctx)
	if err != nil {
		return nil, err
	}
	outOfStock, err := uc.analyticsRepo.GetOutOfStockProducts(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.analyticsRepo.GetLowStockProducts(ctx, 0)
	if err != nil {
		return nil, err
	}
	byCategory, err := uc.analyticsRepo.GetStockByCategory(ctx)
	if err != nil {
		return nil, err
	}
	byBrand, err := uc.analyticsRepo.GetCriticalStockByBrand(ctx)
	if err != nil {
		return nil, err
	}
	monthly, err := uc.analyticsRepo.GetMovementsByMonth(ctx, from, to)
	if err != nil {
		return nil, err
	}

	chart := dto.ChartDataResponse{}
	chart.Months, chart.Entradas, chart.Salidas = buildMonthlySeries(from, to, monthly)
	for _, c := range byCategory {
		chart.StockByCategoryLabels = append(chart.StockByCategoryLabels, c.Category)
		chart.StockByCategoryValues = append(chart.StockByCategoryValues, c.Total)
	}
	for _, b := range byBrand {
		chart.CriticalByBrandLabels = append(chart.CriticalByBrandLabels, b.Brand)
		chart.CriticalByBrandValues = append(chart.CriticalByBrandValues, b.Count)
	}

	return &dto.StatisticsResponse{
		TotalProducts:   totals.Products,
		StockTotal:      totals.StockTotal,
		TotalCategories: totals.Categories,
		TotalBrands:     totals.Brands,
		TotalMovements:  totals.Movements,
		OutOfStock:      toProductResponses(outOfStock),
		LowStock:        toProductResponses(lowStock),
		ChartData:       chart,
	}, nil
}

// buildMonthlySeries expande los resultados agregados a una serie continua de
// meses entre from y to: cada mes del rango aparece exactamente una vez y los
// meses sin movimientos quedan en cero, así las tres listas van alineadas por
// índice para graficar.
func buildMonthlySeries(from, to time.Time, monthly []repository.MonthlyMovementResult) ([]string, []int64, []int64) {
	type totals struct{ entradas, salidas int64 }
	byMonth := make(map[string]*totals, len(monthly))
	for _, m := range monthly {
		key := m.Month.Format("2006-01")
		t, ok := byMonth[key]
		if !ok {
			t = &totals{}
			byMonth[key] = t
		}
		switch m.Kind {
		case entity.MovementEntrada:
			t.entradas += m.Total
		case entity.MovementSalida:
			t.salidas += m.Total
		}
	}

	var months []string
	var entradas, salidas []int64
	cursor := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location())
	end := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, to.Location())
	for !cursor.After(end) {
		key := cursor.Format("2006-01")
		months = append(months, key)
		if t, ok := byMonth[key]; ok {
			entradas = append(entradas, t.entradas)
			salidas = append(salidas, t.salidas)
		} else {
			entradas = append(entradas, 0)
			salidas = append(salidas, 0)
		}
		cursor = cursor.AddDate(0, 1, 0)
	}
	return months, entradas, salidas
}

func toProductResponses(products []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductResponse{
			ID:          p.ID,
			Name:        p.Name,
			StockActual: p.StockActual,
			StockMinimo: p.StockMinimo,
			Status:      p.StockStatus(),
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		})
	}
	return out
}
