package dto

// DashboardResponse resumen del home: productos críticos y últimos movimientos.
type DashboardResponse struct {
	LowStockProducts []ProductResponse  `json:"low_stock_products"`
	RecentMovements  []MovementResponse `json:"recent_movements"`
}

// StatisticsResponse métricas y series para los gráficos de estadísticas.
type StatisticsResponse struct {
	TotalProducts   int   `json:"total_products"`
	StockTotal      int64 `json:"stock_total"`
	TotalCategories int   `json:"total_categories"`
	TotalBrands     int   `json:"total_brands"`
	TotalMovements  int   `json:"total_movements"`

	OutOfStock []ProductResponse `json:"out_of_stock"`
	LowStock   []ProductResponse `json:"low_stock"`

	ChartData ChartDataResponse `json:"chart_data"`
}

// ChartDataResponse series listas para graficar. Las tres listas de meses van
// alineadas por índice; los meses sin movimientos se rellenan con cero.
type ChartDataResponse struct {
	Months   []string `json:"months"` // "2026-01", "2026-02", ...
	Entradas []int64  `json:"entradas"`
	Salidas  []int64  `json:"salidas"`

	StockByCategoryLabels []string `json:"stock_by_category_labels"`
	StockByCategoryValues []int64  `json:"stock_by_category_values"`

	CriticalByBrandLabels []string `json:"critical_by_brand_labels"`
	CriticalByBrandValues []int    `json:"critical_by_brand_values"`
}
