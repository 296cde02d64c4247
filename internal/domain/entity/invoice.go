package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa la cabecera de una factura de venta. Cada línea genera
// exactamente un movimiento de salida en el ledger, referenciado por el ID de
// la factura.
type Invoice struct {
	ID               string
	CustomerName     string
	CustomerLastName string
	CustomerRUT      string // RUT chileno normalizado (cuerpo-dv); vacío si no se entregó
	Date             time.Time
	Total            decimal.Decimal // suma de subtotales de las líneas
	PDF              []byte          // representación gráfica renderizada; nil hasta la primera descarga
	CreatedAt        time.Time
}
