package entity

import "time"

// Tipos de movimiento de inventario. Conjunto cerrado: exactamente dos valores.
const (
	MovementEntrada = "entrada" // aumenta stock (compras, devoluciones, carga inicial)
	MovementSalida  = "salida"  // disminuye stock (ventas, pérdidas)
)

// ValidMovementKind indica si el tipo pertenece al conjunto cerrado.
func ValidMovementKind(kind string) bool {
	return kind == MovementEntrada || kind == MovementSalida
}

// Movement es una entrada del ledger de stock. El ledger es la única fuente de
// verdad del stock: Product.StockActual se deriva sumando entradas y restando
// salidas. Quantity es estrictamente positiva; la dirección la da Kind.
type Movement struct {
	ID        string
	ProductID string
	Kind      string // entrada | salida
	Quantity  int64  // > 0 siempre
	Date      time.Time
	CreatedAt time.Time
	Reference string // opcional: ID de la factura o lote de importación que lo originó
}
