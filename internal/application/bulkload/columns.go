package bulkload

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Columnas reconocidas tras la normalización de encabezados.
const (
	colNombreProducto = "nombre_producto"
	colCategoria      = "categoria"
	colMarca          = "marca"
	colStockActual    = "stock_actual"
	colStockMinimo    = "stock_minimo"
	colDescripcion    = "descripcion" // opcional
)

// requiredColumns columnas obligatorias para aceptar un archivo.
var requiredColumns = []string{
	colNombreProducto, colCategoria, colMarca, colStockActual, colStockMinimo,
}

// columnAliases encabezados alternativos que se aceptan para una columna.
var columnAliases = map[string]string{
	"producto": colNombreProducto,
}

// foldAccents elimina las marcas diacríticas ("Categoría" -> "Categoria").
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeHeader normaliza un encabezado de columna: minúsculas, espacios a
// guión bajo y acentos plegados a ASCII ("Stock Mínimo" -> "stock_minimo").
func NormalizeHeader(header string) string {
	h, _, err := transform.String(foldAccents, strings.TrimSpace(header))
	if err != nil {
		h = strings.TrimSpace(header)
	}
	h = strings.ToLower(h)
	h = strings.ReplaceAll(h, " ", "_")
	if canonical, ok := columnAliases[h]; ok {
		return canonical
	}
	return h
}

// mapHeader construye el índice columna→posición del archivo. Las columnas no
// reconocidas se ignoran.
func mapHeader(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		name := NormalizeHeader(h)
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}
	return idx
}

// missingRequired devuelve las columnas obligatorias ausentes, en el orden
// canónico.
func missingRequired(idx map[string]int) []string {
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}
