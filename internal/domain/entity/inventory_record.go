package entity

// Nombres canónicos de columnas del inventario.
const (
	ColCodigo     = "codigo"
	ColNombre     = "nombre"
	ColCategoria  = "categoria"
	ColUbicacion  = "ubicacion"
	ColCantidad   = "cantidad"
	ColPrecio     = "precio"
	ColValorTotal = "valor_total"
)

// RawRow es una fila sin tipar tal como la entrega el cargador (celda vacía = nil).
type RawRow map[string]any

// RawTable conjunto de registros crudo: columnas en orden de cabecera y filas heterogéneas.
type RawTable struct {
	Columns []string
	Rows    []RawRow
}

// HasColumn indica si la cabecera contiene la columna.
func (t RawTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// InventoryRecord representa un producto del inventario.
// Después de la limpieza cumple: Codigo válido (PR + 3 dígitos o más), Precio > 0,
// Cantidad >= 0 y ValorTotal = round(Cantidad*Precio, 2).
// Un NaN en un campo numérico significa "ausente o no convertible"; solo aparece en
// registros que no pasaron por el limpiador.
type InventoryRecord struct {
	Codigo     string
	Nombre     string
	Categoria  string
	Ubicacion  string
	Cantidad   float64
	Precio     float64
	ValorTotal float64
	Extras     map[string]any // columnas no canónicas (ej. rotacion, ventas_mensuales)
}

// Clone devuelve una copia independiente (incluido el mapa de extras).
func (r InventoryRecord) Clone() InventoryRecord {
	out := r
	if r.Extras != nil {
		out.Extras = make(map[string]any, len(r.Extras))
		for k, v := range r.Extras {
			out.Extras[k] = v
		}
	}
	return out
}
