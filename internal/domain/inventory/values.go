package inventory

import (
	"math"
	"sort"

	"github.com/jhoicas/inventario-analitica/internal/domain/entity"
)

// EnsureValueColumns normaliza las columnas numéricas antes de cualquier analítica.
// Trabaja sobre una copia: cantidad y precio no finitos pasan a 0, valor_total ausente
// (NaN) se calcula como cantidad*precio y un valor_total infinito pasa a 0.
// A diferencia de Clean nunca descarta filas ni falla. Aplicarla dos veces no cambia nada.
func EnsureValueColumns(records []entity.InventoryRecord) []entity.InventoryRecord {
	out := make([]entity.InventoryRecord, len(records))
	for i, r := range records {
		w := r.Clone()
		if !isFinite(w.Cantidad) {
			w.Cantidad = 0
		}
		if !isFinite(w.Precio) {
			w.Precio = 0
		}
		if math.IsNaN(w.ValorTotal) {
			w.ValorTotal = w.Cantidad * w.Precio
		}
		if !isFinite(w.ValorTotal) {
			w.ValorTotal = 0
		}
		out[i] = w
	}
	return out
}

// FromTable convierte filas crudas en registros sin filtrar ni validar.
// Los numéricos no convertibles quedan en NaN para que EnsureValueColumns decida.
func FromTable(table entity.RawTable) []entity.InventoryRecord {
	out := make([]entity.InventoryRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		rec := entity.InventoryRecord{
			Codigo:     toText(row[entity.ColCodigo]),
			Nombre:     toText(row[entity.ColNombre]),
			Categoria:  toText(row[entity.ColCategoria]),
			Ubicacion:  toText(row[entity.ColUbicacion]),
			Cantidad:   numberOrNaN(row[entity.ColCantidad]),
			Precio:     numberOrNaN(row[entity.ColPrecio]),
			ValorTotal: numberOrNaN(row[entity.ColValorTotal]),
			Extras:     extrasOf(row),
		}
		out = append(out, rec)
	}
	return out
}

// ToTable es la inversa de FromTable: permite volver a limpiar un inventario canónico.
func ToTable(records []entity.InventoryRecord) entity.RawTable {
	cols := []string{
		entity.ColCodigo, entity.ColNombre, entity.ColCategoria, entity.ColUbicacion,
		entity.ColCantidad, entity.ColPrecio, entity.ColValorTotal,
	}
	seen := make(map[string]bool)
	rows := make([]entity.RawRow, 0, len(records))
	var extraCols []string
	for _, r := range records {
		row := entity.RawRow{
			entity.ColCodigo:     r.Codigo,
			entity.ColNombre:     r.Nombre,
			entity.ColCategoria:  r.Categoria,
			entity.ColUbicacion:  r.Ubicacion,
			entity.ColCantidad:   r.Cantidad,
			entity.ColPrecio:     r.Precio,
			entity.ColValorTotal: r.ValorTotal,
		}
		for k, v := range r.Extras {
			row[k] = v
			if !seen[k] {
				seen[k] = true
				extraCols = append(extraCols, k)
			}
		}
		rows = append(rows, row)
	}
	sort.Strings(extraCols)
	return entity.RawTable{Columns: append(cols, extraCols...), Rows: rows}
}

func numberOrNaN(v any) float64 {
	f, ok := toNumber(v)
	if !ok {
		return math.NaN()
	}
	return f
}
