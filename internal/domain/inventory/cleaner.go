package inventory

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/inventario-analitica/internal/domain"
	"github.com/jhoicas/inventario-analitica/internal/domain/entity"
)

// RequiredColumns columnas sin las cuales no se puede limpiar el inventario.
var RequiredColumns = []string{
	entity.ColCodigo,
	entity.ColNombre,
	entity.ColCategoria,
	entity.ColCantidad,
	entity.ColPrecio,
}

var canonicalColumns = map[string]bool{
	entity.ColCodigo:     true,
	entity.ColNombre:     true,
	entity.ColCategoria:  true,
	entity.ColUbicacion:  true,
	entity.ColCantidad:   true,
	entity.ColPrecio:     true,
	entity.ColValorTotal: true,
}

// CleanReport resume qué hizo la limpieza en cada etapa.
type CleanReport struct {
	FilasEntrada          int
	DescartadasCategoria  int
	DescartadasCodigo     int
	DescartadasValidacion int // cantidad < 0, precio <= 0 o nombre corto
	DuplicadosEliminados  int
	FilasValidas          int
	ValorTotal            float64
}

// Descartadas total de filas eliminadas por cualquier motivo.
func (r CleanReport) Descartadas() int {
	return r.FilasEntrada - r.FilasValidas
}

// Clean normaliza y valida el conjunto crudo y devuelve el inventario canónico.
//
// Etapas (una fila descartada nunca se readmite):
//  1. Categoría nula, vacía o "nan".
//  2. Recorte de textos.
//  3. Normalización del código (PR + dígitos) y descarte de no resueltos.
//  4. Cantidad numérica (no numérica → 0) y precio numérico (no numérico → ausente), 2 decimales.
//  5. valor_total = round(cantidad * precio, 2).
//  6. Filtro: cantidad >= 0, precio > 0, nombre de más de 3 caracteres.
//  7. Eliminación de filas idénticas y orden ascendente por código.
//
// Textos ausentes (nil o NaN), como una ubicación vacía, quedan como "" y no como "nan".
//
// La única falla posible es una columna obligatoria ausente (*domain.MissingColumnError).
func Clean(table entity.RawTable) ([]entity.InventoryRecord, CleanReport, error) {
	for _, col := range RequiredColumns {
		if !table.HasColumn(col) {
			return nil, CleanReport{}, &domain.MissingColumnError{Column: col}
		}
	}

	report := CleanReport{FilasEntrada: len(table.Rows)}
	records := make([]entity.InventoryRecord, 0, len(table.Rows))

	for _, row := range table.Rows {
		if invalidCategoria(row[entity.ColCategoria]) {
			report.DescartadasCategoria++
			continue
		}

		rec := entity.InventoryRecord{
			Nombre:    toText(row[entity.ColNombre]),
			Categoria: toText(row[entity.ColCategoria]),
			Ubicacion: toText(row[entity.ColUbicacion]),
			Extras:    extrasOf(row),
		}

		codigo := ParseCodigo(toText(row[entity.ColCodigo]))
		if !codigo.Resuelto {
			report.DescartadasCodigo++
			continue
		}
		rec.Codigo = codigo.Codigo

		cantidad, ok := toNumber(row[entity.ColCantidad])
		if !ok {
			cantidad = 0
		}
		rec.Cantidad = round2(cantidad)

		precio, ok := toNumber(row[entity.ColPrecio])
		if !ok {
			precio = math.NaN()
		}
		rec.Precio = round2(precio)
		rec.ValorTotal = round2(rec.Cantidad * rec.Precio)

		if !(rec.Cantidad >= 0 && rec.Precio > 0 && utf8.RuneCountInString(rec.Nombre) > 3) {
			report.DescartadasValidacion++
			continue
		}
		records = append(records, rec)
	}

	records, removed := dropExactDuplicates(records)
	report.DuplicadosEliminados = removed

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Codigo < records[j].Codigo
	})

	report.FilasValidas = len(records)
	report.ValorTotal = round2(totalValue(records))
	return records, report, nil
}

func invalidCategoria(v any) bool {
	s := strings.ToLower(toText(v))
	return s == "" || s == "nan"
}

func extrasOf(row entity.RawRow) map[string]any {
	var extras map[string]any
	for k, v := range row {
		if canonicalColumns[k] {
			continue
		}
		if extras == nil {
			extras = make(map[string]any)
		}
		extras[k] = v
	}
	return extras
}

// dropExactDuplicates conserva la primera aparición de cada fila idéntica.
func dropExactDuplicates(records []entity.InventoryRecord) ([]entity.InventoryRecord, int) {
	seen := make(map[string]struct{}, len(records))
	out := records[:0]
	removed := 0
	for _, r := range records {
		key := rowKey(r)
		if _, dup := seen[key]; dup {
			removed++
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out, removed
}

func rowKey(r entity.InventoryRecord) string {
	var b strings.Builder
	for _, s := range []string{r.Codigo, r.Nombre, r.Categoria, r.Ubicacion} {
		b.WriteString(s)
		b.WriteByte(0)
	}
	for _, f := range []float64{r.Cantidad, r.Precio, r.ValorTotal} {
		b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		b.WriteByte(0)
	}
	keys := make([]string, 0, len(r.Extras))
	for k := range r.Extras {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(toText(r.Extras[k]))
		b.WriteByte(0)
	}
	return b.String()
}

func totalValue(records []entity.InventoryRecord) float64 {
	vals := make([]float64, len(records))
	for i, r := range records {
		vals[i] = r.ValorTotal
	}
	return sumValues(vals)
}
