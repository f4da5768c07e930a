package inventory

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/inventario-analitica/internal/domain/entity"
)

// Summary KPIs del último inventario limpio (lo que se persiste para la portada).
type Summary struct {
	TotalProductos  int
	Categorias      int
	StockPromedio   float64
	ValorTotal      float64
	ValorTotalTexto string // ej. "$12,345.67"
}

// Summarize calcula los KPIs de un inventario limpio. Un inventario vacío da ceros.
func Summarize(records []entity.InventoryRecord) Summary {
	work := EnsureValueColumns(records)

	categorias := make(map[string]struct{})
	cantidades := make([]float64, len(work))
	for i, r := range work {
		categorias[r.Categoria] = struct{}{}
		cantidades[i] = r.Cantidad
	}

	promedio := 0.0
	if len(work) > 0 {
		promedio = round2(sumValues(cantidades) / float64(len(work)))
	}
	total := round2(totalValue(work))

	return Summary{
		TotalProductos:  len(work),
		Categorias:      len(categorias),
		StockPromedio:   promedio,
		ValorTotal:      total,
		ValorTotalTexto: FormatMoney(total),
	}
}

// FormatMoney formatea un monto con separador de miles y 2 decimales: 1234.5 → "$1,234.50".
func FormatMoney(v float64) string {
	return message.NewPrinter(language.English).Sprintf("$%.2f", v)
}
