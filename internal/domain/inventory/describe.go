package inventory

import (
	"sort"

	"github.com/jhoicas/inventario-analitica/internal/domain/entity"
)

// CategoryValue agregado numérico por categoría.
type CategoryValue struct {
	Categoria string
	Valor     float64
}

// StockReport análisis descriptivo de stock y valor.
type StockReport struct {
	StockBajo            []entity.InventoryRecord // cantidad < UmbralStockBajo
	StockExcesivo        []entity.InventoryRecord // cantidad > UmbralStockExcesivo
	Agotados             []entity.InventoryRecord // cantidad == 0
	PromedioPorCategoria []CategoryValue          // media de cantidad, 1 decimal
	ValorPorCategoria    []CategoryValue          // suma de valor_total, 2 decimales
	MasCostosos          []entity.InventoryRecord
	MasEconomico         *entity.InventoryRecord
	MasCostoso           *entity.InventoryRecord
	MedianaStock         float64
	P75Stock             float64
	UmbralStockBajo      float64
	UmbralStockExcesivo  float64
}

// DescribeStock produce el análisis descriptivo: stock bajo/excesivo, agotados,
// agregados por categoría y extremos de precio.
func DescribeStock(records []entity.InventoryRecord, p Params) StockReport {
	work := EnsureValueColumns(records)
	rep := StockReport{
		StockBajo:           []entity.InventoryRecord{},
		StockExcesivo:       []entity.InventoryRecord{},
		Agotados:            []entity.InventoryRecord{},
		MasCostosos:         []entity.InventoryRecord{},
		UmbralStockBajo:     p.UmbralStockBajo,
		UmbralStockExcesivo: p.UmbralStockExcesivo,
	}

	cantidades := make([]float64, 0, len(work))
	cantPorCat := make(map[string][]float64)
	valorPorCat := make(map[string][]float64)
	for _, r := range work {
		if r.Cantidad < p.UmbralStockBajo {
			rep.StockBajo = append(rep.StockBajo, r)
		}
		if r.Cantidad > p.UmbralStockExcesivo {
			rep.StockExcesivo = append(rep.StockExcesivo, r)
		}
		if r.Cantidad == 0 {
			rep.Agotados = append(rep.Agotados, r)
		}
		if r.Cantidad >= 0 {
			cantidades = append(cantidades, r.Cantidad)
		}
		cantPorCat[r.Categoria] = append(cantPorCat[r.Categoria], r.Cantidad)
		valorPorCat[r.Categoria] = append(valorPorCat[r.Categoria], r.ValorTotal)
	}

	rep.PromedioPorCategoria = aggregateByCategory(cantPorCat, func(vals []float64) float64 {
		return roundTo(sumValues(vals)/float64(len(vals)), 1)
	})
	rep.ValorPorCategoria = aggregateByCategory(valorPorCat, func(vals []float64) float64 {
		return round2(sumValues(vals))
	})

	rep.MedianaStock = quantile(cantidades, 0.5)
	rep.P75Stock = quantile(cantidades, 0.75)

	if len(work) == 0 {
		return rep
	}

	byPrice := make([]entity.InventoryRecord, len(work))
	copy(byPrice, work)
	sort.SliceStable(byPrice, func(i, j int) bool {
		return byPrice[i].Precio > byPrice[j].Precio
	})
	n := p.TopCostosos
	if n <= 0 || n > len(byPrice) {
		n = len(byPrice)
	}
	rep.MasCostosos = byPrice[:n]

	cheapest, priciest := work[0], work[0]
	for _, r := range work[1:] {
		if r.Precio < cheapest.Precio {
			cheapest = r
		}
		if r.Precio > priciest.Precio {
			priciest = r
		}
	}
	rep.MasEconomico = &cheapest
	rep.MasCostoso = &priciest
	return rep
}

func aggregateByCategory(groups map[string][]float64, agg func([]float64) float64) []CategoryValue {
	out := make([]CategoryValue, 0, len(groups))
	for cat, vals := range groups {
		out = append(out, CategoryValue{Categoria: cat, Valor: agg(vals)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Categoria < out[j].Categoria })
	return out
}
