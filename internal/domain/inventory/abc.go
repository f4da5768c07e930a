package inventory

import (
	"sort"

	"github.com/jhoicas/inventario-analitica/internal/domain/entity"
)

// Clases ABC por contribución al valor del inventario.
const (
	ClaseA = "A"
	ClaseB = "B"
	ClaseC = "C"
)

// ABCItem registro con su participación en el valor total y su clase.
type ABCItem struct {
	entity.InventoryRecord
	Participacion     float64
	ParticipacionAcum float64
	Clase             string
}

// ABCResult resultado de la clasificación, en orden de valor descendente.
type ABCResult struct {
	Detalle     []ABCItem
	CapitalAPct float64 // % del valor total en clase A (0–100, 2 decimales)
	TotalValor  float64
}

// ClassifyABC clasifica los productos por su contribución acumulada al valor:
// A hasta CorteA, B hasta CorteB, C el resto. El producto de mayor valor siempre es A,
// salvo con p.ABCEstricto.
// Con valor total <= 0 devuelve un resultado vacío.
func ClassifyABC(records []entity.InventoryRecord, p Params) ABCResult {
	work := EnsureValueColumns(records)
	sort.SliceStable(work, func(i, j int) bool {
		return work[i].ValorTotal > work[j].ValorTotal
	})

	total := totalValue(work)
	if total <= 0 {
		return ABCResult{Detalle: []ABCItem{}}
	}

	detalle := make([]ABCItem, 0, len(work))
	var acumulado, valorA float64
	for i, r := range work {
		participacion := r.ValorTotal / total
		acumulado += participacion

		clase := claseFor(acumulado, p)
		if i == 0 && !p.ABCEstricto {
			clase = ClaseA
		}
		if clase == ClaseA {
			valorA += r.ValorTotal
		}

		detalle = append(detalle, ABCItem{
			InventoryRecord:   r,
			Participacion:     participacion,
			ParticipacionAcum: acumulado,
			Clase:             clase,
		})
	}

	return ABCResult{
		Detalle:     detalle,
		CapitalAPct: round2(valorA / total * 100),
		TotalValor:  round2(total),
	}
}

func claseFor(acumulado float64, p Params) string {
	switch {
	case acumulado <= p.CorteA:
		return ClaseA
	case acumulado <= p.CorteB:
		return ClaseB
	default:
		return ClaseC
	}
}
