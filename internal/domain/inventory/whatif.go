package inventory

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/inventario-analitica/internal/domain/entity"
)

// MensajeCategoriaNoEncontrada acompaña al resultado vacío de una simulación sin coincidencias.
const MensajeCategoriaNoEncontrada = "Categoria no encontrada en el inventario."

// WhatIfResult proyección de capital liberado al reducir el stock de una categoría.
type WhatIfResult struct {
	Categoria            string
	PorcentajeReduccion  float64
	TopN                 int // 0 = toda la categoría
	CapitalLiberado      float64
	ValorActualCategoria float64
	ValorEstimadoPost    float64
	Detalle              []entity.InventoryRecord
	Mensaje              string // no vacío solo si la categoría no existe
	Encontrada           bool
}

// SimulateWhatIf estima el capital que se libera al reducir el stock de una categoría.
//
// La categoría se compara sin distinguir mayúsculas y sin espacios en los extremos.
// reduccion > 1 se interpreta como porcentaje (50 == 0.5) y se acota a [0, 1].
// Con topN > 0 solo se reducen los topN productos de mayor valor de la categoría.
func SimulateWhatIf(records []entity.InventoryRecord, categoria string, reduccion float64, topN int) WhatIfResult {
	work := EnsureValueColumns(records)
	objetivo := foldCategoria(categoria)

	target := make([]entity.InventoryRecord, 0)
	for _, r := range work {
		if foldCategoria(r.Categoria) == objetivo {
			target = append(target, r)
		}
	}

	if len(target) == 0 {
		return WhatIfResult{
			Categoria:           categoria,
			PorcentajeReduccion: reduccion,
			Detalle:             []entity.InventoryRecord{},
			Mensaje:             MensajeCategoriaNoEncontrada,
		}
	}

	if topN > 0 {
		sort.SliceStable(target, func(i, j int) bool {
			return target[i].ValorTotal > target[j].ValorTotal
		})
		if len(target) > topN {
			target = target[:topN]
		}
	} else {
		topN = 0
	}

	fraccion := NormalizeFraction(reduccion)

	valores := make([]float64, len(target))
	for i, r := range target {
		valores[i] = r.ValorTotal
	}
	actual := sumValues(valores)
	liberado := actual * fraccion
	post := actual - liberado

	return WhatIfResult{
		Categoria:            categoria,
		PorcentajeReduccion:  round2(fraccion * 100),
		TopN:                 topN,
		CapitalLiberado:      round2(liberado),
		ValorActualCategoria: round2(actual),
		ValorEstimadoPost:    round2(post),
		Detalle:              target,
		Encontrada:           true,
	}
}

// NormalizeFraction interpreta valores > 1 como porcentaje y acota el resultado a [0, 1].
func NormalizeFraction(reduccion float64) float64 {
	if math.IsNaN(reduccion) {
		return 0
	}
	f := reduccion
	if f > 1 {
		f = f / 100
	}
	return math.Max(0, math.Min(f, 1))
}

// foldCategoria crea un Caser por llamada: un Caser no se puede compartir entre goroutines.
func foldCategoria(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
