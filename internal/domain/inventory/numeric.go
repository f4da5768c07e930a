package inventory

import (
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// round2 redondea a 2 decimales igual que numpy: escala, redondea mitad al par
// sobre el valor binario y desescala (2.675 → 2.67).
// NaN e infinitos se devuelven sin cambios.
func round2(v float64) float64 {
	return roundTo(v, 2)
}

func roundTo(v float64, places int) float64 {
	if !isFinite(v) {
		return v
	}
	scale := math.Pow10(places)
	return math.RoundToEven(v*scale) / scale
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// sumValues suma en decimal para evitar la deriva de float64 en totales monetarios.
func sumValues(vals []float64) float64 {
	total := decimal.Zero
	for _, v := range vals {
		if !isFinite(v) {
			continue
		}
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.InexactFloat64()
}

// toNumber convierte una celda cruda a float64.
// ok=false cuando la celda está vacía, no es numérica o no es finita.
func toNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		v = s
	case float64:
		if !isFinite(x) {
			return 0, false
		}
		return x, true
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || !isFinite(f) {
		return 0, false
	}
	return f, true
}

// toText convierte una celda cruda a texto recortado (nil → "").
func toText(v any) string {
	if v == nil {
		return ""
	}
	if f, ok := v.(float64); ok && math.IsNaN(f) {
		return ""
	}
	return strings.TrimSpace(cast.ToString(v))
}

// quantile calcula el percentil q (0..1) con interpolación lineal entre
// posiciones de orden (tipo 7, el mismo que pandas). No modifica vals.
func quantile(vals []float64, q float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
