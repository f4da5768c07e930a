package inventory

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/jhoicas/inventario-analitica/internal/domain/entity"
)

// Tipos de alerta.
const (
	AlertaSobreStock    = "SOBRE_STOCK"
	AlertaRiesgoQuiebre = "RIESGO_QUIEBRE"
	AlertaCapitalMuerto = "CAPITAL_MUERTO"
)

// Severidades de alerta.
const (
	SeveridadAlta  = "Alta"
	SeveridadMedia = "Media"
	SeveridadBaja  = "Baja"
)

// DefaultAlertasTopN número de alertas devueltas si el llamador no indica otro.
const DefaultAlertasTopN = 10

const recomendacionAlerta = "Recomendacion: reducir stock gradualmente o revisar rotacion segun contexto."

// RotationCandidates columnas que se prueban, en orden, como indicador de rotación.
var RotationCandidates = []string{
	"rotacion",
	"rotacion_mensual",
	"ventas_mensuales",
	"salidas_mensuales",
	"demanda_mensual",
}

// NotaSinRotacion supuesto conservador cuando no hay columna de rotación.
const NotaSinRotacion = "Sin columna de ventas/rotacion; se asume 0 unidades vendidas recientes " +
	"para detectar capital inmovilizado (supuesto conservador)."

// Alert una regla disparada por un registro.
type Alert struct {
	entity.InventoryRecord
	Tipo            string
	Severidad       string
	ImpactoRelativo float64
	Detalle         string
	PrioridadValor  float64
	Recomendacion   string
}

// Umbrales percentiles usados por las reglas (para auditoría).
type Umbrales struct {
	StockP25    float64
	StockP75    float64
	ValorP75    float64
	RotacionP25 float64
}

// AlertsResult alertas ordenadas por valor descendente y los umbrales que las originaron.
type AlertsResult struct {
	Alertas                []Alert
	Umbrales               *Umbrales // nil si el inventario está vacío
	SupuestoCapitalMuerto  string
	ColumnaRotacion        string // "" si se usó el supuesto conservador
	TotalValor             float64
	TotalAlertasDetectadas int // antes de truncar a topN
}

// GenerateAlerts evalúa cada registro contra tres reglas:
//   - SOBRE_STOCK: cantidad > P75 de cantidad.
//   - RIESGO_QUIEBRE: cantidad < P25 de cantidad.
//   - CAPITAL_MUERTO: valor_total >= P75 de valor y rotación <= P25 de rotación.
//
// Un registro puede disparar varias reglas. topN <= 0 devuelve todas las alertas.
func GenerateAlerts(records []entity.InventoryRecord, topN int, p Params) AlertsResult {
	work := EnsureValueColumns(records)
	if len(work) == 0 {
		return AlertsResult{Alertas: []Alert{}}
	}

	cantidades := make([]float64, len(work))
	valores := make([]float64, len(work))
	for i, r := range work {
		cantidades[i] = r.Cantidad
		valores[i] = r.ValorTotal
	}

	q25 := quantile(cantidades, 0.25)
	q75 := quantile(cantidades, 0.75)
	valorQ75 := quantile(valores, 0.75)
	total := sumValues(valores)

	rotacion, columna, nota := rotationSeries(work)
	rotacionQ25 := quantile(rotacion, 0.25)

	build := func(r entity.InventoryRecord, tipo, detalle string) Alert {
		impacto := 0.0
		if total != 0 {
			impacto = r.ValorTotal / total
		}
		return Alert{
			InventoryRecord: r,
			Tipo:            tipo,
			Severidad:       severidadFor(impacto, p),
			ImpactoRelativo: impacto,
			Detalle:         detalle,
			PrioridadValor:  r.ValorTotal,
			Recomendacion:   recomendacionAlerta,
		}
	}

	alertas := make([]Alert, 0)
	for i, r := range work {
		if r.Cantidad > q75 {
			alertas = append(alertas, build(r, AlertaSobreStock,
				fmt.Sprintf("Stock %s > P75 (%.1f).", formatQty(r.Cantidad), q75)))
		}
		if r.Cantidad < q25 {
			alertas = append(alertas, build(r, AlertaRiesgoQuiebre,
				fmt.Sprintf("Stock %s < P25 (%.1f).", formatQty(r.Cantidad), q25)))
		}
		if r.ValorTotal >= valorQ75 && rotacion[i] <= rotacionQ25 {
			alertas = append(alertas, build(r, AlertaCapitalMuerto,
				fmt.Sprintf("Valor alto >= P75 (%.2f) con rotacion baja <= P25 (%.2f). %s",
					valorQ75, rotacionQ25, nota)))
		}
	}

	sort.SliceStable(alertas, func(i, j int) bool {
		return alertas[i].PrioridadValor > alertas[j].PrioridadValor
	})
	detectadas := len(alertas)
	if topN > 0 && len(alertas) > topN {
		alertas = alertas[:topN]
	}

	return AlertsResult{
		Alertas: alertas,
		Umbrales: &Umbrales{
			StockP25:    q25,
			StockP75:    q75,
			ValorP75:    valorQ75,
			RotacionP25: rotacionQ25,
		},
		SupuestoCapitalMuerto:  nota,
		ColumnaRotacion:        columna,
		TotalValor:             total,
		TotalAlertasDetectadas: detectadas,
	}
}

// rotationSeries usa la primera columna candidata presente en algún registro.
// Sin candidata devuelve una serie de ceros y la nota del supuesto conservador.
func rotationSeries(records []entity.InventoryRecord) ([]float64, string, string) {
	serie := make([]float64, len(records))
	for _, col := range RotationCandidates {
		if !anyHasExtra(records, col) {
			continue
		}
		for i, r := range records {
			if v, ok := toNumber(r.Extras[col]); ok {
				serie[i] = v
			}
		}
		return serie, col, fmt.Sprintf("Rotacion estimada usando columna '%s'.", col)
	}
	return serie, "", NotaSinRotacion
}

func anyHasExtra(records []entity.InventoryRecord, col string) bool {
	for _, r := range records {
		if _, ok := r.Extras[col]; ok {
			return true
		}
	}
	return false
}

func severidadFor(impacto float64, p Params) string {
	switch {
	case impacto >= p.SeveridadAlta:
		return SeveridadAlta
	case impacto >= p.SeveridadMedia:
		return SeveridadMedia
	default:
		return SeveridadBaja
	}
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
