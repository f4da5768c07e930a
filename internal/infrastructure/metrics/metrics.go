package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/inventario-analitica/internal/domain/inventory"
)

// Registry métricas del servicio en un registro propio (sin el global de Prometheus).
type Registry struct {
	reg *prometheus.Registry

	RowsLoaded     prometheus.Counter
	RowsDiscarded  *prometheus.CounterVec // etapa = categoria | codigo | validacion | duplicado
	CleanDuration  prometheus.Histogram
	InventoryValue prometheus.Gauge
	Alerts         *prometheus.CounterVec // tipo
	CacheLookups   *prometheus.CounterVec // resultado = hit | miss | error
	Uploads        *prometheus.CounterVec // resultado = ok | error
	HTTPRequests   *prometheus.CounterVec // method, route, status
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	rowsLoaded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inventario_rows_loaded_total",
		Help: "Filas crudas leídas antes de limpiar.",
	})
	rowsDiscarded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventario_rows_discarded_total",
		Help: "Filas descartadas por etapa de limpieza.",
	}, []string{"etapa"})
	cleanDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "inventario_clean_duration_seconds",
		Help:    "Duración de carga + limpieza.",
		Buckets: prometheus.DefBuckets,
	})
	inventoryValue := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "inventario_valor_total",
		Help: "Valor total del último inventario limpio.",
	})
	alerts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventario_alerts_generated_total",
		Help: "Alertas devueltas por tipo.",
	}, []string{"tipo"})
	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventario_cache_lookups_total",
		Help: "Consultas a la caché de inventarios limpios.",
	}, []string{"resultado"})
	uploads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventario_uploads_total",
		Help: "Archivos subidos por resultado.",
	}, []string{"resultado"})
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventario_http_requests_total",
		Help: "Peticiones HTTP atendidas.",
	}, []string{"method", "route", "status"})

	r.MustRegister(rowsLoaded, rowsDiscarded, cleanDuration, inventoryValue, alerts, cacheLookups, uploads, httpRequests)
	return &Registry{
		reg:            r,
		RowsLoaded:     rowsLoaded,
		RowsDiscarded:  rowsDiscarded,
		CleanDuration:  cleanDuration,
		InventoryValue: inventoryValue,
		Alerts:         alerts,
		CacheLookups:   cacheLookups,
		Uploads:        uploads,
		HTTPRequests:   httpRequests,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

// Gatherer expone el registro para tests y exportadores.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// ObserveClean registra el resultado de una limpieza.
func (r *Registry) ObserveClean(rep inventory.CleanReport, elapsed time.Duration) {
	r.RowsLoaded.Add(float64(rep.FilasEntrada))
	r.RowsDiscarded.WithLabelValues("categoria").Add(float64(rep.DescartadasCategoria))
	r.RowsDiscarded.WithLabelValues("codigo").Add(float64(rep.DescartadasCodigo))
	r.RowsDiscarded.WithLabelValues("validacion").Add(float64(rep.DescartadasValidacion))
	r.RowsDiscarded.WithLabelValues("duplicado").Add(float64(rep.DuplicadosEliminados))
	r.CleanDuration.Observe(elapsed.Seconds())
	r.InventoryValue.Set(rep.ValorTotal)
}

// ObserveAlerts cuenta las alertas devueltas por tipo.
func (r *Registry) ObserveAlerts(res inventory.AlertsResult) {
	for _, a := range res.Alertas {
		r.Alerts.WithLabelValues(a.Tipo).Inc()
	}
}

// ObserveCache registra el resultado de una consulta a la caché.
func (r *Registry) ObserveCache(resultado string) {
	r.CacheLookups.WithLabelValues(resultado).Inc()
}

// ObserveUpload registra una subida.
func (r *Registry) ObserveUpload(err error) {
	resultado := "ok"
	if err != nil {
		resultado = "error"
	}
	r.Uploads.WithLabelValues(resultado).Inc()
}

// ObserveHTTP registra una petición atendida.
func (r *Registry) ObserveHTTP(method, route string, status int) {
	r.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
