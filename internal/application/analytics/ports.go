// Package analytics contiene los casos de uso del pipeline de inventario:
// carga y limpieza, clasificación ABC, alertas, simulación what-if y el
// resumen que consume la portada del dashboard.
package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-analitica/internal/application/dto"
	"github.com/jhoicas/inventario-analitica/internal/domain/entity"
	"github.com/jhoicas/inventario-analitica/internal/domain/inventory"
)

// DatasetRepository ubica, guarda y lee los archivos de inventario crudo.
type DatasetRepository interface {
	// Resolve devuelve la ruta del archivo para un nombre de dataset ("" = por defecto).
	Resolve(ctx context.Context, dataset string) (string, error)
	Save(ctx context.Context, filename string, data []byte) (string, error)
	Load(ctx context.Context, path string) (entity.RawTable, error)
	// Fingerprint cambia cada vez que cambia el contenido del archivo.
	Fingerprint(ctx context.Context, path string) (string, error)
}

// SnapshotCache caché de inventarios ya limpios, indexada por huella de archivo.
type SnapshotCache interface {
	Get(ctx context.Context, fingerprint string) ([]entity.InventoryRecord, inventory.CleanReport, bool, error)
	Set(ctx context.Context, fingerprint string, records []entity.InventoryRecord, report inventory.CleanReport) error
	InvalidateAll(ctx context.Context) error
}

// SummaryRepository persiste el resumen de la última limpieza.
type SummaryRepository interface {
	Save(ctx context.Context, summary dto.DashboardSummaryDTO) error
	Latest(ctx context.Context) (dto.DashboardSummaryDTO, error)
}

// AnalyticsReport datos que se imprimen en el reporte PDF.
type AnalyticsReport struct {
	Dataset    string
	GeneradoEn time.Time
	Resumen    inventory.Summary
	ABC        inventory.ABCResult
	Alertas    inventory.AlertsResult
}

// ReportGenerator genera el PDF del reporte analítico.
type ReportGenerator interface {
	GenerateAnalyticsPDF(ctx context.Context, rep AnalyticsReport) ([]byte, error)
}

// Metrics contadores del pipeline. Opcional: nil desactiva la instrumentación.
type Metrics interface {
	ObserveClean(rep inventory.CleanReport, elapsed time.Duration)
	ObserveAlerts(res inventory.AlertsResult)
	ObserveCache(resultado string)
	ObserveUpload(err error)
}

// Resultados de una consulta a la caché (etiqueta de métrica).
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

type noopMetrics struct{}

func (noopMetrics) ObserveClean(inventory.CleanReport, time.Duration) {}
func (noopMetrics) ObserveAlerts(inventory.AlertsResult)              {}
func (noopMetrics) ObserveCache(string)                               {}
func (noopMetrics) ObserveUpload(error)                               {}

type noopCache struct{}

func (noopCache) Get(context.Context, string) ([]entity.InventoryRecord, inventory.CleanReport, bool, error) {
	return nil, inventory.CleanReport{}, false, nil
}

func (noopCache) Set(context.Context, string, []entity.InventoryRecord, inventory.CleanReport) error {
	return nil
}

func (noopCache) InvalidateAll(context.Context) error { return nil }
