package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-analitica/internal/application/dto"
	"github.com/jhoicas/inventario-analitica/internal/domain/inventory"
)

// DashboardUseCase alimenta la portada del dashboard y el reporte PDF.
type DashboardUseCase struct {
	source    InventorySource
	summaries SummaryRepository
	reports   ReportGenerator
	params    inventory.Params
	alertTopN int
	now       func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	source InventorySource,
	summaries SummaryRepository,
	reports ReportGenerator,
	params inventory.Params,
	alertTopN int,
) *DashboardUseCase {
	return &DashboardUseCase{
		source:    source,
		summaries: summaries,
		reports:   reports,
		params:    params,
		alertTopN: alertTopN,
		now:       time.Now,
	}
}

// LatestSummary devuelve el resumen de la última limpieza; sin limpiezas previas
// devuelve el resumen vacío.
func (uc *DashboardUseCase) LatestSummary(ctx context.Context) (dto.DashboardSummaryDTO, error) {
	s, err := uc.summaries.Latest(ctx)
	if err != nil {
		return dto.DashboardSummaryDTO{}, fmt.Errorf("dashboard: leer resumen: %w", err)
	}
	return s, nil
}

// ReportPDF genera el reporte analítico del dataset.
//
// Tres cálculos en paralelo sobre el mismo inventario limpio:
//  1. Summarize      → KPIs
//  2. ClassifyABC    → tabla ABC
//  3. GenerateAlerts → tabla de alertas
func (uc *DashboardUseCase) ReportPDF(ctx context.Context, dataset string) ([]byte, error) {
	inv, err := uc.source.LoadClean(ctx, dataset)
	if err != nil {
		return nil, err
	}

	// ── Goroutines: cada una trabaja sobre su propia copia ────────────────────
	summaryCh := make(chan inventory.Summary, 1)
	abcCh := make(chan inventory.ABCResult, 1)
	alertsCh := make(chan inventory.AlertsResult, 1)

	go func() { summaryCh <- inventory.Summarize(inv.Records) }()
	go func() { abcCh <- inventory.ClassifyABC(inv.Records, uc.params) }()
	go func() { alertsCh <- inventory.GenerateAlerts(inv.Records, uc.alertTopN, uc.params) }()

	rep := AnalyticsReport{
		Dataset:    inv.Dataset,
		GeneradoEn: uc.now(),
		Resumen:    <-summaryCh,
		ABC:        <-abcCh,
		Alertas:    <-alertsCh,
	}

	out, err := uc.reports.GenerateAnalyticsPDF(ctx, rep)
	if err != nil {
		return nil, fmt.Errorf("dashboard: generar reporte: %w", err)
	}
	return out, nil
}
