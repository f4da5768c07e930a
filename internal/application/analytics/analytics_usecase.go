package analytics

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-analitica/internal/application/dto"
	"github.com/jhoicas/inventario-analitica/internal/domain"
	"github.com/jhoicas/inventario-analitica/internal/domain/entity"
	"github.com/jhoicas/inventario-analitica/internal/domain/inventory"
)

// AnalyticsUseCase expone la clasificación ABC, las alertas y la simulación what-if,
// tanto sobre un dataset del directorio de datos como sobre registros enviados por el cliente.
type AnalyticsUseCase struct {
	source      InventorySource
	metrics     Metrics
	params      inventory.Params
	defaultTopN int
}

// NewAnalyticsUseCase construye el caso de uso. defaultTopN se usa cuando el cliente
// no indica top_n en las alertas.
func NewAnalyticsUseCase(source InventorySource, metrics Metrics, params inventory.Params, defaultTopN int) *AnalyticsUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &AnalyticsUseCase{
		source:      source,
		metrics:     metrics,
		params:      params,
		defaultTopN: defaultTopN,
	}
}

// ── Sobre un dataset ──────────────────────────────────────────────────────────

// ABC clasifica el inventario limpio del dataset.
func (uc *AnalyticsUseCase) ABC(ctx context.Context, dataset string) (*dto.ABCResultDTO, error) {
	inv, err := uc.source.LoadClean(ctx, dataset)
	if err != nil {
		return nil, err
	}
	return abcToDTO(inventory.ClassifyABC(inv.Records, uc.params)), nil
}

// Alerts genera las alertas del dataset. topN nil usa el valor por defecto; <= 0 devuelve todas.
func (uc *AnalyticsUseCase) Alerts(ctx context.Context, dataset string, topN *int) (*dto.AlertsResultDTO, error) {
	inv, err := uc.source.LoadClean(ctx, dataset)
	if err != nil {
		return nil, err
	}
	return uc.alerts(inv.Records, topN), nil
}

// WhatIf simula la reducción de stock de una categoría del dataset.
func (uc *AnalyticsUseCase) WhatIf(ctx context.Context, q dto.WhatIfQuery) (*dto.WhatIfResultDTO, error) {
	if err := requireCategoria(q.Categoria); err != nil {
		return nil, err
	}
	inv, err := uc.source.LoadClean(ctx, q.Dataset)
	if err != nil {
		return nil, err
	}
	return whatIfToDTO(inventory.SimulateWhatIf(inv.Records, q.Categoria, q.Reduccion, q.TopN)), nil
}

// ── Sobre registros del cliente ───────────────────────────────────────────────
// Los registros no pasan por el limpiador: solo se completan los valores.

// ABCFromRecords clasifica registros enviados en el body.
func (uc *AnalyticsUseCase) ABCFromRecords(_ context.Context, req dto.RecordsRequest) (*dto.ABCResultDTO, error) {
	return abcToDTO(inventory.ClassifyABC(recordsFromRequest(req.Registros), uc.params)), nil
}

// AlertsFromRecords genera alertas para registros enviados en el body.
func (uc *AnalyticsUseCase) AlertsFromRecords(_ context.Context, req dto.AlertsRequest) (*dto.AlertsResultDTO, error) {
	return uc.alerts(recordsFromRequest(req.Registros), req.TopN), nil
}

// WhatIfFromRecords simula sobre registros enviados en el body.
func (uc *AnalyticsUseCase) WhatIfFromRecords(_ context.Context, req dto.WhatIfRequest) (*dto.WhatIfResultDTO, error) {
	if err := requireCategoria(req.Categoria); err != nil {
		return nil, err
	}
	records := recordsFromRequest(req.Registros)
	return whatIfToDTO(inventory.SimulateWhatIf(records, req.Categoria, req.Reduccion, req.TopN)), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (uc *AnalyticsUseCase) alerts(records []entity.InventoryRecord, topN *int) *dto.AlertsResultDTO {
	n := uc.defaultTopN
	if topN != nil {
		n = *topN
	}
	res := inventory.GenerateAlerts(records, n, uc.params)
	uc.metrics.ObserveAlerts(res)
	return alertsToDTO(res)
}

func recordsFromRequest(rows []map[string]any) []entity.InventoryRecord {
	return inventory.FromTable(tableFromMaps(rows))
}

func requireCategoria(categoria string) error {
	if strings.TrimSpace(categoria) == "" {
		return fmt.Errorf("%w: categoria es obligatoria", domain.ErrInvalidInput)
	}
	return nil
}
