package analytics

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-analitica/internal/application/dto"
	"github.com/jhoicas/inventario-analitica/internal/domain"
	"github.com/jhoicas/inventario-analitica/internal/domain/entity"
	"github.com/jhoicas/inventario-analitica/internal/domain/inventory"
	"github.com/jhoicas/inventario-analitica/pkg/config"
	"github.com/jhoicas/inventario-analitica/pkg/logger"
)

// codigosEnLog cantidad de códigos que se muestran en el log de cada limpieza.
const codigosEnLog = 5

// CleanInventory inventario limpio listo para la analítica.
type CleanInventory struct {
	Dataset   string // nombre del archivo de origen
	Path      string
	Records   []entity.InventoryRecord
	Report    inventory.CleanReport
	FromCache bool
}

// InventorySource entrega inventarios limpios. La implementa InventoryUseCase.
type InventorySource interface {
	LoadClean(ctx context.Context, dataset string) (*CleanInventory, error)
}

// ParamsFromConfig traduce la configuración de analítica a parámetros de dominio.
// Los valores en cero conservan el valor de referencia.
func ParamsFromConfig(cfg config.AnalyticsConfig) inventory.Params {
	p := inventory.DefaultParams()
	if cfg.CorteA > 0 {
		p.CorteA = cfg.CorteA
	}
	if cfg.CorteB > 0 {
		p.CorteB = cfg.CorteB
	}
	p.ABCEstricto = cfg.ABCEstricto
	if cfg.SeveridadAlta > 0 {
		p.SeveridadAlta = cfg.SeveridadAlta
	}
	if cfg.SeveridadMedia > 0 {
		p.SeveridadMedia = cfg.SeveridadMedia
	}
	if cfg.UmbralStockBajo > 0 {
		p.UmbralStockBajo = cfg.UmbralStockBajo
	}
	if cfg.UmbralStockExcesivo > 0 {
		p.UmbralStockExcesivo = cfg.UmbralStockExcesivo
	}
	return p
}

// InventoryUseCase carga, limpia y publica inventarios.
//
// Flujo de LoadClean:
//  1. Resolve(dataset)     → ruta del archivo
//  2. Fingerprint(ruta)    → clave de caché
//  3. caché hit            → registros ya limpios
//  4. caché miss           → Load + Clean + Set
type InventoryUseCase struct {
	datasets  DatasetRepository
	cache     SnapshotCache
	summaries SummaryRepository
	metrics   Metrics
	log       *logger.Logger
	params    inventory.Params
}

// NewInventoryUseCase construye el caso de uso. cache, metrics y log pueden ser nil.
func NewInventoryUseCase(
	datasets DatasetRepository,
	cache SnapshotCache,
	summaries SummaryRepository,
	metrics Metrics,
	log *logger.Logger,
	params inventory.Params,
) *InventoryUseCase {
	if cache == nil {
		cache = noopCache{}
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &InventoryUseCase{
		datasets:  datasets,
		cache:     cache,
		summaries: summaries,
		metrics:   metrics,
		log:       log.Component("inventario"),
		params:    params,
	}
}

// LoadClean devuelve el inventario limpio del dataset indicado ("" = por defecto).
func (uc *InventoryUseCase) LoadClean(ctx context.Context, dataset string) (*CleanInventory, error) {
	path, err := uc.datasets.Resolve(ctx, dataset)
	if err != nil {
		return nil, err
	}

	fp, err := uc.datasets.Fingerprint(ctx, path)
	if err != nil {
		return nil, err
	}

	records, report, hit, err := uc.cache.Get(ctx, fp)
	switch {
	case err != nil:
		uc.metrics.ObserveCache(CacheError)
		uc.log.Warn().Err(err).Str("archivo", path).Msg("caché no disponible; se limpia de nuevo")
	case hit:
		uc.metrics.ObserveCache(CacheHit)
		return &CleanInventory{
			Dataset:   filepath.Base(path),
			Path:      path,
			Records:   records,
			Report:    report,
			FromCache: true,
		}, nil
	default:
		uc.metrics.ObserveCache(CacheMiss)
	}

	table, err := uc.datasets.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	records, report, err = uc.clean(table, path)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Set(ctx, fp, records, report); err != nil {
		uc.log.Warn().Err(err).Str("archivo", path).Msg("no se pudo guardar el inventario en caché")
	}

	return &CleanInventory{
		Dataset: filepath.Base(path),
		Path:    path,
		Records: records,
		Report:  report,
	}, nil
}

// Upload guarda un archivo subido, lo limpia y persiste el resumen de la portada.
// El archivo queda guardado aunque la limpieza falle.
func (uc *InventoryUseCase) Upload(ctx context.Context, filename string, data []byte) (res *dto.UploadResultDTO, err error) {
	defer func() { uc.metrics.ObserveUpload(err) }()

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: archivo vacío", domain.ErrEmptyOrCorrupt)
	}

	path, err := uc.datasets.Save(ctx, filename, data)
	if err != nil {
		return nil, err
	}

	table, err := uc.datasets.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	records, report, err := uc.clean(table, path)
	if err != nil {
		return nil, err
	}

	summary := summaryToDTO(inventory.Summarize(records))
	if err := uc.summaries.Save(ctx, summary); err != nil {
		return nil, fmt.Errorf("inventario: guardar resumen: %w", err)
	}
	if err := uc.cache.InvalidateAll(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché tras la subida")
	}

	runID := uuid.New().String()
	uc.log.Info().
		Str("run_id", runID).
		Str("archivo", filepath.Base(path)).
		Int("filas_validas", report.FilasValidas).
		Msg("inventario subido")

	return &dto.UploadResultDTO{
		RunID:   runID,
		Archivo: filepath.Base(path),
		Reporte: cleanReportToDTO(report),
		Resumen: summary,
	}, nil
}

// Inventory lista el inventario limpio paginado.
func (uc *InventoryUseCase) Inventory(ctx context.Context, req dto.InventoryListRequest) (*dto.InventoryListDTO, error) {
	inv, err := uc.LoadClean(ctx, req.Dataset)
	if err != nil {
		return nil, err
	}

	page := req.Page()
	total := len(inv.Records)
	start := page.Offset
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}

	return &dto.InventoryListDTO{
		Dataset:   inv.Dataset,
		Registros: recordsToDTO(inv.Records[start:end]),
		Reporte:   cleanReportToDTO(inv.Report),
		Page:      dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Describe devuelve el análisis descriptivo de stock del dataset.
func (uc *InventoryUseCase) Describe(ctx context.Context, dataset string) (*dto.StockReportDTO, error) {
	inv, err := uc.LoadClean(ctx, dataset)
	if err != nil {
		return nil, err
	}
	return stockReportToDTO(inventory.DescribeStock(inv.Records, uc.params)), nil
}

// Summary calcula los KPIs del dataset sin persistirlos.
func (uc *InventoryUseCase) Summary(ctx context.Context, dataset string) (dto.DashboardSummaryDTO, error) {
	inv, err := uc.LoadClean(ctx, dataset)
	if err != nil {
		return dto.DashboardSummaryDTO{}, err
	}
	return summaryToDTO(inventory.Summarize(inv.Records)), nil
}

// Clean limpia el dataset, persiste su resumen y devuelve el inventario completo.
func (uc *InventoryUseCase) Clean(ctx context.Context, dataset string) (*dto.CleanResultDTO, error) {
	inv, err := uc.LoadClean(ctx, dataset)
	if err != nil {
		return nil, err
	}
	summary := summaryToDTO(inventory.Summarize(inv.Records))
	if err := uc.summaries.Save(ctx, summary); err != nil {
		return nil, fmt.Errorf("inventario: guardar resumen: %w", err)
	}
	return &dto.CleanResultDTO{
		Dataset:   inv.Dataset,
		Reporte:   cleanReportToDTO(inv.Report),
		Resumen:   summary,
		Registros: recordsToDTO(inv.Records),
	}, nil
}

func (uc *InventoryUseCase) clean(table entity.RawTable, path string) ([]entity.InventoryRecord, inventory.CleanReport, error) {
	start := time.Now()
	records, report, err := inventory.Clean(table)
	if err != nil {
		uc.log.Warn().Err(err).Str("archivo", path).Msg("limpieza rechazada")
		return nil, inventory.CleanReport{}, err
	}
	elapsed := time.Since(start)
	uc.metrics.ObserveClean(report, elapsed)

	codigos := make([]string, 0, codigosEnLog)
	for i := 0; i < len(records) && i < codigosEnLog; i++ {
		codigos = append(codigos, records[i].Codigo)
	}
	uc.log.Info().
		Str("archivo", filepath.Base(path)).
		Int("filas_entrada", report.FilasEntrada).
		Int("filas_validas", report.FilasValidas).
		Int("descartadas", report.Descartadas()).
		Float64("valor_total", report.ValorTotal).
		Strs("primeros_codigos", codigos).
		Dur("duracion", elapsed).
		Msg("inventario limpio")
	return records, report, nil
}
