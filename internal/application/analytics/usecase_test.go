package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-analitica/internal/application/analytics"
	"github.com/jhoicas/inventario-analitica/internal/application/dto"
	"github.com/jhoicas/inventario-analitica/internal/domain"
	"github.com/jhoicas/inventario-analitica/internal/domain/entity"
	"github.com/jhoicas/inventario-analitica/internal/domain/inventory"
	"github.com/jhoicas/inventario-analitica/pkg/config"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type fakeDatasets struct {
	tables   map[string]entity.RawTable
	loads    int
	saved    map[string][]byte
	resolveE error
}

func newFakeDatasets() *fakeDatasets {
	return &fakeDatasets{tables: map[string]entity.RawTable{}, saved: map[string][]byte{}}
}

func (f *fakeDatasets) Resolve(_ context.Context, dataset string) (string, error) {
	if f.resolveE != nil {
		return "", f.resolveE
	}
	if dataset == "" {
		dataset = "inventario.csv"
	}
	path := "/data/" + dataset
	if _, ok := f.tables[path]; !ok {
		return "", domain.ErrNotFound
	}
	return path, nil
}

func (f *fakeDatasets) Save(_ context.Context, filename string, data []byte) (string, error) {
	path := "/data/" + filename
	f.saved[path] = data
	f.tables[path] = scenarioTable()
	return path, nil
}

func (f *fakeDatasets) Load(_ context.Context, path string) (entity.RawTable, error) {
	f.loads++
	t, ok := f.tables[path]
	if !ok {
		return entity.RawTable{}, domain.ErrNotFound
	}
	return t, nil
}

func (f *fakeDatasets) Fingerprint(_ context.Context, path string) (string, error) {
	return path + "|1", nil
}

type fakeCache struct {
	records     map[string][]entity.InventoryRecord
	reports     map[string]inventory.CleanReport
	getErr      error
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{records: map[string][]entity.InventoryRecord{}, reports: map[string]inventory.CleanReport{}}
}

func (c *fakeCache) Get(_ context.Context, fp string) ([]entity.InventoryRecord, inventory.CleanReport, bool, error) {
	if c.getErr != nil {
		return nil, inventory.CleanReport{}, false, c.getErr
	}
	r, ok := c.records[fp]
	return r, c.reports[fp], ok, nil
}

func (c *fakeCache) Set(_ context.Context, fp string, records []entity.InventoryRecord, rep inventory.CleanReport) error {
	c.records[fp] = records
	c.reports[fp] = rep
	return nil
}

func (c *fakeCache) InvalidateAll(context.Context) error {
	c.invalidated++
	c.records = map[string][]entity.InventoryRecord{}
	return nil
}

type fakeSummaries struct {
	saved *dto.DashboardSummaryDTO
}

func (s *fakeSummaries) Save(_ context.Context, sum dto.DashboardSummaryDTO) error {
	s.saved = &sum
	return nil
}

func (s *fakeSummaries) Latest(context.Context) (dto.DashboardSummaryDTO, error) {
	if s.saved == nil {
		return dto.EmptyDashboardSummary(), nil
	}
	return *s.saved, nil
}

type fakeMetrics struct {
	cache   []string
	uploads []error
	alerts  int
	cleans  int
}

func (m *fakeMetrics) ObserveClean(inventory.CleanReport, time.Duration) { m.cleans++ }
func (m *fakeMetrics) ObserveAlerts(res inventory.AlertsResult)          { m.alerts += len(res.Alertas) }
func (m *fakeMetrics) ObserveCache(r string)                             { m.cache = append(m.cache, r) }
func (m *fakeMetrics) ObserveUpload(err error)                           { m.uploads = append(m.uploads, err) }

type fakeReports struct {
	got *analytics.AnalyticsReport
}

func (r *fakeReports) GenerateAnalyticsPDF(_ context.Context, rep analytics.AnalyticsReport) ([]byte, error) {
	r.got = &rep
	return []byte("%PDF-fake"), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

// scenarioTable: Martillo (5 x 10) y Taladro (200 x 50) en Herramientas, más una fila inválida.
func scenarioTable() entity.RawTable {
	return entity.RawTable{
		Columns: []string{"codigo", "nombre", "categoria", "cantidad", "precio"},
		Rows: []entity.RawRow{
			{"codigo": "PR2", "nombre": "Taladro", "categoria": "Herramientas", "cantidad": "200", "precio": "50"},
			{"codigo": "PR001", "nombre": "Martillo", "categoria": "Herramientas", "cantidad": "5", "precio": "10"},
			{"codigo": "XX", "nombre": "Sin código", "categoria": "Otros", "cantidad": "1", "precio": "1"},
		},
	}
}

type fixture struct {
	datasets  *fakeDatasets
	cache     *fakeCache
	summaries *fakeSummaries
	metrics   *fakeMetrics
	reports   *fakeReports
	inv       *analytics.InventoryUseCase
	an        *analytics.AnalyticsUseCase
	dash      *analytics.DashboardUseCase
}

func newFixture() *fixture {
	f := &fixture{
		datasets:  newFakeDatasets(),
		cache:     newFakeCache(),
		summaries: &fakeSummaries{},
		metrics:   &fakeMetrics{},
		reports:   &fakeReports{},
	}
	f.datasets.tables["/data/inventario.csv"] = scenarioTable()
	p := inventory.DefaultParams()
	f.inv = analytics.NewInventoryUseCase(f.datasets, f.cache, f.summaries, f.metrics, nil, p)
	f.an = analytics.NewAnalyticsUseCase(f.inv, f.metrics, p, inventory.DefaultAlertasTopN)
	f.dash = analytics.NewDashboardUseCase(f.inv, f.summaries, f.reports, p, inventory.DefaultAlertasTopN)
	return f
}

func intPtr(n int) *int { return &n }

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestParamsFromConfig(t *testing.T) {
	p := analytics.ParamsFromConfig(config.AnalyticsConfig{CorteA: 0.7, UmbralStockBajo: 3})
	assert.Equal(t, 0.7, p.CorteA)
	assert.Equal(t, 0.95, p.CorteB, "un cero conserva el valor de referencia")
	assert.Equal(t, 3.0, p.UmbralStockBajo)
	assert.Equal(t, 5, p.TopCostosos)
	assert.False(t, p.ABCEstricto)

	p = analytics.ParamsFromConfig(config.AnalyticsConfig{ABCEstricto: true})
	assert.True(t, p.ABCEstricto)
}

func TestLoadClean_UsaCache(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.inv.LoadClean(ctx, "")
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Equal(t, "inventario.csv", first.Dataset)
	require.Len(t, first.Records, 2)
	assert.Equal(t, "PR001", first.Records[0].Codigo)
	assert.Equal(t, 1, first.Report.DescartadasCodigo)

	second, err := f.inv.LoadClean(ctx, "")
	require.NoError(t, err)
	assert.True(t, second.FromCache, "la segunda lectura sale de la caché")
	assert.Equal(t, 1, f.datasets.loads, "el archivo se lee una sola vez")
	assert.Equal(t, []string{analytics.CacheMiss, analytics.CacheHit}, f.metrics.cache)
	assert.Equal(t, 1, f.metrics.cleans)
}

func TestLoadClean_CacheCaidaNoFalla(t *testing.T) {
	f := newFixture()
	f.cache.getErr = errors.New("redis caído")

	inv, err := f.inv.LoadClean(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, inv.Records, 2)
	assert.Equal(t, []string{analytics.CacheError}, f.metrics.cache)
}

func TestLoadClean_DatasetInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.inv.LoadClean(context.Background(), "otro.csv")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoadClean_ColumnaFaltante(t *testing.T) {
	f := newFixture()
	f.datasets.tables["/data/sin_precio.csv"] = entity.RawTable{
		Columns: []string{"codigo", "nombre", "categoria", "cantidad"},
		Rows:    []entity.RawRow{{"codigo": "PR1", "nombre": "Martillo", "categoria": "X", "cantidad": "1"}},
	}
	_, err := f.inv.LoadClean(context.Background(), "sin_precio.csv")

	var mc *domain.MissingColumnError
	require.ErrorAs(t, err, &mc)
	assert.Equal(t, "precio", mc.Column)
}

func TestUpload(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	res, err := f.inv.Upload(ctx, "nuevo.csv", []byte("codigo,nombre\n"))
	require.NoError(t, err)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, "nuevo.csv", res.Archivo)
	assert.Equal(t, 2, res.Reporte.FilasValidas)
	assert.Equal(t, dto.DashboardSummaryDTO{
		TotalProductos: 2, Categorias: 1, StockPromedio: 102.5, ValorTotal: "$10,050.00",
	}, res.Resumen)

	// Caso 1: el resumen queda persistido para la portada
	latest, err := f.dash.LatestSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, res.Resumen, latest)

	// Caso 2: la caché se invalida y la métrica registra el éxito
	assert.Equal(t, 1, f.cache.invalidated)
	require.Len(t, f.metrics.uploads, 1)
	assert.NoError(t, f.metrics.uploads[0])
}

func TestUpload_Vacio(t *testing.T) {
	f := newFixture()
	_, err := f.inv.Upload(context.Background(), "nuevo.csv", nil)
	assert.ErrorIs(t, err, domain.ErrEmptyOrCorrupt)
	require.Len(t, f.metrics.uploads, 1)
	assert.Error(t, f.metrics.uploads[0])
}

func TestInventory_Paginacion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	page, err := f.inv.Inventory(ctx, dto.InventoryListRequest{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page.Registros, 1)
	assert.Equal(t, "PR002", page.Registros[0].Codigo)
	assert.Equal(t, dto.PageResponse{Limit: 1, Offset: 1, Total: 2}, page.Page)

	// Caso 1: offset más allá del final devuelve una página vacía
	page, err = f.inv.Inventory(ctx, dto.InventoryListRequest{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Registros)
	assert.Equal(t, dto.DefaultPageLimit, page.Page.Limit)
}

func TestDescribe(t *testing.T) {
	f := newFixture()
	rep, err := f.inv.Describe(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, rep.StockBajo, 1)
	assert.Equal(t, "PR001", rep.StockBajo[0].Codigo)
	require.NotNil(t, rep.MasCostoso)
	assert.Equal(t, "PR002", rep.MasCostoso.Codigo)
}

func TestClean_PersisteResumen(t *testing.T) {
	f := newFixture()
	res, err := f.inv.Clean(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "inventario.csv", res.Dataset)
	assert.Len(t, res.Registros, 2)
	assert.Equal(t, 1, res.Reporte.DescartadasCodigo)
	require.NotNil(t, f.summaries.saved)
	assert.Equal(t, res.Resumen, *f.summaries.saved)
}

func TestAnalytics_ABC(t *testing.T) {
	f := newFixture()
	res, err := f.an.ABC(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, res.Detalle, 2)
	assert.Equal(t, "PR002", res.Detalle[0].Codigo)
	assert.Equal(t, inventory.ClaseA, res.Detalle[0].Clase)
	assert.Equal(t, 99.5, res.CapitalAPct)
}

func TestAnalytics_AlertsTopN(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	all, err := f.an.Alerts(ctx, "", intPtr(0))
	require.NoError(t, err)
	require.NotNil(t, all.Umbrales)
	assert.Len(t, all.Alertas, all.TotalAlertasDetectadas)
	assert.Equal(t, inventory.NotaSinRotacion, all.SupuestoCapitalMuerto)

	one, err := f.an.Alerts(ctx, "", intPtr(1))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(one.Alertas), 1)
	assert.Equal(t, all.TotalAlertasDetectadas, one.TotalAlertasDetectadas)
}

func TestAnalytics_WhatIf(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	res, err := f.an.WhatIf(ctx, dto.WhatIfQuery{Categoria: "herramientas", Reduccion: 20, TopN: 1})
	require.NoError(t, err)
	assert.Equal(t, 2000.0, res.CapitalLiberado)
	assert.Equal(t, 8000.0, res.ValorEstimadoPost)
	require.NotNil(t, res.TopN)
	assert.Equal(t, 1, *res.TopN)

	// Caso 1: categoría desconocida
	res, err = f.an.WhatIf(ctx, dto.WhatIfQuery{Categoria: "Jardín", Reduccion: 0.5})
	require.NoError(t, err)
	assert.Equal(t, inventory.MensajeCategoriaNoEncontrada, res.Mensaje)
	assert.Nil(t, res.TopN)
	assert.Empty(t, res.Detalle)

	// Caso 2: sin categoría
	_, err = f.an.WhatIf(ctx, dto.WhatIfQuery{Reduccion: 0.5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAnalytics_DesdeRegistros(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	registros := []map[string]any{
		{"Codigo": "PR001", "Nombre": "Martillo", "Categoria": "Herramientas", "Cantidad": 5.0, "Precio": 10.0},
		{"codigo": "PR002", "nombre": "Taladro", "categoria": "Herramientas", "cantidad": 200.0, "precio": 50.0},
	}

	abc, err := f.an.ABCFromRecords(ctx, dto.RecordsRequest{Registros: registros})
	require.NoError(t, err)
	require.Len(t, abc.Detalle, 2)
	assert.Equal(t, 10050.0, abc.TotalValor, "valor_total ausente se calcula como cantidad*precio")

	wi, err := f.an.WhatIfFromRecords(ctx, dto.WhatIfRequest{Registros: registros, Categoria: "HERRAMIENTAS", Reduccion: 0.2, TopN: 1})
	require.NoError(t, err)
	assert.Equal(t, 2000.0, wi.CapitalLiberado)

	al, err := f.an.AlertsFromRecords(ctx, dto.AlertsRequest{Registros: registros})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(al.Alertas), inventory.DefaultAlertasTopN)
	assert.Equal(t, 0, f.datasets.loads, "los registros del cliente no tocan el disco")
}

func TestAnalytics_RegistrosVacios(t *testing.T) {
	f := newFixture()
	abc, err := f.an.ABCFromRecords(context.Background(), dto.RecordsRequest{})
	require.NoError(t, err)
	assert.Empty(t, abc.Detalle)
	assert.Equal(t, 0.0, abc.TotalValor)
}

func TestDashboard_LatestSummaryVacio(t *testing.T) {
	f := newFixture()
	s, err := f.dash.LatestSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dto.EmptyDashboardSummary(), s)
}

func TestDashboard_ReportPDF(t *testing.T) {
	f := newFixture()
	out, err := f.dash.ReportPDF(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), out)

	require.NotNil(t, f.reports.got)
	assert.Equal(t, "inventario.csv", f.reports.got.Dataset)
	assert.Equal(t, 2, f.reports.got.Resumen.TotalProductos)
	assert.Len(t, f.reports.got.ABC.Detalle, 2)
	assert.False(t, f.reports.got.GeneradoEn.IsZero())
}
