package metrics_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-analitica/internal/domain/entity"
	"github.com/jhoicas/inventario-analitica/internal/domain/inventory"
	"github.com/jhoicas/inventario-analitica/internal/infrastructure/metrics"
)

func TestObserveClean(t *testing.T) {
	r := metrics.NewRegistry()

	r.ObserveClean(inventory.CleanReport{
		FilasEntrada:          10,
		DescartadasCategoria:  2,
		DescartadasCodigo:     1,
		DescartadasValidacion: 3,
		DuplicadosEliminados:  1,
		FilasValidas:          3,
		ValorTotal:            1234.5,
	}, 20*time.Millisecond)

	assert.Equal(t, 10.0, testutil.ToFloat64(r.RowsLoaded))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.RowsDiscarded.WithLabelValues("validacion")))
	assert.Equal(t, 1234.5, testutil.ToFloat64(r.InventoryValue))
	assert.Equal(t, 1, testutil.CollectAndCount(r.CleanDuration))
}

func TestObserveAlertsUploadsYCache(t *testing.T) {
	r := metrics.NewRegistry()

	r.ObserveAlerts(inventory.AlertsResult{Alertas: []inventory.Alert{
		{InventoryRecord: entity.InventoryRecord{Codigo: "PR001"}, Tipo: inventory.AlertaSobreStock},
		{InventoryRecord: entity.InventoryRecord{Codigo: "PR001"}, Tipo: inventory.AlertaCapitalMuerto},
		{InventoryRecord: entity.InventoryRecord{Codigo: "PR002"}, Tipo: inventory.AlertaSobreStock},
	}})
	r.ObserveUpload(nil)
	r.ObserveUpload(errors.New("falló"))
	r.ObserveCache("hit")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.Alerts.WithLabelValues(inventory.AlertaSobreStock)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Uploads.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.CacheLookups.WithLabelValues("hit")))
}

func TestHandlerExponeMetricas(t *testing.T) {
	r := metrics.NewRegistry()
	r.ObserveHTTP("GET", "/health", 200)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `inventario_http_requests_total{method="GET",route="/health",status="200"} 1`)
}
