package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/inventario-analitica/internal/application/analytics"
	"github.com/jhoicas/inventario-analitica/internal/domain/entity"
	"github.com/jhoicas/inventario-analitica/internal/domain/inventory"
	"github.com/jhoicas/inventario-analitica/internal/infrastructure/pdf"
)

func TestGenerateAnalyticsPDF(t *testing.T) {
	records := []entity.InventoryRecord{
		{Codigo: "PR001", Nombre: "Martillo", Categoria: "Herramientas", Cantidad: 5, Precio: 10, ValorTotal: 50},
		{Codigo: "PR002", Nombre: "Taladro", Categoria: "Herramientas", Cantidad: 200, Precio: 50, ValorTotal: 10000},
	}
	p := inventory.DefaultParams()

	out, err := pdf.NewMarotoReportGenerator().GenerateAnalyticsPDF(context.Background(), appanalytics.AnalyticsReport{
		Dataset:    "inventario.csv",
		GeneradoEn: time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC),
		Resumen:    inventory.Summarize(records),
		ABC:        inventory.ClassifyABC(records, p),
		Alertas:    inventory.GenerateAlerts(records, 10, p),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "el resultado debe ser un PDF")
}

func TestGenerateAnalyticsPDF_InventarioVacio(t *testing.T) {
	p := inventory.DefaultParams()

	out, err := pdf.NewMarotoReportGenerator().GenerateAnalyticsPDF(context.Background(), appanalytics.AnalyticsReport{
		Resumen: inventory.Summarize(nil),
		ABC:     inventory.ClassifyABC(nil, p),
		Alertas: inventory.GenerateAlerts(nil, 10, p),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
