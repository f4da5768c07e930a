package http

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventario-analitica/internal/application/analytics"
	"github.com/jhoicas/inventario-analitica/internal/application/dto"
)

// DashboardHandler maneja la portada del dashboard y el reporte PDF.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen de la última limpieza
// @Description  Total de productos, categorías, stock promedio y valor total formateado.
//
//	Sin limpiezas previas devuelve ceros y "$0".
//
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.LatestSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// GetReportPDF godoc
// @Summary      Reporte analítico en PDF
// @Tags         dashboard
// @Produce      application/pdf
// @Param        dataset  query  string  false  "Archivo en el directorio de datos"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/reports/analytics.pdf [get]
func (h *DashboardHandler) GetReportPDF(c *fiber.Ctx) error {
	var q dto.DatasetQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidParams(c, "parámetros de consulta inválidos")
	}

	out, err := h.uc.ReportPDF(c.UserContext(), q.Dataset)
	if err != nil {
		return writeError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, reportFileName(q.Dataset)))
	return c.Send(out)
}

func reportFileName(dataset string) string {
	base := strings.TrimSuffix(filepath.Base(dataset), filepath.Ext(dataset))
	if base == "" || base == "." {
		base = "inventario"
	}
	return "reporte_" + base + ".pdf"
}
