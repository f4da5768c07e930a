package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventario-analitica/internal/application/analytics"
	"github.com/jhoicas/inventario-analitica/internal/application/dto"
)

// AnalyticsHandler maneja ABC, alertas y what-if. Cada análisis existe en dos
// variantes: GET sobre un dataset del servidor y POST sobre registros del body.
type AnalyticsHandler struct {
	uc *appanalytics.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *appanalytics.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// ── ABC ───────────────────────────────────────────────────────────────────────

// GetABC godoc
// @Summary      Clasificación ABC del inventario
// @Description  A hasta 80% del valor acumulado, B hasta 95%, C el resto.
// @Tags         analytics
// @Produce      json
// @Param        dataset  query  string  false  "Archivo en el directorio de datos"
// @Success      200  {object}  dto.ABCResultDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/analytics/abc [get]
func (h *AnalyticsHandler) GetABC(c *fiber.Ctx) error {
	var q dto.DatasetQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidParams(c, "parámetros de consulta inválidos")
	}
	res, err := h.uc.ABC(c.UserContext(), q.Dataset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// PostABC godoc
// @Summary      Clasificación ABC de registros enviados
// @Tags         analytics
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordsRequest  true  "registros"
// @Success      200  {object}  dto.ABCResultDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/abc [post]
func (h *AnalyticsHandler) PostABC(c *fiber.Ctx) error {
	var req dto.RecordsRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	res, err := h.uc.ABCFromRecords(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// ── Alertas ───────────────────────────────────────────────────────────────────

// GetAlerts godoc
// @Summary      Alertas de inventario
// @Description  SOBRE_STOCK, RIESGO_QUIEBRE y CAPITAL_MUERTO, ordenadas por valor descendente.
// @Tags         analytics
// @Produce      json
// @Param        dataset  query  string  false  "Archivo en el directorio de datos"
// @Param        top_n    query  int     false  "Máx. alertas (default 10; 0 = todas)"
// @Success      200  {object}  dto.AlertsResultDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/analytics/alerts [get]
func (h *AnalyticsHandler) GetAlerts(c *fiber.Ctx) error {
	var q dto.AlertsQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidParams(c, "parámetros de consulta inválidos")
	}

	var topN *int
	if c.Query("top_n") != "" {
		topN = &q.TopN
	}

	res, err := h.uc.Alerts(c.UserContext(), q.Dataset, topN)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// PostAlerts godoc
// @Summary      Alertas de registros enviados
// @Tags         analytics
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AlertsRequest  true  "registros y top_n opcional"
// @Success      200  {object}  dto.AlertsResultDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/alerts [post]
func (h *AnalyticsHandler) PostAlerts(c *fiber.Ctx) error {
	var req dto.AlertsRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	res, err := h.uc.AlertsFromRecords(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// ── What-if ───────────────────────────────────────────────────────────────────

// GetWhatIf godoc
// @Summary      Simulación de reducción de stock
// @Description  Capital liberado al reducir el stock de una categoría. reduccion admite
//
//	fracción (0.2) o porcentaje (20).
//
// @Tags         analytics
// @Produce      json
// @Param        dataset    query  string  false  "Archivo en el directorio de datos"
// @Param        categoria  query  string  true   "Categoría (sin distinguir mayúsculas)"
// @Param        reduccion  query  number  true   "Reducción"
// @Param        top_n      query  int     false  "Solo los N productos de mayor valor"
// @Success      200  {object}  dto.WhatIfResultDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/analytics/what-if [get]
func (h *AnalyticsHandler) GetWhatIf(c *fiber.Ctx) error {
	var q dto.WhatIfQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidParams(c, "parámetros de consulta inválidos")
	}
	res, err := h.uc.WhatIf(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// PostWhatIf godoc
// @Summary      Simulación sobre registros enviados
// @Tags         analytics
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WhatIfRequest  true  "registros, categoria, reduccion, top_n"
// @Success      200  {object}  dto.WhatIfResultDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/what-if [post]
func (h *AnalyticsHandler) PostWhatIf(c *fiber.Ctx) error {
	var req dto.WhatIfRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	res, err := h.uc.WhatIfFromRecords(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}
