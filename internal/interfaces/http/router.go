package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	appanalytics "github.com/jhoicas/inventario-analitica/internal/application/analytics"
	"github.com/jhoicas/inventario-analitica/internal/application/dto"
)

// MetricsObserver registra métricas HTTP y expone el endpoint de scraping.
// Lo implementa *metrics.Registry.
type MetricsObserver interface {
	requestObserver
	Handler() http.Handler
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InventoryUC *appanalytics.InventoryUseCase
	AnalyticsUC *appanalytics.AnalyticsUseCase
	DashboardUC *appanalytics.DashboardUseCase
	Metrics     MetricsObserver // opcional
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(ObserveRequests(deps.Metrics))
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok"})
	})

	api := app.Group("/api")

	// Inventario
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	api.Post("/uploads", inventoryHandler.Upload)
	invGroup := api.Group("/inventory")
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Get("/stock-report", inventoryHandler.StockReport)

	// Analítica
	analytics := api.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analytics.Get("/abc", analyticsHandler.GetABC)
	analytics.Post("/abc", analyticsHandler.PostABC)
	analytics.Get("/alerts", analyticsHandler.GetAlerts)
	analytics.Post("/alerts", analyticsHandler.PostAlerts)
	analytics.Get("/what-if", analyticsHandler.GetWhatIf)
	analytics.Post("/what-if", analyticsHandler.PostWhatIf)

	// Dashboard y reportes
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)
	api.Get("/reports/analytics.pdf", dashboardHandler.GetReportPDF)
}
