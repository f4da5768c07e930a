package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/inventario-analitica/internal/application/analytics"
	"github.com/jhoicas/inventario-analitica/internal/infrastructure/cache"
	"github.com/jhoicas/inventario-analitica/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/inventario-analitica/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-analitica/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/inventario-analitica/internal/interfaces/http"
	"github.com/jhoicas/inventario-analitica/pkg/config"
	"github.com/jhoicas/inventario-analitica/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("datos", cfg.Paths.DataPath).
		Msg("iniciando aplicación")

	// Caché Redis opcional: si no conecta, se sigue sin caché.
	datasetCache, err := cache.NewDatasetCache(cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("caché Redis no disponible, se continúa sin caché")
		datasetCache = cache.NewNoopDatasetCache()
	}
	defer datasetCache.Close()

	reg := metrics.NewRegistry()
	params := appanalytics.ParamsFromConfig(cfg.Analytics)

	datasets := store.NewDatasetStore(cfg.Paths.DataPath, cfg.Paths.BaseName)
	summaries := store.NewSummaryStore(cfg.Paths.ReportsPath)

	inventoryUC := appanalytics.NewInventoryUseCase(datasets, datasetCache, summaries, reg, log, params)
	analyticsUC := appanalytics.NewAnalyticsUseCase(inventoryUC, reg, params, cfg.Analytics.AlertasTopN)
	dashboardUC := appanalytics.NewDashboardUseCase(
		inventoryUC, summaries, infrapdf.NewMarotoReportGenerator(), params, cfg.Analytics.AlertasTopN,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (requiere `swag init`)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Inventario Analítica API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		InventoryUC: inventoryUC,
		AnalyticsUC: analyticsUC,
		DashboardUC: dashboardUC,
		Metrics:     reg,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
