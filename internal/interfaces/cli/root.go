// Package cli implementa el comando `inventario`: el mismo pipeline que la API
// (limpieza, ABC, alertas, what-if) ejecutado sobre un archivo local.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	appanalytics "github.com/jhoicas/inventario-analitica/internal/application/analytics"
	"github.com/jhoicas/inventario-analitica/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/inventario-analitica/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-analitica/internal/infrastructure/store"
	"github.com/jhoicas/inventario-analitica/pkg/config"
	"github.com/jhoicas/inventario-analitica/pkg/logger"
)

// Formatos de salida.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// rootOptions flags globales; cada NewRootCommand tiene las suyas.
type rootOptions struct {
	archivo  string
	dataset  string
	reportes string
	formato  string
	verbose  bool
	useCache bool
}

// services casos de uso armados para un comando.
type services struct {
	inventory *appanalytics.InventoryUseCase
	analytics *appanalytics.AnalyticsUseCase
	dashboard *appanalytics.DashboardUseCase
	dataset   string
	closeFn   func() error
}

// Execute punto de entrada llamado por main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

// NewRootCommand construye el árbol de comandos.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "inventario",
		Short:         "Limpieza y analítica de inventarios (csv, xlsx, ods)",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch opts.formato {
			case FormatJSON, FormatYAML:
				return nil
			default:
				return fmt.Errorf("formato '%s' no soportado (use json o yaml)", opts.formato)
			}
		},
	}

	f := root.PersistentFlags()
	f.StringVarP(&opts.archivo, "archivo", "a", "", "ruta a un archivo de inventario (anula --dataset)")
	f.StringVarP(&opts.dataset, "dataset", "d", "", "nombre del inventario en el directorio de datos")
	f.StringVar(&opts.reportes, "reportes", "", "directorio del resumen persistido (default INVENTORY_REPORTS_PATH)")
	f.StringVarP(&opts.formato, "formato", "f", FormatJSON, "formato de salida: json | yaml")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log detallado en stderr")
	f.BoolVar(&opts.useCache, "cache", false, "usar la caché Redis configurada")

	root.AddCommand(
		newLimpiarCmd(opts),
		newResumenCmd(opts),
		newStockCmd(opts),
		newABCCmd(opts),
		newAlertasCmd(opts),
		newSimularCmd(opts),
		newReporteCmd(opts),
	)
	return root
}

// build arma los casos de uso con la configuración del entorno y los flags.
func (o *rootOptions) build(cmd *cobra.Command) (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := "warn"
	if o.verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: level, Output: cmd.ErrOrStderr()})

	dataDir, dataset := cfg.Paths.DataPath, o.dataset
	if o.archivo != "" {
		dataDir, dataset = filepath.Dir(o.archivo), filepath.Base(o.archivo)
	}
	reportsDir := cfg.Paths.ReportsPath
	if o.reportes != "" {
		reportsDir = o.reportes
	}

	var snapshots appanalytics.SnapshotCache
	closeFn := func() error { return nil }
	if o.useCache {
		c, err := cache.NewDatasetCache(cfg.Cache)
		if err != nil {
			return nil, err
		}
		snapshots, closeFn = c, c.Close
	}

	params := appanalytics.ParamsFromConfig(cfg.Analytics)
	summaries := store.NewSummaryStore(reportsDir)
	inv := appanalytics.NewInventoryUseCase(
		store.NewDatasetStore(dataDir, cfg.Paths.BaseName), snapshots, summaries, nil, log, params,
	)
	return &services{
		inventory: inv,
		analytics: appanalytics.NewAnalyticsUseCase(inv, nil, params, cfg.Analytics.AlertasTopN),
		dashboard: appanalytics.NewDashboardUseCase(inv, summaries, infrapdf.NewMarotoReportGenerator(), params, cfg.Analytics.AlertasTopN),
		dataset:   dataset,
		closeFn:   closeFn,
	}, nil
}

// run arma los servicios, ejecuta fn y escribe su resultado con el formato pedido.
func (o *rootOptions) run(cmd *cobra.Command, fn func(ctx context.Context, s *services) (any, error)) error {
	s, err := o.build(cmd)
	if err != nil {
		return err
	}
	defer s.closeFn()

	out, err := fn(cmd.Context(), s)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), o.formato, out)
}

// render escribe v como JSON indentado o YAML. El YAML conserva las claves JSON.
func render(w io.Writer, format string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar salida: %w", err)
	}
	if strings.EqualFold(format, FormatJSON) {
		_, err = fmt.Fprintln(w, string(raw))
		return err
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("serializar salida: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("serializar salida yaml: %w", err)
	}
	return enc.Close()
}
