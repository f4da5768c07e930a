package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-analitica/internal/application/dto"
)

func newLimpiarCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "limpiar",
		Short: "Limpia el inventario, muestra el reporte y persiste el resumen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, s *services) (any, error) {
				return s.inventory.Clean(ctx, s.dataset)
			})
		},
	}
}

func newResumenCmd(opts *rootOptions) *cobra.Command {
	var ultimo bool
	cmd := &cobra.Command{
		Use:   "resumen",
		Short: "KPIs del inventario (total, categorías, stock promedio, valor)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, s *services) (any, error) {
				if ultimo {
					return s.dashboard.LatestSummary(ctx)
				}
				return s.inventory.Summary(ctx, s.dataset)
			})
		},
	}
	cmd.Flags().BoolVar(&ultimo, "ultimo", false, "mostrar el resumen persistido de la última limpieza")
	return cmd
}

func newStockCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stock",
		Short: "Análisis descriptivo de stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, s *services) (any, error) {
				return s.inventory.Describe(ctx, s.dataset)
			})
		},
	}
}

func newABCCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "abc",
		Short: "Clasificación ABC por valor acumulado",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, s *services) (any, error) {
				return s.analytics.ABC(ctx, s.dataset)
			})
		},
	}
}

func newAlertasCmd(opts *rootOptions) *cobra.Command {
	var topN int
	cmd := &cobra.Command{
		Use:   "alertas",
		Short: "Alertas de sobre-stock, riesgo de quiebre y capital muerto",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, s *services) (any, error) {
				var n *int
				if cmd.Flags().Changed("top-n") {
					n = &topN
				}
				return s.analytics.Alerts(ctx, s.dataset, n)
			})
		},
	}
	cmd.Flags().IntVarP(&topN, "top-n", "n", 0, "máx. alertas (default ALERTAS_TOP_N; 0 = todas)")
	return cmd
}

func newSimularCmd(opts *rootOptions) *cobra.Command {
	var (
		categoria string
		reduccion float64
		topN      int
	)
	cmd := &cobra.Command{
		Use:   "simular",
		Short: "Capital liberado al reducir el stock de una categoría",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, s *services) (any, error) {
				return s.analytics.WhatIf(ctx, dto.WhatIfQuery{
					Dataset:   s.dataset,
					Categoria: categoria,
					Reduccion: reduccion,
					TopN:      topN,
				})
			})
		},
	}
	cmd.Flags().StringVarP(&categoria, "categoria", "c", "", "categoría a reducir (obligatoria)")
	cmd.Flags().Float64VarP(&reduccion, "reduccion", "r", 0, "reducción: fracción (0.2) o porcentaje (20)")
	cmd.Flags().IntVarP(&topN, "top-n", "n", 0, "solo los N productos de mayor valor (0 = toda la categoría)")
	_ = cmd.MarkFlagRequired("categoria")
	_ = cmd.MarkFlagRequired("reduccion")
	return cmd
}

func newReporteCmd(opts *rootOptions) *cobra.Command {
	var salida string
	cmd := &cobra.Command{
		Use:   "reporte",
		Short: "Genera el reporte analítico en PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, s *services) (any, error) {
				out, err := s.dashboard.ReportPDF(ctx, s.dataset)
				if err != nil {
					return nil, err
				}
				if err := os.WriteFile(salida, out, 0o644); err != nil {
					return nil, fmt.Errorf("escribir %s: %w", salida, err)
				}
				return map[string]any{"archivo": salida, "bytes": len(out)}, nil
			})
		},
	}
	cmd.Flags().StringVarP(&salida, "salida", "o", "reporte_inventario.pdf", "archivo PDF de salida")
	return cmd
}
