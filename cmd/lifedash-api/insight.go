package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/JonnyWalker81/lifedash/internal/insight"
	"github.com/JonnyWalker81/lifedash/internal/logger"
	"github.com/JonnyWalker81/lifedash/internal/render"
	"github.com/JonnyWalker81/lifedash/internal/repository"
	"github.com/JonnyWalker81/lifedash/internal/service"
	"github.com/spf13/cobra"
)

var insightCmd = &cobra.Command{
	Use:   "insight",
	Short: "Compute the insight report from the data directory",
	Long:  `Compute the insight report (or the hub view with --hub) and print it styled, or as JSON with --json.`,
	RunE:  runInsight,
}

var (
	insightDate string
	insightHub  bool
	insightJSON bool
)

func init() {
	insightCmd.Flags().StringVar(&insightDate, "date", "", "as-of date YYYY-MM-DD (default today)")
	insightCmd.Flags().BoolVar(&insightHub, "hub", false, "show the hub view instead of the full report")
	insightCmd.Flags().BoolVar(&insightJSON, "json", false, "print JSON instead of the styled report")
}

func runInsight(cmd *cobra.Command, args []string) error {
	loc, err := cfg.Insight.Location()
	if err != nil {
		return err
	}
	settings := cfg.Insight.Settings()
	svc := service.NewInsightService(
		repository.NewSignalRepository(cfg.Data.Dir),
		repository.NewPlanRepository(cfg.Data.Dir),
		repository.NewTodoRepository(cfg.Data.Dir),
		settings,
		service.SystemClock(loc),
	)

	ctx := logger.WithSource(context.Background(), "cli")
	ctx = logger.WithLogger(ctx, logger.Ctx(ctx))

	out := cmd.OutOrStdout()
	r := render.New(out, settings)

	if insightHub {
		hub, err := svc.Hub(ctx, insightDate)
		if err != nil {
			return err
		}
		if insightJSON {
			return writeJSON(out, hub)
		}
		_, err = fmt.Fprint(out, r.Hub(hub))
		return err
	}

	report, err := svc.Report(ctx, insightDate, insight.FullFeatures())
	if err != nil {
		return err
	}
	if insightJSON {
		return writeJSON(out, report)
	}
	_, err = fmt.Fprint(out, r.Report(report))
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
