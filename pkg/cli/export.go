package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/demografi/pkg/cli/config"
	"github.com/secmon-lab/demografi/pkg/domain/model"
	"github.com/secmon-lab/demografi/pkg/domain/types"
	"github.com/secmon-lab/demografi/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdExport() *cli.Command {
	var (
		upstreamCfg config.Upstream
		datasetCfg  config.Dataset

		breakdown string
		groupBy   string
		sortOrder string
		active    string
		filters   []string
		output    string
	)

	viewFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "breakdown",
			Aliases:     []string{"b"},
			Usage:       "Breakdown to export (gender, age)",
			Category:    "View",
			Value:       string(types.BreakdownGender),
			Destination: &breakdown,
		},
		&cli.StringFlag{
			Name:        "group-by",
			Aliases:     []string{"g"},
			Usage:       "Grouping dimension (department, section, role, category)",
			Category:    "View",
			Value:       string(types.DimensionDepartment),
			Destination: &groupBy,
		},
		&cli.StringFlag{
			Name:        "sort",
			Usage:       "Row order (alpha, dominant, total)",
			Category:    "View",
			Value:       string(types.SortAlpha),
			Destination: &sortOrder,
		},
		&cli.StringFlag{
			Name:        "active",
			Usage:       "Category ranked by the dominant sort",
			Category:    "View",
			Destination: &active,
		},
		&cli.StringSliceFlag{
			Name:        "filter",
			Aliases:     []string{"f"},
			Usage:       "Filter as dimension=value (repeatable)",
			Category:    "View",
			Destination: &filters,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output xlsx file, - for stdout",
			Category:    "View",
			Value:       "demografi.xlsx",
			Destination: &output,
		},
	}

	return &cli.Command{
		Name:  "export",
		Usage: "Export a dashboard view as an xlsx workbook",
		Flags: joinFlags(viewFlags, upstreamCfg.Flags(), datasetCfg.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			filter, err := parseFilters(filters)
			if err != nil {
				return err
			}

			cfg := model.ViewConfig{
				Breakdown: types.Breakdown(breakdown),
				GroupBy:   types.Dimension(groupBy),
				Sort:      types.SortOrder(sortOrder),
				Category:  active,
				Filter:    filter,
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			source, err := config.ConfigureSource(ctx, &upstreamCfg, &datasetCfg)
			if err != nil {
				return err
			}
			dashboard := usecase.NewDashboard(source)

			w, closeFn, err := openOutput(output)
			if err != nil {
				return err
			}

			if err := dashboard.Export(ctx, cfg, w); err != nil {
				_ = closeFn()
				return goerr.Wrap(err, "failed to export view")
			}
			if err := closeFn(); err != nil {
				return goerr.Wrap(err, "failed to close output", goerr.V("output", output))
			}

			ctxlog.From(ctx).Info("Export written",
				slog.String("output", output),
				slog.String("source", dashboard.SourceName()),
			)
			return nil
		},
	}
}

// parseFilters converts dimension=value arguments into a filter
func parseFilters(args []string) (model.Filter, error) {
	filter := model.Filter{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, goerr.New("filter must be dimension=value", goerr.V("filter", arg))
		}

		d := types.Dimension(strings.TrimSpace(key))
		if !d.IsValid() {
			return nil, goerr.New("unknown filter dimension", goerr.V("dimension", d))
		}
		if value = strings.TrimSpace(value); value != "" {
			filter[d] = append(filter[d], value)
		}
	}
	return filter, nil
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to create output file", goerr.V("path", path))
	}
	return f, f.Close, nil
}
