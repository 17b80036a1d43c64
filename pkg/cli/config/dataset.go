package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/demografi/pkg/domain/interfaces"
	"github.com/secmon-lab/demografi/pkg/repository"
	"github.com/urfave/cli/v3"
)

// Dataset holds the static dataset configuration
type Dataset struct {
	File string
}

// Flags returns CLI flags for Dataset configuration
func (d *Dataset) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dataset",
			Usage:       "YAML dataset served when no upstream URL is set",
			Category:    "Dataset",
			Sources:     cli.EnvVars("DEMOGRAFI_DATASET"),
			Destination: &d.File,
		},
	}
}

// Configure creates a static source from the dataset file, or from the
// embedded sample when no file is set
func (d *Dataset) Configure(ctx context.Context) (*repository.Static, error) {
	if d.File == "" {
		ctxlog.From(ctx).Warn("Serving the embedded sample dataset. Set an upstream URL or a dataset file for real statistics")
		return repository.NewSample()
	}

	source, err := repository.LoadStaticFile(d.File)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load dataset", goerr.V("file", d.File))
	}
	return source, nil
}

// LogValue returns structured log value
func (d Dataset) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("file", d.File),
	)
}

// ConfigureSource picks the statistics source. The upstream service wins
// when configured; static data is never used as a substitute for it.
func ConfigureSource(ctx context.Context, up *Upstream, ds *Dataset) (interfaces.StatsSource, error) {
	if up.IsConfigured() {
		if ds.File != "" {
			ctxlog.From(ctx).Warn("Dataset file is ignored since an upstream URL is set",
				slog.String("file", ds.File),
			)
		}
		client, err := up.Configure()
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	static, err := ds.Configure(ctx)
	if err != nil {
		return nil, err
	}
	return static, nil
}
