package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/demografi/pkg/domain/interfaces"
	"github.com/secmon-lab/demografi/pkg/domain/model"
	"github.com/secmon-lab/demografi/pkg/domain/types"
	"golang.org/x/sync/errgroup"
)

// Dashboard builds dashboard views from a statistics source
type Dashboard struct {
	source interfaces.StatsSource
}

var _ interfaces.Dashboard = &Dashboard{}

// NewDashboard creates a new Dashboard instance
func NewDashboard(source interfaces.StatsSource) *Dashboard {
	return &Dashboard{
		source: source,
	}
}

// SourceName returns the name of the underlying statistics source
func (uc *Dashboard) SourceName() string {
	return uc.source.Name()
}

func (uc *Dashboard) records(ctx context.Context, b types.Breakdown) ([]*model.Record, error) {
	records, err := uc.source.Records(ctx, b)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load records",
			goerr.V("breakdown", b),
			goerr.V("source", uc.source.Name()))
	}
	return records, nil
}

// BuildView fetches the records of cfg's breakdown and runs the aggregation
// pipeline over them. An invalid configuration is rejected before any fetch.
func (uc *Dashboard) BuildView(ctx context.Context, cfg model.ViewConfig) (*model.View, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	records, err := uc.records(ctx, cfg.Breakdown)
	if err != nil {
		recordViewBuild(cfg, false)
		return nil, err
	}

	view, err := model.BuildView(records, cfg)
	if err != nil {
		recordViewBuild(cfg, false)
		return nil, goerr.Wrap(err, "failed to build view")
	}
	recordViewBuild(cfg, true)

	ctxlog.From(ctx).Debug("View built",
		slog.String("breakdown", cfg.Breakdown.String()),
		slog.String("group_by", string(cfg.GroupBy)),
		slog.Int("records", len(records)),
		slog.Int("rows", len(view.Rows)),
	)

	return view, nil
}

// Categories returns the category set of breakdown b
func (uc *Dashboard) Categories(ctx context.Context, b types.Breakdown) (model.CategorySet, error) {
	if err := b.Validate(); err != nil {
		return nil, goerr.Wrap(model.ErrInvalidViewConfig, "invalid breakdown", goerr.V("breakdown", b))
	}

	records, err := uc.records(ctx, b)
	if err != nil {
		return nil, err
	}

	return model.CategoriesFor(b, records), nil
}

// FilterOptions returns the distinct values of each dimension of breakdown
// b. Category values follow the category set so they include fixed ones.
func (uc *Dashboard) FilterOptions(ctx context.Context, b types.Breakdown) (model.FilterOptions, error) {
	if err := b.Validate(); err != nil {
		return nil, goerr.Wrap(model.ErrInvalidViewConfig, "invalid breakdown", goerr.V("breakdown", b))
	}

	records, err := uc.records(ctx, b)
	if err != nil {
		return nil, err
	}

	options := make(model.FilterOptions, len(types.AllDimensions))
	for _, d := range types.AllDimensions {
		if d == types.DimensionCategory {
			options[d] = model.CategoriesFor(b, records).Strings()
			continue
		}
		values := model.DistinctValues(records, d)
		if values == nil {
			values = []string{}
		}
		options[d] = values
	}

	return options, nil
}

// Overview builds the default department view of both breakdowns
// concurrently. It fails when either breakdown cannot be loaded.
func (uc *Dashboard) Overview(ctx context.Context) (*model.Overview, error) {
	var result model.Overview
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		view, err := uc.BuildView(ctx, model.NewViewConfig(types.BreakdownGender))
		if err != nil {
			return err
		}
		result.Gender = view
		return nil
	})
	eg.Go(func() error {
		view, err := uc.BuildView(ctx, model.NewViewConfig(types.BreakdownAge))
		if err != nil {
			return err
		}
		result.Age = view
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &result, nil
}

// Probe loads every breakdown once and logs the outcome. It is used to
// surface a misconfigured source at startup.
func (uc *Dashboard) Probe(ctx context.Context) error {
	logger := ctxlog.From(ctx)
	for _, b := range types.AllBreakdowns {
		records, err := uc.records(ctx, b)
		if err != nil {
			return goerr.Wrap(err, "statistics source probe failed")
		}
		logger.Info("Statistics source reachable",
			slog.String("source", uc.source.Name()),
			slog.String("breakdown", b.String()),
			slog.Int("records", len(records)),
		)
	}
	return nil
}
