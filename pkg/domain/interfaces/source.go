package interfaces

//go:generate moq -out mocks/source_mock.go -pkg mocks . StatsSource

import (
	"context"

	"github.com/secmon-lab/demografi/pkg/domain/model"
	"github.com/secmon-lab/demografi/pkg/domain/types"
)

// StatsSource provides flattened headcount records per breakdown
type StatsSource interface {
	// Records returns every record of breakdown b. Implementations return
	// an error wrapping model.ErrUpstreamUnavailable when data cannot be loaded.
	Records(ctx context.Context, b types.Breakdown) ([]*model.Record, error)

	// Name identifies the source in logs and health output
	Name() string
}
