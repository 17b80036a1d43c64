package interfaces

//go:generate moq -out mocks/dashboard_mock.go -pkg mocks . Dashboard

import (
	"context"
	"io"

	"github.com/secmon-lab/demografi/pkg/domain/model"
	"github.com/secmon-lab/demografi/pkg/domain/types"
)

// Dashboard defines the interface for dashboard operations
type Dashboard interface {
	// BuildView builds the view described by cfg
	BuildView(ctx context.Context, cfg model.ViewConfig) (*model.View, error)

	// Categories returns the category set of breakdown b
	Categories(ctx context.Context, b types.Breakdown) (model.CategorySet, error)

	// FilterOptions returns the selectable values per dimension of breakdown b
	FilterOptions(ctx context.Context, b types.Breakdown) (model.FilterOptions, error)

	// Overview builds the default view of every breakdown
	Overview(ctx context.Context) (*model.Overview, error)

	// Export writes the view described by cfg to w as a spreadsheet
	Export(ctx context.Context, cfg model.ViewConfig, w io.Writer) error
}
