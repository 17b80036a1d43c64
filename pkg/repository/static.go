package repository

import (
	"context"
	_ "embed"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/demografi/pkg/domain/interfaces"
	"github.com/secmon-lab/demografi/pkg/domain/model"
	"github.com/secmon-lab/demografi/pkg/domain/types"
	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sampleDataset []byte

// Static serves statistics from a fixed dataset
type Static struct {
	dataset *model.Dataset
}

var _ interfaces.StatsSource = &Static{}

// NewStatic creates a static source for a validated dataset
func NewStatic(ds *model.Dataset) (*Static, error) {
	if ds == nil {
		return nil, goerr.New("dataset is nil")
	}
	if err := ds.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid dataset", goerr.V("name", ds.Name))
	}
	return &Static{dataset: ds}, nil
}

// NewSample creates a static source holding the embedded sample dataset
func NewSample() (*Static, error) {
	ds, err := ParseDataset(sampleDataset)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse embedded sample dataset")
	}
	return NewStatic(ds)
}

// LoadStaticFile creates a static source from a YAML dataset file
func LoadStaticFile(path string) (*Static, error) {
	if path == "" {
		return nil, goerr.New("dataset file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "dataset file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read dataset file",
			goerr.V("path", path))
	}

	ds, err := ParseDataset(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse dataset file",
			goerr.V("path", path))
	}
	if ds.Name == "" {
		ds.Name = path
	}

	return NewStatic(ds)
}

// ParseDataset decodes a YAML dataset
func ParseDataset(data []byte) (*model.Dataset, error) {
	var ds model.Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, goerr.Wrap(err, "failed to parse YAML dataset")
	}
	return &ds, nil
}

// Name implements interfaces.StatsSource
func (s *Static) Name() string {
	return "static:" + s.dataset.Name
}

// Records implements interfaces.StatsSource. Records are rebuilt on every
// call so callers never share state.
func (s *Static) Records(ctx context.Context, b types.Breakdown) ([]*model.Record, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return s.dataset.Records(b)
}
