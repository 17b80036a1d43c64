package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/demografi/pkg/domain/types"
)

// Dataset is a static set of statistics for every breakdown, in the same
// nested shape the statistics service returns
type Dataset struct {
	Name       string                           `yaml:"name"`
	Statistics map[types.Breakdown][]*GroupNode `yaml:"statistics"`
}

// Validate validates the dataset
func (d *Dataset) Validate() error {
	if len(d.Statistics) == 0 {
		return goerr.New("at least one breakdown is required")
	}

	for b, nodes := range d.Statistics {
		if err := b.Validate(); err != nil {
			return goerr.Wrap(err, "invalid dataset breakdown")
		}
		for i, n := range nodes {
			if err := n.Validate(); err != nil {
				return goerr.Wrap(err, "invalid group at index",
					goerr.V("breakdown", b),
					goerr.V("index", i))
			}
		}
	}

	return nil
}

// Records returns the flattened records of breakdown b
func (d *Dataset) Records(b types.Breakdown) ([]*Record, error) {
	nodes, ok := d.Statistics[b]
	if !ok {
		return nil, goerr.Wrap(ErrBreakdownNotFound, "breakdown missing from dataset",
			goerr.V("breakdown", b),
			goerr.V("dataset", d.Name))
	}
	return Flatten(nodes), nil
}

// Validate checks that the node and its descendants are named
func (n *GroupNode) Validate() error {
	if n == nil {
		return goerr.New("group is nil")
	}
	if n.Name == "" {
		return goerr.New("group name is required")
	}
	for _, child := range n.Children {
		if err := child.Validate(); err != nil {
			return goerr.Wrap(err, "invalid child group", goerr.V("parent", n.Name))
		}
	}
	return nil
}
