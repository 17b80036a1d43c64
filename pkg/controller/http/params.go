package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/demografi/pkg/domain/model"
	"github.com/secmon-lab/demografi/pkg/domain/types"
)

// Query parameters of view requests. Filter values use the dimension name
// as parameter and may repeat.
const (
	paramGroupBy = "groupBy"
	paramSort    = "sort"
	paramActive  = "active"
)

func parseBreakdown(r *http.Request) (types.Breakdown, error) {
	b := types.Breakdown(chi.URLParam(r, "breakdown"))
	if !b.IsValid() {
		return "", goerr.Wrap(model.ErrInvalidViewConfig, "unknown breakdown", goerr.V("breakdown", b))
	}
	return b, nil
}

// parseViewConfig builds the view configuration of a request
func parseViewConfig(r *http.Request) (model.ViewConfig, error) {
	b, err := parseBreakdown(r)
	if err != nil {
		return model.ViewConfig{}, err
	}

	q := r.URL.Query()
	cfg := model.NewViewConfig(b)
	if v := q.Get(paramGroupBy); v != "" {
		cfg.GroupBy = types.Dimension(v)
	}
	if v := q.Get(paramSort); v != "" {
		cfg.Sort = types.SortOrder(v)
	}
	cfg.Category = strings.TrimSpace(q.Get(paramActive))

	filter := model.Filter{}
	for _, d := range types.AllDimensions {
		for _, v := range q[string(d)] {
			if v = strings.TrimSpace(v); v != "" {
				filter[d] = append(filter[d], v)
			}
		}
	}
	if len(filter) > 0 {
		cfg.Filter = filter
	}

	if err := cfg.Validate(); err != nil {
		return model.ViewConfig{}, err
	}
	return cfg, nil
}
