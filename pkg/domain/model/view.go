package model

import (
	"slices"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/demografi/pkg/domain/types"
)

// UnspecifiedLabel is shown for records without a value in the grouping dimension
const UnspecifiedLabel = "Unspecified"

// TotalLabel is the label of a view's summary row
const TotalLabel = "Total"

// ViewConfig is the complete selection state of one dashboard view
type ViewConfig struct {
	Breakdown types.Breakdown `json:"breakdown"`
	GroupBy   types.Dimension `json:"groupBy"`
	Filter    Filter          `json:"filter,omitempty"`
	Sort      types.SortOrder `json:"sort"`
	// Category is the active category used by SortDominant
	Category string `json:"category,omitempty"`
}

// NewViewConfig returns the default configuration for breakdown b
func NewViewConfig(b types.Breakdown) ViewConfig {
	return ViewConfig{
		Breakdown: b,
		GroupBy:   types.DimensionDepartment,
		Sort:      types.SortAlpha,
	}
}

// WithDefaults fills unset fields and detaches the filter from the caller
func (c ViewConfig) WithDefaults() ViewConfig {
	if c.GroupBy == "" {
		c.GroupBy = types.DimensionDepartment
	}
	if c.Sort == "" {
		c.Sort = types.SortAlpha
	}
	c.Filter = c.Filter.Clone()
	return c
}

// Validate validates the view configuration
func (c ViewConfig) Validate() error {
	if err := c.Breakdown.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidViewConfig, "invalid breakdown", goerr.V("breakdown", c.Breakdown))
	}
	if !c.GroupBy.IsGroupable() {
		return goerr.Wrap(ErrInvalidViewConfig, "dimension cannot be grouped", goerr.V("groupBy", c.GroupBy))
	}
	if !c.Sort.IsValid() {
		return goerr.Wrap(ErrInvalidViewConfig, "invalid sort order", goerr.V("sort", c.Sort))
	}
	if err := c.Filter.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidViewConfig, err.Error())
	}
	return nil
}

// Cell is the display form of one category in a row
type Cell struct {
	Category string `json:"category"`
	Count    string `json:"count"`
	Percent  string `json:"percent"`
}

// ViewRow is one rendered group. Counts is nil for masked rows.
type ViewRow struct {
	Key         string          `json:"key"`
	Label       string          `json:"label"`
	Masked      bool            `json:"masked"`
	Total       string          `json:"total"`
	Counts      CountTuple      `json:"counts,omitempty"`
	Cells       []Cell          `json:"cells"`
	Percentages PercentageTuple `json:"percentages"`
	Style       StyleDirective  `json:"style"`

	headcount int
}

// View is the renderer-ready result of a view configuration
type View struct {
	Config     ViewConfig  `json:"config"`
	Categories CategorySet `json:"categories"`
	Rows       []*ViewRow  `json:"rows"`
	Total      *ViewRow    `json:"total"`
}

// CategoriesFor returns the category set of a breakdown's records. Gender
// always includes the fixed categories.
func CategoriesFor(b types.Breakdown, records []*Record) CategorySet {
	set := ExtractRecordCategories(records)
	if b == types.BreakdownGender {
		return NewCategorySet(append(GenderCategories.Strings(), set...)...)
	}
	return set
}

// BuildView runs the aggregation pipeline: filter and group, mask,
// normalize and sort. Categories are derived from the whole dataset so they
// stay stable while filters change.
func BuildView(records []*Record, cfg ViewConfig) (*View, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	categories := CategoriesFor(cfg.Breakdown, records)
	groups := Aggregate(records, cfg.GroupBy, cfg.Filter)

	view := &View{
		Config:     cfg,
		Categories: categories,
		Rows:       make([]*ViewRow, 0, len(groups)),
	}

	total := NewCountTuple(categories)
	for _, g := range groups {
		counts := g.Counts.Align(categories)
		if cfg.GroupBy == types.DimensionCategory {
			counts = g.Counts
		}
		view.Rows = append(view.Rows, newViewRow(g.Key, labelOf(g.Key), counts, g.Masked))

		if !g.Masked {
			for _, c := range g.Counts {
				total = total.Add(c.Category, c.Count)
			}
		}
	}
	view.Total = newViewRow("", TotalLabel, total.Align(categories), false)

	sortRows(view.Rows, cfg, categories)
	return view, nil
}

func labelOf(key string) string {
	if key == "" {
		return UnspecifiedLabel
	}
	return key
}

func newViewRow(key, label string, counts CountTuple, masked bool) *ViewRow {
	row := &ViewRow{
		Key:    key,
		Label:  label,
		Masked: masked,
		Style:  MaskStyle(masked),
		Cells:  make([]Cell, 0, len(counts)),
	}

	if masked {
		row.Percentages = MaskedPercentages()
		row.Total = MaskPlaceholder
		for _, c := range counts {
			row.Cells = append(row.Cells, Cell{
				Category: c.Category,
				Count:    MaskPlaceholder,
				Percent:  MaskPlaceholder,
			})
		}
		return row
	}

	row.Counts = counts
	row.headcount = counts.Total()
	row.Total = MaskValue(row.headcount, false)
	row.Percentages = Normalize(counts)
	for i, c := range counts {
		row.Cells = append(row.Cells, Cell{
			Category: c.Category,
			Count:    MaskValue(c.Count, false),
			Percent:  MaskPercent(row.Percentages[i].Percent, false),
		})
	}
	return row
}

// sortRows orders rows for presentation. Masked rows trail the numeric sorts
// since they carry no comparable value.
func sortRows(rows []*ViewRow, cfg ViewConfig, categories CategorySet) {
	byLabel := LabelComparer()

	switch cfg.Sort {
	case types.SortDominant:
		active := cfg.Category
		if active == "" && len(categories) > 0 {
			active = categories[0]
		}
		slices.SortStableFunc(rows, func(a, b *ViewRow) int {
			if c := compareMasked(a, b); c != 0 {
				return c
			}
			if pa, pb := a.Percentages.Get(active), b.Percentages.Get(active); pa != pb {
				return pb - pa
			}
			return byLabel(a.Label, b.Label)
		})

	case types.SortTotal:
		slices.SortStableFunc(rows, func(a, b *ViewRow) int {
			if c := compareMasked(a, b); c != 0 {
				return c
			}
			if a.headcount != b.headcount {
				return b.headcount - a.headcount
			}
			return byLabel(a.Label, b.Label)
		})

	default:
		slices.SortStableFunc(rows, func(a, b *ViewRow) int {
			return byLabel(a.Label, b.Label)
		})
	}
}

func compareMasked(a, b *ViewRow) int {
	switch {
	case a.Masked && !b.Masked:
		return 1
	case !a.Masked && b.Masked:
		return -1
	}
	return 0
}

// Reserved chart record keys. Category fields never collide with them, see ChartKey.
const (
	ChartLabelKey  = "_label"
	ChartMaskedKey = "_masked"
)

// ChartKey returns the chart record field of category. Categories starting
// with an underscore get one more, keeping the reserved keys unambiguous.
func ChartKey(category string) string {
	if strings.HasPrefix(category, "_") {
		return "_" + category
	}
	return category
}

// ChartData flattens the rows into the record shape of the chart renderer:
// a label plus one numeric field per category. Masked rows carry a single
// placeholder field.
func (v *View) ChartData() []map[string]any {
	result := make([]map[string]any, 0, len(v.Rows))
	for _, r := range v.Rows {
		m := map[string]any{ChartLabelKey: r.Label}
		if r.Masked {
			m[ChartMaskedKey] = 100
			result = append(result, m)
			continue
		}
		for _, p := range r.Percentages {
			m[ChartKey(p.Category)] = p.Percent
		}
		result = append(result, m)
	}
	return result
}

// FilterOptions lists the selectable values of every dimension
type FilterOptions map[types.Dimension][]string

// Overview holds the default view of every breakdown
type Overview struct {
	Gender *View `json:"gender"`
	Age    *View `json:"age"`
}
