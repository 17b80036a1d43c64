package model

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/demografi/pkg/domain/types"
)

// Filter restricts records to allowed values per dimension. A record passes
// when, for every dimension with a non-empty allowed set, its value is in
// that set. Dimensions without values do not constrain.
type Filter map[types.Dimension][]string

// Validate checks that every filtered dimension is known
func (f Filter) Validate() error {
	for d := range f {
		if !d.IsValid() {
			return goerr.New("unknown filter dimension", goerr.V("dimension", d))
		}
	}
	return nil
}

// Allows reports whether r passes the filter
func (f Filter) Allows(r *Record) bool {
	for d, allowed := range f {
		if len(allowed) == 0 {
			continue
		}
		if !slices.Contains(allowed, r.Value(d)) {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the filter constrains nothing
func (f Filter) IsEmpty() bool {
	for _, allowed := range f {
		if len(allowed) > 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy without empty dimensions
func (f Filter) Clone() Filter {
	result := make(Filter, len(f))
	for d, allowed := range f {
		if len(allowed) == 0 {
			continue
		}
		result[d] = append([]string(nil), allowed...)
	}
	return result
}

// GroupRecord is one aggregated row: a group key with summed counts
type GroupRecord struct {
	Key    string     `json:"key"`
	Counts CountTuple `json:"counts"`
	Masked bool       `json:"masked"`
}

// IsMasked implements Maskable
func (g *GroupRecord) IsMasked() bool {
	return g != nil && g.Masked
}

// Aggregate sums the counts of records passing filter by their groupBy
// value. A group containing any masked record is masked as a whole and its
// counts are withheld. Output order is unspecified.
func Aggregate(records []*Record, groupBy types.Dimension, filter Filter) []*GroupRecord {
	groups := make(map[string]*GroupRecord)
	var result []*GroupRecord

	for _, r := range records {
		if r == nil || !filter.Allows(r) {
			continue
		}

		key := r.Value(groupBy)
		g, ok := groups[key]
		if !ok {
			g = &GroupRecord{Key: key}
			groups[key] = g
			result = append(result, g)
		}

		if r.Masked {
			g.Masked = true
		}
		if r.Category != "" {
			g.Counts = g.Counts.Add(r.Category, max(r.Count, 0))
		}
	}

	for _, g := range result {
		if g.Masked {
			for i := range g.Counts {
				g.Counts[i].Count = 0
			}
		}
	}

	return result
}

// DistinctValues returns the non-empty values of dimension d in records,
// ordered like category labels
func DistinctValues(records []*Record, d types.Dimension) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, r := range records {
		v := r.Value(d)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}

	slices.SortFunc(values, LabelComparer())
	return values
}
