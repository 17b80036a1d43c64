package model

import (
	"math"
	"strconv"
	"strings"

	"github.com/secmon-lab/demografi/pkg/domain/types"
	"gopkg.in/yaml.v3"
)

// Record is one aggregated headcount cell of the statistics service
type Record struct {
	Department string `json:"department"`
	Section    string `json:"section"`
	Role       string `json:"role"`
	Category   string `json:"category"`
	Seniority  string `json:"seniority"`
	Education  string `json:"education"`
	Count      int    `json:"count"`
	Masked     bool   `json:"masked"`
}

// IsMasked implements Maskable
func (r *Record) IsMasked() bool {
	return r != nil && r.Masked
}

// Value returns the record's value for dimension d
func (r *Record) Value(d types.Dimension) string {
	switch d {
	case types.DimensionDepartment:
		return r.Department
	case types.DimensionSection:
		return r.Section
	case types.DimensionRole:
		return r.Role
	case types.DimensionCategory:
		return r.Category
	case types.DimensionSeniority:
		return r.Seniority
	case types.DimensionEducation:
		return r.Education
	default:
		return ""
	}
}

// Count is a headcount decoded leniently: null, missing, malformed and
// negative values all decode to 0 instead of failing the whole payload.
type Count int

// UnmarshalJSON implements json.Unmarshaler
func (c *Count) UnmarshalJSON(data []byte) error {
	*c = parseCount(strings.Trim(string(data), `"`))
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (c *Count) UnmarshalYAML(value *yaml.Node) error {
	*c = parseCount(value.Value)
	return nil
}

func parseCount(s string) Count {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return Count(math.Floor(f))
}

// GroupNode is the nested wire shape of the statistics service. Depth 0 is a
// department, 1 a section and 2 a role. Attributes are inherited by children.
type GroupNode struct {
	Name       string            `json:"name" yaml:"name"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Counts     map[string]Count  `json:"counts,omitempty" yaml:"counts,omitempty"`
	Masked     bool              `json:"masked,omitempty" yaml:"masked,omitempty"`
	Children   []*GroupNode      `json:"children,omitempty" yaml:"children,omitempty"`
}

// Flatten converts nested group nodes into records. Only leaves produce
// records so inner subtotals are never counted twice. A masked leaf without
// counts still yields one empty record so its flag reaches aggregation.
func Flatten(nodes []*GroupNode) []*Record {
	var records []*Record
	for _, n := range nodes {
		records = flattenNode(records, n, 0, Record{})
	}
	return records
}

func flattenNode(dst []*Record, n *GroupNode, depth int, parent Record) []*Record {
	if n == nil {
		return dst
	}

	base := parent
	switch depth {
	case 0:
		base.Department = n.Name
	case 1:
		base.Section = n.Name
	case 2:
		base.Role = n.Name
	}
	for k, v := range n.Attributes {
		switch types.Dimension(k) {
		case types.DimensionSeniority:
			base.Seniority = v
		case types.DimensionEducation:
			base.Education = v
		}
	}
	base.Masked = parent.Masked || n.Masked

	if len(n.Children) > 0 {
		for _, child := range n.Children {
			dst = flattenNode(dst, child, depth+1, base)
		}
		return dst
	}

	if len(n.Counts) == 0 {
		if base.Masked {
			r := base
			dst = append(dst, &r)
		}
		return dst
	}

	for _, c := range CountTupleFromMap(toIntMap(n.Counts)) {
		r := base
		r.Category = c.Category
		r.Count = c.Count
		dst = append(dst, &r)
	}
	return dst
}

func toIntMap(m map[string]Count) map[string]int {
	result := make(map[string]int, len(m))
	for k, v := range m {
		result[k] = int(v)
	}
	return result
}
