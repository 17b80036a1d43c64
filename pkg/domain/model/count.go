package model

import (
	"math"
	"math/big"
	"sort"
)

// CategoryCount is a headcount for one category
type CategoryCount struct {
	Category string `json:"category" yaml:"category"`
	Count    int    `json:"count" yaml:"count"`
}

// CountTuple is an ordered mapping from category label to headcount.
// Category order is significant: it is the tie-break order of Normalize.
type CountTuple []CategoryCount

// NewCountTuple creates a tuple holding every category of set with a zero count
func NewCountTuple(set CategorySet) CountTuple {
	tuple := make(CountTuple, 0, len(set))
	for _, c := range set {
		tuple = append(tuple, CategoryCount{Category: c})
	}
	return tuple
}

// CountTupleFromMap creates a tuple from an unordered map, ordered by CategorySet rules
func CountTupleFromMap(m map[string]int) CountTuple {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	set := NewCategorySet(keys...)

	tuple := make(CountTuple, 0, len(set))
	for _, c := range set {
		tuple = append(tuple, CategoryCount{Category: c, Count: m[c]})
	}
	return tuple
}

// Get returns the count of category. Absent categories count as 0.
func (t CountTuple) Get(category string) int {
	for _, c := range t {
		if c.Category == category {
			return c.Count
		}
	}
	return 0
}

// Add returns a tuple with n added to category, appending the category if absent.
// Sums saturate at math.MaxInt.
func (t CountTuple) Add(category string, n int) CountTuple {
	for i := range t {
		if t[i].Category == category {
			t[i].Count = saturatingAdd(t[i].Count, n)
			return t
		}
	}
	return append(t, CategoryCount{Category: category, Count: n})
}

// Total returns the sum of all non-negative counts, saturating at math.MaxInt
func (t CountTuple) Total() int {
	total := 0
	for _, c := range t {
		if c.Count > 0 {
			total = saturatingAdd(total, c.Count)
		}
	}
	return total
}

func saturatingAdd(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}

// Categories returns the category labels in tuple order
func (t CountTuple) Categories() []string {
	result := make([]string, 0, len(t))
	for _, c := range t {
		result = append(result, c.Category)
	}
	return result
}

// Align returns a copy of the tuple holding exactly the categories of set, in set order
func (t CountTuple) Align(set CategorySet) CountTuple {
	result := make(CountTuple, 0, len(set))
	for _, c := range set {
		result = append(result, CategoryCount{Category: c, Count: t.Get(c)})
	}
	return result
}

// CategoryPercent is an integer percentage for one category
type CategoryPercent struct {
	Category string `json:"category"`
	Percent  int    `json:"percent"`
}

// PercentageTuple holds integer percentages in the order of the CountTuple it was computed from
type PercentageTuple []CategoryPercent

// Get returns the percentage of category. Absent categories are 0.
func (p PercentageTuple) Get(category string) int {
	for _, c := range p {
		if c.Category == category {
			return c.Percent
		}
	}
	return 0
}

// Categories returns the category labels in tuple order
func (p PercentageTuple) Categories() []string {
	result := make([]string, 0, len(p))
	for _, c := range p {
		result = append(result, c.Category)
	}
	return result
}

// Sum returns the sum of all percentages. It is 100, or 0 when there was no data.
func (p PercentageTuple) Sum() int {
	sum := 0
	for _, c := range p {
		sum += c.Percent
	}
	return sum
}

// IsEmpty reports whether the tuple was computed from a zero total
func (p PercentageTuple) IsEmpty() bool {
	return p.Sum() == 0
}

// Normalize converts counts into integer percentages using the largest
// remainder method. The result sums to exactly 100 when the total is positive
// and is all zeros when the total is zero. Negative counts are treated as 0.
// Leftover units go to the largest fractional parts; equal fractions are
// resolved in tuple order. Arithmetic is exact for any count magnitude.
func Normalize(counts CountTuple) PercentageTuple {
	result := make(PercentageTuple, len(counts))
	for i, c := range counts {
		result[i].Category = c.Category
	}

	total := new(big.Int)
	for _, c := range counts {
		total.Add(total, big.NewInt(int64(max(c.Count, 0))))
	}
	if total.Sign() == 0 {
		return result
	}

	// fractional parts are kept as numerators over total to compare exactly
	hundred := big.NewInt(100)
	remainders := make([]*big.Int, len(counts))
	assigned := 0
	for i, c := range counts {
		n := new(big.Int).Mul(big.NewInt(int64(max(c.Count, 0))), hundred)
		q, r := new(big.Int).QuoRem(n, total, new(big.Int))
		result[i].Percent = int(q.Int64())
		remainders[i] = r
		assigned += result[i].Percent
	}

	order := make([]int, len(counts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]].Cmp(remainders[order[b]]) > 0
	})

	for left, k := 100-assigned, 0; left > 0; left, k = left-1, k+1 {
		result[order[k%len(order)]].Percent++
	}

	return result
}
