package model

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Fixed gender categories
const (
	CategoryFemale  = "female"
	CategoryMale    = "male"
	CategoryUnknown = "unknown"
)

// CategoryMasked is the single placeholder segment of a masked row
const CategoryMasked = "masked"

// GenderCategories is the fixed category set of the gender breakdown
var GenderCategories = CategorySet{CategoryFemale, CategoryMale, CategoryUnknown}

// unknownMarkers are matched case-insensitively as substrings
var unknownMarkers = []string{"unknown", "ukjent"}

var numberPattern = regexp.MustCompile(`\d+`)

// CategorySet is an ordered, duplicate free sequence of category labels.
// Labels with a numeric part come first and ascend numerically, plain labels
// follow in collation order, and labels denoting "unknown" are last.
type CategorySet []string

// NewCategorySet creates a sorted set from labels. Empty labels are dropped.
func NewCategorySet(labels ...string) CategorySet {
	seen := make(map[string]struct{}, len(labels))
	set := make(CategorySet, 0, len(labels))
	for _, l := range labels {
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		set = append(set, l)
	}

	col := newCollator()
	slices.SortStableFunc(set, func(a, b string) int {
		return compareCategories(col, a, b)
	})
	return set
}

// Contains reports whether the set holds label
func (s CategorySet) Contains(label string) bool {
	return slices.Contains(s, label)
}

// Strings returns the labels as a plain slice
func (s CategorySet) Strings() []string {
	return append([]string(nil), s...)
}

// ExtractCategories returns the union of category keys of all tuples as a CategorySet
func ExtractCategories(tuples ...CountTuple) CategorySet {
	var labels []string
	for _, t := range tuples {
		labels = append(labels, t.Categories()...)
	}
	return NewCategorySet(labels...)
}

// ExtractRecordCategories returns the categories appearing in records
func ExtractRecordCategories(records []*Record) CategorySet {
	labels := make([]string, 0, len(records))
	for _, r := range records {
		labels = append(labels, r.Category)
	}
	return NewCategorySet(labels...)
}

// IsUnknownCategory reports whether label denotes an unknown bucket
func IsUnknownCategory(label string) bool {
	lower := strings.ToLower(label)
	for _, m := range unknownMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// collationTag selects Norwegian ordering with æ, ø and å after z. The
// generic "no" and "nb" tags carry no tailoring in x/text, "nn" does.
var collationTag = language.MustParse("nn")

func newCollator() *collate.Collator {
	return collate.New(collationTag, collate.Numeric)
}

// compareCategories is a total order on labels: known before unknown, then
// number-bearing before plain, then by first number, collation and bytes
func compareCategories(col *collate.Collator, a, b string) int {
	if c := compareFlag(IsUnknownCategory(a), IsUnknownCategory(b)); c != 0 {
		return c
	}

	na, okA := leadingNumber(a)
	nb, okB := leadingNumber(b)
	if c := compareFlag(!okA, !okB); c != 0 {
		return c
	}
	if na != nb {
		if na < nb {
			return -1
		}
		return 1
	}

	if c := col.CompareString(a, b); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// compareFlag orders false before true
func compareFlag(a, b bool) int {
	switch {
	case a && !b:
		return 1
	case !a && b:
		return -1
	}
	return 0
}

// leadingNumber returns the first integer found in s
func leadingNumber(s string) (int, bool) {
	m := numberPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// LabelComparer returns a comparison function ordering labels the way
// category sets are ordered. The returned function is not safe for
// concurrent use.
func LabelComparer() func(a, b string) int {
	col := newCollator()
	return func(a, b string) int {
		return compareCategories(col, a, b)
	}
}
