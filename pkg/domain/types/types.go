package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// Breakdown identifies which demographic distribution a dataset describes
type Breakdown string

const (
	BreakdownGender Breakdown = "gender"
	BreakdownAge    Breakdown = "age"
)

// AllBreakdowns lists every supported breakdown in display order
var AllBreakdowns = []Breakdown{BreakdownGender, BreakdownAge}

// String returns the string representation
func (b Breakdown) String() string {
	return string(b)
}

// IsValid checks if the breakdown is supported
func (b Breakdown) IsValid() bool {
	switch b {
	case BreakdownGender, BreakdownAge:
		return true
	default:
		return false
	}
}

// Validate returns an error if the breakdown is not supported
func (b Breakdown) Validate() error {
	if !b.IsValid() {
		return goerr.New("invalid breakdown", goerr.V("breakdown", b))
	}
	return nil
}

// Dimension is a record attribute that can be filtered or grouped on
type Dimension string

const (
	DimensionDepartment Dimension = "department"
	DimensionSection    Dimension = "section"
	DimensionRole       Dimension = "role"
	DimensionCategory   Dimension = "category"
	DimensionSeniority  Dimension = "seniority"
	DimensionEducation  Dimension = "education"
)

// AllDimensions lists every dimension in filter display order
var AllDimensions = []Dimension{
	DimensionDepartment,
	DimensionSection,
	DimensionRole,
	DimensionCategory,
	DimensionSeniority,
	DimensionEducation,
}

// String returns the string representation
func (d Dimension) String() string {
	return string(d)
}

// IsValid checks if the dimension is known
func (d Dimension) IsValid() bool {
	for _, v := range AllDimensions {
		if v == d {
			return true
		}
	}
	return false
}

// IsGroupable reports whether views can be grouped by the dimension
func (d Dimension) IsGroupable() bool {
	switch d {
	case DimensionDepartment, DimensionSection, DimensionRole, DimensionCategory:
		return true
	default:
		return false
	}
}

// SortOrder selects how view rows are ordered
type SortOrder string

const (
	// SortAlpha orders rows by collated group label
	SortAlpha SortOrder = "alpha"
	// SortDominant orders rows by the active category's share, largest first
	SortDominant SortOrder = "dominant"
	// SortTotal orders rows by headcount, largest first
	SortTotal SortOrder = "total"
)

// String returns the string representation
func (s SortOrder) String() string {
	return string(s)
}

// IsValid checks if the sort order is known
func (s SortOrder) IsValid() bool {
	switch s {
	case SortAlpha, SortDominant, SortTotal:
		return true
	default:
		return false
	}
}

// FetchID correlates log lines of one upstream fetch including its retries
type FetchID string

// String returns the string representation
func (id FetchID) String() string {
	return string(id)
}

// NewFetchID creates a new FetchID
func NewFetchID() FetchID {
	return FetchID(uuid.New().String())
}
