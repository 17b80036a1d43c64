package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/demografi/pkg/domain/model"
	"github.com/secmon-lab/demografi/pkg/domain/types"
)

func testRecords() []*model.Record {
	return []*model.Record{
		{Department: "IT", Section: "Drift", Role: "Utvikler", Category: "female", Seniority: "0-5", Count: 3},
		{Department: "IT", Section: "Drift", Role: "Utvikler", Category: "male", Seniority: "0-5", Count: 5},
		{Department: "IT", Section: "Brukerstøtte", Role: "Konsulent", Category: "female", Seniority: "6-10", Count: 2},
		{Department: "HR", Section: "Lønn", Role: "Rådgiver", Category: "female", Education: "Master", Count: 4},
		{Department: "HR", Section: "Lønn", Role: "Rådgiver", Category: "unknown", Education: "Master", Count: 1},
	}
}

func findGroup(groups []*model.GroupRecord, key string) *model.GroupRecord {
	for _, g := range groups {
		if g.Key == key {
			return g
		}
	}
	return nil
}

func TestAggregate(t *testing.T) {
	t.Run("filter by department keeps only matching groups", func(t *testing.T) {
		groups := model.Aggregate(testRecords(), types.DimensionDepartment, model.Filter{
			types.DimensionDepartment: {"IT"},
		})
		gt.Equal(t, len(groups), 1)
		gt.Equal(t, groups[0].Key, "IT")
		gt.Equal(t, groups[0].Counts.Get("female"), 5)
		gt.Equal(t, groups[0].Counts.Get("male"), 5)
		gt.False(t, groups[0].Masked)
	})

	t.Run("empty filter returns every department", func(t *testing.T) {
		groups := model.Aggregate(testRecords(), types.DimensionDepartment, model.Filter{})
		gt.Equal(t, len(groups), 2)
		gt.V(t, findGroup(groups, "IT")).NotNil()
		gt.V(t, findGroup(groups, "HR")).NotNil()

		nilFilter := model.Aggregate(testRecords(), types.DimensionDepartment, nil)
		gt.Equal(t, len(nilFilter), 2)
	})

	t.Run("dimension with empty allowed set does not constrain", func(t *testing.T) {
		groups := model.Aggregate(testRecords(), types.DimensionDepartment, model.Filter{
			types.DimensionSection: {},
		})
		gt.Equal(t, len(groups), 2)
	})

	t.Run("and of ors across dimensions", func(t *testing.T) {
		groups := model.Aggregate(testRecords(), types.DimensionDepartment, model.Filter{
			types.DimensionDepartment: {"IT", "HR"},
			types.DimensionSection:    {"Drift", "Lønn"},
		})
		gt.Equal(t, len(groups), 2)

		it := findGroup(groups, "IT")
		gt.Equal(t, it.Counts.Get("female"), 3)
		gt.Equal(t, it.Counts.Get("male"), 5)

		hr := findGroup(groups, "HR")
		gt.Equal(t, hr.Counts.Get("female"), 4)
		gt.Equal(t, hr.Counts.Get("unknown"), 1)
	})

	t.Run("group by section within department", func(t *testing.T) {
		groups := model.Aggregate(testRecords(), types.DimensionSection, model.Filter{
			types.DimensionDepartment: {"IT"},
		})
		gt.Equal(t, len(groups), 2)
		gt.Equal(t, findGroup(groups, "Drift").Counts.Total(), 8)
		gt.Equal(t, findGroup(groups, "Brukerstøtte").Counts.Total(), 2)
	})

	t.Run("filter on seniority", func(t *testing.T) {
		groups := model.Aggregate(testRecords(), types.DimensionRole, model.Filter{
			types.DimensionSeniority: {"6-10"},
		})
		gt.Equal(t, len(groups), 1)
		gt.Equal(t, groups[0].Key, "Konsulent")
	})

	t.Run("group by category", func(t *testing.T) {
		groups := model.Aggregate(testRecords(), types.DimensionCategory, nil)
		gt.Equal(t, len(groups), 3)
		gt.Equal(t, findGroup(groups, "female").Counts.Get("female"), 9)
	})

	t.Run("masked record masks the whole group and withholds counts", func(t *testing.T) {
		records := append(testRecords(), &model.Record{
			Department: "HR", Section: "Rekruttering", Role: "Leder", Category: "male", Count: 2, Masked: true,
		})
		groups := model.Aggregate(records, types.DimensionDepartment, nil)

		hr := findGroup(groups, "HR")
		gt.True(t, hr.Masked)
		gt.Equal(t, hr.Counts.Total(), 0)

		it := findGroup(groups, "IT")
		gt.False(t, it.Masked)
		gt.Equal(t, it.Counts.Total(), 10)
	})

	t.Run("negative counts are ignored", func(t *testing.T) {
		records := []*model.Record{
			{Department: "IT", Category: "female", Count: -4},
			{Department: "IT", Category: "female", Count: 2},
		}
		groups := model.Aggregate(records, types.DimensionDepartment, nil)
		gt.Equal(t, groups[0].Counts.Get("female"), 2)
	})
}

func TestFilter(t *testing.T) {
	t.Run("validate rejects unknown dimension", func(t *testing.T) {
		gt.NoError(t, model.Filter{types.DimensionRole: {"x"}}.Validate())
		gt.Error(t, model.Filter{"salary": {"x"}}.Validate())
	})

	t.Run("IsEmpty", func(t *testing.T) {
		gt.True(t, model.Filter{}.IsEmpty())
		gt.True(t, model.Filter{types.DimensionRole: nil}.IsEmpty())
		gt.False(t, model.Filter{types.DimensionRole: {"x"}}.IsEmpty())
	})

	t.Run("Clone drops empty dimensions and detaches slices", func(t *testing.T) {
		original := model.Filter{
			types.DimensionRole:    {"a"},
			types.DimensionSection: {},
		}
		cloned := original.Clone()
		gt.Equal(t, len(cloned), 1)

		original[types.DimensionRole][0] = "b"
		gt.Equal(t, cloned[types.DimensionRole][0], "a")
	})
}

func TestDistinctValues(t *testing.T) {
	gt.Equal(t, model.DistinctValues(testRecords(), types.DimensionDepartment), []string{"HR", "IT"})
	gt.Equal(t, model.DistinctValues(testRecords(), types.DimensionSeniority), []string{"0-5", "6-10"})
	gt.Equal(t, model.DistinctValues(testRecords(), types.DimensionEducation), []string{"Master"})
}
