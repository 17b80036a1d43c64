package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/demografi/pkg/domain/model"
	"github.com/secmon-lab/demografi/pkg/domain/types"
)

func rowLabels(v *model.View) []string {
	labels := make([]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		labels = append(labels, r.Label)
	}
	return labels
}

func TestBuildView(t *testing.T) {
	t.Run("gender by department", func(t *testing.T) {
		view, err := model.BuildView(testRecords(), model.NewViewConfig(types.BreakdownGender))
		gt.NoError(t, err).Required()

		gt.Equal(t, view.Categories, model.GenderCategories)
		gt.Equal(t, rowLabels(view), []string{"HR", "IT"})

		hr := view.Rows[0]
		gt.Equal(t, percents(hr.Percentages), []int{80, 0, 20})
		gt.Equal(t, hr.Total, "5")
		gt.Equal(t, hr.Cells[0], model.Cell{Category: "female", Count: "4", Percent: "80 %"})
		gt.True(t, hr.Style.Interactive)

		it := view.Rows[1]
		gt.Equal(t, percents(it.Percentages), []int{50, 50, 0})

		gt.Equal(t, view.Total.Label, model.TotalLabel)
		gt.Equal(t, view.Total.Total, "15")
		gt.Equal(t, percents(view.Total.Percentages), []int{60, 33, 7})
	})

	t.Run("sort by dominant category", func(t *testing.T) {
		cfg := model.NewViewConfig(types.BreakdownGender)
		cfg.Sort = types.SortDominant
		cfg.Category = "male"

		view, err := model.BuildView(testRecords(), cfg)
		gt.NoError(t, err).Required()
		gt.Equal(t, rowLabels(view), []string{"IT", "HR"})
	})

	t.Run("dominant sort defaults to first category", func(t *testing.T) {
		cfg := model.NewViewConfig(types.BreakdownGender)
		cfg.Sort = types.SortDominant

		view, err := model.BuildView(testRecords(), cfg)
		gt.NoError(t, err).Required()
		gt.Equal(t, rowLabels(view), []string{"HR", "IT"})
	})

	t.Run("sort by total", func(t *testing.T) {
		cfg := model.NewViewConfig(types.BreakdownGender)
		cfg.Sort = types.SortTotal

		view, err := model.BuildView(testRecords(), cfg)
		gt.NoError(t, err).Required()
		gt.Equal(t, rowLabels(view), []string{"IT", "HR"})
	})

	t.Run("masked group is hidden and excluded from total", func(t *testing.T) {
		records := append(testRecords(), &model.Record{
			Department: "HR", Section: "Rekruttering", Category: "male", Count: 1, Masked: true,
		})
		cfg := model.NewViewConfig(types.BreakdownGender)
		cfg.Sort = types.SortTotal

		view, err := model.BuildView(records, cfg)
		gt.NoError(t, err).Required()
		gt.Equal(t, rowLabels(view), []string{"IT", "HR"})

		hr := view.Rows[1]
		gt.True(t, hr.Masked)
		gt.Equal(t, hr.Total, model.MaskPlaceholder)
		gt.Equal(t, hr.Percentages, model.MaskedPercentages())
		gt.False(t, hr.Style.Interactive)
		for _, c := range hr.Cells {
			gt.Equal(t, c.Count, model.MaskPlaceholder)
			gt.Equal(t, c.Percent, model.MaskPlaceholder)
		}

		gt.Equal(t, view.Total.Total, "10")
		gt.Equal(t, percents(view.Total.Percentages), []int{50, 50, 0})
	})

	t.Run("filter keeps categories stable", func(t *testing.T) {
		cfg := model.NewViewConfig(types.BreakdownGender)
		cfg.GroupBy = types.DimensionSection
		cfg.Filter = model.Filter{types.DimensionDepartment: {"IT"}}

		view, err := model.BuildView(testRecords(), cfg)
		gt.NoError(t, err).Required()
		gt.Equal(t, rowLabels(view), []string{"Brukerstøtte", "Drift"})
		gt.Equal(t, view.Categories, model.GenderCategories)
		gt.Equal(t, len(view.Rows[0].Cells), 3)
	})

	t.Run("age breakdown uses dynamic categories", func(t *testing.T) {
		records := []*model.Record{
			{Department: "IT", Category: "Ukjent alder", Count: 1},
			{Department: "IT", Category: "30-39", Count: 2},
			{Department: "HR", Category: "20-29", Count: 3},
		}
		view, err := model.BuildView(records, model.NewViewConfig(types.BreakdownAge))
		gt.NoError(t, err).Required()
		gt.Equal(t, view.Categories, model.CategorySet{"20-29", "30-39", "Ukjent alder"})
		gt.Equal(t, percents(view.Rows[1].Percentages), []int{0, 67, 33})
	})

	t.Run("empty group key is labelled", func(t *testing.T) {
		records := []*model.Record{{Department: "HR", Category: "female", Count: 2}}
		cfg := model.NewViewConfig(types.BreakdownGender)
		cfg.GroupBy = types.DimensionSection

		view, err := model.BuildView(records, cfg)
		gt.NoError(t, err).Required()
		gt.Equal(t, view.Rows[0].Key, "")
		gt.Equal(t, view.Rows[0].Label, model.UnspecifiedLabel)
	})

	t.Run("no records gives empty total", func(t *testing.T) {
		view, err := model.BuildView(nil, model.NewViewConfig(types.BreakdownGender))
		gt.NoError(t, err).Required()
		gt.Equal(t, len(view.Rows), 0)
		gt.True(t, view.Total.Percentages.IsEmpty())
	})

	t.Run("invalid configuration", func(t *testing.T) {
		testCases := []model.ViewConfig{
			{Breakdown: "income"},
			{Breakdown: types.BreakdownGender, GroupBy: types.DimensionSeniority},
			{Breakdown: types.BreakdownGender, Sort: "random"},
			{Breakdown: types.BreakdownGender, Filter: model.Filter{"salary": {"1"}}},
		}
		for _, cfg := range testCases {
			_, err := model.BuildView(testRecords(), cfg)
			gt.Error(t, err)
			gt.True(t, errors.Is(err, model.ErrInvalidViewConfig))
		}
	})
}

func TestViewChartData(t *testing.T) {
	records := append(testRecords(), &model.Record{Department: "Ledelse", Masked: true})
	view, err := model.BuildView(records, model.NewViewConfig(types.BreakdownGender))
	gt.NoError(t, err).Required()

	data := view.ChartData()
	gt.Equal(t, len(data), 3)
	gt.Equal(t, data[1], map[string]any{model.ChartLabelKey: "IT", "female": 50, "male": 50, "unknown": 0})
	gt.Equal(t, data[2], map[string]any{model.ChartLabelKey: "Ledelse", model.ChartMaskedKey: 100})
}

func TestViewChartDataCategoryNamesCannotShadowReservedKeys(t *testing.T) {
	records := []*model.Record{
		{Department: "IT", Category: "masked", Count: 3},
		{Department: "IT", Category: "label", Count: 1},
		{Department: "IT", Category: "_masked", Count: 0},
	}
	view, err := model.BuildView(records, model.NewViewConfig(types.BreakdownAge))
	gt.NoError(t, err).Required()

	data := view.ChartData()
	gt.Equal(t, len(data), 1)
	gt.Equal(t, data[0], map[string]any{
		model.ChartLabelKey: "IT",
		"masked":            75,
		"label":             25,
		"__masked":          0,
	})
	gt.Equal(t, model.ChartKey("_label"), "__label")
	gt.Equal(t, model.ChartKey("20-29"), "20-29")
}

func TestViewConfigWithDefaults(t *testing.T) {
	cfg := model.ViewConfig{Breakdown: types.BreakdownAge}.WithDefaults()
	gt.Equal(t, cfg.GroupBy, types.DimensionDepartment)
	gt.Equal(t, cfg.Sort, types.SortAlpha)
	gt.NoError(t, cfg.Validate())
}
