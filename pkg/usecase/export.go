package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/demografi/pkg/domain/model"
	"github.com/xuri/excelize/v2"
)

// Export builds the view of cfg and writes it to w as an xlsx workbook
func (uc *Dashboard) Export(ctx context.Context, cfg model.ViewConfig, w io.Writer) error {
	view, err := uc.BuildView(ctx, cfg)
	if err != nil {
		return err
	}

	if err := WriteWorkbook(view, w); err != nil {
		return err
	}
	recordExport(view.Config)

	ctxlog.From(ctx).Info("View exported",
		slog.String("breakdown", view.Config.Breakdown.String()),
		slog.String("group_by", string(view.Config.GroupBy)),
		slog.Int("rows", len(view.Rows)),
	)
	return nil
}

// SheetName returns the worksheet name used for view
func SheetName(view *model.View) string {
	return fmt.Sprintf("%s by %s", view.Config.Breakdown, view.Config.GroupBy)
}

// WriteWorkbook renders view as a single worksheet: a header row, one row
// per group and the total row last. Masked groups are written as
// placeholders only.
func WriteWorkbook(view *model.View, w io.Writer) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := SheetName(view)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return goerr.Wrap(err, "failed to name worksheet", goerr.V("sheet", sheet))
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E0E0E0"}},
	})
	if err != nil {
		return goerr.Wrap(err, "failed to create header style")
	}
	maskedStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "#999999", Italic: true},
	})
	if err != nil {
		return goerr.Wrap(err, "failed to create masked style")
	}

	header := []any{string(view.Config.GroupBy)}
	for _, c := range view.Categories {
		header = append(header, c, c+" %")
	}
	header = append(header, model.TotalLabel)
	if err := writeRow(f, sheet, 1, header); err != nil {
		return err
	}
	if err := styleRow(f, sheet, 1, len(header), headerStyle); err != nil {
		return err
	}

	rows := append(append([]*model.ViewRow{}, view.Rows...), view.Total)
	for i, r := range rows {
		line := i + 2
		if err := writeRow(f, sheet, line, workbookRow(r, view.Categories)); err != nil {
			return err
		}
		if r.Masked {
			if err := styleRow(f, sheet, line, len(header), maskedStyle); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 32); err != nil {
		return goerr.Wrap(err, "failed to set column width")
	}

	if err := f.Write(w); err != nil {
		return goerr.Wrap(err, "failed to write workbook")
	}
	return nil
}

func workbookRow(r *model.ViewRow, categories model.CategorySet) []any {
	line := []any{r.Label}
	for _, c := range categories {
		if r.Masked {
			line = append(line, model.MaskPlaceholder, model.MaskPlaceholder)
			continue
		}
		line = append(line, r.Counts.Get(c), r.Percentages.Get(c))
	}
	if r.Masked {
		return append(line, model.MaskPlaceholder)
	}
	return append(line, r.Counts.Total())
}

func writeRow(f *excelize.File, sheet string, line int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return goerr.Wrap(err, "invalid cell coordinates", goerr.V("line", line))
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return goerr.Wrap(err, "failed to write row", goerr.V("line", line))
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, line, width, style int) error {
	from, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return goerr.Wrap(err, "invalid cell coordinates", goerr.V("line", line))
	}
	to, err := excelize.CoordinatesToCellName(width, line)
	if err != nil {
		return goerr.Wrap(err, "invalid cell coordinates", goerr.V("line", line))
	}
	if err := f.SetCellStyle(sheet, from, to, style); err != nil {
		return goerr.Wrap(err, "failed to style row", goerr.V("line", line))
	}
	return nil
}
