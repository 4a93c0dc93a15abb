package report

import (
	"fmt"

	"SalaryAnalysis/src/processor"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet    = "summary"
	inflationSheet  = "inflation"
	comparisonSheet = "comparison"
	chartCell       = "H2"
)

var sectorColors = map[processor.Sector]string{
	processor.Education:    "1F4E9A",
	processor.Construction: "C00000",
	processor.Medicine:     "2E7D32",
	processor.Extraction:   "000000",
}

// WriteWorkbook 生成 xlsx 报告：每张表一个工作表并附折线图，
// 另有名义/实际对比图和文字汇总
func WriteWorkbook(path string, a *processor.Analysis, t Tables, lines []string) error {
	f := excelize.NewFile()
	defer f.Close()

	w := &workbook{f: f}
	if err := w.styles(); err != nil {
		return err
	}

	if err := w.writeSummary(a.Summary, lines); err != nil {
		return fmt.Errorf("sheet %s: %w", summarySheet, err)
	}
	for _, tb := range t.charted(a.Period.From) {
		if err := w.writeTable(tb); err != nil {
			return fmt.Errorf("sheet %s: %w", tb.Sheet, err)
		}
	}
	if err := w.writeComparison(a, t); err != nil {
		return fmt.Errorf("sheet %s: %w", comparisonSheet, err)
	}
	if err := w.writeFrame(inflationSheet, t.Inflation, w.money); err != nil {
		return fmt.Errorf("sheet %s: %w", inflationSheet, err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

type workbook struct {
	f      *excelize.File
	header int
	money  int
	ratio  int
	sheets int
}

func (w *workbook) styles() error {
	var err error
	if w.header, err = w.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", WrapText: true},
	}); err != nil {
		return err
	}
	if w.money, err = w.f.NewStyle(&excelize.Style{NumFmt: 4}); err != nil {
		return err
	}
	ratioFmt := "0.0000"
	if w.ratio, err = w.f.NewStyle(&excelize.Style{CustomNumFmt: &ratioFmt}); err != nil {
		return err
	}
	return nil
}

// sheet 返回新工作表，第一个复用默认的 Sheet1
func (w *workbook) sheet(name string) error {
	w.sheets++
	if w.sheets == 1 {
		return w.f.SetSheetName("Sheet1", name)
	}
	_, err := w.f.NewSheet(name)
	return err
}

func (w *workbook) writeFrame(sheet string, df dataframe.DataFrame, style int) error {
	if err := w.sheet(sheet); err != nil {
		return err
	}
	return w.fill(sheet, df, 1, style)
}

// fill 从第 col 列开始写入 df，首行为表头
func (w *workbook) fill(sheet string, df dataframe.DataFrame, col, style int) error {
	names := df.Names()
	for j, name := range names {
		cell, err := excelize.CoordinatesToCellName(col+j, 1)
		if err != nil {
			return err
		}
		if err := w.f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
		column := df.Col(name)
		for i := 0; i < column.Len(); i++ {
			cell, err := excelize.CoordinatesToCellName(col+j, i+2)
			if err != nil {
				return err
			}
			var v any = column.Elem(i).Float()
			if name == YearColumn {
				v, _ = column.Elem(i).Int()
			}
			if err := w.f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	first, _ := excelize.CoordinatesToCellName(col, 1)
	last, _ := excelize.CoordinatesToCellName(col+len(names)-1, 1)
	if err := w.f.SetCellStyle(sheet, first, last, w.header); err != nil {
		return err
	}
	if len(names) > 1 && df.Nrow() > 0 {
		top, _ := excelize.CoordinatesToCellName(col+1, 2)
		bottom, _ := excelize.CoordinatesToCellName(col+len(names)-1, df.Nrow()+1)
		if err := w.f.SetCellStyle(sheet, top, bottom, style); err != nil {
			return err
		}
	}
	return nil
}

func (w *workbook) writeTable(tb table) error {
	style := w.money
	if tb.Style == ratioStyle {
		style = w.ratio
	}
	if err := w.writeFrame(tb.Sheet, tb.Frame, style); err != nil {
		return err
	}

	rows := tb.Frame.Nrow()
	var plotted []excelize.ChartSeries
	for j, name := range tb.Frame.Names() {
		if name == YearColumn {
			continue
		}
		plotted = append(plotted, chartSeries(tb.Sheet, 1, j+1, rows, processor.Sector(name), false))
	}
	return w.f.AddChart(tb.Sheet, chartCell, lineChart(tb.Title, plotted, tb.Major))
}

// writeComparison 每个行业一张图，对比名义工资与基年价格工资，2x2 排列
func (w *workbook) writeComparison(a *processor.Analysis, t Tables) error {
	if err := w.sheet(comparisonSheet); err != nil {
		return err
	}
	if err := w.fill(comparisonSheet, t.Wages, 1, w.money); err != nil {
		return err
	}
	// real wages go to the right of the nominal block, without a second year column
	realCols := t.Real.Drop(YearColumn)
	offset := t.Wages.Ncol() + 1
	if err := w.fill(comparisonSheet, realCols, offset, w.money); err != nil {
		return err
	}
	for j := range realCols.Names() {
		cell, _ := excelize.CoordinatesToCellName(offset+j, 1)
		name := realCols.Names()[j]
		if err := w.f.SetCellValue(comparisonSheet, cell, name+" ("+yearLabel(a.Period.From)+" prices)"); err != nil {
			return err
		}
	}

	rows := t.Wages.Nrow()
	anchors := []string{"L2", "V2", "L27", "V27"}
	for i, sector := range a.Wages.Sectors() {
		if i >= len(anchors) {
			break
		}
		nominal := chartSeries(comparisonSheet, 1, i+2, rows, sector, false)
		real2000 := chartSeries(comparisonSheet, 1, offset+i, rows, sector, true)

		title := fmt.Sprintf("%s: nominal and real wage", sector)
		if err := w.f.AddChart(comparisonSheet, anchors[i], lineChart(title, []excelize.ChartSeries{nominal, real2000}, 20000)); err != nil {
			return err
		}
	}
	return nil
}

func (w *workbook) writeSummary(sum processor.Summary, lines []string) error {
	if err := w.sheet(summarySheet); err != nil {
		return err
	}
	for i, line := range lines {
		if err := w.f.SetCellValue(summarySheet, fmt.Sprintf("A%d", i+1), line); err != nil {
			return err
		}
	}

	start := len(lines) + 2
	header := []any{"sector", "nominal x", "inflation x", "real x", "real end", "mean real %", "worst year", "worst %", "best year", "best %", "peak year"}
	cell, _ := excelize.CoordinatesToCellName(1, start)
	if err := w.f.SetSheetRow(summarySheet, cell, &header); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), start)
	if err := w.f.SetCellStyle(summarySheet, cell, last, w.header); err != nil {
		return err
	}
	for i, s := range sum.Sectors {
		row := []any{
			string(s.Sector), s.NominalGrowth, s.InflationGrowth, s.RealGrowth, s.RealEnd,
			s.MeanRealChange, int(s.WorstYear), s.WorstChange, int(s.BestYear), s.BestChange, int(s.PeakYear),
		}
		cell, _ := excelize.CoordinatesToCellName(1, start+i+1)
		if err := w.f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	return w.f.SetColWidth(summarySheet, "A", "A", 16)
}

// chartSeries 引用 sheet 中第 col 列的数据，类别取 yearCol 列
func chartSeries(sheet string, yearCol, col, rows int, sector processor.Sector, marked bool) excelize.ChartSeries {
	colName, _ := excelize.ColumnNumberToName(col)
	yearName, _ := excelize.ColumnNumberToName(yearCol)
	s := excelize.ChartSeries{
		Name:       fmt.Sprintf("'%s'!$%s$1", sheet, colName),
		Categories: fmt.Sprintf("'%s'!$%s$2:$%s$%d", sheet, yearName, yearName, rows+1),
		Values:     fmt.Sprintf("'%s'!$%s$2:$%s$%d", sheet, colName, colName, rows+1),
		Marker:     excelize.ChartMarker{Symbol: "none"},
		Line:       excelize.ChartLine{Width: 1.5},
	}
	if c, ok := sectorColors[sector]; ok {
		s.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{c}}
	}
	if marked {
		s.Marker = excelize.ChartMarker{Symbol: "circle", Size: 4}
	}
	return s
}

func lineChart(title string, s []excelize.ChartSeries, major float64) *excelize.Chart {
	return &excelize.Chart{
		Type:   excelize.Line,
		Series: s,
		Title:  []excelize.RichTextRun{{Text: title}},
		Legend: excelize.ChartLegend{Position: "bottom"},
		XAxis: excelize.ChartAxis{
			MajorGridLines: true,
			MinorGridLines: true,
			TickLabelSkip:  5,
		},
		YAxis: excelize.ChartAxis{
			MajorGridLines: true,
			MinorGridLines: true,
			MajorUnit:      major,
		},
		Dimension: excelize.ChartDimension{Width: 640, Height: 480},
	}
}
