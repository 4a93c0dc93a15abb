package report

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"SalaryAnalysis/src/processor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func analysis(t *testing.T) *processor.Analysis {
	t.Helper()
	period := processor.DefaultPeriod
	n := period.Len()

	infl := make([]float64, n)
	for i := range infl {
		infl[i] = 4 + float64(i%5)
	}
	series := make(map[processor.Sector]processor.Series)
	for k, sec := range processor.Sectors {
		w := make([]float64, n)
		w[0] = 2000 * float64(k+1)
		for i := 1; i < n; i++ {
			w[i] = w[i-1] * (1.04 + 0.03*float64(k))
		}
		series[sec] = processor.NewSeries(period.From, w)
	}
	wages, err := processor.NewWageTable(processor.Sectors, series)
	require.NoError(t, err)

	a, err := processor.NewDataProcessor(wages, processor.NewSeries(period.From, infl), period, nil).Analyze(context.Background())
	require.NoError(t, err)
	return a
}

func TestFrames(t *testing.T) {
	a := analysis(t)
	tables := Frames(a)

	want := []string{YearColumn, "education", "construction", "medicine", "extraction"}
	for _, df := range []struct {
		name  string
		names []string
		rows  int
	}{
		{"wages", tables.Wages.Names(), tables.Wages.Nrow()},
		{"inflation only", tables.InflationOnly.Names(), tables.InflationOnly.Nrow()},
		{"ratio", tables.Ratio.Names(), tables.Ratio.Nrow()},
		{"real", tables.Real.Names(), tables.Real.Nrow()},
	} {
		assert.Equal(t, want, df.names, df.name)
		assert.Equal(t, 24, df.rows, df.name)
	}

	years := tables.Wages.Col(YearColumn).Float()
	assert.Equal(t, 2000.0, years[0])
	assert.Equal(t, 2023.0, years[23])

	wages, _ := a.Wages.Series(processor.Construction)
	assert.Equal(t, wages.Values(), tables.Wages.Col("construction").Float())

	ratio := tables.Ratio.Col("education").Float()
	assert.InDelta(t, 1.0, ratio[0], 1e-12)

	assert.Equal(t, []string{YearColumn, "inflation"}, tables.Inflation.Names())
}

func TestCharted_Styles(t *testing.T) {
	a := analysis(t)
	for _, tb := range Frames(a).charted(a.Period.From) {
		want := moneyStyle
		if tb.Sheet == "real_ratio" {
			want = ratioStyle
		}
		assert.Equal(t, want, tb.Style, tb.Sheet)
	}
}

func TestNarrative(t *testing.T) {
	a := analysis(t)

	lines := Narrative(a, "en")
	require.NotEmpty(t, lines)
	text := strings.Join(lines, "\n")

	assert.Contains(t, lines[0], "2000-2023")
	for _, sec := range processor.Sectors {
		assert.Contains(t, text, string(sec)+":")
	}
	// years are never digit-grouped
	assert.Contains(t, text, "2023")
	assert.NotContains(t, text, "2\u00a0023")

	// extraction grows fastest in the fixture
	assert.Contains(t, text, "Strongest real growth: extraction")
	assert.Contains(t, text, "In 2023 extraction paid")

	assert.Equal(t, len(lines), len(Narrative(a, "not a locale")))
}

func TestNarrative_Russian(t *testing.T) {
	a := analysis(t)

	lines := Narrative(a, "ru")
	require.NotEmpty(t, lines)
	text := strings.Join(lines, "\n")

	assert.Contains(t, lines[0], "Зарплаты по 4 отраслям, 2000-2023")
	assert.Contains(t, text, "Самый сильный реальный рост: extraction")
	assert.Contains(t, text, "В 2023 году extraction платила")
	assert.NotContains(t, text, "Strongest real growth")
	assert.NotContains(t, text, "2\u00a0023")

	// regional tags fall back to the base language
	assert.Equal(t, lines, Narrative(a, "ru-RU"))
}

func TestNarrative_AllFell(t *testing.T) {
	a := analysis(t)
	for i := range a.Summary.Sectors {
		a.Summary.Sectors[i].RealGrowth = 0.8
	}
	assert.Contains(t, Narrative(a, "en"), "Inflation outpaced wages in every sector.")
}

func TestWriteText(t *testing.T) {
	a := analysis(t)
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, a, Frames(a), []string{"done"}))

	out := buf.String()
	assert.Contains(t, out, "== Nominal wages ==")
	assert.Contains(t, out, "== Wages in 2000 prices ==")
	assert.Contains(t, out, "2000.00")
	assert.Contains(t, out, "1.0000")
	assert.True(t, strings.HasSuffix(out, "done\n"))
}

func TestReporter_Render(t *testing.T) {
	a := analysis(t)
	dir := t.TempDir() + "/out"

	res, err := NewReporter(dir, "salary_report", "en", nil).Render(a)
	require.NoError(t, err)
	assert.FileExists(t, res.Text)
	assert.NotEmpty(t, res.Narrative)

	f, err := excelize.OpenFile(res.Workbook)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t,
		[]string{"summary", "wages", "inflation_only", "real_ratio", "real_prices", "comparison", "inflation"},
		f.GetSheetList())

	v, err := f.GetCellValue("wages", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2000", v)
	v, _ = f.GetCellValue("wages", "B1")
	assert.Equal(t, "education", v)
	v, _ = f.GetCellValue("real_prices", "A25")
	assert.Equal(t, "2023", v)
	v, _ = f.GetCellValue("comparison", "F1")
	assert.Equal(t, "education (2000 prices)", v)
	v, _ = f.GetCellValue("summary", "A1")
	assert.Equal(t, res.Narrative[0], v)

	raw, err := f.GetCellValue("inflation", "B2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "4", raw)

	// four table charts plus one comparison chart per sector
	zr, err := zip.OpenReader(res.Workbook)
	require.NoError(t, err)
	defer zr.Close()
	charts := 0
	for _, zf := range zr.File {
		if strings.HasPrefix(zf.Name, "xl/charts/chart") {
			charts++
		}
	}
	assert.Equal(t, 8, charts)
}

func TestReporter_RenderBadDir(t *testing.T) {
	path := t.TempDir() + "/taken"
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := NewReporter(path, "r", "en", nil).Render(analysis(t))
	assert.ErrorContains(t, err, "output dir")
}
