package report

import (
	"SalaryAnalysis/src/processor"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const YearColumn = "year"

// Tables 交给渲染层的表格，每张表为 年份 + 各行业 一列
type Tables struct {
	Wages         dataframe.DataFrame
	Inflation     dataframe.DataFrame
	InflationOnly dataframe.DataFrame
	Ratio         dataframe.DataFrame
	Real          dataframe.DataFrame
}

// cellStyle 数值列的显示格式
type cellStyle int

const (
	moneyStyle cellStyle = iota
	ratioStyle
)

// table 描述一张按行业展开的表
type table struct {
	Sheet string
	Title string
	Frame dataframe.DataFrame
	Major float64 // y axis major unit
	Style cellStyle
}

// Frames converts an analysis into year-indexed frames, one column per
// sector in table order.
func Frames(a *processor.Analysis) Tables {
	sectors := a.Wages.Sectors()

	wages := make([]processor.Series, len(sectors))
	for i, s := range sectors {
		wages[i], _ = a.Wages.Series(s)
	}
	only := make([]processor.Series, len(a.Adjusted))
	ratio := make([]processor.Series, len(a.Adjusted))
	real2000 := make([]processor.Series, len(a.Adjusted))
	for i, adj := range a.Adjusted {
		only[i] = adj.InflationOnly
		ratio[i] = adj.Ratio
		real2000[i] = adj.Real
	}

	return Tables{
		Wages:         sectorFrame(a.Period, sectors, wages),
		Inflation:     inflationFrame(a.Inflation),
		InflationOnly: sectorFrame(a.Period, sectors, only),
		Ratio:         sectorFrame(a.Period, sectors, ratio),
		Real:          sectorFrame(a.Period, sectors, real2000),
	}
}

func sectorFrame(period processor.Period, sectors []processor.Sector, data []processor.Series) dataframe.DataFrame {
	cols := make([]series.Series, 0, len(sectors)+1)
	cols = append(cols, yearSeries(period))
	for i, s := range sectors {
		cols = append(cols, series.New(data[i].Values(), series.Float, string(s)))
	}
	return dataframe.New(cols...)
}

func inflationFrame(s processor.Series) dataframe.DataFrame {
	return dataframe.New(
		yearSeries(s.Period()),
		series.New(s.Values(), series.Float, "inflation"),
	)
}

func yearSeries(period processor.Period) series.Series {
	years := make([]int, 0, period.Len())
	for y := period.From; y <= period.To; y++ {
		years = append(years, int(y))
	}
	return series.New(years, series.Int, YearColumn)
}

// charted lists the four tables the report plots, with the axis units the
// charts use.
func (t Tables) charted(base processor.Year) []table {
	return []table{
		{Sheet: "wages", Title: "Nominal wages", Frame: t.Wages, Major: 20000},
		{Sheet: "inflation_only", Title: "Wages grown by inflation only", Frame: t.InflationOnly, Major: 10000},
		{Sheet: "real_ratio", Title: "Actual to inflation-only wage ratio", Frame: t.Ratio, Major: 1, Style: ratioStyle},
		{Sheet: "real_prices", Title: "Wages in " + yearLabel(base) + " prices", Frame: t.Real, Major: 2000},
	}
}
