// loader.go
package processor

import (
	"errors"
	"fmt"
	"strings"

	"SalaryAnalysis/src/utils"

	"github.com/go-gota/gota/dataframe"
)

// Columns 输入表的列名映射
type Columns struct {
	Year      string
	Sectors   map[Sector]string
	Inflation string
}

var (
	errMissingColumn = errors.New("missing column")
	errDuplicateYear = errors.New("duplicate year")
	errMissingYear   = errors.New("missing year")
	errUnsorted      = errors.New("years not in ascending order")
	errOutOfPeriod   = errors.New("year outside period")
	errRowCount      = errors.New("wrong number of rows")
)

// LoadWages reads the sector columns of a wage table. Every tracked sector
// must be mapped to a column. Rows must hold exactly one year each,
// ascending, covering period without gaps.
func LoadWages(df dataframe.DataFrame, source string, cols Columns, period Period) (WageTable, error) {
	for s := range cols.Sectors {
		if !s.Valid() {
			return WageTable{}, &LoadError{File: source, Column: string(s), Err: fmt.Errorf("unknown sector %q", s)}
		}
	}
	sectors := Sectors
	for _, s := range sectors {
		if _, ok := cols.Sectors[s]; !ok {
			return WageTable{}, &LoadError{File: source, Column: string(s), Err: ErrMissingSector}
		}
	}

	required := []string{cols.Year}
	for _, s := range sectors {
		required = append(required, cols.Sectors[s])
	}
	if missing := utils.MissingColumns(df, required...); len(missing) > 0 {
		return WageTable{}, &LoadError{File: source, Column: strings.Join(missing, ", "), Err: errMissingColumn}
	}

	if _, err := readYears(df, source, cols.Year, period); err != nil {
		return WageTable{}, err
	}

	series := make(map[Sector]Series, len(sectors))
	for _, s := range sectors {
		values, err := readColumn(df, source, cols.Sectors[s])
		if err != nil {
			return WageTable{}, err
		}
		series[s] = NewSeries(period.From, values)
	}
	return NewWageTable(sectors, series)
}

// LoadInflation reads the aggregate inflation column (percent per year).
func LoadInflation(df dataframe.DataFrame, source string, cols Columns, period Period) (Series, error) {
	if missing := utils.MissingColumns(df, cols.Year, cols.Inflation); len(missing) > 0 {
		return Series{}, &LoadError{File: source, Column: strings.Join(missing, ", "), Err: errMissingColumn}
	}
	if _, err := readYears(df, source, cols.Year, period); err != nil {
		return Series{}, err
	}
	values, err := readColumn(df, source, cols.Inflation)
	if err != nil {
		return Series{}, err
	}
	return NewSeries(period.From, values), nil
}

// readYears validates the year column against period: one row per year,
// ascending, no gaps or duplicates.
func readYears(df dataframe.DataFrame, source, column string, period Period) ([]Year, error) {
	records := df.Col(column).Records()
	years := make([]Year, 0, len(records))
	seen := make(map[Year]bool, len(records))

	for i, rec := range records {
		row := i + 1
		v, err := utils.ParseYear(rec)
		if err != nil {
			return nil, &LoadError{File: source, Column: column, Row: row, Err: err}
		}
		y := Year(v)
		switch {
		case !period.Contains(y):
			return nil, &LoadError{File: source, Column: column, Row: row, Err: fmt.Errorf("%w: %d not in %s", errOutOfPeriod, y, period)}
		case seen[y]:
			return nil, &LoadError{File: source, Column: column, Row: row, Err: fmt.Errorf("%w: %d", errDuplicateYear, y)}
		}
		want := period.From + Year(len(years))
		if y < want {
			return nil, &LoadError{File: source, Column: column, Row: row, Err: fmt.Errorf("%w: %d after %d", errUnsorted, y, want-1)}
		}
		if y > want {
			return nil, &LoadError{File: source, Column: column, Row: row, Err: fmt.Errorf("%w: %d", errMissingYear, want)}
		}
		seen[y] = true
		years = append(years, y)
	}

	if len(years) != period.Len() {
		next := period.From + Year(len(years))
		return nil, &LoadError{File: source, Column: column,
			Err: fmt.Errorf("%w: %d rows for %s, first missing %d", errRowCount, len(years), period, next)}
	}
	return years, nil
}

func readColumn(df dataframe.DataFrame, source, column string) ([]float64, error) {
	records := df.Col(column).Records()
	values := make([]float64, len(records))
	for i, rec := range records {
		v, err := utils.ParseNumber(rec)
		if err != nil {
			return nil, &LoadError{File: source, Column: column, Row: i + 1, Err: err}
		}
		values[i] = v
	}
	return values, nil
}
