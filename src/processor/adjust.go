// adjust.go
package processor

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// Adjusted 单个行业的三组派生序列
type Adjusted struct {
	Sector        Sector
	InflationOnly Series // 仅按通胀增长的工资
	Ratio         Series // 实际工资 / 仅按通胀增长的工资
	Real          Series // 基准年价格下的实际工资
}

// CheckAlignment verifies that inflation can drive the recurrence over the
// wage years: it must start at the wage base year and cover every year whose
// rate is consumed (base..last-1). The rate of the last wage year may be
// present but is not used; anything beyond it is rejected.
func CheckAlignment(wages, inflation Series) error {
	if wages.Len() == 0 {
		return &AlignmentError{Reason: "empty wage series"}
	}
	want := Period{From: wages.Start(), To: wages.End()}
	if inflation.Len() == 0 {
		if wages.Len() == 1 {
			return nil
		}
		return &AlignmentError{Want: want, Reason: "empty inflation series"}
	}
	got := inflation.Period()
	if inflation.Start() != wages.Start() {
		return &AlignmentError{Want: want, Got: got, Year: wages.Start(), Reason: "inflation does not start at the base year"}
	}
	if inflation.End() < wages.End()-1 {
		return &AlignmentError{Want: want, Got: got, Year: inflation.End() + 1, Reason: "inflation missing year"}
	}
	if inflation.End() > wages.End() {
		return &AlignmentError{Want: want, Got: got, Year: wages.End() + 1, Reason: "inflation has years beyond the wage series"}
	}
	return nil
}

// ComputeInflationOnlyWage grows the base-year wage by inflation alone.
// The base year is copied; every later year y is the previous value
// multiplied by (1 + inflation[y-1]/100).
func ComputeInflationOnlyWage(wages, inflation Series) (Series, error) {
	if err := CheckAlignment(wages, inflation); err != nil {
		return Series{}, err
	}
	b := newBuilder(wages.Start(), wages.Len())
	for _, y := range wages.Years() {
		if y == wages.Start() {
			w, _ := wages.At(y)
			b.add(y, w)
			continue
		}
		rate, _ := inflation.At(y - 1)
		v := b.last() * (1 + rate/100)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Series{}, &NonFiniteError{Series: "inflation-only wage", Year: y, Value: v}
		}
		b.add(y, v)
	}
	return b.series(), nil
}

// ComputeRealGrowthRatio divides the actual wage by the inflation-only wage
// year by year. A zero divisor or any non-finite quotient is an error.
func ComputeRealGrowthRatio(wages, inflationOnly Series) (Series, error) {
	if !wages.SameYears(inflationOnly) {
		return Series{}, &AlignmentError{Want: wages.Period(), Got: inflationOnly.Period(), Reason: "inflation-only wage years differ"}
	}
	b := newBuilder(wages.Start(), wages.Len())
	for _, y := range wages.Years() {
		w, _ := wages.At(y)
		d, _ := inflationOnly.At(y)
		if d == 0 {
			return Series{}, &NonFiniteError{Series: "real growth ratio", Year: y, Value: math.Inf(1)}
		}
		r := w / d
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return Series{}, &NonFiniteError{Series: "real growth ratio", Year: y, Value: r}
		}
		b.add(y, r)
	}
	return b.series(), nil
}

// ComputeRealWageIn2000Prices rescales the base-year wage by the ratio.
// A non-finite product is an error.
func ComputeRealWageIn2000Prices(wages, ratio Series) (Series, error) {
	if !wages.SameYears(ratio) {
		return Series{}, &AlignmentError{Want: wages.Period(), Got: ratio.Period(), Reason: "ratio years differ"}
	}
	base, _ := wages.At(wages.Start())
	b := newBuilder(wages.Start(), wages.Len())
	for _, y := range ratio.Years() {
		r, _ := ratio.At(y)
		v := base * r
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Series{}, &NonFiniteError{Series: "real wage", Year: y, Value: v}
		}
		b.add(y, v)
	}
	return b.series(), nil
}

// AdjustSector runs the three steps for one sector.
func AdjustSector(sector Sector, wages, inflation Series) (Adjusted, error) {
	only, err := ComputeInflationOnlyWage(wages, inflation)
	if err != nil {
		return Adjusted{}, tagSector(sector, err)
	}
	ratio, err := ComputeRealGrowthRatio(wages, only)
	if err != nil {
		return Adjusted{}, tagSector(sector, err)
	}
	realWage, err := ComputeRealWageIn2000Prices(wages, ratio)
	if err != nil {
		return Adjusted{}, tagSector(sector, err)
	}
	return Adjusted{Sector: sector, InflationOnly: only, Ratio: ratio, Real: realWage}, nil
}

// AdjustAll adjusts every sector of the table. Alignment is checked once up
// front; sectors then run concurrently and results keep table order.
func AdjustAll(ctx context.Context, wages WageTable, inflation Series) ([]Adjusted, error) {
	sectors := wages.Sectors()
	for _, sec := range sectors {
		s, _ := wages.Series(sec)
		if err := CheckAlignment(s, inflation); err != nil {
			return nil, fmt.Errorf("sector %s: %w", sec, err)
		}
	}

	out := make([]Adjusted, len(sectors))
	g, ctx := errgroup.WithContext(ctx)
	for i, sec := range sectors {
		i, sec := i, sec
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, _ := wages.Series(sec)
			adj, err := AdjustSector(sec, s, inflation)
			if err != nil {
				return err
			}
			out[i] = adj
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func tagSector(sector Sector, err error) error {
	if nf, ok := err.(*NonFiniteError); ok {
		nf.Sector = sector
		return nf
	}
	return fmt.Errorf("sector %s: %w", sector, err)
}
