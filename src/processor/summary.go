package processor

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SectorSummary 单个行业的汇总指标
type SectorSummary struct {
	Sector Sector
	From   Year
	To     Year

	NominalStart    float64
	NominalEnd      float64
	NominalGrowth   float64 // NominalEnd / NominalStart
	InflationGrowth float64 // inflation-only wage multiple over the period
	RealGrowth      float64 // ratio in the last year
	RealEnd         float64 // last-year wage in base-year prices

	MeanRealChange float64 // mean year-over-year real change, percent
	WorstYear      Year    // year with the deepest real drop
	WorstChange    float64
	BestYear       Year
	BestChange     float64
	PeakYear       Year // year of the highest real wage
}

// Summary 全部行业的汇总
type Summary struct {
	Sectors []SectorSummary

	HighestNominal Sector // highest nominal wage in the last year
	LowestNominal  Sector
	NominalGap     float64 // highest / lowest nominal wage in the last year
}

// Summarize derives the headline figures the report comments on.
func Summarize(wages WageTable, adjusted []Adjusted) Summary {
	var sum Summary
	var hi, lo float64
	for _, adj := range adjusted {
		w, ok := wages.Series(adj.Sector)
		if !ok || w.Len() == 0 {
			continue
		}
		s := summarizeSector(adj, w)
		first := len(sum.Sectors) == 0
		sum.Sectors = append(sum.Sectors, s)

		if first || s.NominalEnd > hi {
			hi = s.NominalEnd
			sum.HighestNominal = s.Sector
		}
		if first || s.NominalEnd < lo {
			lo = s.NominalEnd
			sum.LowestNominal = s.Sector
		}
	}
	if lo != 0 {
		sum.NominalGap = hi / lo
	}
	return sum
}

func summarizeSector(adj Adjusted, wages Series) SectorSummary {
	from, to := wages.Start(), wages.End()
	s := SectorSummary{Sector: adj.Sector, From: from, To: to}

	s.NominalStart, _ = wages.At(from)
	s.NominalEnd, _ = wages.At(to)
	if s.NominalStart != 0 {
		s.NominalGrowth = s.NominalEnd / s.NominalStart
	}
	if first, _ := adj.InflationOnly.At(from); first != 0 {
		last, _ := adj.InflationOnly.At(to)
		s.InflationGrowth = last / first
	}
	s.RealGrowth, _ = adj.Ratio.At(to)
	s.RealEnd, _ = adj.Real.At(to)

	realWage := adj.Real.Values()
	s.PeakYear = from + Year(floats.MaxIdx(realWage))

	changes := yearOverYear(realWage)
	if len(changes) == 0 {
		s.WorstYear, s.BestYear = from, from
		return s
	}
	s.MeanRealChange = stat.Mean(changes, nil)
	worst := floats.MinIdx(changes)
	best := floats.MaxIdx(changes)
	// changes[i] is the move from year i to year i+1
	s.WorstYear, s.WorstChange = from+Year(worst+1), changes[worst]
	s.BestYear, s.BestChange = from+Year(best+1), changes[best]
	return s
}

// yearOverYear returns percent changes between consecutive values.
func yearOverYear(v []float64) []float64 {
	if len(v) < 2 {
		return nil
	}
	out := make([]float64, 0, len(v)-1)
	for i := 1; i < len(v); i++ {
		if v[i-1] == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, (v[i]/v[i-1]-1)*100)
	}
	return out
}

// Sector returns the summary of one sector.
func (s Summary) Sector(sector Sector) (SectorSummary, bool) {
	for _, v := range s.Sectors {
		if v.Sector == sector {
			return v, true
		}
	}
	return SectorSummary{}, false
}
