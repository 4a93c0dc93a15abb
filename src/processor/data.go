// data.go
package processor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Analysis 一次完整计算的结果，计算后不再修改
type Analysis struct {
	Period    Period
	Wages     WageTable
	Inflation Series
	Adjusted  []Adjusted // same order as Wages.Sectors()
	Summary   Summary
}

// Sector returns the derived series of one sector.
func (a *Analysis) Sector(sector Sector) (Adjusted, bool) {
	for _, adj := range a.Adjusted {
		if adj.Sector == sector {
			return adj, true
		}
	}
	return Adjusted{}, false
}

type DataProcessor struct {
	wages     WageTable
	inflation Series
	period    Period
	logger    *zap.Logger
}

func NewDataProcessor(wages WageTable, inflation Series, period Period, logger *zap.Logger) *DataProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DataProcessor{
		wages:     wages,
		inflation: inflation,
		period:    period,
		logger:    logger,
	}
}

// CheckData 检查输入是否完整覆盖分析区间且年份对齐
func (p *DataProcessor) CheckData() error {
	if p.period.Len() == 0 {
		return &AlignmentError{Want: p.period, Reason: "empty period"}
	}
	if got := p.wages.Period(); got != p.period {
		return &AlignmentError{Want: p.period, Got: got, Reason: "wage series do not cover the period"}
	}
	if got := p.inflation.Period(); got != p.period {
		return &AlignmentError{Want: p.period, Got: got, Reason: "inflation series does not cover the period"}
	}
	return nil
}

// Analyze runs the adjustment for every sector and summarises the result.
func (p *DataProcessor) Analyze(ctx context.Context) (*Analysis, error) {
	start := time.Now()
	if err := p.CheckData(); err != nil {
		return nil, fmt.Errorf("check data: %w", err)
	}

	adjusted, err := AdjustAll(ctx, p.wages, p.inflation)
	if err != nil {
		return nil, fmt.Errorf("adjust: %w", err)
	}

	a := &Analysis{
		Period:    p.period,
		Wages:     p.wages,
		Inflation: p.inflation,
		Adjusted:  adjusted,
		Summary:   Summarize(p.wages, adjusted),
	}

	for _, s := range a.Summary.Sectors {
		p.logger.Debug("sector adjusted",
			zap.String("sector", string(s.Sector)),
			zap.Float64("nominal_growth", s.NominalGrowth),
			zap.Float64("real_growth", s.RealGrowth),
			zap.Float64("real_end", s.RealEnd))
	}
	p.logger.Info("analysis complete",
		zap.Stringer("period", p.period),
		zap.Int("sectors", len(adjusted)),
		zap.Duration("elapsed", time.Since(start)))
	return a, nil
}
