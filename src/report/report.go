package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"SalaryAnalysis/src/datasource/file"
	"SalaryAnalysis/src/processor"

	"go.uber.org/zap"
)

// Reporter 把分析结果写到输出目录
type Reporter struct {
	dir    string
	name   string
	locale string
	logger *zap.Logger
}

// Result 一次渲染生成的文件
type Result struct {
	Workbook  string
	Text      string
	Narrative []string
}

func NewReporter(dir, name, locale string, logger *zap.Logger) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{dir: dir, name: name, locale: locale, logger: logger}
}

// Render writes <name>.xlsx and <name>.txt into the output directory.
// The text file is written only after the workbook succeeded.
func (r *Reporter) Render(a *processor.Analysis) (*Result, error) {
	start := time.Now()
	if err := file.EnsureDir(r.dir); err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	tables := Frames(a)
	lines := Narrative(a, r.locale)
	res := &Result{
		Workbook:  filepath.Join(r.dir, r.name+".xlsx"),
		Text:      filepath.Join(r.dir, r.name+".txt"),
		Narrative: lines,
	}

	if err := WriteWorkbook(res.Workbook, a, tables, lines); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := WriteText(&buf, a, tables, lines); err != nil {
		return nil, err
	}
	if err := os.WriteFile(res.Text, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("write %s: %w", res.Text, err)
	}

	r.logger.Info("report written",
		zap.String("workbook", res.Workbook),
		zap.String("text", res.Text),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}
