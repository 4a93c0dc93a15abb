package processor

import (
	"errors"
	"fmt"
)

var (
	ErrLoad          = errors.New("load error")
	ErrAlignment     = errors.New("alignment error")
	ErrNonFinite     = errors.New("non-finite value")
	ErrMissingSector = errors.New("missing sector")
)

// LoadError 输入文件格式错误: 缺列、非数字、年份缺失或重复
type LoadError struct {
	File   string
	Column string
	Row    int // 1-based data row, 0 when the problem is not tied to a row
	Err    error
}

func (e *LoadError) Error() string {
	msg := "load " + e.File
	if e.Column != "" {
		msg += fmt.Sprintf(" column %q", e.Column)
	}
	if e.Row > 0 {
		msg += fmt.Sprintf(" row %d", e.Row)
	}
	return msg + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// AlignmentError 工资序列与通胀序列的年份不一致
type AlignmentError struct {
	Want   Period
	Got    Period
	Year   Year // offending year, 0 if not tied to a single year
	Reason string
}

func (e *AlignmentError) Error() string {
	msg := "alignment"
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Year != 0 {
		msg += fmt.Sprintf(" (year %d)", e.Year)
	}
	if e.Want != (Period{}) || e.Got != (Period{}) {
		msg += fmt.Sprintf(" (want %s, got %s)", e.Want, e.Got)
	}
	return msg
}

func (e *AlignmentError) Is(target error) bool { return target == ErrAlignment }

// NonFiniteError 计算结果为 NaN/Inf 或除数为零
type NonFiniteError struct {
	Sector Sector
	Series string
	Year   Year
	Value  float64
}

func (e *NonFiniteError) Error() string {
	where := e.Series
	if e.Sector != "" {
		where = string(e.Sector) + " " + where
	}
	return fmt.Sprintf("%s: %s at year %d (%v)", ErrNonFinite, where, e.Year, e.Value)
}

func (e *NonFiniteError) Is(target error) bool { return target == ErrNonFinite }
