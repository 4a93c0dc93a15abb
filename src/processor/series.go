// series.go
package processor

import "fmt"

// Year 年份，所有序列之间唯一的连接键
type Year int

const (
	BaseYear Year = 2000 // 基准年
	LastYear Year = 2023 // 最后一个统计年
)

// Period 分析区间(闭区间)
type Period struct {
	From Year
	To   Year
}

// DefaultPeriod 2000-2023, 24 years
var DefaultPeriod = Period{From: BaseYear, To: LastYear}

// Len returns the number of years in the period.
func (p Period) Len() int {
	if p.To < p.From {
		return 0
	}
	return int(p.To-p.From) + 1
}

// Contains reports whether y lies inside the period.
func (p Period) Contains(y Year) bool {
	return y >= p.From && y <= p.To
}

func (p Period) String() string {
	return fmt.Sprintf("%d-%d", p.From, p.To)
}

// Sector 行业
type Sector string

const (
	Education    Sector = "education"
	Construction Sector = "construction"
	Medicine     Sector = "medicine"
	Extraction   Sector = "extraction"
)

// Sectors is the fixed order sectors are reported in.
var Sectors = []Sector{Education, Construction, Medicine, Extraction}

// Valid reports whether s is one of the tracked sectors.
func (s Sector) Valid() bool {
	for _, v := range Sectors {
		if v == s {
			return true
		}
	}
	return false
}

// Series is an immutable sequence of values keyed by consecutive years.
// The zero value is an empty series.
type Series struct {
	start  Year
	values []float64
}

// NewSeries copies values into a series whose first point is start.
func NewSeries(start Year, values []float64) Series {
	v := make([]float64, len(values))
	copy(v, values)
	return Series{start: start, values: v}
}

// SeriesFromMap builds a series from year/value pairs. The years must form
// a gap-free range, otherwise an AlignmentError is returned.
func SeriesFromMap(points map[Year]float64) (Series, error) {
	if len(points) == 0 {
		return Series{}, nil
	}
	first := Year(0)
	for y := range points {
		if first == 0 || y < first {
			first = y
		}
	}
	values := make([]float64, len(points))
	for i := range values {
		y := first + Year(i)
		v, ok := points[y]
		if !ok {
			return Series{}, &AlignmentError{Year: y, Reason: "missing year"}
		}
		values[i] = v
	}
	return Series{start: first, values: values}, nil
}

func (s Series) Len() int    { return len(s.values) }
func (s Series) Start() Year { return s.start }

// End returns the last year of the series, or Start()-1 when empty.
func (s Series) End() Year { return s.start + Year(len(s.values)) - 1 }

// Period returns the year span covered by the series.
func (s Series) Period() Period { return Period{From: s.start, To: s.End()} }

// At returns the value recorded for year y.
func (s Series) At(y Year) (float64, bool) {
	i := int(y - s.start)
	if i < 0 || i >= len(s.values) {
		return 0, false
	}
	return s.values[i], true
}

// Has reports whether the series holds a value for y.
func (s Series) Has(y Year) bool {
	_, ok := s.At(y)
	return ok
}

// Years lists the years of the series in ascending order.
func (s Series) Years() []Year {
	years := make([]Year, len(s.values))
	for i := range years {
		years[i] = s.start + Year(i)
	}
	return years
}

// Values returns a copy of the values in year order.
func (s Series) Values() []float64 {
	v := make([]float64, len(s.values))
	copy(v, s.values)
	return v
}

// SameYears reports whether both series cover exactly the same years.
func (s Series) SameYears(o Series) bool {
	return s.start == o.start && len(s.values) == len(o.values)
}

// builder appends points in strictly increasing year order.
type builder struct {
	start  Year
	values []float64
}

func newBuilder(start Year, capacity int) *builder {
	return &builder{start: start, values: make([]float64, 0, capacity)}
}

func (b *builder) next() Year { return b.start + Year(len(b.values)) }

func (b *builder) add(y Year, v float64) {
	if y != b.next() {
		panic(fmt.Sprintf("processor: out of order year %d, want %d", y, b.next()))
	}
	b.values = append(b.values, v)
}

func (b *builder) last() float64 { return b.values[len(b.values)-1] }

func (b *builder) series() Series { return Series{start: b.start, values: b.values} }

// WageTable 各行业名义工资，加载后不可变
type WageTable struct {
	sectors []Sector
	series  map[Sector]Series
}

// NewWageTable builds a table from per-sector series. Sectors are kept in
// the given order; every series must cover the same years.
func NewWageTable(sectors []Sector, series map[Sector]Series) (WageTable, error) {
	t := WageTable{
		sectors: make([]Sector, 0, len(sectors)),
		series:  make(map[Sector]Series, len(sectors)),
	}
	var ref Series
	for i, sec := range sectors {
		s, ok := series[sec]
		if !ok {
			return WageTable{}, fmt.Errorf("sector %s: %w", sec, ErrMissingSector)
		}
		if _, dup := t.series[sec]; dup {
			return WageTable{}, fmt.Errorf("sector %s listed twice", sec)
		}
		if i == 0 {
			ref = s
		} else if !s.SameYears(ref) {
			return WageTable{}, &AlignmentError{
				Want:   ref.Period(),
				Got:    s.Period(),
				Reason: fmt.Sprintf("sector %s years differ from sector %s", sec, sectors[0]),
			}
		}
		t.sectors = append(t.sectors, sec)
		t.series[sec] = s
	}
	return t, nil
}

// Sectors returns the sectors in table order.
func (t WageTable) Sectors() []Sector {
	out := make([]Sector, len(t.sectors))
	copy(out, t.sectors)
	return out
}

// Series returns the wage series of sector.
func (t WageTable) Series(sector Sector) (Series, bool) {
	s, ok := t.series[sector]
	return s, ok
}

// Period returns the years covered by the table.
func (t WageTable) Period() Period {
	if len(t.sectors) == 0 {
		return Period{}
	}
	return t.series[t.sectors[0]].Period()
}
