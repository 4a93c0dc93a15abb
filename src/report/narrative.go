package report

import (
	"strconv"
	"strings"

	"SalaryAnalysis/src/processor"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// 结论语句，英文原文即为查找键
const (
	msgHeader  = "Wages of %d sectors, %s, in %s prices."
	msgSector  = "%s: nominal wage %.0f -> %.0f (x%.2f), prices x%.2f, real wage %.0f in %s prices (x%.2f)."
	msgAllRose = "Real wages outgrew inflation in every sector."
	msgAllFell = "Inflation outpaced wages in every sector."
	msgMixed   = "Real wages grew in %s and fell in %s."
	msgDeepest = "Deepest real decline: %s in %s (%.1f%%)."
	msgStrong  = "Strongest real growth: %s, peak in %s, mean %.1f%% a year."
	msgGap     = "In %s %s paid x%.2f of %s."
)

var narrativeCatalog = newNarrativeCatalog()

func newNarrativeCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	ru := map[string]string{
		msgHeader:  "Зарплаты по %d отраслям, %s, в ценах %s года.",
		msgSector:  "%s: номинальная зарплата %.0f -> %.0f (x%.2f), цены x%.2f, реальная зарплата %.0f в ценах %s года (x%.2f).",
		msgAllRose: "Реальные зарплаты обогнали инфляцию во всех отраслях.",
		msgAllFell: "Инфляция обогнала рост зарплат во всех отраслях.",
		msgMixed:   "Реальные зарплаты выросли: %s; снизились: %s.",
		msgDeepest: "Самое глубокое реальное падение: %s в %s году (%.1f%%).",
		msgStrong:  "Самый сильный реальный рост: %s, пик в %s году, в среднем %.1f%% в год.",
		msgGap:     "В %s году %s платила x%.2f от %s.",
	}
	for key, msg := range ru {
		if err := b.SetString(language.Russian, key, msg); err != nil {
			panic(err)
		}
	}
	return b
}

func yearLabel(y processor.Year) string { return strconv.Itoa(int(y)) }

// Narrative 根据汇总生成文字结论，语句和数字按 locale 输出(俄语或英语)
// years go through yearLabel so the printer does not group their digits
func Narrative(a *processor.Analysis, locale string) []string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag, message.Catalog(narrativeCatalog))
	sum := a.Summary
	base := a.Period.From

	var lines []string
	lines = append(lines, p.Sprintf(msgHeader, len(sum.Sectors), a.Period, yearLabel(base)))

	var fell, rose []string
	for _, s := range sum.Sectors {
		lines = append(lines, p.Sprintf(msgSector,
			s.Sector, s.NominalStart, s.NominalEnd, s.NominalGrowth, s.InflationGrowth, s.RealEnd, yearLabel(base), s.RealGrowth,
		))
		if s.RealGrowth < 1 {
			fell = append(fell, string(s.Sector))
		} else {
			rose = append(rose, string(s.Sector))
		}
	}

	switch {
	case len(fell) == 0 && len(rose) > 0:
		lines = append(lines, p.Sprintf(msgAllRose))
	case len(rose) == 0 && len(fell) > 0:
		lines = append(lines, p.Sprintf(msgAllFell))
	case len(fell) > 0:
		lines = append(lines, p.Sprintf(msgMixed, strings.Join(rose, ", "), strings.Join(fell, ", ")))
	}

	if worst, ok := deepestDrop(sum); ok && worst.WorstChange < 0 {
		lines = append(lines, p.Sprintf(msgDeepest, worst.Sector, yearLabel(worst.WorstYear), worst.WorstChange))
	}
	if best, ok := strongest(sum); ok {
		lines = append(lines, p.Sprintf(msgStrong, best.Sector, yearLabel(best.PeakYear), best.MeanRealChange))
	}
	if sum.NominalGap > 0 && sum.HighestNominal != sum.LowestNominal {
		lines = append(lines, p.Sprintf(msgGap, yearLabel(a.Period.To), sum.HighestNominal, sum.NominalGap, sum.LowestNominal))
	}
	return lines
}

func deepestDrop(sum processor.Summary) (processor.SectorSummary, bool) {
	var out processor.SectorSummary
	for i, s := range sum.Sectors {
		if i == 0 || s.WorstChange < out.WorstChange {
			out = s
		}
	}
	return out, len(sum.Sectors) > 0
}

func strongest(sum processor.Summary) (processor.SectorSummary, bool) {
	var out processor.SectorSummary
	for i, s := range sum.Sectors {
		if i == 0 || s.RealGrowth > out.RealGrowth {
			out = s
		}
	}
	return out, len(sum.Sectors) > 0
}
