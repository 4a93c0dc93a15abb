package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"SalaryAnalysis/src/processor"

	"github.com/go-gota/gota/dataframe"
)

// WriteText 把四张表和文字结论写成纯文本
func WriteText(w io.Writer, a *processor.Analysis, t Tables, lines []string) error {
	for _, tb := range t.charted(a.Period.From) {
		format := "%.2f"
		if tb.Style == ratioStyle {
			format = "%.4f"
		}
		if _, err := fmt.Fprintf(w, "== %s ==\n", tb.Title); err != nil {
			return err
		}
		if err := writeFrame(w, tb.Frame, format); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeFrame(w io.Writer, df dataframe.DataFrame, format string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	names := df.Names()
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t", name)
	}
	fmt.Fprintln(tw)

	cols := make([][]float64, len(names))
	for j, name := range names {
		cols[j] = df.Col(name).Float()
	}
	for i := 0; i < df.Nrow(); i++ {
		for j, name := range names {
			if name == YearColumn {
				fmt.Fprintf(tw, "%d\t", int(cols[j][i]))
				continue
			}
			fmt.Fprintf(tw, format+"\t", cols[j][i])
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
