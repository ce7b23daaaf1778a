package report

import (
	"fmt"
	"io"
	"strings"
)

const maxBarWidth = 50

// PlotCurves draws the system curves as horizontal bars, one row per k.
// Bars are scaled to [0, 1]; values above 1 are clipped.
func PlotCurves(r *Report, w io.Writer) {
	sm := r.SystemMetrics
	curves := []struct {
		name   string
		values []float64
	}{
		{"Precision", sm.Precision},
		{"Recall", sm.Recall},
		{"MAP", sm.MAP},
		{"F1", sm.F1},
	}

	for _, c := range curves {
		fmt.Fprintf(w, "\n%s@k:\n", c.name)
		fmt.Fprintln(w, "   k | Score  | Bar Chart")
		fmt.Fprintln(w, "-----|--------|"+strings.Repeat("-", maxBarWidth))

		for i, v := range c.values {
			fmt.Fprintf(w, "%4d | %.4f | %s\n", i+1, v, bar(v))
		}
	}
}

func bar(v float64) string {
	width := int(min(max(v, 0), 1) * maxBarWidth)
	if width == 0 {
		return "▏"
	}
	return strings.Repeat("█", width)
}
