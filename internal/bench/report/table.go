package report

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
)

func WriteTable(r *Report, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	title := "Ranking Evaluation"
	if r.Meta.Name != "" {
		title += ": " + r.Meta.Name
	}
	fmt.Fprintf(tw, "\n=== %s ===\n\n", title)
	fmt.Fprintf(tw, "max_k=%d k_range=%d scored=%d skipped=%d\n\n",
		r.Meta.MaxK, r.Meta.KRange, r.Meta.ScoredQueries, r.Meta.SkippedQueries)

	writeSystemTable(tw, r)
	writePerQueryTable(tw, r)

	tw.Flush()
}

func writeSystemTable(tw *tabwriter.Writer, r *Report) {
	fmt.Fprintf(tw, "System Metrics (mean across %d queries)\n\n", r.Meta.ScoredQueries)

	writeRow(tw, "k", "Precision", "Recall", "MAP", "F1")
	writeSeparator(tw, 5)

	for _, k := range r.SystemMetrics.UsedK {
		snap := r.SystemMetrics.MetricsAtK[k]
		writeRow(tw,
			fmt.Sprintf("%d", k),
			fmtScore(snap.Precision),
			fmtScore(snap.Recall),
			fmtScore(snap.MAP),
			fmtScore(snap.F1),
		)
	}

	fmt.Fprintln(tw)
}

func writePerQueryTable(tw *tabwriter.Writer, r *Report) {
	if len(r.PerQueryMetrics) == 0 {
		return
	}

	k := r.Meta.MaxK
	fmt.Fprintf(tw, "Per-Query Results @%d\n\n", k)

	writeRow(tw, "Query", "Candidates", "Relevant", fmt.Sprintf("P@%d", k), fmt.Sprintf("R@%d", k), fmt.Sprintf("AP@%d", k))
	writeSeparator(tw, 6)

	for _, id := range sortedQueryIDs(r.PerQueryMetrics) {
		q := r.PerQueryMetrics[id]
		writeRow(tw,
			truncate(id, 40),
			fmt.Sprintf("%d", len(q.Candidates)),
			fmt.Sprintf("%d", len(q.GroundTruth)),
			fmtScore(last(q.Precision)),
			fmtScore(last(q.Recall)),
			fmtScore(last(q.AP)),
		)
	}

	fmt.Fprintln(tw)
}

// Compare writes one row per report with the final-k system metrics side by side.
func Compare(reports []*Report, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== Run Comparison ===\n\n")
	writeRow(tw, "Run", "max_k", "Queries", "Precision", "Recall", "MAP", "F1")
	writeSeparator(tw, 7)

	for i, r := range reports {
		name := r.Meta.Name
		if name == "" {
			name = fmt.Sprintf("run-%d", i+1)
		}
		sm := r.SystemMetrics
		writeRow(tw,
			name,
			fmt.Sprintf("%d", r.Meta.MaxK),
			fmt.Sprintf("%d", r.Meta.ScoredQueries),
			fmtScore(last(sm.Precision)),
			fmtScore(last(sm.Recall)),
			fmtScore(last(sm.MAP)),
			fmtScore(last(sm.F1)),
		)
	}

	tw.Flush()
}

func writeRow(tw *tabwriter.Writer, cols ...string) {
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
}

func writeSeparator(tw *tabwriter.Writer, n int) {
	sep := make([]string, n)
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(tw, sep...)
}

func sortedQueryIDs(m map[string]PerQueryMetrics) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func last(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return xs[len(xs)-1]
}

func fmtScore(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

// truncate shortens s to at most limit runes, marking the cut with "...".
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
