// internal/results/report.go
package results

import (
	"fmt"
	"io"
	"math"

	"github.com/jedib0t/go-pretty/v6/table"
)

// WriteConfusion renders the 2x2 confusion matrix of one dataset as markdown.
func WriteConfusion(w io.Writer, r DatasetReport) error {
	_, err := fmt.Fprintf(w, "\n%s\n||True|False|\n|-|-|-|\n|Positive|%d|%d|\n|Negative|%d|%d|\n",
		r.Dataset,
		r.Confusion.TruePos, r.Confusion.FalsePos,
		r.Confusion.TrueNeg, r.Confusion.FalseNeg)
	return err
}

// WriteLatency renders the per-bucket latency tables for all reports: mean
// times, accept/reject split and construct/solve split.
func WriteLatency(w io.Writer, reports []DatasetReport) error {
	tables := []struct {
		header table.Row
		row    func(*Bucket) table.Row
	}{
		{
			header: table.Row{"Dataset", "Params", "Number", "Compared Time", "Reference Time", "Compared p50", "Compared p95"},
			row: func(b *Bucket) table.Row {
				cmp, cmpOK := b.MeanCompared()
				ref, refOK := b.MeanReference()
				return table.Row{b.Key.Dataset, b.Key.Params.String(), b.N,
					formatMs(cmp, cmpOK), formatMs(ref, refOK),
					formatQuantile(b.ComparedQuantile(0.50)), formatQuantile(b.ComparedQuantile(0.95))}
			},
		},
		{
			header: table.Row{"Dataset", "Params", "Accept N", "Reject N", "Accept Time", "Reject Time"},
			row: func(b *Bucket) table.Row {
				ac, acOK := b.MeanAccepted()
				rej, rejOK := b.MeanRejected()
				return table.Row{b.Key.Dataset, b.Key.Params.String(), b.AcceptedN(), b.RejectedN,
					formatMs(ac, acOK), formatMs(rej, rejOK)}
			},
		},
		{
			header: table.Row{"Dataset", "Params", "Construct Time", "Solve Time"},
			row: func(b *Bucket) table.Row {
				c, cOK := b.MeanConstruct()
				s, sOK := b.MeanSolve()
				return table.Row{b.Key.Dataset, b.Key.Params.String(), formatMs(c, cOK), formatMs(s, sOK)}
			},
		},
	}

	for _, tbl := range tables {
		t := table.NewWriter()
		t.AppendHeader(tbl.header)
		eachBucket(reports, func(b *Bucket) {
			t.AppendRow(tbl.row(b))
		})
		if _, err := fmt.Fprintf(w, "\n%s\n", t.RenderMarkdown()); err != nil {
			return err
		}
	}
	return nil
}

func eachBucket(reports []DatasetReport, f func(*Bucket)) {
	for _, r := range reports {
		for _, b := range r.Buckets {
			f(b)
		}
	}
}

// formatMs prints a mean with two decimals, or "-" when it has no samples.
func formatMs(v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}

func formatQuantile(v float64) string {
	return formatMs(v, !math.IsNaN(v))
}
