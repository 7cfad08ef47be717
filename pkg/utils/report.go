package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pojntfx/page-compare-benchmark/pkg/bench"
)

var separator = strings.Repeat("=", 49)

// WriteReport prints the mean duration per strategy, each entry preceded by
// a separator line.
func WriteReport(w io.Writer, summary *bench.Summary) error {
	for _, t := range summary.Totals {
		if _, err := fmt.Fprintln(w, separator); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, "%v Execution Time: %fs\n", t.Name, t.Mean().Seconds()); err != nil {
			return err
		}

		if t.Failures > 0 {
			if _, err := fmt.Fprintf(w, "  (%v failed trials skipped)\n", humanize.Comma(t.Failures)); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(w, separator)

	return err
}

type jsonTotals struct {
	Name        string  `json:"name"`
	MeanSeconds float64 `json:"meanSeconds"`
	Samples     int64   `json:"samples"`
	Failures    int64   `json:"failures"`
	Matches     int64   `json:"matches"`
}

type jsonReport struct {
	Iterations int          `json:"iterations"`
	PageSize   int          `json:"pageSize"`
	Strategies []jsonTotals `json:"strategies"`
}

// EncodeJSON writes the summary as a single JSON document.
func EncodeJSON(w io.Writer, summary *bench.Summary) error {
	r := jsonReport{
		Iterations: summary.Iterations,
		PageSize:   summary.PageSize,
		Strategies: make([]jsonTotals, len(summary.Totals)),
	}

	for i, t := range summary.Totals {
		r.Strategies[i] = jsonTotals{
			Name:        t.Name,
			MeanSeconds: t.Mean().Seconds(),
			Samples:     t.Samples,
			Failures:    t.Failures,
			Matches:     t.Matches,
		}
	}

	b, err := json.Marshal(r)
	if err != nil {
		return err
	}

	if _, err := w.Write(append(b, '\n')); err != nil {
		return err
	}

	return nil
}
