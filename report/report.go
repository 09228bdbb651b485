// Package report formats benchmark results for humans and machines.
package report

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/goccy/go-json"

	"github.com/weiihann/modelbench/harness"
)

var errNoResults = errors.New("no results to report")

// Generate writes one line per result in the form "<label>\t= <ns> ns".
func Generate(w io.Writer, results []harness.Result) error {
	if len(results) == 0 {
		return errNoResults
	}

	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s\t= %d ns\n", r.Label(), r.NsPerOp); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}

	return nil
}

// GenerateTable writes a markdown table per operation, comparing each
// strategy against the fastest one for that operation.
func GenerateTable(w io.Writer, results []harness.Result) error {
	if len(results) == 0 {
		return errNoResults
	}

	fmt.Fprintln(w, "## Benchmark Results")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Iterations per operation: %d\n", results[0].Iterations)

	for _, op := range harness.Operations() {
		rows := byOperation(results, op)
		if len(rows) == 0 {
			continue
		}

		fastest := findFastest(rows)

		fmt.Fprintln(w)
		fmt.Fprintf(w, "### %s\n", op)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Strategy | Time/op | Relative |")
		fmt.Fprintln(w, "|----------|---------|----------|")

		for _, r := range rows {
			relative := 1.0
			if fastest > 0 && r.NsPerOp > 0 {
				relative = float64(r.NsPerOp) / float64(fastest)
			}

			fmt.Fprintf(w, "| %s | %s | %.2fx |\n",
				r.Strategy,
				formatNs(r.NsPerOp),
				relative,
			)
		}
	}

	return nil
}

// GenerateJSON writes results as JSON to w.
func GenerateJSON(w io.Writer, results []harness.Result) error {
	if len(results) == 0 {
		return errNoResults
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(results)
}

func byOperation(results []harness.Result, op harness.Operation) []harness.Result {
	var rows []harness.Result

	for _, r := range results {
		if r.Operation == op {
			rows = append(rows, r)
		}
	}

	return rows
}

func findFastest(results []harness.Result) int64 {
	fastest := int64(math.MaxInt64)
	for _, r := range results {
		if r.NsPerOp > 0 && r.NsPerOp < fastest {
			fastest = r.NsPerOp
		}
	}

	if fastest == math.MaxInt64 {
		return 0
	}

	return fastest
}

func formatNs(ns int64) string {
	switch {
	case ns < 1_000:
		return fmt.Sprintf("%dns", ns)
	case ns < 1_000_000:
		return fmt.Sprintf("%.2fµs", float64(ns)/1e3)
	case ns < 1_000_000_000:
		return fmt.Sprintf("%.2fms", float64(ns)/1e6)
	default:
		return fmt.Sprintf("%.2fs", float64(ns)/1e9)
	}
}
