package history

import (
	"fmt"
	"io"
)

// Comparison is the change of one result label between two runs.
type Comparison struct {
	Label string
	Prev  int64
	Curr  int64
	// Delta is the percentage change from Prev to Curr; negative is faster.
	Delta float64
}

func (c Comparison) String() string {
	return fmt.Sprintf("%s\t%d ns -> %d ns\t%+.2f%%", c.Label, c.Prev, c.Curr, c.Delta)
}

// Compare pairs results present in both runs, in the order of curr.
func Compare(prev, curr Run) []Comparison {
	prevByLabel := make(map[string]int64, len(prev.Results))
	for _, r := range prev.Results {
		prevByLabel[r.Label()] = r.NsPerOp
	}

	var comparisons []Comparison

	for _, r := range curr.Results {
		p, ok := prevByLabel[r.Label()]
		if !ok {
			continue
		}

		c := Comparison{Label: r.Label(), Prev: p, Curr: r.NsPerOp}
		if p > 0 {
			c.Delta = float64(r.NsPerOp-p) / float64(p) * 100
		}

		comparisons = append(comparisons, c)
	}

	return comparisons
}

// WriteComparisons writes one comparison per line.
func WriteComparisons(w io.Writer, comparisons []Comparison) error {
	for _, c := range comparisons {
		if _, err := fmt.Fprintln(w, c.String()); err != nil {
			return fmt.Errorf("write comparison: %w", err)
		}
	}

	return nil
}
