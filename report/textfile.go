package report

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/weiihann/modelbench/harness"
)

// WriteTextfile writes results in the Prometheus text exposition format,
// suitable for the node exporter's textfile collector.
func WriteTextfile(path string, results []harness.Result) error {
	if len(results) == 0 {
		return errNoResults
	}

	reg := prometheus.NewRegistry()

	nsPerOp := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "modelbench",
		Name:      "ns_per_op",
		Help:      "Mean wall-clock nanoseconds per call of a strategy operation.",
	}, []string{"strategy", "operation"})

	iterations := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "modelbench",
		Name:      "iterations",
		Help:      "Calls timed per strategy operation.",
	}, []string{"strategy", "operation"})

	for _, c := range []prometheus.Collector{nsPerOp, iterations} {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("register collector: %w", err)
		}
	}

	for _, r := range results {
		op := r.Operation.String()
		nsPerOp.WithLabelValues(r.Strategy, op).Set(float64(r.NsPerOp))
		iterations.WithLabelValues(r.Strategy, op).Set(float64(r.Iterations))
	}

	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write textfile %s: %w", path, err)
	}

	return nil
}
