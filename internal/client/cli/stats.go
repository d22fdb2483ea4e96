package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	dto "github.com/prometheus/client_model/go"
)

func metricValue(m *dto.Metric) float64 {
	switch {
	case m.GetCounter() != nil:
		return m.GetCounter().GetValue()
	case m.GetGauge() != nil:
		return m.GetGauge().GetValue()
	}
	return 0
}

// Stats prints the client's counters: requests by status class, list
// reads served from the store and actions dispatched.
func (a *App) Stats(ctx context.Context) error {
	if a.metrics == nil {
		fmt.Fprintln(a.out, "Metrics are disabled")
		return nil
	}
	families, err := a.metrics.Registry.Gather()
	if err != nil {
		return err
	}
	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g", mf.GetName(), strings.Join(labels, ","), metricValue(m)))
		}
	}
	if len(lines) == 0 {
		fmt.Fprintln(a.out, "No requests yet")
		return nil
	}
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Fprintln(a.out, l)
	}
	return nil
}
