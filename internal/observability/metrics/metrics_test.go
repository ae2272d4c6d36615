package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestAssistantMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAssistantMetrics(reg)
	m.ObserveTurn("collected", 0.01)
	m.ObserveCommit("success", 16)
	m.ObserveCommit("failed", 0)
}

func TestAssistantMetricsNilSafe(t *testing.T) {
	var m *AssistantMetrics
	m.ObserveTurn("collected", 0.1)
	m.ObserveCommit("success", 1)
}
