package observability

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exports cleanup-run counters for watch mode scraping.
type Metrics struct {
	registry *prom.Registry

	RunsTotal       prom.Counter
	RunsFailedTotal prom.Counter
	RenamesApplied  prom.Counter
	FilesRewritten  prom.Counter
	LastRunUnix     prom.Gauge
}

// NewMetrics builds a registry with the run counters plus the standard Go and
// process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prom.NewRegistry(),
		RunsTotal: prom.NewCounter(prom.CounterOpts{
			Namespace: "siteclean", Name: "runs_total", Help: "Total cleanup runs started",
		}),
		RunsFailedTotal: prom.NewCounter(prom.CounterOpts{
			Namespace: "siteclean", Name: "runs_failed_total", Help: "Cleanup runs that aborted with an error",
		}),
		RenamesApplied: prom.NewCounter(prom.CounterOpts{
			Namespace: "siteclean", Name: "renames_applied_total", Help: "File renames applied across runs",
		}),
		FilesRewritten: prom.NewCounter(prom.CounterOpts{
			Namespace: "siteclean", Name: "files_rewritten_total", Help: "Text files rewritten across runs",
		}),
		LastRunUnix: prom.NewGauge(prom.GaugeOpts{
			Namespace: "siteclean", Name: "last_run_timestamp_seconds", Help: "Unix time of the most recent run",
		}),
	}

	m.registry.MustRegister(m.RunsTotal, m.RunsFailedTotal, m.RenamesApplied, m.FilesRewritten, m.LastRunUnix)
	m.registry.MustRegister(promcollect.NewGoCollector(), promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}))
	return m
}

// Handler serves the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
