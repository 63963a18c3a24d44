// Package metrics exposes batch run totals as Prometheus collectors.
//
// A batch run is short-lived, so metrics are not served over HTTP; they are
// written in the text exposition format for the node-exporter textfile
// collector. Each series describes the last run only: watch and schedule
// modes recompute the same dataset, so totals are gauges reset per run
// rather than counters that would accumulate every rerun.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ja7ad/genai-footprint/pkg/footprint"
)

const namespace = "genai_footprint"

// Recorder collects per-profile totals of a run on a private registry.
type Recorder struct {
	reg *prometheus.Registry

	requests *prometheus.GaugeVec
	tokens   *prometheus.GaugeVec
	chars    *prometheus.GaugeVec
	energy   *prometheus.GaugeVec
	carbon   *prometheus.GaugeVec
	records  *prometheus.GaugeVec
	lastRun  prometheus.Gauge
	runs     prometheus.Counter
}

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	labels := []string{"profile", "category"}

	return &Recorder{
		reg: reg,
		requests: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_requests",
			Help:      "Usage requests accounted in the last run, by profile.",
		}, labels),
		tokens: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_simulated_tokens",
			Help:      "Simulated tokens processed in the last run, by profile.",
		}, labels),
		chars: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_simulated_chars",
			Help:      "Simulated characters processed in the last run, by profile.",
		}, labels),
		energy: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_energy_kwh",
			Help:      "Estimated facility energy in kWh of the last run, by profile.",
		}, labels),
		carbon: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_carbon_grams",
			Help:      "Estimated emissions in gCO2e of the last run, by profile.",
		}, labels),
		records: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_records",
			Help:      "Usage records processed in the last run, by profile.",
		}, labels),
		lastRun: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed batch run.",
		}),
		runs: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Batch runs completed by this process.",
		}),
	}
}

// Reset drops every per-profile series before a new run is observed.
func (r *Recorder) Reset() {
	for _, v := range []*prometheus.GaugeVec{r.requests, r.tokens, r.chars, r.energy, r.carbon, r.records} {
		v.Reset()
	}
}

// Observe adds one result to the current run.
func (r *Recorder) Observe(res footprint.Result) {
	l := prometheus.Labels{"profile": res.ProfileType, "category": res.Category.String()}

	r.records.With(l).Inc()
	r.requests.With(l).Add(float64(res.Count))
	r.tokens.With(l).Add(res.SimulatedTokens)
	r.chars.With(l).Add(res.SimulatedChars)
	r.energy.With(l).Add(res.EnergyKWh)
	r.carbon.With(l).Add(res.CarbonG)
}

// MarkRun records the completion of a run.
func (r *Recorder) MarkRun(t time.Time) {
	r.lastRun.Set(float64(t.Unix()))
	r.runs.Inc()
}

// WriteTextfile writes all metrics to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
