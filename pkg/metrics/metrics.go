// Package metrics records pipeline events as Prometheus collectors.
//
// Every Recorder owns a private registry so that several engines (or
// tests) can run side by side. Metrics can be scraped through Handler or
// pushed to a Pushgateway with Push.
package metrics

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"

	p "github.com/wdm0006/prepkit/pkg/prep"
)

// Recorder implements prep.Observer.
type Recorder struct {
	reg *prometheus.Registry

	stageTotal    *prometheus.CounterVec
	stageDuration *prometheus.SummaryVec
	stageRows     *prometheus.GaugeVec
	warnings      *prometheus.CounterVec
	runs          *prometheus.CounterVec
}

func NewRecorder() (*Recorder, error) {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		reg: reg,
		stageTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prepkit_stage_total",
				Help: "Number of completed pipeline stages, partitioned by stage.",
			},
			[]string{"stage"},
		),
		stageDuration: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name:       "prepkit_stage_duration_seconds",
				Help:       "Duration of pipeline stages in seconds.",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
			},
			[]string{"stage"},
		),
		stageRows: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "prepkit_stage_rows",
				Help: "Rows leaving the most recent run of a stage.",
			},
			[]string{"stage"},
		),
		warnings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prepkit_warnings_total",
				Help: "Warnings emitted by pipeline stages, partitioned by stage and option.",
			},
			[]string{"stage", "option"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prepkit_runs_total",
				Help: "Processing requests, partitioned by outcome (ok, invalid, error).",
			},
			[]string{"outcome"},
		),
	}
	for _, c := range []prometheus.Collector{r.stageTotal, r.stageDuration, r.stageRows, r.warnings, r.runs} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register collector: %w", err)
		}
	}
	return r, nil
}

func (r *Recorder) Observe(e p.Event) {
	switch e.Kind {
	case p.StageFinished:
		r.stageTotal.WithLabelValues(e.Stage).Inc()
		r.stageDuration.WithLabelValues(e.Stage).Observe(e.Duration.Seconds())
		r.stageRows.WithLabelValues(e.Stage).Set(float64(e.Rows))
	case p.StageWarning:
		option := ""
		if e.Warning != nil {
			option = e.Warning.Option
		}
		r.warnings.WithLabelValues(e.Stage, option).Inc()
	}
}

// RunFinished counts one processing request by the kind of its error.
func (r *Recorder) RunFinished(err error) {
	var ve *p.ValidationError
	switch {
	case err == nil:
		r.runs.WithLabelValues("ok").Inc()
	case errors.As(err, &ve):
		r.runs.WithLabelValues("invalid").Inc()
	default:
		r.runs.WithLabelValues("error").Inc()
	}
}

func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Push sends the registry to a Pushgateway under the given job name.
func (r *Recorder) Push(gatewayURL, job string) error {
	if gatewayURL == "" {
		return errors.New("metrics: gateway URL is required")
	}
	if job == "" {
		job = "prepkit"
	}
	return push.New(gatewayURL, job).Gatherer(r.reg).Push()
}
