// Package engine runs the preprocessing stages selected by a
// ProcessingConfig over a dataset and reports on the input's quality.
package engine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	p "github.com/wdm0006/prepkit/pkg/prep"
	"github.com/wdm0006/prepkit/pkg/profile"
	"github.com/wdm0006/prepkit/pkg/transform/validate"
)

// DefaultLatency is the pause between validation and the first stage.
const DefaultLatency = 2 * time.Second

// Result is the outcome of a successful run. DataQualityMetrics always
// describes the input, not ProcessedData.
type Result struct {
	ProcessedData      p.Dataset             `json:"processedData"`
	DataQualityMetrics profile.QualityReport `json:"dataQualityMetrics"`
	Warnings           []p.Warning           `json:"warnings"`
	RunID              string                `json:"runId,omitempty"`
}

// Outcome carries the result of a run started with Go.
type Outcome struct {
	Result *Result
	Err    error
}

type Engine struct {
	latency  time.Duration
	observer p.Observer
}

type Option func(*Engine)

// WithLatency overrides DefaultLatency. Zero or negative disables the
// pause.
func WithLatency(d time.Duration) Option {
	return func(e *Engine) { e.latency = d }
}

// WithObserver sets the observer receiving stage events.
func WithObserver(o p.Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{latency: DefaultLatency, observer: p.NopObserver}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Run processes ds with the default engine.
func Run(ctx context.Context, ds p.Dataset, cfg ProcessingConfig) (*Result, error) {
	return New().Run(ctx, ds, cfg)
}

// Run validates ds, waits out the latency and applies the stages planned
// for cfg. A validation failure is returned as *prep.ValidationError
// before any stage runs. ds is never modified.
func (e *Engine) Run(ctx context.Context, ds p.Dataset, cfg ProcessingConfig) (*Result, error) {
	if _, err := p.NewPipeline().Add(&validate.Schema{}).Observe(e.observer).Run(ctx, ds); err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	var report profile.QualityReport
	g.Go(func() error {
		report = profile.Report(ds)
		return nil
	})

	warnings := []p.Warning{}
	out, err := e.process(gctx, ds, cfg, &warnings)
	if werr := g.Wait(); err == nil {
		err = werr
	}
	if err != nil {
		return nil, err
	}
	return &Result{
		ProcessedData:      out,
		DataQualityMetrics: report,
		Warnings:           warnings,
	}, nil
}

func (e *Engine) process(ctx context.Context, ds p.Dataset, cfg ProcessingConfig, warnings *[]p.Warning) (p.Dataset, error) {
	if err := e.wait(ctx); err != nil {
		return nil, err
	}
	ctx = p.WithWarnings(ctx, func(w p.Warning) { *warnings = append(*warnings, w) })
	// stages ignore cancellation once started
	return Plan(cfg).Observe(e.observer).Run(context.WithoutCancel(ctx), ds)
}

func (e *Engine) wait(ctx context.Context) error {
	if e.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(e.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Go starts Run on a new goroutine. The channel yields exactly one
// Outcome and is then closed.
func (e *Engine) Go(ctx context.Context, ds p.Dataset, cfg ProcessingConfig) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		defer close(ch)
		res, err := e.Run(ctx, ds, cfg)
		ch <- Outcome{Result: res, Err: err}
	}()
	return ch
}
