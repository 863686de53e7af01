package prep

import (
	"context"
	"time"
)

// Transform is one pipeline stage. Apply must not modify its input; it
// returns a new Dataset (or the input itself when nothing changes).
type Transform interface {
	Name() string
	Apply(ctx context.Context, ds Dataset) (Dataset, error)
}

// Pipeline composes a sequence of Transforms.
type Pipeline struct {
	steps []Transform
	obs   Observer
}

func NewPipeline() *Pipeline { return &Pipeline{obs: NopObserver} }

func (p *Pipeline) Add(t Transform) *Pipeline {
	p.steps = append(p.steps, t)
	return p
}

// Observe sets the observer that receives stage events.
func (p *Pipeline) Observe(o Observer) *Pipeline {
	if o == nil {
		o = NopObserver
	}
	p.obs = o
	return p
}

// Steps returns the stage names in execution order.
func (p *Pipeline) Steps() []string {
	names := make([]string, len(p.steps))
	for i, t := range p.steps {
		names[i] = t.Name()
	}
	return names
}

func (p *Pipeline) Run(ctx context.Context, ds Dataset) (Dataset, error) {
	var err error
	cur := ds
	for _, t := range p.steps {
		name := t.Name()
		sctx := WithWarnings(ctx, func(w Warning) {
			p.obs.Observe(Event{Kind: StageWarning, Stage: name, Warning: &w})
		})
		p.obs.Observe(Event{Kind: StageStarted, Stage: name, Rows: len(cur), Columns: len(cur.Columns())})
		start := time.Now()
		cur, err = t.Apply(sctx, cur)
		if err != nil {
			return nil, err
		}
		p.obs.Observe(Event{
			Kind:     StageFinished,
			Stage:    name,
			Rows:     len(cur),
			Columns:  len(cur.Columns()),
			Duration: time.Since(start),
		})
	}
	return cur, nil
}
