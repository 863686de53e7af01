package prep

import "time"

type EventKind int

const (
	StageStarted EventKind = iota
	StageFinished
	StageWarning
)

func (k EventKind) String() string {
	switch k {
	case StageStarted:
		return "stage_started"
	case StageFinished:
		return "stage_finished"
	case StageWarning:
		return "stage_warning"
	default:
		return "unknown"
	}
}

// Event describes pipeline progress. Rows and Columns describe the dataset
// entering (StageStarted) or leaving (StageFinished) the stage.
type Event struct {
	Kind     EventKind
	Stage    string
	Rows     int
	Columns  int
	Duration time.Duration
	Warning  *Warning
}

// Observer receives pipeline events. Implementations must not block for
// long; they run on the pipeline goroutine.
type Observer interface {
	Observe(Event)
}

type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

// Observers fans one event out to several observers.
type Observers []Observer

func (os Observers) Observe(e Event) {
	for _, o := range os {
		if o != nil {
			o.Observe(e)
		}
	}
}

type nopObserver struct{}

func (nopObserver) Observe(Event) {}

// NopObserver discards every event.
var NopObserver Observer = nopObserver{}
