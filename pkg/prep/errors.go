package prep

import (
	"context"
	"fmt"
	"strings"
)

// ValidationError aggregates every structural problem found in an input
// dataset. It is returned before any transform runs.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "data validation failed: " + strings.Join(e.Reasons, ", ")
}

// Warning reports a configured option that has no transform behind it.
// The stage involved is a no-op and the pipeline carries on.
type Warning struct {
	Stage   string `json:"stage"`
	Option  string `json:"option"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s=%q: %s", w.Stage, w.Option, w.Value, w.Message)
}

// Unsupported builds the warning for an accepted but unimplemented option.
func Unsupported(stage, option, value string) Warning {
	return Warning{
		Stage:   stage,
		Option:  option,
		Value:   value,
		Message: fmt.Sprintf("%s %q is not implemented; stage left the data unchanged", option, value),
	}
}

// Unknown builds the warning for an option value that is not recognized.
func Unknown(stage, option, value string) Warning {
	return Warning{
		Stage:   stage,
		Option:  option,
		Value:   value,
		Message: fmt.Sprintf("unknown %s %q; stage skipped", option, value),
	}
}

type warnKey struct{}

// WithWarnings returns a context whose warnings are delivered to sink.
// Sinks already on ctx keep receiving them.
func WithWarnings(ctx context.Context, sink func(Warning)) context.Context {
	parent, _ := ctx.Value(warnKey{}).(func(Warning))
	return context.WithValue(ctx, warnKey{}, func(w Warning) {
		if parent != nil {
			parent(w)
		}
		sink(w)
	})
}

// Warn emits w to the sinks installed on ctx, if any.
func Warn(ctx context.Context, w Warning) {
	if sink, ok := ctx.Value(warnKey{}).(func(Warning)); ok {
		sink(w)
	}
}
