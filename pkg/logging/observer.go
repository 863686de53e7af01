package logging

import (
	"go.uber.org/zap"

	p "github.com/wdm0006/prepkit/pkg/prep"
)

// Observer logs pipeline events: stage starts at debug, completions at
// info and warnings at warn.
type Observer struct {
	log *zap.Logger
}

func NewObserver(log *zap.Logger) *Observer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Observer{log: log}
}

func (o *Observer) Observe(e p.Event) {
	switch e.Kind {
	case p.StageStarted:
		o.log.Debug("stage started",
			zap.String("stage", e.Stage),
			zap.Int("rows", e.Rows),
			zap.Int("columns", e.Columns))
	case p.StageFinished:
		o.log.Info("stage finished",
			zap.String("stage", e.Stage),
			zap.Int("rows", e.Rows),
			zap.Int("columns", e.Columns),
			zap.Duration("took", e.Duration))
	case p.StageWarning:
		if e.Warning == nil {
			return
		}
		o.log.Warn(e.Warning.Message,
			zap.String("stage", e.Stage),
			zap.String("option", e.Warning.Option),
			zap.String("value", e.Warning.Value))
	}
}
