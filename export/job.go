package export

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ByLCY/labelgen/layout"
)

// job 记录一次导出调用的状态，每次调用新建，互不共享。
type job struct {
	id      string
	state   State
	started time.Time
	logger  *zap.Logger
	hook    StateHook
}

func (e *Exporter) newJob(op string, kind layout.PresetKind) *job {
	id := uuid.NewString()
	j := &job{
		id:      id,
		state:   StateIdle,
		started: time.Now(),
		logger:  e.logger.With(zap.String("job", id), zap.String("op", op), zap.String("preset", kind.String())),
		hook:    e.hook,
	}
	j.logger.Info("export started")
	if j.hook != nil {
		j.hook(id, StateIdle)
	}
	return j
}

func (j *job) enter(s State) {
	if j.state.Terminal() || j.state == s {
		return
	}
	j.logger.Debug("export state", zap.Stringer("from", j.state), zap.Stringer("to", s))
	j.state = s
	if j.hook != nil {
		j.hook(j.id, s)
	}
}

func (j *job) fail(err error) error {
	j.enter(StateFailed)
	j.logger.Warn("export failed", zap.Duration("duration", time.Since(j.started)), zap.Error(err))
	return err
}

func (j *job) done(fields ...zap.Field) {
	j.enter(StateDone)
	j.logger.Info("export finished", append(fields, zap.Duration("duration", time.Since(j.started)))...)
}
