package host

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dora-network/dora-safemath/metrics"
	"github.com/dora-network/dora-safemath/safemath"
)

// kindOther labels failures that are not arithmetic errors.
const kindOther = "Other"

// Instruction is one unit of host work. It either completes or returns the first error it hits.
type Instruction func(ctx context.Context) error

// Option configures an Executor.
type Option func(*Executor)

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Executor) {
		e.log = logger
	}
}

func WithInstrumentation(instrumentation *metrics.Instrumentation) Option {
	return func(e *Executor) {
		e.instrumentation = instrumentation
	}
}

// Executor runs instructions, logging and counting failures by arithmetic kind.
// It is safe for concurrent use.
type Executor struct {
	log             zerolog.Logger
	instrumentation *metrics.Instrumentation
}

func NewExecutor(opts ...Option) *Executor {
	e := &Executor{
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs fn unless ctx is already done. The error returned by fn is passed
// back unchanged so callers can still match it against the safemath kinds.
func (e *Executor) Execute(ctx context.Context, name string, fn Instruction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.inc(metrics.InstrumentationTypeInstructionCount, name)
	start := time.Now()
	err := fn(ctx)
	e.observe(name, time.Since(start))

	if err == nil {
		e.inc(metrics.InstrumentationTypeInstructionSuccess, name)
		e.log.Debug().Str("instruction", name).Msg("instruction completed")
		return nil
	}

	label := kindOther
	evt := e.log.Warn().Err(err).Str("instruction", name)
	if kind, ok := safemath.KindOf(err); ok {
		label = kind.Name()
		evt = evt.Str("kind", label).Uint32("code", Code(kind))
	}
	evt.Msg("instruction aborted")
	e.inc(metrics.InstrumentationTypeInstructionFailure, name, label)
	return err
}

// Transact runs fn against clone(state) and returns the clone only if fn succeeds.
// On failure the original state is returned untouched together with the error,
// so an aborted instruction never exposes partial updates.
func Transact[S any](ctx context.Context, e *Executor, name string, state S, clone func(S) S, fn func(context.Context, S) error) (S, error) {
	next := clone(state)
	err := e.Execute(ctx, name, func(ctx context.Context) error {
		return fn(ctx, next)
	})
	if err != nil {
		return state, err
	}
	return next, nil
}

func (e *Executor) inc(typ metrics.InstrumentationType, labels ...string) {
	if e.instrumentation == nil {
		return
	}
	if c, ok := e.instrumentation.CounterVecs[typ]; ok {
		c.WithLabelValues(labels...).Inc()
	}
}

func (e *Executor) observe(name string, elapsed time.Duration) {
	if e.instrumentation == nil {
		return
	}
	if h, ok := e.instrumentation.HistogramVecs[metrics.InstrumentationTypeInstructionDuration]; ok {
		h.WithLabelValues(name).Observe(elapsed.Seconds())
	}
}
