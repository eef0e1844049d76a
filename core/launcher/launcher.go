package launcher

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Step is one stage of the launch sequence.
type Step interface {
	// Name identifies the step in logs and errors.
	Name() string
	// Run performs the step, blocking until it completes.
	Run(ctx context.Context) error
}

type funcStep struct {
	name string
	fn   func(ctx context.Context) error
}

func (s funcStep) Name() string                  { return s.name }
func (s funcStep) Run(ctx context.Context) error { return s.fn(ctx) }

// NewStep adapts a function into a Step.
func NewStep(name string, fn func(ctx context.Context) error) Step {
	return funcStep{name: name, fn: fn}
}

// Launcher runs steps strictly in order and stops at the first failure.
type Launcher struct {
	steps  []Step
	logger *zap.Logger
	id     string
}

// New creates a launcher for the given steps. Every log entry it writes
// carries a launch_id unique to this launcher.
func New(logger *zap.Logger, steps ...Step) *Launcher {
	id := uuid.NewString()
	return &Launcher{
		steps:  steps,
		logger: logger.With(zap.String("launch_id", id)),
		id:     id,
	}
}

// Add appends steps to the sequence.
func (l *Launcher) Add(steps ...Step) *Launcher {
	l.steps = append(l.steps, steps...)
	return l
}

// ID returns the launch identifier.
func (l *Launcher) ID() string {
	return l.id
}

// Logger returns the launcher logger, tagged with the launch identifier.
func (l *Launcher) Logger() *zap.Logger {
	return l.logger
}

// Run executes the steps in order. The first failing step ends the launch
// with a *StepError; later steps are never started.
func (l *Launcher) Run(ctx context.Context) error {
	for i, step := range l.steps {
		log := l.logger.With(zap.String("step", step.Name()))
		log.Info("Step started", zap.Int("position", i+1), zap.Int("total", len(l.steps)))

		start := time.Now()
		if err := step.Run(ctx); err != nil {
			stepErr := newStepError(step.Name(), err)
			log.Error("Step failed",
				zap.Error(err),
				zap.Int("exit_code", stepErr.Code),
				zap.Duration("duration", time.Since(start)),
			)
			return stepErr
		}
		log.Info("Step completed", zap.Duration("duration", time.Since(start)))
	}
	return nil
}
