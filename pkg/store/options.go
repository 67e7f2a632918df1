package store

import (
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/visibility"
)

// Option configures a Store or Reducer.
type Option func(*config)

type config struct {
	log         logrus.FieldLogger
	factory     *model.Factory
	visibility  visibility.Evaluator
	visibleOnly bool
	initial     *State
}

func newConfig(options []Option) *config {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	if cfg.log == nil {
		cfg.log = discardLogger()
	}
	if cfg.factory == nil {
		cfg.factory = model.NewFactory()
	}
	if cfg.visibility == nil {
		cfg.visibility = visibility.Default
	}
	return cfg
}

func (c *config) reducer() *Reducer {
	return &Reducer{
		log:         c.log,
		visibility:  c.visibility,
		visibleOnly: c.visibleOnly,
	}
}

// WithLogger routes diagnostics (ignored lookups, misconfigured rules) to
// logger. By default they are discarded.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *config) {
		if logger != nil {
			c.log = logger
		}
	}
}

// WithFactory sets the factory used by AddField, AddSection and CloneField.
func WithFactory(factory *model.Factory) Option {
	return func(c *config) {
		if factory != nil {
			c.factory = factory
		}
	}
}

// WithEvaluator replaces the conditional visibility evaluator.
func WithEvaluator(evaluator visibility.Evaluator) Option {
	return func(c *config) {
		if evaluator != nil {
			c.visibility = evaluator
		}
	}
}

// WithVisibleOnlyValidation makes ValidateField and ValidateAllFields treat
// fields hidden by a condition (their own or an ancestor's) as valid. By
// default every field is validated regardless of visibility.
func WithVisibleOnlyValidation() Option {
	return func(c *config) {
		c.visibleOnly = true
	}
}

// WithState seeds the session with an existing state, for example a loaded
// form definition. The state is copied.
func WithState(state State) Option {
	return func(c *config) {
		cloned := state.Clone()
		c.initial = &cloned
	}
}
