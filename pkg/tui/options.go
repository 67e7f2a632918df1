package tui

import (
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formbuilder/pkg/widgets"
)

// Option configures a Filler.
type Option func(*Filler)

// WithPromptDriver overrides the prompt driver used by the filler.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithRegistry overrides the registry deciding how each field is prompted.
func WithRegistry(registry *widgets.Registry) Option {
	return func(f *Filler) {
		if registry != nil {
			f.registry = registry
		}
	}
}

// WithLogger routes diagnostics to logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(f *Filler) {
		if logger != nil {
			f.log = logger
		}
	}
}
