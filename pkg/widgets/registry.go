package widgets

import (
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Widget names known to the interactive filler.
const (
	WidgetHeading = "heading"
	WidgetInput   = "input"
	WidgetToggle  = "toggle"
	WidgetSelect  = "select"
	WidgetDate    = "date"
	WidgetPhone   = "phone"
	WidgetFile    = "file"
)

// Matcher reports whether a widget can collect the value of field.
type Matcher func(field model.Field) bool

type candidate struct {
	widget   string
	priority int
	match    Matcher
}

// Registry picks the widget used for a field. Candidates are tried from the
// highest priority down; equal priorities keep registration order.
type Registry struct {
	mu         sync.RWMutex
	candidates []candidate
}

// NewRegistry returns a registry preloaded with the built-in widgets.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	r.Register(WidgetHeading, 100, model.Field.IsSection)
	r.Register(WidgetToggle, 90, ofType(model.FieldTypeCheckbox))
	r.Register(WidgetPhone, 80, ofType(model.FieldTypePhone))
	r.Register(WidgetDate, 80, ofType(model.FieldTypeDate))
	r.Register(WidgetFile, 80, ofType(model.FieldTypeFile))
	// choice fields whose options were all removed fall back to free text
	r.Register(WidgetSelect, 70, func(field model.Field) bool {
		return field.Type().HasOptions() && len(field.Options()) > 0
	})
	r.Register(WidgetInput, 0, func(field model.Field) bool {
		return !field.IsSection()
	})
	return r
}

// NewEmptyRegistry returns a registry that resolves nothing until widgets
// are registered.
func NewEmptyRegistry() *Registry {
	return &Registry{}
}

// Register adds a widget. Blank names and nil matchers are ignored.
func (r *Registry) Register(widget string, priority int, match Matcher) {
	widget = strings.TrimSpace(widget)
	if r == nil || match == nil || widget == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	at := len(r.candidates)
	for i, c := range r.candidates {
		if priority > c.priority {
			at = i
			break
		}
	}
	r.candidates = slices.Insert(r.candidates, at, candidate{widget: widget, priority: priority, match: match})
}

// Resolve returns the widget for field.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.candidates {
		if c.match(field) {
			return c.widget, true
		}
	}
	return "", false
}

func ofType(types ...model.FieldType) Matcher {
	return func(field model.Field) bool {
		return !field.IsSection() && slices.Contains(types, field.Type())
	}
}
