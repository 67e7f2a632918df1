package store

import (
	"io"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formbuilder/pkg/hierarchy"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/validation"
	"github.com/goliatone/go-formbuilder/pkg/visibility"
)

// Reducer computes state transitions. The zero value is not usable; build one
// with NewReducer.
type Reducer struct {
	log         logrus.FieldLogger
	visibility  visibility.Evaluator
	visibleOnly bool
}

// NewReducer constructs a Reducer configured by options. Store options that
// do not concern the reducer are ignored.
func NewReducer(options ...Option) *Reducer {
	cfg := newConfig(options)
	return cfg.reducer()
}

// Reduce returns the state that results from applying action to state.
// Unknown actions return state unchanged.
func Reduce(state State, action Action) State {
	return defaultReducer.Reduce(state, action)
}

var defaultReducer = NewReducer()

// Reduce returns the state that results from applying action to state. The
// input state is never mutated.
func (r *Reducer) Reduce(state State, action Action) State {
	switch a := action.(type) {
	case AddField:
		return r.addField(state, a)
	case UpdateField:
		return r.updateField(state, a)
	case RemoveField:
		return r.removeField(state, a)
	case SetFormData:
		state.FormData = a.Data.Clone()
		return state
	case UpdateFormData:
		return r.updateFormData(state, a)
	case SetActiveField:
		state.ActiveFieldID = a.FieldID
		return state
	case ValidateField:
		return r.validateField(state, a)
	case ValidateAllFields:
		return r.validateAll(state)
	case ReorderFields:
		return r.reorder(state, a)
	default:
		r.log.WithField("action", action).Debug("store: unknown action ignored")
		return state
	}
}

func (r *Reducer) addField(state State, a AddField) State {
	field := a.Field.Clone()
	next := make([]model.Field, 0, len(state.Fields)+1)
	next = append(next, state.Fields...)

	// Appended fields sort after every existing sibling.
	field.Order = maxOrder(next) + 1
	next = append(next, field)

	state.Fields = renumber(next)
	return state
}

func (r *Reducer) updateField(state State, a UpdateField) State {
	idx := indexOf(state.Fields, a.Field.ID)
	if idx < 0 {
		r.log.WithField("field_id", a.Field.ID).Debug("store: update of unknown field ignored")
		return state
	}
	next := append([]model.Field(nil), state.Fields...)
	next[idx] = a.Field.Clone()
	state.Fields = next
	return state
}

func (r *Reducer) removeField(state State, a RemoveField) State {
	removed := make(map[string]struct{})
	for _, id := range hierarchy.Subtree(state.Fields, a.FieldID) {
		removed[id] = struct{}{}
	}

	next := make([]model.Field, 0, len(state.Fields))
	for _, field := range state.Fields {
		if _, gone := removed[field.ID]; !gone {
			next = append(next, field)
		}
	}
	if len(next) == len(state.Fields) {
		r.log.WithField("field_id", a.FieldID).Debug("store: removal of unknown field")
	}

	data := state.FormData.Clone()
	errs := cloneErrors(state.Errors)
	for id := range removed {
		delete(data, id)
		delete(errs, id)
	}

	state.Fields = renumber(next)
	state.FormData = data
	state.Errors = errs
	return state
}

func (r *Reducer) updateFormData(state State, a UpdateFormData) State {
	field, ok := state.Field(a.FieldID)
	if !ok {
		r.log.WithField("field_id", a.FieldID).Debug("store: value for unknown field ignored")
		return state
	}

	data := state.FormData.Clone()
	data[a.FieldID] = a.Value

	errs := cloneErrors(state.Errors)
	errs[a.FieldID] = r.message(field, a.Value, data)

	state.FormData = data
	state.Errors = errs
	return state
}

func (r *Reducer) validateField(state State, a ValidateField) State {
	field, ok := state.Field(a.FieldID)
	if !ok {
		r.log.WithField("field_id", a.FieldID).Debug("store: validation of unknown field ignored")
		return state
	}

	errs := cloneErrors(state.Errors)
	errs[field.ID] = r.checked(state, field)
	state.Errors = errs
	return state
}

func (r *Reducer) validateAll(state State) State {
	errs := make(map[string]string, len(state.Fields))
	for _, field := range state.Fields {
		errs[field.ID] = r.checked(state, field)
	}
	state.Errors = errs
	return state
}

func (r *Reducer) reorder(state State, a ReorderFields) State {
	count := len(state.Fields)
	if a.Source < 0 || a.Source >= count {
		r.log.WithFields(logrus.Fields{
			"source":      a.Source,
			"destination": a.Destination,
		}).Debug("store: reorder source out of range")
		return state
	}
	dest := a.Destination
	if dest < 0 {
		dest = 0
	}
	if dest > count-1 {
		dest = count - 1
	}

	next := append([]model.Field(nil), state.Fields...)
	moved := next[a.Source]
	next = append(next[:a.Source], next[a.Source+1:]...)
	next = append(next[:dest], append([]model.Field{moved}, next[dest:]...)...)

	for idx := range next {
		next[idx].Order = int64(idx)
	}
	state.Fields = next
	return state
}

// checked validates the stored value of field, treating fields hidden by a
// condition as valid when the reducer only validates visible fields.
func (r *Reducer) checked(state State, field model.Field) string {
	if r.visibleOnly && !r.displayed(state, field) {
		return ""
	}
	value := state.FormData[field.ID]
	return r.message(field, value, state.FormData)
}

func (r *Reducer) message(field model.Field, value any, data model.FormData) string {
	msg, err := validation.ValidateField(field, value, data)
	if err != nil {
		r.log.WithError(err).WithField("field_id", field.ID).Warn("store: validation rule misconfigured")
		return err.Error()
	}
	return msg
}

// displayed reports whether field and all of its ancestors pass their
// conditions.
func (r *Reducer) displayed(state State, field model.Field) bool {
	if !r.visibility.Eval(field.Conditional, state.FormData) {
		return false
	}
	for _, id := range hierarchy.ParentPath(state.Fields, field.ID) {
		ancestor, ok := state.Field(id)
		if ok && !r.visibility.Eval(ancestor.Conditional, state.FormData) {
			return false
		}
	}
	return true
}

func maxOrder(fields []model.Field) int64 {
	var out int64 = -1
	for _, field := range fields {
		if field.Order > out {
			out = field.Order
		}
	}
	return out
}

// renumber sorts fields by order (ties keep list position) and rewrites every
// order key to its index. The slice is modified in place.
func renumber(fields []model.Field) []model.Field {
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Order < fields[j].Order
	})
	for idx := range fields {
		fields[idx].Order = int64(idx)
	}
	return fields
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
