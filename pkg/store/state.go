package store

import "github.com/goliatone/go-formbuilder/pkg/model"

// State is the root aggregate of a session. Errors maps field ids to the
// current validation message; an entry holding "" records a field that was
// validated and passed.
type State struct {
	Fields        []model.Field     `json:"fields"`
	FormData      model.FormData    `json:"formData"`
	Errors        map[string]string `json:"errors"`
	ActiveFieldID string            `json:"activeFieldId,omitempty"`
}

// NewState returns an empty state with initialised maps.
func NewState() State {
	return State{
		Fields:   []model.Field{},
		FormData: model.FormData{},
		Errors:   map[string]string{},
	}
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := State{
		Fields:        make([]model.Field, len(s.Fields)),
		FormData:      s.FormData.Clone(),
		Errors:        cloneErrors(s.Errors),
		ActiveFieldID: s.ActiveFieldID,
	}
	for idx, field := range s.Fields {
		out.Fields[idx] = field.Clone()
	}
	return out
}

// Field returns the field with id.
func (s State) Field(id string) (model.Field, bool) {
	for _, field := range s.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return model.Field{}, false
}

// HasErrors reports whether any field currently carries a message.
func (s State) HasErrors() bool {
	for _, msg := range s.Errors {
		if msg != "" {
			return true
		}
	}
	return false
}

func cloneErrors(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}

func indexOf(fields []model.Field, id string) int {
	for idx, field := range fields {
		if field.ID == id {
			return idx
		}
	}
	return -1
}
