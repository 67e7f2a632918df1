package store

import "github.com/goliatone/go-formbuilder/pkg/model"

// Action is a transition request understood by Reducer.Reduce.
type Action interface {
	isAction()
}

// AddField appends Field to the list. Sections are added the same way.
type AddField struct {
	Field model.Field
}

// UpdateField replaces the stored field with the same id by Field.
type UpdateField struct {
	Field model.Field
}

// RemoveField removes the field and all of its descendants together with
// their form data and errors.
type RemoveField struct {
	FieldID string
}

// SetFormData replaces every entered value.
type SetFormData struct {
	Data model.FormData
}

// UpdateFormData stores Value for FieldID and revalidates that field.
type UpdateFormData struct {
	FieldID string
	Value   any
}

// SetActiveField selects the field edited in the properties panel. An empty
// FieldID clears the selection.
type SetActiveField struct {
	FieldID string
}

// ValidateField recomputes the error of one field.
type ValidateField struct {
	FieldID string
}

// ValidateAllFields recomputes the error of every field.
type ValidateAllFields struct{}

// ReorderFields moves the field at Source to Destination in the flat list
// and renumbers every order key to its position.
type ReorderFields struct {
	Source      int
	Destination int
}

func (AddField) isAction()          {}
func (UpdateField) isAction()       {}
func (RemoveField) isAction()       {}
func (SetFormData) isAction()       {}
func (UpdateFormData) isAction()    {}
func (SetActiveField) isAction()    {}
func (ValidateField) isAction()     {}
func (ValidateAllFields) isAction() {}
func (ReorderFields) isAction()     {}
