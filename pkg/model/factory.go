package model

import (
	"strings"
	"sync/atomic"
)

// SectionLabel is the label given to new sections.
const SectionLabel = "New Section"

// Factory creates fields with generated ids and monotonically increasing
// order keys, so fields created back to back never share an order value.
// A Factory is safe for concurrent use.
type Factory struct {
	ids   IDGenerator
	order atomic.Int64
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithIDGenerator overrides the id generator. Nil generators are ignored.
func WithIDGenerator(gen IDGenerator) FactoryOption {
	return func(f *Factory) {
		if gen != nil {
			f.ids = gen
		}
	}
}

// WithOrderStart sets the value the next created field receives minus one.
func WithOrderStart(start int64) FactoryOption {
	return func(f *Factory) {
		f.order.Store(start)
	}
}

// NewFactory constructs a Factory using NewID for identifiers.
func NewFactory(options ...FactoryOption) *Factory {
	f := &Factory{ids: NewID}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// NextOrder reserves the next order key.
func (f *Factory) NextOrder() int64 {
	return f.order.Add(1)
}

// CreateField builds an input field of type t. An empty name defaults to
// "field_<id>"; nil options default to the type's default options.
func (f *Factory) CreateField(t FieldType, name, parentID string, options []FieldOption) Field {
	id := f.ids()
	label := t.DefaultLabel()
	if strings.TrimSpace(name) == "" {
		name = "field_" + id
	}
	if options == nil {
		options = t.DefaultOptions()
	} else {
		options = append([]FieldOption(nil), options...)
	}

	return Field{
		ID:       id,
		Name:     name,
		Label:    label,
		ParentID: parentID,
		Order:    f.NextOrder(),
		Input: &Input{
			Type:        t,
			Placeholder: "Enter " + strings.ToLower(label),
			Required:    false,
			Validations: []ValidationRule{},
			Options:     options,
		},
	}
}

// CreateSection builds an empty section. An empty name defaults to
// "section_<id>".
func (f *Factory) CreateSection(name, parentID string) Field {
	id := f.ids()
	if strings.TrimSpace(name) == "" {
		name = "section_" + id
	}
	return Field{
		ID:       id,
		Name:     name,
		Label:    SectionLabel,
		ParentID: parentID,
		Order:    f.NextOrder(),
	}
}

// CloneField deep-copies field under a new id, suffixing the name with
// "_copy" and the label with " (Copy)". The copy keeps the parent of the
// original and receives a fresh order key.
func (f *Factory) CloneField(field Field) Field {
	clone := field.Clone()
	clone.ID = f.ids()
	clone.Name = field.Name + "_copy"
	clone.Label = field.Label + " (Copy)"
	clone.Order = f.NextOrder()
	return clone
}
