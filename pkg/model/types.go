package model

// FieldType enumerates the input kinds a form can contain. A field's type is
// fixed at creation.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeDropdown FieldType = "dropdown"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeFile     FieldType = "file"
	FieldTypeDate     FieldType = "date"
	FieldTypeCountry  FieldType = "country"
	FieldTypePhone    FieldType = "phone"
)

// RuleType identifies a validation check.
type RuleType string

const (
	RuleRequired  RuleType = "required"
	RuleMinLength RuleType = "minLength"
	RuleMaxLength RuleType = "maxLength"
	RulePattern   RuleType = "pattern"
	RuleCustom    RuleType = "custom"
)

// Operator identifies the comparison a ConditionalRule applies.
type Operator string

const (
	OperatorEquals      Operator = "equals"
	OperatorNotEquals   Operator = "notEquals"
	OperatorContains    Operator = "contains"
	OperatorNotContains Operator = "notContains"
	OperatorGreater     Operator = "greater"
	OperatorLess        Operator = "less"
)

// ValidatorFunc is a caller supplied predicate used by custom rules. It
// receives the field value and every value entered in the form.
type ValidatorFunc func(value any, values FormData) bool

// ValidationRule is a single check applied to a field value. Value holds the
// numeric bound for minLength/maxLength and the regular expression source for
// pattern rules. Validator is only consulted by custom rules and is never
// serialised.
type ValidationRule struct {
	Type      RuleType      `json:"type" yaml:"type"`
	Value     any           `json:"value,omitempty" yaml:"value,omitempty"`
	Message   string        `json:"message" yaml:"message"`
	Validator ValidatorFunc `json:"-" yaml:"-"`
}

// FieldOption is a label/value pair offered by choice based fields.
type FieldOption struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// ConditionalRule ties the visibility of a field to the current value of the
// controlling field identified by FieldID.
type ConditionalRule struct {
	FieldID  string   `json:"fieldId" yaml:"fieldId"`
	Operator Operator `json:"operator" yaml:"operator"`
	Value    any      `json:"value" yaml:"value"`
}

// Input is the payload carried by fields that accept a value. Sections have
// no payload.
type Input struct {
	Type         FieldType        `json:"type" yaml:"type"`
	Placeholder  string           `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	DefaultValue any              `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Required     bool             `json:"required" yaml:"required"`
	Validations  []ValidationRule `json:"validations,omitempty" yaml:"validations,omitempty"`
	Options      []FieldOption    `json:"options,omitempty" yaml:"options,omitempty"`
}

// Field is the unit of a form definition. The shared base (ID, Name, Label,
// ParentID, Order, Conditional) applies to inputs and sections alike; Input is
// nil for sections.
type Field struct {
	ID          string           `json:"id" yaml:"id"`
	Name        string           `json:"name" yaml:"name"`
	Label       string           `json:"label" yaml:"label"`
	ParentID    string           `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	Order       int64            `json:"order" yaml:"order"`
	Conditional *ConditionalRule `json:"conditional,omitempty" yaml:"conditional,omitempty"`
	Input       *Input           `json:"input,omitempty" yaml:"input,omitempty"`
}

// FormData maps field ids to entered values.
type FormData map[string]any

// IsSection reports whether the field is a grouping container.
func (f Field) IsSection() bool {
	return f.Input == nil
}

// IsRoot reports whether the field sits at the top level of the form.
func (f Field) IsRoot() bool {
	return f.ParentID == ""
}

// Type returns the input type, or an empty FieldType for sections.
func (f Field) Type() FieldType {
	if f.Input == nil {
		return ""
	}
	return f.Input.Type
}

// Rules returns the validation rules of an input field. Sections have none.
func (f Field) Rules() []ValidationRule {
	if f.Input == nil {
		return nil
	}
	return f.Input.Validations
}

// Options returns the choice options of an input field.
func (f Field) Options() []FieldOption {
	if f.Input == nil {
		return nil
	}
	return f.Input.Options
}

// OptionLabel resolves the label of the option matching value.
func (f Field) OptionLabel(value string) (string, bool) {
	for _, opt := range f.Options() {
		if opt.Value == value {
			return opt.Label, true
		}
	}
	return "", false
}

// Clone returns a deep copy of the field. Rule values and validator funcs are
// shared; everything the editor mutates is copied.
func (f Field) Clone() Field {
	out := f
	if f.Conditional != nil {
		cond := *f.Conditional
		out.Conditional = &cond
	}
	if f.Input != nil {
		input := *f.Input
		if f.Input.Validations != nil {
			input.Validations = append([]ValidationRule(nil), f.Input.Validations...)
		}
		if f.Input.Options != nil {
			input.Options = append([]FieldOption(nil), f.Input.Options...)
		}
		out.Input = &input
	}
	return out
}

// Clone returns a shallow copy of the form data map. A nil map clones to an
// empty map.
func (d FormData) Clone() FormData {
	out := make(FormData, len(d))
	for key, value := range d {
		out[key] = value
	}
	return out
}

// Lookup returns the value stored for id and whether it is present.
func (d FormData) Lookup(id string) (any, bool) {
	if d == nil {
		return nil, false
	}
	value, ok := d[id]
	return value, ok
}
