package model

import "strings"

var fieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeDropdown,
	FieldTypeRadio,
	FieldTypeFile,
	FieldTypeCheckbox,
	FieldTypeCountry,
	FieldTypeDate,
	FieldTypePhone,
}

// FieldTypes lists every supported field type in palette order.
func FieldTypes() []FieldType {
	return append([]FieldType(nil), fieldTypes...)
}

// ParseFieldType resolves a raw type name, ignoring case and surrounding
// whitespace.
func ParseFieldType(raw string) (FieldType, bool) {
	needle := strings.ToLower(strings.TrimSpace(raw))
	for _, candidate := range fieldTypes {
		if string(candidate) == needle {
			return candidate, true
		}
	}
	return "", false
}

// Valid reports whether t is one of the supported field types.
func (t FieldType) Valid() bool {
	for _, candidate := range fieldTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// DefaultLabel returns the label assigned to freshly created fields.
func (t FieldType) DefaultLabel() string {
	switch t {
	case FieldTypeText:
		return "Text Field"
	case FieldTypeDropdown:
		return "Dropdown"
	case FieldTypeRadio:
		return "Radio Options"
	case FieldTypeFile:
		return "File Upload"
	case FieldTypeCheckbox:
		return "Checkbox"
	case FieldTypeCountry:
		return "Country Selection"
	case FieldTypeDate:
		return "Date"
	case FieldTypePhone:
		return "Phone Number"
	default:
		return "Field"
	}
}

// DefaultOptions returns the options seeded into freshly created fields.
// Only choice based types receive options.
func (t FieldType) DefaultOptions() []FieldOption {
	switch t {
	case FieldTypeDropdown, FieldTypeRadio:
		return []FieldOption{
			{Label: "Option 1", Value: "option1"},
			{Label: "Option 2", Value: "option2"},
			{Label: "Option 3", Value: "option3"},
		}
	case FieldTypeCountry:
		return []FieldOption{
			{Label: "United States", Value: "US"},
			{Label: "United Kingdom", Value: "UK"},
			{Label: "Canada", Value: "CA"},
			{Label: "Australia", Value: "AU"},
			{Label: "Germany", Value: "DE"},
			{Label: "France", Value: "FR"},
			{Label: "Japan", Value: "JP"},
		}
	default:
		return []FieldOption{}
	}
}

// HasOptions reports whether the type renders a list of options.
func (t FieldType) HasOptions() bool {
	switch t {
	case FieldTypeDropdown, FieldTypeRadio, FieldTypeCountry:
		return true
	default:
		return false
	}
}

// SupportsPlaceholder reports whether a placeholder is meaningful for t.
func (t FieldType) SupportsPlaceholder() bool {
	switch t {
	case FieldTypeCheckbox, FieldTypeRadio, FieldTypeFile:
		return false
	default:
		return true
	}
}

// Icon returns the palette icon name for t.
func (t FieldType) Icon() string {
	switch t {
	case FieldTypeText:
		return "type"
	case FieldTypeDropdown:
		return "list"
	case FieldTypeRadio:
		return "circle-dot"
	case FieldTypeFile:
		return "upload"
	case FieldTypeCheckbox:
		return "check-square"
	case FieldTypeCountry:
		return "globe"
	case FieldTypeDate:
		return "calendar"
	case FieldTypePhone:
		return "phone"
	default:
		return "square"
	}
}
