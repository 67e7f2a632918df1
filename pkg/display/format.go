package display

import (
	"time"

	"github.com/goliatone/go-formbuilder/internal/coerce"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// NoValue is shown for fields without an entered value.
const NoValue = "No value"

// EmptyMessage is shown instead of the field list when nothing was entered.
const EmptyMessage = "No form data yet. Start filling out the form to see the data here."

// FormatValue renders value the way the summary shows it for field.
func FormatValue(field model.Field, value any) string {
	if value == nil {
		return NoValue
	}

	switch field.Type() {
	case model.FieldTypeCheckbox:
		if coerce.Truthy(value) {
			return "Yes"
		}
		return "No"
	case model.FieldTypeDate:
		switch v := value.(type) {
		case time.Time:
			return v.Format(model.DateLayout)
		case *time.Time:
			if v == nil {
				return NoValue
			}
			return v.Format(model.DateLayout)
		}
	case model.FieldTypeFile:
		if name := fileName(value); name != "" {
			return name
		}
		return "File uploaded"
	case model.FieldTypeDropdown, model.FieldTypeRadio:
		if s, ok := value.(string); ok {
			if label, found := field.OptionLabel(s); found {
				return label
			}
		}
	case model.FieldTypePhone:
		if phone, ok := phoneValue(value); ok {
			return phone.Code + " " + phone.Number
		}
	}
	return coerce.String(value)
}

func fileName(value any) string {
	switch v := value.(type) {
	case model.FileRef:
		return v.Name
	case *model.FileRef:
		if v != nil {
			return v.Name
		}
	case map[string]any:
		if name, ok := v["name"].(string); ok {
			return name
		}
	}
	return ""
}

func phoneValue(value any) (model.Phone, bool) {
	switch v := value.(type) {
	case model.Phone:
		return v, true
	case *model.Phone:
		if v != nil {
			return *v, true
		}
	case map[string]any:
		code, _ := v["code"].(string)
		number, _ := v["number"].(string)
		return model.Phone{Code: code, Number: number}, true
	}
	return model.Phone{}, false
}
