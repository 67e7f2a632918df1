package definition

import (
	"strings"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Normalize fills in missing names and labels, restores typed date, phone and
// file values decoded as strings or maps, and drops values for unknown fields.
func Normalize(def Definition) Definition {
	out := Definition{Title: def.Title, Fields: make([]model.Field, 0, len(def.Fields))}
	byID := make(map[string]model.Field, len(def.Fields))

	for _, field := range def.Fields {
		field = field.Clone()
		field.ID = strings.TrimSpace(field.ID)
		if strings.TrimSpace(field.Label) == "" {
			field.Label = defaultLabel(field)
		}
		if strings.TrimSpace(field.Name) == "" && field.ID != "" {
			if field.IsSection() {
				field.Name = "section_" + field.ID
			} else {
				field.Name = "field_" + field.ID
			}
		}
		out.Fields = append(out.Fields, field)
		byID[field.ID] = field
	}

	if len(def.Values) > 0 {
		out.Values = make(model.FormData, len(def.Values))
		for id, value := range def.Values {
			field, ok := byID[id]
			if !ok {
				continue
			}
			out.Values[id] = typedValue(field, value)
		}
	}
	return out
}

// defaultLabel derives a label from the field's own name, falling back to the
// label new fields of its type receive.
func defaultLabel(field model.Field) string {
	if label := model.DefaultLabeler(field.Name); label != "" {
		return label
	}
	if field.IsSection() {
		return model.SectionLabel
	}
	return field.Type().DefaultLabel()
}

func typedValue(field model.Field, value any) any {
	if field.Type() == model.FieldTypeDate {
		if text, ok := value.(string); ok {
			if parsed, ok := parseTime(text); ok {
				return parsed
			}
		}
		return value
	}

	raw, ok := value.(map[string]any)
	if !ok {
		return value
	}
	switch field.Type() {
	case model.FieldTypePhone:
		code, _ := raw["code"].(string)
		number, _ := raw["number"].(string)
		return model.Phone{Code: code, Number: number}
	case model.FieldTypeFile:
		ref := model.FileRef{}
		ref.Name, _ = raw["name"].(string)
		ref.ContentType, _ = raw["contentType"].(string)
		ref.Path, _ = raw["path"].(string)
		switch size := raw["size"].(type) {
		case float64:
			ref.Size = int64(size)
		case int:
			ref.Size = int64(size)
		}
		switch modified := raw["modifiedAt"].(type) {
		case time.Time:
			ref.ModifiedAt = modified
		case string:
			ref.ModifiedAt, _ = parseTime(modified)
		}
		return ref
	}
	return value
}

// parseTime accepts the RFC 3339 text produced by encoding a time.Time and
// the plain DateLayout form written by hand.
func parseTime(text string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, model.DateLayout} {
		if parsed, err := time.Parse(layout, text); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
