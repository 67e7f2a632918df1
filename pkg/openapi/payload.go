package openapi

import (
	"errors"
	"fmt"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/internal/coerce"
	"github.com/goliatone/go-formbuilder/pkg/hierarchy"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/visibility"
)

// Payload reshapes the flat per-field values into the nested structure
// described by Schema. Fields without a value and fields hidden by a
// condition (their own or a section's) are omitted. Visible sections are
// always present so required fields inside them are enforced.
func Payload(fields []model.Field, data model.FormData) map[string]any {
	groups := hierarchy.GroupByParent(fields)
	visited := make(map[string]struct{}, len(fields))
	return payloadObject(groups, "", data, visited)
}

func payloadObject(groups map[string][]model.Field, parentID string, data model.FormData, visited map[string]struct{}) map[string]any {
	siblings := groups[parentID]
	names := PropertyNames(siblings)
	out := make(map[string]any)

	for _, field := range siblings {
		if _, seen := visited[field.ID]; seen {
			continue
		}
		visited[field.ID] = struct{}{}
		if !visibility.EvaluateCondition(field.Conditional, data) {
			continue
		}

		if field.IsSection() {
			out[names[field.ID]] = payloadObject(groups, field.ID, data, visited)
			continue
		}
		value, ok := data.Lookup(field.ID)
		if !ok || value == nil {
			continue
		}
		out[names[field.ID]] = jsonValue(field, value)
	}
	return out
}

func jsonValue(field model.Field, value any) any {
	switch field.Type() {
	case model.FieldTypeCheckbox:
		return coerce.Truthy(value)
	case model.FieldTypeDate:
		switch v := value.(type) {
		case time.Time:
			return v.Format(model.DateLayout)
		case *time.Time:
			if v != nil {
				return v.Format(model.DateLayout)
			}
		}
	case model.FieldTypeFile:
		switch v := value.(type) {
		case model.FileRef:
			return v.Name
		case *model.FileRef:
			if v != nil {
				return v.Name
			}
		case map[string]any:
			return coerce.String(v["name"])
		}
	case model.FieldTypePhone:
		switch v := value.(type) {
		case model.Phone:
			return map[string]any{"code": v.Code, "number": v.Number}
		case *model.Phone:
			if v != nil {
				return map[string]any{"code": v.Code, "number": v.Number}
			}
		case map[string]any:
			out := make(map[string]any, len(v))
			for key, item := range v {
				out[key] = item
			}
			return out
		}
	}
	if s, ok := value.(string); ok {
		return s
	}
	return coerce.String(value)
}

// ValidatePayload checks the values entered for fields against Schema. All
// violations are reported, joined into one error.
func ValidatePayload(fields []model.Field, data model.FormData) error {
	payload := Payload(fields, data)
	err := Schema(fields).VisitJSON(payload, openapi3.MultiErrors())
	if err == nil {
		return nil
	}

	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		return fmt.Errorf("openapi: payload invalid: %w", errors.Join(multi...))
	}
	return fmt.Errorf("openapi: payload invalid: %w", err)
}
