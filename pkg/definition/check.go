package definition

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/visibility"
)

// Check reports every structural problem in def. The returned error wraps
// ErrInvalid.
func Check(def Definition) error {
	var problems []error
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format, args...))
	}

	byID := make(map[string]model.Field, len(def.Fields))
	for idx, field := range def.Fields {
		if field.ID == "" {
			report("field %d has no id", idx)
			continue
		}
		if _, dup := byID[field.ID]; dup {
			report("duplicate field id %q", field.ID)
			continue
		}
		byID[field.ID] = field
	}

	operators := make(map[model.Operator]struct{})
	for _, op := range visibility.Operators() {
		operators[op] = struct{}{}
	}

	for _, field := range def.Fields {
		if field.ID == "" {
			continue
		}
		if field.Input != nil && !field.Input.Type.Valid() {
			report("field %q has unknown type %q", field.ID, field.Input.Type)
		}
		if field.ParentID != "" {
			parent, ok := byID[field.ParentID]
			switch {
			case !ok:
				report("field %q references missing parent %q", field.ID, field.ParentID)
			case !parent.IsSection():
				report("field %q has parent %q which is not a section", field.ID, field.ParentID)
			}
		}
		for _, rule := range field.Rules() {
			if !knownRule(rule.Type) {
				report("field %q has unknown rule %q", field.ID, rule.Type)
			}
		}
		if rule := field.Conditional; rule != nil {
			if _, ok := operators[rule.Operator]; !ok {
				report("field %q has unknown operator %q", field.ID, rule.Operator)
			}
			if rule.FieldID == field.ID {
				report("field %q is conditional on itself", field.ID)
			}
		}
	}

	for _, id := range cyclic(def.Fields, byID) {
		report("field %q is nested inside itself", id)
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(problems...))
}

func knownRule(t model.RuleType) bool {
	switch t {
	case model.RuleRequired, model.RuleMinLength, model.RuleMaxLength, model.RulePattern, model.RuleCustom:
		return true
	}
	return false
}

// cyclic returns the ids, in list order, whose parent chain loops back to
// themselves.
func cyclic(fields []model.Field, byID map[string]model.Field) []string {
	var out []string
	for _, field := range fields {
		seen := map[string]struct{}{field.ID: {}}
		current := field
		for current.ParentID != "" {
			parent, ok := byID[current.ParentID]
			if !ok {
				break
			}
			if parent.ID == field.ID {
				out = append(out, field.ID)
				break
			}
			if _, loop := seen[parent.ID]; loop {
				break
			}
			seen[parent.ID] = struct{}{}
			current = parent
		}
	}
	return out
}
