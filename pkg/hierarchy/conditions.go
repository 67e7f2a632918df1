package hierarchy

import "github.com/goliatone/go-formbuilder/pkg/model"

// ConditionCandidates lists the fields that may control the visibility of
// the field with id: every other field, in list order.
func ConditionCandidates(fields []model.Field, id string) []model.Field {
	out := make([]model.Field, 0, len(fields))
	for _, field := range fields {
		if field.ID != id {
			out = append(out, field)
		}
	}
	return out
}

// DefaultCondition returns the rule seeded when conditional logic is enabled
// on the field with id: the first candidate, compared with equals against an
// empty value. ok is false when there is no other field to depend on.
func DefaultCondition(fields []model.Field, id string) (*model.ConditionalRule, bool) {
	candidates := ConditionCandidates(fields, id)
	if len(candidates) == 0 {
		return nil, false
	}
	return &model.ConditionalRule{
		FieldID:  candidates[0].ID,
		Operator: model.OperatorEquals,
		Value:    "",
	}, true
}
