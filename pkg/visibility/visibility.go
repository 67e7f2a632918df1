// Package visibility decides whether a conditionally displayed field should
// be shown given the values currently entered in the form.
package visibility

import (
	"math"
	"strings"

	"github.com/goliatone/go-formbuilder/internal/coerce"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Evaluator determines whether a field guarded by rule is visible.
type Evaluator interface {
	Eval(rule *model.ConditionalRule, values model.FormData) bool
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(rule *model.ConditionalRule, values model.FormData) bool

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(rule *model.ConditionalRule, values model.FormData) bool {
	return fn(rule, values)
}

// Default is the Evaluator backed by EvaluateCondition.
var Default Evaluator = EvaluatorFunc(EvaluateCondition)

// EvaluateCondition reports whether a field guarded by rule is visible.
//
// A nil rule is always visible. When the controlling field has no value the
// guarded field stays hidden. Otherwise the operator decides:
//
//   - equals / notEquals: strict equality, no type coercion
//   - contains / notContains: substring test; false unless the controlling
//     value is a string
//   - greater / less: both sides coerced to numbers; NaN compares false
//
// Unknown operators leave the field visible.
func EvaluateCondition(rule *model.ConditionalRule, values model.FormData) bool {
	if rule == nil {
		return true
	}

	current, ok := values.Lookup(rule.FieldID)
	if !ok {
		return false
	}

	switch rule.Operator {
	case model.OperatorEquals:
		return coerce.StrictEqual(current, rule.Value)
	case model.OperatorNotEquals:
		return !coerce.StrictEqual(current, rule.Value)
	case model.OperatorContains:
		text, isString := current.(string)
		return isString && strings.Contains(text, coerce.String(rule.Value))
	case model.OperatorNotContains:
		text, isString := current.(string)
		return isString && !strings.Contains(text, coerce.String(rule.Value))
	case model.OperatorGreater:
		return compare(current, rule.Value) > 0
	case model.OperatorLess:
		return compare(current, rule.Value) < 0
	default:
		return true
	}
}

// compare returns 1, -1 or 0 for a numeric comparison, and 0 whenever either
// side is NaN.
func compare(left, right any) int {
	a, b := coerce.Number(left), coerce.Number(right)
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0
	}
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

// Operators lists the supported operators in the order editors offer them.
func Operators() []model.Operator {
	return []model.Operator{
		model.OperatorEquals,
		model.OperatorNotEquals,
		model.OperatorContains,
		model.OperatorNotContains,
		model.OperatorGreater,
		model.OperatorLess,
	}
}
