package visibility_test

import (
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/visibility"
)

func rule(op model.Operator, value any) *model.ConditionalRule {
	return &model.ConditionalRule{FieldID: "ctrl", Operator: op, Value: value}
}

func TestEvaluateConditionNilRuleIsVisible(t *testing.T) {
	t.Parallel()

	if !visibility.EvaluateCondition(nil, nil) {
		t.Fatalf("expected nil rule to be visible")
	}
}

func TestEvaluateConditionMissingControllerIsHidden(t *testing.T) {
	t.Parallel()

	for _, op := range append(visibility.Operators(), model.Operator("mystery")) {
		if visibility.EvaluateCondition(rule(op, "x"), model.FormData{"other": "x"}) {
			t.Fatalf("%s: expected hidden while controller has no value", op)
		}
	}
}

func TestEvaluateConditionOperators(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		op      model.Operator
		current any
		operand any
		want    bool
	}{
		{"equals match", model.OperatorEquals, "A", "A", true},
		{"equals mismatch", model.OperatorEquals, "A", "B", false},
		{"equals no coercion", model.OperatorEquals, "1", 1, false},
		{"equals numbers", model.OperatorEquals, 2, 2.0, true},
		{"equals bool", model.OperatorEquals, true, true, true},
		{"notEquals match", model.OperatorNotEquals, "A", "A", false},
		{"notEquals mismatch", model.OperatorNotEquals, "A", "B", true},
		{"notEquals nil", model.OperatorNotEquals, nil, "A", true},
		{"contains", model.OperatorContains, "hello", "ell", true},
		{"contains miss", model.OperatorContains, "hello", "xyz", false},
		{"contains non-string", model.OperatorContains, 12345, "23", false},
		{"contains numeric operand", model.OperatorContains, "a1b", 1, true},
		{"notContains", model.OperatorNotContains, "hello", "xyz", true},
		{"notContains hit", model.OperatorNotContains, "hello", "ell", false},
		{"notContains non-string", model.OperatorNotContains, true, "x", false},
		{"greater numeric strings", model.OperatorGreater, "10", "2", true},
		{"greater equal", model.OperatorGreater, 5, "5", false},
		{"greater NaN", model.OperatorGreater, "abc", "2", false},
		{"less", model.OperatorLess, "2", 10, true},
		{"less NaN", model.OperatorLess, "2", "ten", false},
		{"less empty string is zero", model.OperatorLess, "", 1, true},
		{"unknown operator", model.Operator("between"), "x", "y", true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := visibility.EvaluateCondition(rule(tc.op, tc.operand), model.FormData{"ctrl": tc.current})
			if got != tc.want {
				t.Fatalf("want %v got %v", tc.want, got)
			}
		})
	}
}

func TestEvaluatorFunc(t *testing.T) {
	t.Parallel()

	calls := 0
	eval := visibility.EvaluatorFunc(func(rule *model.ConditionalRule, values model.FormData) bool {
		calls++
		return rule != nil
	})
	if !eval.Eval(rule(model.OperatorEquals, "x"), nil) || calls != 1 {
		t.Fatalf("expected delegation to function")
	}
	if !visibility.Default.Eval(nil, nil) {
		t.Fatalf("expected default evaluator to show nil rules")
	}
}
