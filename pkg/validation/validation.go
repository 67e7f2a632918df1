package validation

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"unicode/utf16"

	"github.com/goliatone/go-formbuilder/internal/coerce"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ErrInvalidPattern reports a pattern rule whose source does not compile.
var ErrInvalidPattern = errors.New("validation: invalid pattern")

// ValidateField runs the rules of field against value and returns the
// message of the first rule that fails. An empty message means the value is
// valid. Sections and fields without rules always pass.
//
// The only error returned is ErrInvalidPattern (wrapped) for a pattern rule
// that cannot be compiled; it is never reported as a silent pass.
func ValidateField(field model.Field, value any, values model.FormData) (string, error) {
	for _, rule := range field.Rules() {
		failed, err := violates(rule, value, values)
		if err != nil {
			return "", err
		}
		if failed {
			return Message(rule), nil
		}
	}
	return "", nil
}

// Message returns the message shown when rule fails, falling back to a
// default per rule type when the rule leaves it empty.
func Message(rule model.ValidationRule) string {
	if rule.Message != "" {
		return rule.Message
	}
	switch rule.Type {
	case model.RuleRequired:
		return "This field is required"
	case model.RuleMinLength:
		return fmt.Sprintf("Minimum length is %v characters", rule.Value)
	case model.RuleMaxLength:
		return fmt.Sprintf("Maximum length is %v characters", rule.Value)
	case model.RulePattern:
		return "Invalid format"
	default:
		return "Invalid value"
	}
}

func violates(rule model.ValidationRule, value any, values model.FormData) (bool, error) {
	switch rule.Type {
	case model.RuleRequired:
		return !coerce.Truthy(value), nil
	case model.RuleMinLength:
		text, ok := value.(string)
		if !ok {
			return false, nil
		}
		return float64(textLength(text)) < bound(rule.Value), nil
	case model.RuleMaxLength:
		text, ok := value.(string)
		if !ok {
			return false, nil
		}
		return float64(textLength(text)) > bound(rule.Value), nil
	case model.RulePattern:
		text, ok := value.(string)
		if !ok {
			return false, nil
		}
		re, err := compilePattern(rule.Value)
		if err != nil {
			return false, err
		}
		return !re.MatchString(text), nil
	case model.RuleCustom:
		if rule.Validator == nil {
			return false, nil
		}
		return !rule.Validator(value, values), nil
	default:
		return false, nil
	}
}

// textLength counts UTF-16 code units, so characters outside the Basic
// Multilingual Plane such as emoji count twice.
func textLength(text string) int {
	return len(utf16.Encode([]rune(text)))
}

// bound converts a length rule value. A missing or non-numeric bound yields
// NaN, which makes every comparison false so the rule passes.
func bound(value any) float64 {
	if value == nil {
		return math.NaN()
	}
	return coerce.Number(value)
}

func compilePattern(source any) (*regexp.Regexp, error) {
	var expr string
	switch v := source.(type) {
	case nil:
		expr = ""
	case string:
		expr = v
	default:
		expr = coerce.String(v)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, expr, err)
	}
	return re, nil
}
