// Package coerce holds the loose value conversions shared by the validation
// and visibility evaluators. Values arrive from input widgets untyped, so the
// evaluators apply script-like truthiness and numeric coercion instead of Go's
// strict typing.
package coerce

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Truthy reports whether value counts as answered. nil, "", false, numeric
// zero and NaN are falsy; everything else, including whitespace-only strings
// and zero-valued structs, is truthy. Nil pointers, maps and slices are falsy.
func Truthy(value any) bool {
	if value == nil {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int8:
		return v != 0
	case int16:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case uint:
		return v != 0
	case uint8:
		return v != 0
	case uint16:
		return v != 0
	case uint32:
		return v != 0
	case uint64:
		return v != 0
	case float32:
		return v != 0 && !math.IsNaN(float64(v))
	case float64:
		return v != 0 && !math.IsNaN(v)
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

// Number converts value to a float64 the way a loosely typed form runtime
// would: numeric types convert directly, strings are trimmed and parsed (an
// empty string is 0), booleans are 1 or 0, nil is 0 and times become Unix
// milliseconds. Anything else is NaN.
func Number(value any) float64 {
	if f, ok := numeric(value); ok {
		return f
	}
	switch v := value.(type) {
	case nil:
		return 0
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	case time.Time:
		return float64(v.UnixMilli())
	default:
		return math.NaN()
	}
}

// StrictEqual compares two values without type coercion. All numeric types
// share one number domain, so int 1 equals float64 1. Values of
// non-comparable types are never equal.
func StrictEqual(a, b any) bool {
	fa, aNum := numeric(a)
	fb, bNum := numeric(b)
	if aNum || bNum {
		return aNum && bNum && fa == fb
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return safeEqual(a, b)
}

// safeEqual guards against structs whose interface fields hold
// non-comparable values, which panic on ==.
func safeEqual(a, b any) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	return a == b
}

// String renders value for substring checks.
func String(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	}
	if f, ok := numeric(value); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(value)
}

func numeric(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
