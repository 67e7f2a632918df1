// Package validation evaluates the validation rules attached to a field.
//
// Rules run in declaration order and the first failing rule decides the
// error message. The required rule uses plain truthiness: an empty string,
// false, 0 and an absent value all count as unanswered, so a legitimate false
// or 0 answer cannot satisfy it. Length and pattern rules only inspect string
// values; any other value passes them untouched.
package validation
