// Package openapi describes a form definition as an OpenAPI 3 document so the
// data a form collects can be shared with services that consume it.
//
// Each section becomes a nested object and each input field a property whose
// type, format, enum and length constraints are derived from the field type
// and its validation rules. Payload reshapes the flat per-field values into
// the same structure, and ValidatePayload checks them against the schema.
package openapi
