// Package model defines the form definition entities edited by the builder.
//
// A form is a flat list of Field values. A field is either an input (it
// carries an Input payload with its type, rules and options) or a section
// (Input is nil) that groups every field whose ParentID equals its ID. The
// hierarchy is never embedded: nesting is expressed only through ParentID so
// sections can be nested to any depth and cascading removal stays a scan over
// the list. Siblings are ordered by ascending Order, not by list position.
//
// Values entered for a form live in FormData keyed by field id. Their shape
// depends on the field type: string for text, dropdown, radio and country,
// bool for checkbox, time.Time for date, FileRef for file and Phone for phone.
// The model never coerces values; garbage in for a type is stored as-is.
//
// Fields are created through a Factory so ids and order keys come from an
// explicit generator and a monotonic counter rather than the wall clock.
package model
