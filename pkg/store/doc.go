// Package store holds the authoritative state of a form-builder session and
// the transition function that mutates it.
//
// Reducer.Reduce is a pure function from (State, Action) to the next State;
// it never mutates its input and never fails. Operations that reference an
// unknown field id degrade to no-ops so a stale editor can retry safely.
//
// Store wraps a Reducer for one editing session. It serialises writers,
// hands out deep copies of the state, notifies subscribers after every
// transition and exposes the intent level operations used by editors
// (AddField, RemoveField, UpdateFormData, ...). Sessions are independent:
// create one Store per form and pass it explicitly or through a context with
// NewContext/FromContext.
package store
