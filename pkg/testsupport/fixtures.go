// Package testsupport provides fixtures shared by package tests.
package testsupport

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/store"
)

// SequentialIDs returns a generator yielding prefix0001, prefix0002, ... so
// tests can assert on ids deterministically.
func SequentialIDs(prefix string) model.IDGenerator {
	var (
		mu   sync.Mutex
		next int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		next++
		return fmt.Sprintf("%s%04d", prefix, next)
	}
}

// NewStore returns a session whose factory uses SequentialIDs("f").
func NewStore(t *testing.T, options ...store.Option) *store.Store {
	t.Helper()

	factory := model.NewFactory(model.WithIDGenerator(SequentialIDs("f")))
	opts := append([]store.Option{store.WithFactory(factory)}, options...)
	return store.New(opts...)
}

// Nested holds the three levels created by BuildNested.
type Nested struct {
	Root  model.Field
	Child model.Field
	Leaf  model.Field
}

// BuildNested adds a root section, a child section inside it and a text
// field inside the child, enters a value for the leaf and validates every
// field so each level has form data or error entries.
func BuildNested(t *testing.T, s *store.Store) Nested {
	t.Helper()

	root := s.AddSection("")
	child := s.AddSection(root.ID)
	leaf := s.AddField(model.FieldTypeText, child.ID)

	leaf.Input.Validations = []model.ValidationRule{{Type: model.RuleRequired, Message: "required"}}
	s.UpdateField(leaf)
	s.UpdateFormData(leaf.ID, "value")
	s.ValidateAllFields()

	return Nested{Root: root, Child: child, Leaf: leaf}
}

// CaptureOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out, buf.String()
}
