package definition_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formbuilder/pkg/definition"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/store"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

const signupYAML = `
title: Signup
fields:
  - id: s1
    label: Contact
    order: 0
  - id: f1
    name: first_name
    parentId: s1
    order: 1
    input:
      type: text
      validations:
        - type: required
          message: Name is required
        - type: minLength
          value: 2
  - id: f2
    order: 2
    input:
      type: phone
  - id: f3
    name: newsletter
    order: 3
    conditional:
      fieldId: f2
      operator: notEquals
      value: ""
    input:
      type: checkbox
values:
  f1: Ada
  f2:
    code: "+44"
    number: "20 7946"
  ghost: dropped
`

func TestParseYAML(t *testing.T) {
	t.Parallel()

	def, err := definition.Parse([]byte(signupYAML), "signup.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if def.Title != "Signup" || len(def.Fields) != 4 {
		t.Fatalf("unexpected definition %+v", def)
	}

	labels := map[string]string{}
	names := map[string]string{}
	for _, field := range def.Fields {
		labels[field.ID] = field.Label
		names[field.ID] = field.Name
	}
	wantLabels := map[string]string{"s1": "Contact", "f1": "First Name", "f2": "Phone Number", "f3": "Newsletter"}
	if diff := cmp.Diff(wantLabels, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if names["s1"] != "section_s1" || names["f2"] != "field_f2" {
		t.Fatalf("unexpected default names %v", names)
	}

	wantValues := model.FormData{
		"f1": "Ada",
		"f2": model.Phone{Code: "+44", Number: "20 7946"},
	}
	if diff := cmp.Diff(wantValues, def.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if got := def.Fields[1].Rules()[1].Value; got != 2 {
		t.Fatalf("expected integer bound, got %#v", got)
	}
}

func TestParseJSON(t *testing.T) {
	t.Parallel()

	payload := `{"fields":[{"id":"a","name":"a","label":"A","order":0,"input":{"type":"dropdown","required":false,"options":[{"label":"One","value":"1"}]}}],"values":{"a":"1"}}`
	def, err := definition.Parse([]byte(payload), "inline.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := def.Fields[0].Options(); len(got) != 1 || got[0].Label != "One" {
		t.Fatalf("unexpected options %v", got)
	}
	if def.Values["a"] != "1" {
		t.Fatalf("unexpected values %v", def.Values)
	}
}

func TestCheckReportsStructuralProblems(t *testing.T) {
	t.Parallel()

	def := definition.Definition{Fields: []model.Field{
		{ID: "a", Name: "a", Label: "A"},
		{ID: "a", Name: "dup", Label: "Dup"},
		{ID: "b", Name: "b", Label: "B", ParentID: "missing", Input: &model.Input{Type: "slider"}},
		{ID: "c", Name: "c", Label: "C", ParentID: "t", Input: &model.Input{Type: model.FieldTypeText,
			Validations: []model.ValidationRule{{Type: "email"}}}},
		{ID: "t", Name: "t", Label: "T", Input: &model.Input{Type: model.FieldTypeText}},
		{ID: "x", Name: "x", Label: "X", ParentID: "y"},
		{ID: "y", Name: "y", Label: "Y", ParentID: "x",
			Conditional: &model.ConditionalRule{FieldID: "y", Operator: "between"}},
	}}

	err := definition.Check(def)
	if !errors.Is(err, definition.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	for _, want := range []string{
		`duplicate field id "a"`,
		`field "b" references missing parent "missing"`,
		`field "b" has unknown type "slider"`,
		`field "c" has parent "t" which is not a section`,
		`field "c" has unknown rule "email"`,
		`field "y" has unknown operator "between"`,
		`field "y" is conditional on itself`,
		`field "x" is nested inside itself`,
		`field "y" is nested inside itself`,
	} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in:\n%v", want, err)
		}
	}
}

func TestParseRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	if _, err := definition.Parse([]byte("  \n"), "empty.yaml"); err == nil {
		t.Fatalf("expected error for empty input")
	}
	if _, err := definition.Parse([]byte("fields: [unclosed"), "broken.yaml"); err == nil {
		t.Fatalf("expected error for malformed input")
	}
	cyclic := "fields:\n  - id: a\n    parentId: b\n  - id: b\n    parentId: a\n"
	if _, err := definition.Parse([]byte(cyclic), "cycle.yaml"); !errors.Is(err, definition.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for cycle, got %v", err)
	}
}

func TestRoundTripThroughStore(t *testing.T) {
	t.Parallel()

	s := testsupport.NewStore(t)
	nested := testsupport.BuildNested(t, s)
	phone := s.AddField(model.FieldTypePhone, "")
	s.UpdateFormData(phone.ID, model.Phone{Code: "+1", Number: "555 0100"})
	born := s.AddField(model.FieldTypeDate, "")
	s.UpdateFormData(born.ID, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	upload := s.AddField(model.FieldTypeFile, "")
	s.UpdateFormData(upload.ID, model.FileRef{
		Name:       "cv.pdf",
		Size:       2048,
		Path:       "/tmp/cv.pdf",
		ModifiedAt: time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC),
	})

	def := definition.FromState("Nested", s.State())
	for _, format := range []definition.Format{definition.FormatJSON, definition.FormatYAML} {
		data, err := definition.Encode(def, format)
		if err != nil {
			t.Fatalf("encode %s: %v", format, err)
		}
		loaded, err := definition.Parse(data, "roundtrip."+string(format))
		if err != nil {
			t.Fatalf("parse %s: %v", format, err)
		}
		if diff := cmp.Diff(def.Fields, loaded.Fields, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("%s fields mismatch (-want +got):\n%s", format, diff)
		}
		if diff := cmp.Diff(def.Values, loaded.Values); diff != "" {
			t.Fatalf("%s values mismatch (-want +got):\n%s", format, diff)
		}

		restored := store.New(store.WithState(loaded.State()))
		if restored.FormData()[nested.Leaf.ID] != "value" {
			t.Fatalf("%s: restored session lost the leaf value", format)
		}
		later := &model.ConditionalRule{FieldID: born.ID, Operator: model.OperatorGreater, Value: 0}
		if !restored.IsFieldVisible(model.Field{ID: "after", Conditional: later}) {
			t.Fatalf("%s: restored date no longer compares numerically", format)
		}
		restored.RemoveField(nested.Root.ID)
		if len(restored.Fields()) != 3 {
			t.Fatalf("%s: expected phone, date and file fields after removal", format)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	def := definition.Definition{
		Title:  "Saved",
		Fields: []model.Field{{ID: "a", Name: "a", Label: "A", Input: &model.Input{Type: model.FieldTypeDate}}},
		Values: model.FormData{"a": time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, name := range []string{"form.json", "nested/form.yml"} {
		path := filepath.Join(dir, name)
		if err := definition.Save(path, def); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
		loaded, err := definition.Load(path)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if diff := cmp.Diff(def, loaded, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("%s mismatch (-want +got):\n%s", name, diff)
		}
	}

	handWritten := "fields:\n  - id: a\n    input:\n      type: date\nvalues:\n  a: \"2024-01-02\"\n"
	parsed, err := definition.Parse([]byte(handWritten), "dates.yaml")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	if got, ok := parsed.Values["a"].(time.Time); !ok || got.Format(model.DateLayout) != "2024-01-02" {
		t.Fatalf("expected a time.Time date, got %#v", parsed.Values["a"])
	}

	fsys := fstest.MapFS{"forms/a.yaml": {Data: []byte(signupYAML)}}
	if _, err := definition.LoadFS(fsys, "forms/a.yaml"); err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if _, err := definition.Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestFormatForPath(t *testing.T) {
	t.Parallel()

	cases := map[string]definition.Format{
		"a.yaml": definition.FormatYAML,
		"a.YML":  definition.FormatYAML,
		"a.json": definition.FormatJSON,
		"a":      definition.FormatJSON,
	}
	for path, want := range cases {
		if got := definition.FormatForPath(path); got != want {
			t.Fatalf("FormatForPath(%q) = %q, want %q", path, got, want)
		}
	}
}
