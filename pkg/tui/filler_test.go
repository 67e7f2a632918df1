package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/store"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

// stubDriver replays scripted answers. Input answers rejected by the
// prompt's validator are consumed and counted, the way a terminal would ask
// again.
type stubDriver struct {
	inputs    []string
	selectIdx []int
	confirm   []bool
	infos     []string
	prompts   []string
	rejected  int
	err       error

	inputPos   int
	selectPos  int
	confirmPos int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	for {
		if s.err != nil {
			return "", s.err
		}
		if s.inputPos >= len(s.inputs) {
			return "", errors.New("no input scripted")
		}
		val := s.inputs[s.inputPos]
		s.inputPos++
		if cfg.Validator != nil && cfg.Validator(val) != nil {
			s.rejected++
			continue
		}
		return val, nil
	}
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func label(s *store.Store, field model.Field, text string) model.Field {
	field.Label = text
	s.UpdateField(field)
	return field
}

func TestFillWalksVisibleFields(t *testing.T) {
	s := testsupport.NewStore(t)

	sec := label(s, s.AddSection(""), "Profile")
	name := s.AddField(model.FieldTypeText, sec.ID)
	name.Label = "Name"
	name.Input.Validations = []model.ValidationRule{
		{Type: model.RuleRequired},
		{Type: model.RuleMinLength, Value: 2},
	}
	s.UpdateField(name)

	agree := label(s, s.AddField(model.FieldTypeCheckbox, ""), "Agree")
	reason := label(s, s.AddField(model.FieldTypeText, ""), "Reason")
	reason.Conditional = &model.ConditionalRule{FieldID: agree.ID, Operator: model.OperatorEquals, Value: true}
	s.UpdateField(reason)

	plan := label(s, s.AddField(model.FieldTypeDropdown, ""), "Plan")
	phone := label(s, s.AddField(model.FieldTypePhone, ""), "Phone")

	hidden := label(s, s.AddSection(""), "Refusal")
	hidden.Conditional = &model.ConditionalRule{FieldID: agree.ID, Operator: model.OperatorEquals, Value: false}
	s.UpdateField(hidden)
	label(s, s.AddField(model.FieldTypeText, hidden.ID), "Why not")

	born := label(s, s.AddField(model.FieldTypeDate, ""), "Born")

	driver := &stubDriver{
		inputs:    []string{"A", "Ada", "curious", "20 7946", "not a date", "2024-05-06"},
		confirm:   []bool{true},
		selectIdx: []int{1, 1},
	}
	filler := New(WithPromptDriver(driver))

	valid, err := filler.Fill(context.Background(), s)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if !valid {
		t.Fatalf("expected valid form, errors %v", s.Errors())
	}

	want := model.FormData{
		name.ID:   "Ada",
		agree.ID:  true,
		reason.ID: "curious",
		plan.ID:   "option2",
		phone.ID:  model.Phone{Code: "+44", Number: "20 7946"},
		born.ID:   time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
	}
	if diff := cmp.Diff(want, s.FormData()); diff != "" {
		t.Fatalf("form data mismatch (-want +got):\n%s", diff)
	}
	if driver.rejected != 2 {
		t.Fatalf("expected 2 rejected answers, got %d", driver.rejected)
	}
	if diff := cmp.Diff([]string{"== Profile =="}, driver.infos); diff != "" {
		t.Fatalf("headings mismatch (-want +got):\n%s", diff)
	}
	for _, prompt := range driver.prompts {
		if prompt == "Why not" {
			t.Fatalf("field inside hidden section was prompted")
		}
	}
}

func TestFillStoresDatesAsTime(t *testing.T) {
	s := testsupport.NewStore(t)
	start := label(s, s.AddField(model.FieldTypeDate, ""), "Start")
	// shown once a date has been entered, since any date compares above zero
	note := label(s, s.AddField(model.FieldTypeText, ""), "Note")
	note.Conditional = &model.ConditionalRule{FieldID: start.ID, Operator: model.OperatorGreater, Value: 0}
	s.UpdateField(note)

	driver := &stubDriver{inputs: []string{"2024-01-02", "late start"}}
	if _, err := New(WithPromptDriver(driver)).Fill(context.Background(), s); err != nil {
		t.Fatalf("fill: %v", err)
	}

	got, ok := s.FormData()[start.ID].(time.Time)
	if !ok {
		t.Fatalf("expected time.Time date, got %T", s.FormData()[start.ID])
	}
	if !got.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", got)
	}
	if s.FormData()[note.ID] != "late start" {
		t.Fatalf("expected dependent field to be prompted, prompts %v", driver.prompts)
	}
}

func TestFillDateDefaultUsesDateLayout(t *testing.T) {
	s := testsupport.NewStore(t)
	start := s.AddField(model.FieldTypeDate, "")
	s.UpdateFormData(start.ID, time.Date(2023, 7, 8, 0, 0, 0, 0, time.UTC))

	var seen string
	driver := &defaultRecorder{stubDriver: &stubDriver{inputs: []string{"2023-07-09"}}, seen: &seen}
	if _, err := New(WithPromptDriver(driver)).Fill(context.Background(), s); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if seen != "2023-07-08" {
		t.Fatalf("expected previous date as default, got %q", seen)
	}
}

type defaultRecorder struct {
	*stubDriver
	seen *string
}

func (d *defaultRecorder) Input(ctx context.Context, cfg InputConfig) (string, error) {
	*d.seen = cfg.Default
	return d.stubDriver.Input(ctx, cfg)
}

func TestFillAcceptsAnswersWhenPatternIsBroken(t *testing.T) {
	s := testsupport.NewStore(t)
	code := label(s, s.AddField(model.FieldTypeText, ""), "Code")
	code.Input.Validations = []model.ValidationRule{{Type: model.RulePattern, Value: "(", Message: "bad code"}}
	s.UpdateField(code)

	driver := &stubDriver{inputs: []string{"abc"}}
	valid, err := New(WithPromptDriver(driver)).Fill(context.Background(), s)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if driver.rejected != 0 {
		t.Fatalf("expected answer to be accepted, %d rejected", driver.rejected)
	}
	if s.FormData()[code.ID] != "abc" {
		t.Fatalf("expected answer stored, got %v", s.FormData())
	}
	if valid || !strings.Contains(s.Error(code.ID), "invalid pattern") {
		t.Fatalf("expected the broken rule on the field, got valid=%v error=%q", valid, s.Error(code.ID))
	}
}

func TestFillSkipsEmptyOptionalAnswers(t *testing.T) {
	s := testsupport.NewStore(t)
	optional := s.AddField(model.FieldTypeText, "")

	driver := &stubDriver{inputs: []string{""}}
	valid, err := New(WithPromptDriver(driver)).Fill(context.Background(), s)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if !valid {
		t.Fatalf("optional field should not fail")
	}
	if _, ok := s.FormData()[optional.ID]; ok {
		t.Fatalf("empty answer should not be stored")
	}
}

func TestFillReportsInvalidForm(t *testing.T) {
	s := testsupport.NewStore(t)
	field := s.AddField(model.FieldTypeCheckbox, "")
	field.Input.Validations = []model.ValidationRule{{Type: model.RuleRequired, Message: "must agree"}}
	s.UpdateField(field)

	driver := &stubDriver{confirm: []bool{false}}
	valid, err := New(WithPromptDriver(driver)).Fill(context.Background(), s)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if valid || s.Error(field.ID) != "must agree" {
		t.Fatalf("expected required checkbox to fail, got valid=%v error=%q", valid, s.Error(field.ID))
	}
}

func TestFillFileReference(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cv.pdf")
	if err := os.WriteFile(path, []byte("pdf"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	s := testsupport.NewStore(t)
	field := s.AddField(model.FieldTypeFile, "")

	driver := &stubDriver{inputs: []string{filepath.Join(dir, "missing.pdf"), path}}
	if _, err := New(WithPromptDriver(driver)).Fill(context.Background(), s); err != nil {
		t.Fatalf("fill: %v", err)
	}

	ref, ok := s.FormData()[field.ID].(model.FileRef)
	if !ok {
		t.Fatalf("expected a file reference, got %T", s.FormData()[field.ID])
	}
	if ref.Name != "cv.pdf" || ref.Size != 3 || ref.Path != path {
		t.Fatalf("unexpected reference %+v", ref)
	}
	if driver.rejected != 1 {
		t.Fatalf("expected missing path to be rejected")
	}
}

func TestFillAborted(t *testing.T) {
	s := testsupport.NewStore(t)
	s.AddField(model.FieldTypeText, "")

	driver := &stubDriver{err: ErrAborted}
	_, err := New(WithPromptDriver(driver)).Fill(context.Background(), s)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if !strings.Contains(err.Error(), "tui: prompt") {
		t.Fatalf("expected prompt context in %v", err)
	}
}

func TestFillRequiresStore(t *testing.T) {
	if _, err := New(WithPromptDriver(&stubDriver{})).Fill(context.Background(), nil); !errors.Is(err, ErrNoStore) {
		t.Fatalf("expected ErrNoStore, got %v", err)
	}
}
