package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formbuilder/internal/coerce"
	"github.com/goliatone/go-formbuilder/pkg/hierarchy"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/store"
	"github.com/goliatone/go-formbuilder/pkg/validation"
	"github.com/goliatone/go-formbuilder/pkg/widgets"
)

// Filler prompts for the value of every visible field of a session, in
// display order, and writes each answer to the store as it is given. Fields
// revealed by an earlier answer are prompted; fields hidden by one, and the
// children of hidden sections, are skipped.
type Filler struct {
	driver   PromptDriver
	registry *widgets.Registry
	log      logrus.FieldLogger
}

// New constructs a Filler with the survey driver and the built-in widget
// registry unless overridden.
func New(options ...Option) *Filler {
	f := &Filler{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver(nil)
	}
	if f.registry == nil {
		f.registry = widgets.NewRegistry()
	}
	if f.log == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		f.log = logger
	}
	return f
}

// Fill runs the prompts against s and then validates every field. It
// reports whether the form is valid.
func (f *Filler) Fill(ctx context.Context, s *store.Store) (bool, error) {
	if s == nil {
		return false, ErrNoStore
	}

	var promptErr error
	hierarchy.Walk(s.Fields(), func(field model.Field, depth int) bool {
		if promptErr != nil {
			return false
		}
		if !s.IsFieldVisible(field) {
			f.log.WithField("field_id", field.ID).Debug("tui: hidden field skipped")
			return false
		}
		if err := f.prompt(ctx, s, field, depth); err != nil {
			promptErr = err
			return false
		}
		return true
	})
	if promptErr != nil {
		return false, promptErr
	}

	valid := s.ValidateAllFields()
	if !valid {
		for id, msg := range s.Errors() {
			if msg != "" {
				f.log.WithFields(logrus.Fields{"field_id": id, "error": msg}).Info("tui: field invalid")
			}
		}
	}
	return valid, nil
}

func (f *Filler) prompt(ctx context.Context, s *store.Store, field model.Field, depth int) error {
	widget, ok := f.registry.Resolve(field)
	if !ok {
		f.log.WithField("field_id", field.ID).Debug("tui: no widget for field")
		return nil
	}
	current, hasCurrent := s.FormData().Lookup(field.ID)

	var (
		value any
		set   bool
		err   error
	)
	switch widget {
	case widgets.WidgetHeading:
		return f.driver.Info(ctx, strings.Repeat("  ", depth)+"== "+field.Label+" ==")
	case widgets.WidgetToggle:
		value, set, err = f.confirm(ctx, field, current)
	case widgets.WidgetSelect:
		value, set, err = f.choose(ctx, field, current)
	case widgets.WidgetPhone:
		value, set, err = f.phone(ctx, field, current)
	case widgets.WidgetFile:
		value, set, err = f.file(ctx, field)
	case widgets.WidgetDate:
		value, set, err = f.date(ctx, s, field, current)
	default:
		value, set, err = f.text(ctx, s, field, current, nil)
	}
	if err != nil {
		return fmt.Errorf("tui: prompt %q: %w", field.Label, err)
	}
	if !set || (!hasCurrent && value == "") {
		return nil
	}
	s.UpdateFormData(field.ID, value)
	return nil
}

func (f *Filler) confirm(ctx context.Context, field model.Field, current any) (any, bool, error) {
	answer, err := f.driver.Confirm(ctx, ConfirmConfig{
		Message: field.Label,
		Default: coerce.Truthy(current),
	})
	return answer, err == nil, err
}

func (f *Filler) choose(ctx context.Context, field model.Field, current any) (any, bool, error) {
	options := field.Options()
	labels := make([]string, len(options))
	selected := 0
	for idx, option := range options {
		labels[idx] = option.Label
		if option.Value == current {
			selected = idx
		}
	}
	idx, err := f.driver.Select(ctx, SelectConfig{
		Message:      field.Label,
		Options:      labels,
		DefaultIndex: selected,
	})
	if err != nil {
		return nil, false, err
	}
	if idx < 0 || idx >= len(options) {
		return nil, false, nil
	}
	return options[idx].Value, true, nil
}

func (f *Filler) phone(ctx context.Context, field model.Field, current any) (any, bool, error) {
	existing, _ := current.(model.Phone)
	if existing.Code == "" {
		existing.Code = model.DefaultPhoneCode
	}

	codes := model.PhoneCountryCodes()
	labels := make([]string, len(codes))
	selected := 0
	for idx, code := range codes {
		labels[idx] = fmt.Sprintf("%s (%s)", code.Country, code.Code)
		if code.Code == existing.Code {
			selected = idx
		}
	}
	idx, err := f.driver.Select(ctx, SelectConfig{
		Message:      field.Label + " country code",
		Options:      labels,
		DefaultIndex: selected,
	})
	if err != nil {
		return nil, false, err
	}
	code := existing.Code
	if idx >= 0 && idx < len(codes) {
		code = codes[idx].Code
	}
	format := ""
	if entry, ok := model.LookupCountryCode(code); ok {
		format = entry.Format
	}

	number, err := f.driver.Input(ctx, InputConfig{
		Message: field.Label,
		Default: existing.Number,
		Help:    format,
		Validator: func(s string) error {
			if !model.ValidPhoneNumber(s) {
				return errors.New("only digits, spaces, parentheses and dashes are allowed")
			}
			return nil
		},
	})
	if err != nil {
		return nil, false, err
	}
	if number == "" && existing.Number == "" {
		return nil, false, nil
	}
	return model.Phone{Code: code, Number: number}, true, nil
}

func (f *Filler) file(ctx context.Context, field model.Field) (any, bool, error) {
	path, err := f.driver.Input(ctx, InputConfig{
		Message: field.Label,
		Help:    "path to a file",
		Validator: func(candidate string) error {
			if candidate == "" {
				return nil
			}
			if _, err := os.Stat(candidate); err != nil {
				return fmt.Errorf("cannot read %s", candidate)
			}
			return nil
		},
	})
	if err != nil || path == "" {
		return nil, false, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, false, err
	}
	return model.FileRef{
		Name:       filepath.Base(path),
		Size:       info.Size(),
		Path:       path,
		ModifiedAt: info.ModTime(),
	}, true, nil
}

func (f *Filler) text(ctx context.Context, s *store.Store, field model.Field, current any, check func(string) error) (any, bool, error) {
	defaultValue := ""
	switch v := current.(type) {
	case nil:
	case time.Time:
		defaultValue = v.Format(model.DateLayout)
	default:
		defaultValue = coerce.String(v)
	}
	help := ""
	if field.Input != nil {
		help = field.Input.Placeholder
	}

	answer, err := f.driver.Input(ctx, InputConfig{
		Message: field.Label,
		Default: defaultValue,
		Help:    help,
		Validator: func(candidate string) error {
			if check != nil && candidate != "" {
				if err := check(candidate); err != nil {
					return err
				}
			}
			values := s.FormData()
			values[field.ID] = candidate
			msg, err := validation.ValidateField(field, candidate, values)
			if errors.Is(err, validation.ErrInvalidPattern) {
				// accepted here; the store records the broken rule as the field error
				f.log.WithError(err).WithField("field_id", field.ID).Warn("tui: validation rule misconfigured")
				return nil
			}
			if err != nil {
				return err
			}
			if msg != "" {
				return errors.New(msg)
			}
			return nil
		},
	})
	if err != nil {
		return nil, false, err
	}
	return answer, true, nil
}

// date prompts for a DateLayout answer and stores it as a time.Time. An empty
// answer clears a previous date.
func (f *Filler) date(ctx context.Context, s *store.Store, field model.Field, current any) (any, bool, error) {
	answer, set, err := f.text(ctx, s, field, current, dateCheck)
	if err != nil || !set {
		return nil, false, err
	}
	text, _ := answer.(string)
	if text == "" {
		return "", true, nil
	}
	parsed, err := time.Parse(model.DateLayout, text)
	if err != nil {
		return nil, false, err
	}
	return parsed, true, nil
}

func dateCheck(candidate string) error {
	if _, err := time.Parse(model.DateLayout, candidate); err != nil {
		return fmt.Errorf("expected a date like %s", model.DateLayout)
	}
	return nil
}
