package display

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formbuilder/pkg/hierarchy"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/visibility"
)

//go:embed templates/*.tpl
var defaultTemplates embed.FS

// Format selects the summary flavour.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatText, "":
		return FormatText, nil
	case FormatHTML:
		return FormatHTML, nil
	}
	return "", fmt.Errorf("display: unknown format %q", name)
}

func (f Format) template() string {
	if f == FormatHTML {
		return "summary.html.tpl"
	}
	return "summary.txt.tpl"
}

// Entry is one line of the summary.
type Entry struct {
	ID       string
	Label    string
	Type     string
	Value    string
	HasValue bool
	Section  bool
	Depth    int
	Indent   string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithFormat selects text (default) or HTML output.
func WithFormat(format Format) Option {
	return func(r *Renderer) {
		if format != "" {
			r.format = format
		}
	}
}

// WithEvaluator replaces the evaluator deciding which fields are shown.
func WithEvaluator(evaluator visibility.Evaluator) Option {
	return func(r *Renderer) {
		if evaluator != nil {
			r.evaluator = evaluator
		}
	}
}

// WithTemplates loads summary.txt.tpl and summary.html.tpl from files
// instead of the built-in templates.
func WithTemplates(files fs.FS) Option {
	return func(r *Renderer) {
		if files != nil {
			r.templates = files
		}
	}
}

// Renderer produces form data summaries.
type Renderer struct {
	format    Format
	evaluator visibility.Evaluator
	templates fs.FS
	tpl       *pongo2.Template
}

// New builds a Renderer and compiles its template.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		format:    FormatText,
		evaluator: visibility.Default,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.format != FormatText && r.format != FormatHTML {
		return nil, fmt.Errorf("display: unknown format %q", r.format)
	}

	files := r.templates
	if files == nil {
		sub, err := fs.Sub(defaultTemplates, "templates")
		if err != nil {
			return nil, fmt.Errorf("display: open templates: %w", err)
		}
		files = sub
	}
	registerFilters()

	set := pongo2.NewSet("formbuilder-display", pongo2.NewFSLoader(files))
	tpl, err := set.FromFile(r.format.template())
	if err != nil {
		return nil, fmt.Errorf("display: load template %q: %w", r.format.template(), err)
	}
	r.tpl = tpl
	return r, nil
}

// Render writes the summary of fields and data to each writer in out and
// returns it.
func (r *Renderer) Render(fields []model.Field, data model.FormData, out ...io.Writer) (string, error) {
	if r == nil || r.tpl == nil {
		return "", errors.New("display: renderer is nil")
	}

	ctx := pongo2.Context{
		"empty":   len(data) == 0,
		"message": EmptyMessage,
		"entries": Entries(fields, data, r.evaluator),
	}

	var buf bytes.Buffer
	if err := r.tpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("display: execute template: %w", err)
	}

	rendered := buf.String()
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", fmt.Errorf("display: write summary: %w", err)
		}
	}
	return rendered, nil
}

// Entries flattens fields into summary lines in display order. A field is
// skipped, with its children, when its condition fails or its controlling
// field is missing.
func Entries(fields []model.Field, data model.FormData, evaluator visibility.Evaluator) []Entry {
	if evaluator == nil {
		evaluator = visibility.Default
	}
	known := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		known[field.ID] = struct{}{}
	}

	entries := make([]Entry, 0, len(fields))
	hierarchy.Walk(fields, func(field model.Field, depth int) bool {
		if rule := field.Conditional; rule != nil {
			if _, ok := known[rule.FieldID]; !ok {
				return false
			}
			if !evaluator.Eval(rule, data) {
				return false
			}
		}

		entry := Entry{
			ID:      field.ID,
			Label:   field.Label,
			Type:    string(field.Type()),
			Section: field.IsSection(),
			Depth:   depth,
			Indent:  strings.Repeat("  ", depth),
		}
		if !entry.Section {
			value, ok := data.Lookup(field.ID)
			entry.HasValue = ok && value != nil
			entry.Value = FormatValue(field, value)
		}
		entries = append(entries, entry)
		return true
	})
	return entries
}

var (
	filtersOnce sync.Once
	textPolicy  *bluemonday.Policy
)

// registerFilters installs sanitize_html, which strips every tag from its
// input and marks the escaped result safe for output.
func registerFilters() {
	filtersOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
		if pongo2.FilterExists("sanitize_html") {
			return
		}
		_ = pongo2.RegisterFilter("sanitize_html", func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
			return pongo2.AsSafeValue(Sanitize(in.String())), nil
		})
	})
}

// Sanitize strips markup from s and escapes what remains for HTML output.
func Sanitize(s string) string {
	registerFilters()
	return strings.TrimSpace(textPolicy.Sanitize(s))
}
