// Package definition reads and writes form definitions: the field list of a
// form together with any values already entered, as JSON or YAML.
//
// Loaded definitions are checked structurally. Ids must be unique, parents
// must exist and be sections, sections may not nest inside their own
// descendants, and types, rule kinds and operators must be known. Missing
// names and labels are filled in the way the builder names new fields.
package definition

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/store"
)

// ErrInvalid is wrapped by every structural error reported by Check.
var ErrInvalid = errors.New("definition: invalid")

// Format selects the encoding used by Encode and Save.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Definition is a serialisable form.
type Definition struct {
	Title  string         `json:"title,omitempty" yaml:"title,omitempty"`
	Fields []model.Field  `json:"fields" yaml:"fields"`
	Values model.FormData `json:"values,omitempty" yaml:"values,omitempty"`
}

// FromState captures the fields and values of a session.
func FromState(title string, state store.State) Definition {
	state = state.Clone()
	return Definition{
		Title:  title,
		Fields: state.Fields,
		Values: state.FormData,
	}
}

// State returns a session state seeded with the definition.
func (d Definition) State() store.State {
	state := store.NewState()
	for _, field := range d.Fields {
		state.Fields = append(state.Fields, field.Clone())
	}
	if d.Values != nil {
		state.FormData = d.Values.Clone()
	}
	return state
}

// Load reads and parses the definition at path.
func Load(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("definition: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads and parses the definition at path inside fsys.
func LoadFS(fsys fs.FS, path string) (Definition, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Definition{}, fmt.Errorf("definition: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes data as JSON, falling back to YAML, then normalises and
// checks the result. source names the input in error messages.
func Parse(data []byte, source string) (Definition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Definition{}, fmt.Errorf("definition: %s is empty", source)
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		def = Definition{}
		if yerr := yaml.Unmarshal(data, &def); yerr != nil {
			return Definition{}, fmt.Errorf("definition: parse %s: invalid JSON or YAML: %w", source, yerr)
		}
	}

	def = Normalize(def)
	if err := Check(def); err != nil {
		return Definition{}, fmt.Errorf("definition: %s: %w", source, err)
	}
	return def, nil
}

// Encode serialises def in format.
func Encode(def Definition, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(def); err != nil {
			return nil, fmt.Errorf("definition: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("definition: encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON, "":
		data, err := json.MarshalIndent(def, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("definition: encode json: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("definition: unknown format %q", format)
	}
}

// Save writes def to path in the format implied by its extension.
func Save(path string, def Definition) error {
	data, err := Encode(def, FormatForPath(path))
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("definition: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("definition: write %s: %w", path, err)
	}
	return nil
}
