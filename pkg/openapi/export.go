package openapi

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/internal/coerce"
	"github.com/goliatone/go-formbuilder/pkg/hierarchy"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

const (
	// Version is the OpenAPI version written to exported documents.
	Version = "3.0.3"

	// ExtensionFieldID records the field id behind a property.
	ExtensionFieldID = "x-formbuilder-field-id"
	// ExtensionConditional records the visibility condition of a field.
	ExtensionConditional = "x-formbuilder-conditional"
)

// Option configures Export.
type Option func(*config)

type config struct {
	title      string
	version    string
	schemaName string
}

// WithTitle sets info.title. Defaults to "Form".
func WithTitle(title string) Option {
	return func(c *config) {
		if strings.TrimSpace(title) != "" {
			c.title = strings.TrimSpace(title)
		}
	}
}

// WithVersion sets info.version. Defaults to "1.0.0".
func WithVersion(version string) Option {
	return func(c *config) {
		if strings.TrimSpace(version) != "" {
			c.version = strings.TrimSpace(version)
		}
	}
}

// WithSchemaName sets the components.schemas key. Defaults to "FormData".
func WithSchemaName(name string) Option {
	return func(c *config) {
		if strings.TrimSpace(name) != "" {
			c.schemaName = strings.TrimSpace(name)
		}
	}
}

// Export builds an OpenAPI document whose components hold the schema of the
// data collected by fields. The document is validated before it is returned.
func Export(ctx context.Context, fields []model.Field, options ...Option) (*openapi3.T, error) {
	cfg := &config{title: "Form", version: "1.0.0", schemaName: "FormData"}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	doc := &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:   cfg.title,
			Version: cfg.version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				cfg.schemaName: openapi3.NewSchemaRef("", Schema(fields)),
			},
		},
	}
	if err := doc.Validate(ctx, openapi3.DisableSchemaDefaultsValidation()); err != nil {
		return nil, fmt.Errorf("openapi: exported document invalid: %w", err)
	}
	return doc, nil
}

// Schema returns the object schema describing the values collected by
// fields.
func Schema(fields []model.Field) *openapi3.Schema {
	groups := hierarchy.GroupByParent(fields)
	visited := make(map[string]struct{}, len(fields))
	return objectSchema(groups, "", visited)
}

func objectSchema(groups map[string][]model.Field, parentID string, visited map[string]struct{}) *openapi3.Schema {
	object := openapi3.NewObjectSchema()
	siblings := groups[parentID]
	names := PropertyNames(siblings)

	for _, field := range siblings {
		if _, seen := visited[field.ID]; seen {
			continue
		}
		visited[field.ID] = struct{}{}

		var property *openapi3.Schema
		if field.IsSection() {
			property = objectSchema(groups, field.ID, visited)
		} else {
			property = inputSchema(field)
			if required(field) {
				object.Required = append(object.Required, names[field.ID])
			}
		}
		property.Title = field.Label
		property.Extensions = extensions(field)
		object.WithProperty(names[field.ID], property)
	}
	return object
}

// inputSchema maps a field type to its value schema and applies the
// field's length and pattern rules to string schemas.
func inputSchema(field model.Field) *openapi3.Schema {
	var schema *openapi3.Schema
	switch field.Type() {
	case model.FieldTypeCheckbox:
		schema = openapi3.NewBoolSchema()
	case model.FieldTypeDate:
		schema = openapi3.NewStringSchema().WithFormat("date")
	case model.FieldTypeFile:
		schema = openapi3.NewStringSchema().WithFormat("binary")
	case model.FieldTypePhone:
		schema = openapi3.NewObjectSchema().
			WithProperty("code", openapi3.NewStringSchema()).
			WithProperty("number", openapi3.NewStringSchema().WithPattern(`^[0-9\s()\-]*$`))
		schema.Required = []string{"code", "number"}
		return schema
	default:
		schema = openapi3.NewStringSchema()
		if field.Type().HasOptions() {
			if values := optionValues(field); len(values) > 0 {
				schema.WithEnum(values...)
			}
		}
	}

	if field.Input != nil && field.Input.Placeholder != "" {
		schema.Description = field.Input.Placeholder
	}
	if field.Input != nil && field.Input.DefaultValue != nil {
		schema.Default = field.Input.DefaultValue
	}
	if !schema.Type.Is(openapi3.TypeString) {
		return schema
	}

	for _, rule := range field.Rules() {
		switch rule.Type {
		case model.RuleMinLength:
			if n, ok := length(rule.Value); ok {
				schema.WithMinLength(n)
			}
		case model.RuleMaxLength:
			if n, ok := length(rule.Value); ok {
				schema.WithMaxLength(n)
			}
		case model.RulePattern:
			source := coerce.String(rule.Value)
			if _, err := regexp.Compile(source); err == nil && rule.Value != nil {
				schema.WithPattern(source)
			}
		}
	}
	return schema
}

func required(field model.Field) bool {
	if field.Conditional != nil || field.Input == nil {
		return false
	}
	if field.Input.Required {
		return true
	}
	for _, rule := range field.Rules() {
		if rule.Type == model.RuleRequired {
			return true
		}
	}
	return false
}

func optionValues(field model.Field) []any {
	options := field.Options()
	values := make([]any, 0, len(options))
	for _, option := range options {
		values = append(values, option.Value)
	}
	return values
}

func length(bound any) (int64, bool) {
	n := coerce.Number(bound)
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0, false
	}
	return int64(math.Ceil(n)), true
}

func extensions(field model.Field) map[string]any {
	out := map[string]any{ExtensionFieldID: field.ID}
	if rule := field.Conditional; rule != nil {
		out[ExtensionConditional] = map[string]any{
			"fieldId":  rule.FieldID,
			"operator": string(rule.Operator),
			"value":    rule.Value,
		}
	}
	return out
}

// PropertyNames assigns each sibling a property name: its Name, or its ID
// when the name is empty or already taken by an earlier sibling.
func PropertyNames(siblings []model.Field) map[string]string {
	names := make(map[string]string, len(siblings))
	taken := make(map[string]struct{}, len(siblings))
	for _, field := range siblings {
		name := strings.TrimSpace(field.Name)
		if _, dup := taken[name]; dup || name == "" {
			name = field.ID
		}
		taken[name] = struct{}{}
		names[field.ID] = name
	}
	return names
}
