package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/openapi"
)

func newSchemaCmd(opts *rootOptions) *cobra.Command {
	var (
		output  string
		format  string
		name    string
		version string
	)
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Export the definition as an OpenAPI document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			def, err := opts.load()
			if err != nil {
				return err
			}
			doc, err := openapi.Export(cmd.Context(), def.Fields,
				openapi.WithTitle(def.Title),
				openapi.WithVersion(version),
				openapi.WithSchemaName(name),
			)
			if err != nil {
				return err
			}

			var data []byte
			switch strings.ToLower(format) {
			case "yaml", "yml":
				data, err = yaml.Marshal(doc)
			case "json", "":
				data, err = json.MarshalIndent(doc, "", "  ")
				data = append(data, '\n')
			default:
				return fmt.Errorf("unknown format %q", format)
			}
			if err != nil {
				return fmt.Errorf("encode schema: %w", err)
			}
			return writeOutput(cmd.OutOrStdout(), output, data)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "json or yaml")
	cmd.Flags().StringVar(&name, "name", "FormData", "components.schemas key")
	cmd.Flags().StringVar(&version, "version", "1.0.0", "info.version")
	return cmd
}
