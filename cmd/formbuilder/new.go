package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/definition"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/store"
)

func newNewCmd(opts *rootOptions) *cobra.Command {
	var (
		title   string
		section string
	)
	cmd := &cobra.Command{
		Use:   "new TYPE...",
		Short: "Create a definition with one field per TYPE",
		Long: "Create a definition with one field per TYPE, written to --definition.\n" +
			"Known types: " + typeNames(),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.definition == "" {
				return fmt.Errorf("--definition is required")
			}
			s := store.New(store.WithLogger(opts.logger))

			parentID := ""
			if section != "" {
				sec := s.AddSection("")
				sec.Label = section
				s.UpdateField(sec)
				parentID = sec.ID
			}
			for _, arg := range args {
				t, ok := model.ParseFieldType(arg)
				if !ok {
					return fmt.Errorf("unknown field type %q (known: %s)", arg, typeNames())
				}
				s.AddField(t, parentID)
			}

			def := definition.FromState(title, s.State())
			if err := definition.Save(opts.definition, def); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d fields to %s\n", len(def.Fields), opts.definition)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "Untitled form", "form title")
	cmd.Flags().StringVar(&section, "section", "", "wrap the fields in a section with this label")
	return cmd
}

func typeNames() string {
	types := model.FieldTypes()
	names := make([]string, len(types))
	for idx, t := range types {
		names[idx] = string(t)
	}
	return strings.Join(names, ", ")
}
