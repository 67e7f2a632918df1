package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/hierarchy"
	"github.com/goliatone/go-formbuilder/pkg/openapi"
	"github.com/goliatone/go-formbuilder/pkg/store"
)

// errInvalidForm is returned when stored values fail validation.
var errInvalidForm = errors.New("form has validation errors")

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var (
		visibleOnly bool
		schema      bool
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the values stored in a definition",
		RunE: func(cmd *cobra.Command, _ []string) error {
			def, err := opts.load()
			if err != nil {
				return err
			}

			var extra []store.Option
			if visibleOnly {
				extra = append(extra, store.WithVisibleOnlyValidation())
			}
			s := opts.session(def, extra...)
			valid := s.ValidateAllFields()

			labels := hierarchy.LabelsByID(s.Fields())
			errs := s.Errors()
			ids := make([]string, 0, len(errs))
			for id, msg := range errs {
				if msg != "" {
					ids = append(ids, id)
				}
			}
			sort.Slice(ids, func(i, j int) bool { return labels[ids[i]] < labels[ids[j]] })
			out := cmd.OutOrStdout()
			for _, id := range ids {
				fmt.Fprintf(out, "%s: %s\n", labels[id], errs[id])
			}

			if schema {
				if err := openapi.ValidatePayload(s.Fields(), s.FormData()); err != nil {
					fmt.Fprintln(out, err)
					valid = false
				}
			}
			if !valid {
				return errInvalidForm
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
	cmd.Flags().BoolVar(&visibleOnly, "visible-only", false, "skip fields hidden by their condition")
	cmd.Flags().BoolVar(&schema, "schema", false, "also check values against the exported OpenAPI schema")
	return cmd
}
