package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/definition"
	"github.com/goliatone/go-formbuilder/pkg/display"
	"github.com/goliatone/go-formbuilder/pkg/tui"
)

func newFillCmd(opts *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Prompt for every visible field and store the answers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			def, err := opts.load()
			if err != nil {
				return err
			}
			s := opts.session(def)

			filler := tui.New(
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout())),
				tui.WithLogger(opts.logger),
			)
			valid, err := filler.Fill(cmd.Context(), s)
			if err != nil {
				return err
			}

			target := output
			if target == "" {
				target = opts.definition
			}
			if err := definition.Save(target, definition.FromState(def.Title, s.State())); err != nil {
				return err
			}

			renderer, err := display.New()
			if err != nil {
				return err
			}
			if _, err := renderer.Render(s.Fields(), s.FormData(), cmd.OutOrStdout()); err != nil {
				return err
			}
			if !valid {
				return fmt.Errorf("form saved to %s with validation errors", target)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the filled definition here instead of overwriting --definition")
	return cmd
}
