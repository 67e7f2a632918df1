package main

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/display"
)

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	var (
		output string
		format string
	)
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the values entered into a definition",
		RunE: func(cmd *cobra.Command, _ []string) error {
			def, err := opts.load()
			if err != nil {
				return err
			}
			f, err := display.ParseFormat(format)
			if err != nil {
				return err
			}
			renderer, err := display.New(display.WithFormat(f))
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if _, err := renderer.Render(def.Fields, def.Values, &buf); err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, buf.Bytes())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&format, "format", "f", string(display.FormatText), "text or html")
	return cmd
}
