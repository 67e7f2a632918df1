package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/definition"
	"github.com/goliatone/go-formbuilder/pkg/store"
)

type rootOptions struct {
	definition string
	debug      bool
	logLevel   string
	logger     *logrus.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{logger: logrus.New()}

	cmd := &cobra.Command{
		Use:           "formbuilder",
		Short:         "Build, fill and inspect form definitions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := logrus.ParseLevel(opts.logLevel)
			if err != nil {
				return fmt.Errorf("--log-level: %w", err)
			}
			if opts.debug {
				level = logrus.DebugLevel
			}
			opts.logger.SetOutput(cmd.ErrOrStderr())
			opts.logger.SetLevel(level)
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.definition, "definition", "d", "", "form definition file (JSON or YAML)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging (same as --log-level debug)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", logrus.WarnLevel.String(), "log level: panic, fatal, error, warn, info, debug or trace")

	cmd.AddCommand(
		newNewCmd(opts),
		newFillCmd(opts),
		newSummaryCmd(opts),
		newSchemaCmd(opts),
		newValidateCmd(opts),
	)
	return cmd
}

func (o *rootOptions) load() (definition.Definition, error) {
	if o.definition == "" {
		return definition.Definition{}, errors.New("--definition is required")
	}
	def, err := definition.Load(o.definition)
	if err != nil {
		return definition.Definition{}, err
	}
	o.logger.WithFields(logrus.Fields{
		"path":   o.definition,
		"fields": len(def.Fields),
	}).Debug("definition loaded")
	return def, nil
}

func (o *rootOptions) session(def definition.Definition, extra ...store.Option) *store.Store {
	options := append([]store.Option{
		store.WithLogger(o.logger),
		store.WithState(def.State()),
	}, extra...)
	return store.New(options...)
}

// writeOutput writes data to path, or to out when path is empty.
func writeOutput(out io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
