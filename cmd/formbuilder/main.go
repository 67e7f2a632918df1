// Command formbuilder loads form definitions and works with them from the
// terminal: filling them in interactively, summarising entered values,
// exporting an OpenAPI schema and validating stored values.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
