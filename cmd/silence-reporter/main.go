package main

import (
	"fmt"
	"os"

	"github.com/f9n/alertmanager-silences-slack-reporter/internal/cli"
	"github.com/f9n/alertmanager-silences-slack-reporter/internal/pkg/errors"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(errors.ExitCode(err))
	}
}
