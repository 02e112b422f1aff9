// Command archivist is the maintenance toolkit for the tandem chess server
// databases.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tandemchess/archivist/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Command errors already printed their report through the formatter;
		// anything else (flag parsing, unknown subcommand) is printed here.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
