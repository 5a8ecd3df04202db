// Command hyperdual serves and runs the forward-mode differentiation tools.
package main

import (
	"fmt"
	"os"

	"github.com/njchilds90/hyperdual/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
