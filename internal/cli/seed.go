package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/njchilds90/hyperdual"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	Eps  float64
	With []float64
}

func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed <derive1|derive2|derive3> <x>...",
		Short: "Print seeded jets for a scalar or array input",
		Long: `Print the jets derive1, derive2 or derive3 build from an input.

One value is a scalar, several values are an array. --eps turns a scalar into
a dual number for nested jets; --with gives derive2 a second variable group.

Example:
  hyperdual seed derive1 1 2 3
  hyperdual seed derive2 2 --eps 1
  hyperdual seed derive2 1 2 --with 3,4,5
  hyperdual seed derive3 2`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, opts, args[0], args[1:])
		},
	}

	cmd.Flags().Float64Var(&opts.Eps, "eps", 0, "derivative part of a dual input (scalar only)")
	cmd.Flags().Float64SliceVar(&opts.With, "with", nil, "second variable group for derive2")
	return cmd
}

func runSeed(cmd *cobra.Command, opts *SeedOptions, kind string, args []string) error {
	x, err := parseInput(args)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid input", err)
	}
	if cmd.Flags().Changed("eps") {
		if len(args) != 1 {
			return NewExitError(ExitCommandError, "--eps needs a single value")
		}
		x = hyperdual.Nested(hyperdual.NewDual64(x.Values()[0], opts.Eps))
	}

	var jets []hyperdual.Jet
	switch kind {
	case "derive1":
		jets, err = hyperdual.Derive1(x)
	case "derive2":
		if cmd.Flags().Changed("with") {
			var second []hyperdual.Jet
			jets, second, err = hyperdual.Derive2Pair(x, inputOf(opts.With))
			jets = append(jets, second...)
		} else {
			jets, err = hyperdual.Derive2(x)
		}
	case "derive3":
		var j hyperdual.Jet
		j, err = hyperdual.Derive3(x)
		jets = []hyperdual.Jet{j}
	default:
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown seed kind %q: must be derive1, derive2 or derive3", kind))
	}
	if err != nil {
		return WrapExitError(ExitFailure, kind+" failed", err)
	}

	strs := make([]string, len(jets))
	for i, j := range jets {
		strs[i] = j.String()
	}
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return out.Success(strs, strings.Join(strs, "\n"))
}

func parseInput(args []string) (hyperdual.Input, error) {
	xs := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return hyperdual.Input{}, fmt.Errorf("argument %d: %w", i+1, err)
		}
		xs[i] = v
	}
	return inputOf(xs), nil
}

func inputOf(xs []float64) hyperdual.Input {
	if len(xs) == 1 {
		return hyperdual.Scalar(xs[0])
	}
	return hyperdual.Vector(xs...)
}
