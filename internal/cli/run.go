package cli

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/njchilds90/hyperdual"
	"github.com/njchilds90/hyperdual/internal/config"
)

func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <jobfile>",
		Short: "Run one tool call described in a YAML or TOML file",
		Long: `Run one tool call described in a job file.

A job file holds the same request the server accepts on POST /tool:

  tool: gradient
  params:
    expr: {type: mul, factors: [{type: sym, name: x}, {type: sym, name: y}]}
    vars: [x, y]
    at: [3, 4]

Example:
  hyperdual run job.yaml
  hyperdual run --format json job.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(cmd, rootOpts, args[0])
		},
	}
}

func runJob(cmd *cobra.Command, opts *RootOptions, path string) error {
	req, err := config.LoadJob(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load job", err)
	}
	slog.Debug("running job", "path", path, "tool", req.Tool)

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	resp := hyperdual.HandleToolCall(req)
	if resp.Error != "" {
		_ = out.Error(resp.Error)
		return WrapExitError(ExitFailure, "tool "+req.Tool+" failed", errors.New(resp.Error))
	}
	return out.Success(resp.Result, resp.String)
}
