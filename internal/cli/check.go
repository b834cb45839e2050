package cli

import (
	"github.com/spf13/cobra"

	"github.com/seqlab/comprehend/internal/compile"
	"github.com/seqlab/comprehend/internal/parser"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Vars  []string
	Funcs []string
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <program>",
		Short: "Validate a program without running it",
		Long: `Parse and validate a comprehension program: every referenced
variable must be bound by a qualifier or declared with --var, and
every called function declared with --func. All problems are
reported, not just the first.

Exit codes:
  0 - Program is valid
  1 - Parse or validation errors
  2 - Command error

Example:
  comprehend check 'x * n; x <- 0..10' --var n
  comprehend check '1; i <- 1.., gcd(i, 2) == 1' --func gcd`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Vars, "var", nil, "declare an available host variable (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Funcs, "func", nil, "declare an available host function (repeatable)")

	return cmd
}

func runCheck(opts *CheckOptions, arg string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	src, err := loadProgram(arg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load program", err)
	}

	c, err := parser.Parse(src)
	if err != nil {
		formatter.Error("E_PARSE", err.Error(), nil)
		return WrapExitError(ExitFailure, "parse failed", err)
	}

	syms := compile.Symbols{
		Vars:  make(map[string]bool, len(opts.Vars)),
		Funcs: make(map[string]bool, len(opts.Funcs)),
	}
	for _, name := range opts.Vars {
		syms.Vars[name] = true
	}
	for _, name := range opts.Funcs {
		syms.Funcs[name] = true
	}

	errs := compile.Validate(c, syms)
	if len(errs) > 0 {
		formatter.Error("E_VALIDATE", compile.ValidationErrors(errs).Error(), errs)
		return WrapExitError(ExitFailure, "validation failed", compile.ValidationErrors(errs))
	}

	return formatter.SuccessText("ok", map[string]any{"valid": true})
}
