package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/seqlab/comprehend/internal/ast"
	"github.com/seqlab/comprehend/internal/parser"
)

// ParseOptions holds flags for the parse command.
type ParseOptions struct {
	*RootOptions
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ParseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "parse <program>",
		Short: "Parse a program and print its AST",
		Long: `Parse a comprehension program and print the AST as JSON.

The program is either inline source text or a path to a source file.

Example:
  comprehend parse 'x * x; x <- 0..10, x % 2 == 0'
  comprehend parse ./program.comp --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(opts, args[0], cmd)
		},
	}

	return cmd
}

func runParse(opts *ParseOptions, arg string, cmd *cobra.Command) error {
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

	encoded := ast.EncodeComprehension(c)
	pretty, err := json.MarshalIndent(encoded, "", "  ")
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to encode AST", err)
	}

	return formatter.SuccessText(string(pretty), encoded)
}
