package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seqlab/comprehend"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Terminal string
	Take     int
	Database string
	Tables   []string
	Set      []string
}

// validTerminals lists the terminal consumers run accepts.
var validTerminals = []string{
	"collect", "take", "count", "sum_int", "sum_float", "product_int", "product_float",
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <program>",
		Short: "Compile and run a program",
		Long: `Compile a comprehension program and consume its pipeline with the
chosen terminal.

Host bindings come from flags: --set binds plain values, --db with
--table binds SQLite tables as lazy sources. The helper functions
gcd, abs, min, and max are pre-registered.

Programs with an unbounded outer generator need --terminal take.

Example:
  comprehend run 'x * x; x <- 0..10, x % 2 == 0'
  comprehend run '(i, j); i <- 1.., j <- 1..=i, gcd(i, j) == 1' --terminal take --take 10
  comprehend run 'x; x <- 1..=10' --terminal sum_int
  comprehend run 'n * n; n <- readings' --db ./data.db --table readings`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgram(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Terminal, "terminal", "collect", "terminal consumer ("+strings.Join(validTerminals, "|")+")")
	cmd.Flags().IntVar(&opts.Take, "take", 0, "prefix length for the take terminal")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database")
	cmd.Flags().StringArrayVar(&opts.Tables, "table", nil, "bind a table from --db as a source (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Set, "set", nil, "bind a host value as name=value (repeatable)")

	return cmd
}

func runProgram(opts *RunOptions, arg string, cmd *cobra.Command) error {
	logLevel := slog.LevelWarn
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if err := validateRunFlags(opts); err != nil {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	}

	src, err := loadProgram(arg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load program", err)
	}

	copts := builtinFuncs()
	for _, kv := range opts.Set {
		name, v, err := parseBinding(kv)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --set flag", err)
		}
		logger.Debug("binding value", "name", name, "value", v)
		copts = append(copts, comprehend.WithValue(name, v))
	}
	if opts.Database != "" {
		logger.Debug("opening database", "path", opts.Database, "tables", opts.Tables)
		copts = append(copts, comprehend.WithStore(opts.Database, opts.Tables...))
	}

	logger.Debug("compiling program", "source", src)
	p, err := comprehend.Compile(src, copts...)
	if err != nil {
		formatter.Error("E_COMPILE", err.Error(), nil)
		return WrapExitError(ExitFailure, "compilation failed", err)
	}
	defer p.Close()

	output, err := consume(p, opts)
	if err != nil {
		formatter.Error("E_RUNTIME", err.Error(), nil)
		return WrapExitError(ExitFailure, "run failed", err)
	}

	return formatter.SuccessText(renderOutput(output), map[string]any{
		"terminal": opts.Terminal,
		"output":   output,
	})
}

func validateRunFlags(opts *RunOptions) error {
	valid := false
	for _, t := range validTerminals {
		if opts.Terminal == t {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown terminal %q: must be one of %v", opts.Terminal, validTerminals)
	}
	if opts.Terminal == "take" && opts.Take <= 0 {
		return fmt.Errorf("the take terminal requires --take > 0")
	}
	if opts.Terminal != "take" && opts.Take != 0 {
		return fmt.Errorf("--take is only valid with --terminal take")
	}
	if len(opts.Tables) > 0 && opts.Database == "" {
		return fmt.Errorf("--table requires --db")
	}
	return nil
}

func consume(p *comprehend.Program, opts *RunOptions) (any, error) {
	switch opts.Terminal {
	case "collect":
		return p.Collect()
	case "take":
		return p.Take(opts.Take)
	case "count":
		return p.Count()
	case "sum_int":
		return p.SumInt()
	case "sum_float":
		return p.SumFloat()
	case "product_int":
		return p.ProductInt()
	case "product_float":
		return p.ProductFloat()
	default:
		return nil, fmt.Errorf("unknown terminal %q", opts.Terminal)
	}
}

// renderOutput formats a terminal result for text output: one JSON
// line per item for item lists, the bare value for fold results.
func renderOutput(output any) string {
	items, ok := output.([]any)
	if !ok {
		return fmt.Sprint(output)
	}
	lines := make([]string, len(items))
	for i, item := range items {
		b, err := json.Marshal(item)
		if err != nil {
			lines[i] = fmt.Sprint(item)
			continue
		}
		lines[i] = string(b)
	}
	return strings.Join(lines, "\n")
}

// builtinFuncs returns the helper functions every run gets. The engine
// itself registers none; these mirror the classic comprehension
// examples.
func builtinFuncs() []comprehend.Option {
	return []comprehend.Option{
		comprehend.WithFunc("gcd", func(args []any) (any, error) {
			a, b, err := twoInts("gcd", args)
			if err != nil {
				return nil, err
			}
			if a < 0 {
				a = -a
			}
			if b < 0 {
				b = -b
			}
			for b != 0 {
				a, b = b, a%b
			}
			return a, nil
		}),
		comprehend.WithFunc("abs", func(args []any) (any, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("abs: want 1 argument, got %d", len(args))
			}
			n, ok := args[0].(int64)
			if !ok {
				return nil, fmt.Errorf("abs: argument must be an integer")
			}
			if n < 0 {
				return -n, nil
			}
			return n, nil
		}),
		comprehend.WithFunc("min", func(args []any) (any, error) {
			a, b, err := twoInts("min", args)
			if err != nil {
				return nil, err
			}
			return min(a, b), nil
		}),
		comprehend.WithFunc("max", func(args []any) (any, error) {
			a, b, err := twoInts("max", args)
			if err != nil {
				return nil, err
			}
			return max(a, b), nil
		}),
	}
}

func twoInts(name string, args []any) (int64, int64, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("%s: want 2 arguments, got %d", name, len(args))
	}
	a, aok := args[0].(int64)
	b, bok := args[1].(int64)
	if !aok || !bok {
		return 0, 0, fmt.Errorf("%s: arguments must be integers", name)
	}
	return a, b, nil
}
