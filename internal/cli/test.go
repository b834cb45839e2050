package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seqlab/comprehend/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Filter string // scenario filter (glob pattern)
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name  string `json:"name"`
	Pass  bool   `json:"pass"`
	RunID string `json:"run_id"`
	Error string `json:"error,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run conformance scenarios",
		Long: `Run every scenario file in a directory and report pass/fail.

Scenario files are YAML, validated against the harness schema. Each
scenario compiles a program, applies its terminal, and compares the
output (or error) against the scenario's expectation.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, malformed scenarios)

Examples:
  comprehend test ./scenarios
  comprehend test ./scenarios --filter "sum_*"
  comprehend test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")

	return cmd
}

func runTests(opts *TestOptions, scenariosDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if _, err := os.Stat(scenariosDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", scenariosDir))
	}

	scenarios, err := harness.LoadDir(scenariosDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenarios", err)
	}

	result := TestResult{}
	for _, scenario := range scenarios {
		if opts.Filter != "" {
			match, err := filepath.Match(opts.Filter, scenario.Name)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid --filter pattern", err)
			}
			if !match {
				continue
			}
		}

		formatter.VerboseLog("running scenario %s", scenario.Name)
		run, err := harness.Run(scenario)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("scenario %s", scenario.Name), err)
		}

		sr := ScenarioResult{
			Name:  run.Scenario,
			Pass:  run.Passed,
			RunID: run.RunID,
		}
		if run.Err != nil {
			sr.Error = run.Err.Error()
		}
		result.Scenarios = append(result.Scenarios, sr)
		result.Total++
		if run.Passed {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if result.Total == 0 {
		return NewExitError(ExitCommandError, "no scenarios matched")
	}

	if err := formatter.SuccessText(renderTestResult(&result), result); err != nil {
		return err
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenarios failed", result.Failed, result.Total))
	}
	return nil
}

func renderTestResult(result *TestResult) string {
	var b strings.Builder
	for _, sr := range result.Scenarios {
		if sr.Pass {
			fmt.Fprintf(&b, "PASS %s\n", sr.Name)
			continue
		}
		if sr.Error != "" {
			fmt.Fprintf(&b, "FAIL %s: %s\n", sr.Name, sr.Error)
		} else {
			fmt.Fprintf(&b, "FAIL %s: output mismatch\n", sr.Name)
		}
	}
	fmt.Fprintf(&b, "%d passed, %d failed, %d total", result.Passed, result.Failed, result.Total)
	return b.String()
}
