package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/seqlab/comprehend/internal/compile"
	"github.com/seqlab/comprehend/internal/eval"
	"github.com/seqlab/comprehend/internal/store"
	"github.com/seqlab/comprehend/internal/value"
	"github.com/seqlab/comprehend/seq"
)

// Result captures one scenario execution.
type Result struct {
	// RunID is the token assigned to this execution.
	RunID string

	// Scenario is the scenario name.
	Scenario string

	// Terminal is the terminal that was applied.
	Terminal string

	// Output is the terminal's result. Nil when the run failed.
	Output value.Value

	// Err is the runtime or compile failure, if any.
	Err error

	// Passed reports whether the outcome matched the scenario's
	// expectation. Scenarios without expect/expect_error pass when the
	// run succeeds.
	Passed bool
}

// Run executes a scenario with UUIDv7 run tokens.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithTokens(scenario, UUIDv7Generator{})
}

// RunWithTokens executes a scenario, drawing the run token from gen.
//
// Each run is fully isolated: values, datasets, and tables are rebuilt
// from the scenario, and table-backed scenarios get a fresh in-memory
// database. The returned error covers harness failures (bad bindings,
// unusable database); program failures land in Result.Err so that
// expect_error scenarios can match on them.
func RunWithTokens(scenario *Scenario, gen TokenGenerator) (*Result, error) {
	result := &Result{
		RunID:    gen.Generate(),
		Scenario: scenario.Name,
		Terminal: scenario.Terminal,
	}

	ctx := context.Background()
	env := eval.NewEnv()
	registerBuiltins(env)

	for name, raw := range scenario.Values {
		v, err := value.FromNative(raw)
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", name, err)
		}
		env.Define(name, v)
	}

	for name, items := range scenario.Datasets {
		vals, err := nativeItems(name, items)
		if err != nil {
			return nil, err
		}
		env.Define(name, value.Stream{Name: name, Source: seq.FromSlice(vals)})
	}

	if len(scenario.Tables) > 0 {
		st, err := store.Open(":memory:")
		if err != nil {
			return nil, fmt.Errorf("open scenario database: %w", err)
		}
		defer st.Close()
		if err := seedTables(ctx, st, env, scenario.Tables); err != nil {
			return nil, err
		}
	}

	prog, err := compile.Compile(scenario.Program, compile.SymbolsFromEnv(env))
	if err != nil {
		result.Err = err
	} else {
		result.Output, result.Err = applyTerminal(scenario, prog.Seq(env))
	}

	result.Passed = outcomeMatches(scenario, result)
	return result, nil
}

func nativeItems(name string, items []any) ([]value.Value, error) {
	vals := make([]value.Value, len(items))
	for i, item := range items {
		v, err := value.FromNative(item)
		if err != nil {
			return nil, fmt.Errorf("dataset %q item %d: %w", name, i, err)
		}
		vals[i] = v
	}
	return vals, nil
}

// seedTables creates one single-column table per entry and binds each
// as a stream source.
func seedTables(ctx context.Context, st *store.Store, env *eval.Env, tables map[string][]any) error {
	for name, items := range tables {
		if err := st.Exec(ctx, fmt.Sprintf(`CREATE TABLE "%s" (v NOT NULL)`, name)); err != nil {
			return fmt.Errorf("create table %q: %w", name, err)
		}
		for i, item := range items {
			if err := st.Exec(ctx, fmt.Sprintf(`INSERT INTO "%s" (v) VALUES (?)`, name), item); err != nil {
				return fmt.Errorf("seed table %q row %d: %w", name, i, err)
			}
		}
		ds, err := st.Dataset(ctx, name)
		if err != nil {
			return err
		}
		env.Define(name, ds)
	}
	return nil
}

func applyTerminal(scenario *Scenario, items seq.Seq[value.Value]) (value.Value, error) {
	switch scenario.Terminal {
	case TerminalCollect:
		vals, err := seq.Collect(items)
		if err != nil {
			return nil, err
		}
		return value.List(vals), nil

	case TerminalTake:
		vals, err := seq.Collect(items.Take(scenario.Take))
		if err != nil {
			return nil, err
		}
		return value.List(vals), nil

	case TerminalCount:
		n, err := seq.Count(items)
		if err != nil {
			return nil, err
		}
		return value.Int(n), nil

	case TerminalSumInt:
		n, err := foldInt(items, 0, func(a, b int64) int64 { return a + b })
		return value.Int(n), err

	case TerminalProductInt:
		n, err := foldInt(items, 1, func(a, b int64) int64 { return a * b })
		return value.Int(n), err

	case TerminalSumFloat:
		f, err := foldFloat(items, 0, func(a, b float64) float64 { return a + b })
		return value.Float(f), err

	case TerminalProductFloat:
		f, err := foldFloat(items, 1, func(a, b float64) float64 { return a * b })
		return value.Float(f), err

	default:
		return nil, fmt.Errorf("unknown terminal %q", scenario.Terminal)
	}
}

func foldInt(items seq.Seq[value.Value], identity int64, combine func(int64, int64) int64) (int64, error) {
	return seq.Fold(items, identity, func(acc int64, v value.Value) (int64, error) {
		n, ok := v.(value.Int)
		if !ok {
			return 0, fmt.Errorf("fold: item is %s, want Int", value.TypeName(v))
		}
		return combine(acc, int64(n)), nil
	})
}

func foldFloat(items seq.Seq[value.Value], identity float64, combine func(float64, float64) float64) (float64, error) {
	return seq.Fold(items, identity, func(acc float64, v value.Value) (float64, error) {
		switch n := v.(type) {
		case value.Int:
			return combine(acc, float64(n)), nil
		case value.Float:
			return combine(acc, float64(n)), nil
		default:
			return 0, fmt.Errorf("fold: item is %s, want Int or Float", value.TypeName(v))
		}
	})
}

func outcomeMatches(scenario *Scenario, result *Result) bool {
	if scenario.ExpectError != "" {
		return result.Err != nil && strings.Contains(result.Err.Error(), scenario.ExpectError)
	}
	if result.Err != nil {
		return false
	}
	if scenario.Expect == nil {
		return true
	}
	expected, err := value.FromNative(scenario.Expect)
	if err != nil {
		return false
	}
	return expectEqual(result.Output, expected)
}

// expectEqual compares an output against a YAML-sourced expectation.
// YAML has no tuple syntax, so an expected list also matches a tuple
// with the same elements; everything else uses strict value equality.
func expectEqual(got, want value.Value) bool {
	gs, gok := elements(got)
	ws, wok := elements(want)
	if gok && wok {
		if len(gs) != len(ws) {
			return false
		}
		for i := range gs {
			if !expectEqual(gs[i], ws[i]) {
				return false
			}
		}
		return true
	}
	return value.Equal(got, want)
}

func elements(v value.Value) ([]value.Value, bool) {
	switch n := v.(type) {
	case value.Tuple:
		return n, true
	case value.List:
		return n, true
	default:
		return nil, false
	}
}
