// Package comprehend compiles comprehension source text into lazy
// sequence pipelines.
//
// A comprehension is a body expression plus a comma-separated qualifier
// list:
//
//	x * x; x <- 0..10, x % 2 == 0
//
// Qualifiers are, left to right: generators ("pattern <- source"),
// local bindings ("let pattern = expr"), and guards (bare boolean
// expressions). The leftmost generator varies slowest, exactly like a
// nested loop. The compiled pipeline is lazy: sources may be infinite,
// and consuming a bounded prefix evaluates only what that prefix
// demands.
//
// Host values, datasets, functions, and SQLite tables are supplied as
// compile options; every name a comprehension references must resolve
// at compile time.
package comprehend

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/seqlab/comprehend/internal/compile"
	"github.com/seqlab/comprehend/internal/eval"
	"github.com/seqlab/comprehend/internal/store"
	"github.com/seqlab/comprehend/internal/value"
	"github.com/seqlab/comprehend/seq"
)

// Func is a host function callable from comprehension expressions.
// Arguments and results use native Go types: int64, float64, bool,
// string, and []any.
type Func func(args []any) (any, error)

// Option configures the environment a program compiles and runs
// against.
type Option func(*builder) error

type builder struct {
	env     *eval.Env
	closers []io.Closer
}

func (b *builder) close() {
	for _, c := range b.closers {
		c.Close()
	}
}

// WithValue binds a native Go value to a name.
func WithValue(name string, v any) Option {
	return func(b *builder) error {
		val, err := value.FromNative(v)
		if err != nil {
			return fmt.Errorf("value %q: %w", name, err)
		}
		b.env.Define(name, val)
		return nil
	}
}

// WithDataset binds a named stream over the given items. Unlike a
// plain list value, a dataset compares equal to nothing and is only
// useful as a generator source.
func WithDataset(name string, items ...any) Option {
	return func(b *builder) error {
		vals := make([]value.Value, len(items))
		for i, item := range items {
			v, err := value.FromNative(item)
			if err != nil {
				return fmt.Errorf("dataset %q item %d: %w", name, i, err)
			}
			vals[i] = v
		}
		b.env.Define(name, value.Stream{Name: name, Source: seq.FromSlice(vals)})
		return nil
	}
}

// WithFunc registers a host function.
func WithFunc(name string, fn Func) Option {
	return func(b *builder) error {
		b.env.DefineFunc(name, func(args []value.Value) (value.Value, error) {
			native := make([]any, len(args))
			for i, a := range args {
				native[i] = value.ToNative(a)
			}
			out, err := fn(native)
			if err != nil {
				return nil, err
			}
			res, err := value.FromNative(out)
			if err != nil {
				return nil, fmt.Errorf("result: %w", err)
			}
			return res, nil
		})
		return nil
	}
}

// WithStore opens the SQLite database at path and binds each named
// table as a dataset. Table rows stream lazily and are re-queried on
// every consumption. The program owns the database handle; call Close
// when done with it.
func WithStore(path string, tables ...string) Option {
	return func(b *builder) error {
		st, err := store.Open(path)
		if err != nil {
			return err
		}
		b.closers = append(b.closers, st)
		for _, table := range tables {
			ds, err := st.Dataset(context.Background(), table)
			if err != nil {
				return err
			}
			b.env.Define(table, ds)
		}
		return nil
	}
}

// Program is a compiled comprehension bound to its environment. It is
// immutable and may be consumed any number of times; each consumption
// is an independent iteration.
type Program struct {
	prog    *compile.Program
	env     *eval.Env
	closers []io.Closer
}

// Compile parses, validates, and lowers src against the environment
// the options describe. Every variable and function src references
// must be bound by a qualifier or supplied via an option; unresolved
// names fail compilation before anything is evaluated.
func Compile(src string, opts ...Option) (*Program, error) {
	b := &builder{env: eval.NewEnv()}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			b.close()
			return nil, err
		}
	}
	prog, err := compile.Compile(src, compile.SymbolsFromEnv(b.env))
	if err != nil {
		b.close()
		return nil, err
	}
	return &Program{prog: prog, env: b.env, closers: b.closers}, nil
}

// Close releases resources owned by the program (database handles
// opened via WithStore). Programs without such resources need no Close.
func (p *Program) Close() error {
	var errs []error
	for _, c := range p.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Seq returns the program's lazy item sequence with items converted to
// native Go types. The sequence is re-iterable and safe over infinite
// sources; stop consuming to stop evaluation.
func (p *Program) Seq() seq.Seq[any] {
	return seq.Map(p.items(), func(v value.Value) (any, error) {
		return value.ToNative(v), nil
	})
}

// Collect eagerly gathers all items. Diverges on an unbounded
// pipeline; use Take for those.
func (p *Program) Collect() ([]any, error) {
	return seq.Collect(p.Seq())
}

// Take gathers at most n items.
func (p *Program) Take(n int) ([]any, error) {
	return seq.Collect(p.Seq().Take(n))
}

// Count consumes the pipeline and returns its length.
func (p *Program) Count() (int, error) {
	return seq.Count(p.items())
}

// SumInt folds the pipeline with identity 0 and operator +. Every item
// must be an Int.
func (p *Program) SumInt() (int64, error) {
	return seq.Fold(p.items(), int64(0), func(acc int64, v value.Value) (int64, error) {
		n, ok := v.(value.Int)
		if !ok {
			return 0, fmt.Errorf("sum: item is %s, want Int", value.TypeName(v))
		}
		return acc + int64(n), nil
	})
}

// SumFloat folds the pipeline with identity 0 and operator +. Items
// may be Float or Int; Int items are promoted.
func (p *Program) SumFloat() (float64, error) {
	return seq.Fold(p.items(), 0.0, func(acc float64, v value.Value) (float64, error) {
		f, err := itemAsFloat("sum", v)
		if err != nil {
			return 0, err
		}
		return acc + f, nil
	})
}

// ProductInt folds the pipeline with identity 1 and operator *. Every
// item must be an Int.
func (p *Program) ProductInt() (int64, error) {
	return seq.Fold(p.items(), int64(1), func(acc int64, v value.Value) (int64, error) {
		n, ok := v.(value.Int)
		if !ok {
			return 0, fmt.Errorf("product: item is %s, want Int", value.TypeName(v))
		}
		return acc * int64(n), nil
	})
}

// ProductFloat folds the pipeline with identity 1 and operator *.
// Items may be Float or Int; Int items are promoted.
func (p *Program) ProductFloat() (float64, error) {
	return seq.Fold(p.items(), 1.0, func(acc float64, v value.Value) (float64, error) {
		f, err := itemAsFloat("product", v)
		if err != nil {
			return 0, err
		}
		return acc * f, nil
	})
}

// Source returns the comprehension source text the program was
// compiled from.
func (p *Program) Source() string {
	return p.prog.Source
}

func (p *Program) items() seq.Seq[value.Value] {
	return p.prog.Seq(p.env)
}

func itemAsFloat(op string, v value.Value) (float64, error) {
	switch n := v.(type) {
	case value.Int:
		return float64(n), nil
	case value.Float:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%s: item is %s, want Int or Float", op, value.TypeName(v))
	}
}
