package compile

import (
	"github.com/seqlab/comprehend/internal/ast"
	"github.com/seqlab/comprehend/internal/eval"
	"github.com/seqlab/comprehend/internal/parser"
	"github.com/seqlab/comprehend/internal/value"
	"github.com/seqlab/comprehend/seq"
)

// Program is a compiled comprehension: parsed, validated against a
// symbol table, and lowered into a pipeline. A Program is immutable and
// safe to run any number of times.
type Program struct {
	Source   string
	Comp     *ast.Comprehension
	pipeline eval.Pipeline
}

// Compile parses src, validates it against syms, and lowers it. A parse
// error or any validation error fails compilation; validation errors
// are returned together as a ValidationErrors value.
func Compile(src string, syms Symbols) (*Program, error) {
	c, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	if errs := Validate(c, syms); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &Program{
		Source:   src,
		Comp:     c,
		pipeline: eval.Lower(c),
	}, nil
}

// Seq builds the program's lazy item sequence against env. The sequence
// is re-iterable; each consumption re-reads the environment's bindings.
func (p *Program) Seq(env *eval.Env) seq.Seq[value.Value] {
	return p.pipeline(env)
}
