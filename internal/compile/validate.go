package compile

import (
	"fmt"
	"strings"

	"github.com/seqlab/comprehend/internal/ast"
	"github.com/seqlab/comprehend/internal/eval"
)

// Validation error codes (E100-E199)
const (
	ErrUndefinedVariable = "E101" // variable not bound by any qualifier or symbol table
	ErrUndefinedFunction = "E102" // function not registered
	ErrSourceNotIterable = "E103" // generator source is a literal with no iterable view
	ErrDuplicateBinding  = "E104" // pattern binds the same name twice
)

// ValidationError is one static error found in a comprehension.
type ValidationError struct {
	Message string  `json:"message"`
	Code    string  `json:"code"`
	Pos     ast.Pos `json:"pos"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Pos, e.Message)
}

// ValidationErrors aggregates every error found in one pass.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "\n")
}

// Symbols describes the names the host environment provides: variables
// and functions a comprehension may reference without binding them
// itself.
type Symbols struct {
	Vars  map[string]bool
	Funcs map[string]bool
}

// SymbolsFromEnv snapshots the names visible in env.
func SymbolsFromEnv(env *eval.Env) Symbols {
	s := Symbols{
		Vars:  make(map[string]bool),
		Funcs: make(map[string]bool),
	}
	for _, name := range env.VarNames(nil) {
		s.Vars[name] = true
	}
	for _, name := range env.FuncNames(nil) {
		s.Funcs[name] = true
	}
	return s
}

// Validate checks c against the symbol table before any evaluation.
// Returns all errors found (does not fail-fast).
//
// Scoping follows evaluation order: a qualifier sees the names bound by
// the qualifiers to its left plus the host symbols, and the body sees
// everything. Patterns that bind the same name twice and generator
// sources that are literals of a non-iterable shape are also rejected
// here, since no run could ever succeed.
func Validate(c *ast.Comprehension, syms Symbols) []ValidationError {
	v := &validator{syms: syms, scope: make(map[string]bool)}
	for name := range syms.Vars {
		v.scope[name] = true
	}
	v.comprehension(c)
	return v.errs
}

type validator struct {
	syms  Symbols
	scope map[string]bool
	errs  []ValidationError
}

func (v *validator) comprehension(c *ast.Comprehension) {
	for _, q := range c.Qualifiers {
		switch q := q.(type) {
		case *ast.Generator:
			v.expr(q.Source)
			v.checkStaticSource(q.Source)
			v.bind(q.Pattern)
		case *ast.LocalBinding:
			v.expr(q.Value)
			v.bind(q.Pattern)
		case *ast.Guard:
			v.expr(q.Cond)
		}
	}
	v.expr(c.Body)
}

func (v *validator) errorf(code string, pos ast.Pos, format string, args ...any) {
	v.errs = append(v.errs, ValidationError{
		Message: fmt.Sprintf(format, args...),
		Code:    code,
		Pos:     pos,
	})
}

// bind adds a pattern's names to scope, rejecting duplicates within the
// pattern itself. Shadowing an existing binding is fine.
func (v *validator) bind(p ast.Pattern) {
	seen := make(map[string]bool)
	for _, name := range p.BoundNames(nil) {
		if seen[name] {
			v.errorf(ErrDuplicateBinding, p.Position(), "pattern binds %q more than once", name)
			continue
		}
		seen[name] = true
		v.scope[name] = true
	}
}

func (v *validator) expr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.IntLit, *ast.FloatLit, *ast.StrLit, *ast.BoolLit:
		// Nothing to check.

	case *ast.Ident:
		if !v.scope[n.Name] {
			v.errorf(ErrUndefinedVariable, n.P, "undefined variable %q", n.Name)
		}

	case *ast.Unary:
		v.expr(n.X)

	case *ast.Binary:
		v.expr(n.X)
		v.expr(n.Y)

	case *ast.Call:
		if !v.syms.Funcs[n.Name] {
			v.errorf(ErrUndefinedFunction, n.P, "undefined function %q", n.Name)
		}
		for _, arg := range n.Args {
			v.expr(arg)
		}

	case *ast.RangeExpr:
		v.expr(n.Lo)
		if n.Hi != nil {
			v.expr(n.Hi)
		}

	case *ast.ListLit:
		for _, el := range n.Elems {
			v.expr(el)
		}

	case *ast.TupleLit:
		for _, el := range n.Elems {
			v.expr(el)
		}

	case *ast.CompLit:
		// A nested comprehension validates against the enclosing scope;
		// its own bindings stay local to it.
		v.nested(n.Comp)
	}
}

func (v *validator) nested(c *ast.Comprehension) {
	saved := v.scope
	v.scope = make(map[string]bool, len(saved))
	for name := range saved {
		v.scope[name] = true
	}
	v.comprehension(c)
	v.scope = saved
}

// checkStaticSource rejects generator sources whose literal form can
// never be iterable, regardless of runtime values.
func (v *validator) checkStaticSource(src ast.Expr) {
	switch src.(type) {
	case *ast.IntLit, *ast.FloatLit, *ast.BoolLit, *ast.TupleLit:
		v.errorf(ErrSourceNotIterable, src.Position(), "generator source is not iterable")
	}
}
