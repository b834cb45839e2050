package eval

import (
	"github.com/seqlab/comprehend/internal/value"
)

// Func is a host function callable from comprehension expressions.
// The helper functions a comprehension calls (gcd and friends) are
// external collaborators registered by the caller, never implemented
// here.
type Func func(args []value.Value) (value.Value, error)

// Env is one scope in a lexical environment chain.
//
// A scope is written only while it is the innermost one (Define during
// pattern binding); after a child is created from it, it is effectively
// frozen. Lookup walks the chain inner to outer.
type Env struct {
	parent *Env
	vars   map[string]value.Value
	funcs  map[string]Func
}

// NewEnv creates an empty base environment.
func NewEnv() *Env {
	return &Env{}
}

// Child creates a scope whose lookups fall through to e.
func (e *Env) Child() *Env {
	return &Env{parent: e}
}

// Define binds name to v in this scope, shadowing any outer binding.
func (e *Env) Define(name string, v value.Value) {
	if e.vars == nil {
		e.vars = make(map[string]value.Value, 2)
	}
	e.vars[name] = v
}

// Lookup resolves name against this scope chain.
func (e *Env) Lookup(name string) (value.Value, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// DefineFunc registers a host function in this scope.
func (e *Env) DefineFunc(name string, f Func) {
	if e.funcs == nil {
		e.funcs = make(map[string]Func, 2)
	}
	e.funcs[name] = f
}

// LookupFunc resolves a host function against this scope chain.
func (e *Env) LookupFunc(name string) (Func, bool) {
	for s := e; s != nil; s = s.parent {
		if f, ok := s.funcs[name]; ok {
			return f, true
		}
	}
	return nil, false
}

// VarNames appends every variable name visible from this scope.
func (e *Env) VarNames(dst []string) []string {
	for s := e; s != nil; s = s.parent {
		for name := range s.vars {
			dst = append(dst, name)
		}
	}
	return dst
}

// FuncNames appends every host function name visible from this scope.
func (e *Env) FuncNames(dst []string) []string {
	for s := e; s != nil; s = s.parent {
		for name := range s.funcs {
			dst = append(dst, name)
		}
	}
	return dst
}
