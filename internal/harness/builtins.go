package harness

import (
	"fmt"

	"github.com/seqlab/comprehend/internal/eval"
	"github.com/seqlab/comprehend/internal/value"
)

// registerBuiltins installs the helper functions scenarios may call.
// The engine itself ships no functions; these exist so scenario files
// can express the classic examples (coprime pairs and friends) without
// a host program.
func registerBuiltins(env *eval.Env) {
	env.DefineFunc("gcd", builtinGCD)
	env.DefineFunc("abs", builtinAbs)
	env.DefineFunc("min", builtinMin)
	env.DefineFunc("max", builtinMax)
}

func intArgs(name string, args []value.Value, want int) ([]int64, error) {
	if len(args) != want {
		return nil, fmt.Errorf("%s: want %d arguments, got %d", name, want, len(args))
	}
	out := make([]int64, len(args))
	for i, a := range args {
		n, ok := a.(value.Int)
		if !ok {
			return nil, fmt.Errorf("%s: argument %d is %s, want Int", name, i+1, value.TypeName(a))
		}
		out[i] = int64(n)
	}
	return out, nil
}

func builtinGCD(args []value.Value) (value.Value, error) {
	ns, err := intArgs("gcd", args, 2)
	if err != nil {
		return nil, err
	}
	a, b := ns[0], ns[1]
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return value.Int(a), nil
}

func builtinAbs(args []value.Value) (value.Value, error) {
	ns, err := intArgs("abs", args, 1)
	if err != nil {
		return nil, err
	}
	if ns[0] < 0 {
		return value.Int(-ns[0]), nil
	}
	return value.Int(ns[0]), nil
}

func builtinMin(args []value.Value) (value.Value, error) {
	ns, err := intArgs("min", args, 2)
	if err != nil {
		return nil, err
	}
	return value.Int(min(ns[0], ns[1])), nil
}

func builtinMax(args []value.Value) (value.Value, error) {
	ns, err := intArgs("max", args, 2)
	if err != nil {
		return nil, err
	}
	return value.Int(max(ns[0], ns[1])), nil
}
