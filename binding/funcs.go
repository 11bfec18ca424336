package binding

import (
	"go.uber.org/multierr"

	"github.com/benz9527/xnum/lib/num"
)

// Version of the function table.
const Version = "1.0.0"

// Function receives arguments already checked against its arity.
type Function func(args []any) (any, error)

type entry struct {
	name  string
	arity int
	doc   string
	fn    Function
}

func builtinConstants() map[string]any {
	return map[string]any{
		"e":       num.E,
		"i":       num.I,
		"version": Version,
	}
}

func builtinEntries() []*entry {
	return []*entry{
		{
			name:  "exp",
			arity: 1,
			doc:   "Return e raised to the power of x.\nexp(x: float) -> float",
			fn: func(args []any) (any, error) {
				x, err := floatArg("exp", args, 0)
				if err != nil {
					return nil, err
				}
				return num.Exp(x), nil
			},
		},
		{
			name:  "power",
			arity: 2,
			doc:   "Return x raised to the power of n.\nx is a real number, n must be an integer.\npower(x: float, n: int) -> float",
			fn: func(args []any) (any, error) {
				x, errX := floatArg("power", args, 0)
				n, errN := intArg("power", args, 1)
				if err := multierr.Combine(errX, errN); err != nil {
					return nil, err
				}
				return num.Power(x, n), nil
			},
		},
		{
			name:  "root",
			arity: 2,
			doc:   "Return the n-th root of x, x raised to the power of 1/n.\nx is a real number, n must be a non-zero integer.\nroot(x: float, n: int) -> float",
			fn: func(args []any) (any, error) {
				x, errX := floatArg("root", args, 0)
				n, errN := intArg("root", args, 1)
				if err := multierr.Combine(errX, errN); err != nil {
					return nil, err
				}
				res, err := num.Root(x, n)
				if err != nil {
					return nil, err
				}
				return res, nil
			},
		},
		{
			name:  "infinite",
			arity: 1,
			doc:   "Return a new infinite of the given sign.\nsign is a bool, \"+\" or \"-\".\ninfinite(sign) -> infinite",
			fn: func(args []any) (any, error) {
				sign, err := signArg("infinite", args, 0)
				if err != nil {
					return nil, err
				}
				return num.NewInfinite(sign), nil
			},
		},
		{
			name:  "invert",
			arity: 1,
			doc:   "Flip the sign of an infinite in place.\ninvert(inf: infinite) -> None",
			fn: func(args []any) (any, error) {
				inf, err := infiniteArg("invert", args, 0)
				if err != nil {
					return nil, err
				}
				inf.Invert()
				return nil, nil
			},
		},
		{
			name:  "is_infinite",
			arity: 1,
			doc:   "Return whether x is an infinite.\nis_infinite(x: Any) -> bool",
			fn: func(args []any) (any, error) {
				return num.IsInfinite(args[0]), nil
			},
		},
		{
			name:  "complex",
			arity: 2,
			doc:   "Return a new complex number real+imag*i.\ncomplex(real: float, imag: float) -> complex",
			fn: func(args []any) (any, error) {
				re, errRe := floatArg("complex", args, 0)
				im, errIm := floatArg("complex", args, 1)
				if err := multierr.Combine(errRe, errIm); err != nil {
					return nil, err
				}
				c := num.NewComplex(re, im)
				return &c, nil
			},
		},
		{
			name:  "conjugate",
			arity: 1,
			doc:   "Negate the imaginary part of c in place and return c itself.\nconjugate(c: complex) -> complex",
			fn: func(args []any) (any, error) {
				c, err := complexArg("conjugate", args, 0)
				if err != nil {
					return nil, err
				}
				return c.Conjugate(), nil
			},
		},
	}
}
