package binding

import (
	"errors"
	"fmt"
	"math"

	"github.com/benz9527/xnum/lib/infra"
	"github.com/benz9527/xnum/lib/num"
)

var (
	ErrUnknownFunction = errors.New("unknown function")
	ErrArgCount        = errors.New("wrong number of arguments")
	ErrArgType         = errors.New("wrong argument type")
)

func argCountError(fn string, want, got int) error {
	return infra.WrapErrorStackWithMessage(ErrArgCount,
		fmt.Sprintf("%s() takes %d argument(s) (%d given)", fn, want, got))
}

func argTypeError(fn string, pos int, want string, got any) error {
	return infra.WrapErrorStackWithMessage(ErrArgType,
		fmt.Sprintf("%s() argument %d must be %s, not %T", fn, pos+1, want, got))
}

// floatArg accepts every native integer and floating kind.
func floatArg(fn string, args []any, pos int) (float64, error) {
	switch v := args[pos].(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	}
	return 0, argTypeError(fn, pos, "a number", args[pos])
}

// intArg accepts integer kinds that fit in an int64, and
// integral floats as decoded from JSON-like hosts.
func intArg(fn string, args []any, pos int) (int64, error) {
	switch v := args[pos].(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		if uint64(v) <= math.MaxInt64 {
			return int64(v), nil
		}
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), nil
		}
	case float64:
		if v == math.Trunc(v) && v >= math.MinInt64 && v < math.MaxInt64 {
			return int64(v), nil
		}
	case float32:
		if f := float64(v); f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			return int64(f), nil
		}
	}
	return 0, argTypeError(fn, pos, "an integer", args[pos])
}

// signArg normalizes bool-like values, non-zero integers are positive.
func signArg(fn string, args []any, pos int) (num.Sign, error) {
	switch v := args[pos].(type) {
	case num.Sign:
		return v, nil
	case bool:
		return num.Sign(v), nil
	case string:
		sign, err := num.ParseSign(v)
		if err != nil {
			return num.Negative, argTypeError(fn, pos, `"+" or "-"`, v)
		}
		return sign, nil
	}
	if n, err := intArg(fn, args, pos); err == nil {
		return num.Sign(n != 0), nil
	}
	return num.Negative, argTypeError(fn, pos, "a sign", args[pos])
}

func infiniteArg(fn string, args []any, pos int) (*num.Infinite, error) {
	if inf, ok := args[pos].(*num.Infinite); ok && inf != nil {
		return inf, nil
	}
	return nil, argTypeError(fn, pos, "an infinite", args[pos])
}

func complexArg(fn string, args []any, pos int) (*num.Complex, error) {
	if c, ok := args[pos].(*num.Complex); ok && c != nil {
		return c, nil
	}
	return nil, argTypeError(fn, pos, "a complex", args[pos])
}
