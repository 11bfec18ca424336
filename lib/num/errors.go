package num

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/benz9527/xnum/lib/infra"
)

var (
	// ErrDomain matches every *DomainError through errors.Is.
	ErrDomain    = errors.New("math domain error")
	ErrNotFinite = errors.New("not a finite number")
)

// DomainError reports an input outside the set of values
// for which Func has a real-valued result.
type DomainError struct {
	Func   string
	Reason string
}

func (e *DomainError) Error() string {
	return ErrDomain.Error() + ": " + e.Func + ": " + e.Reason
}

func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}

func domainError(fn, reason string) error {
	return infra.WrapErrorStack(&DomainError{Func: fn, Reason: reason})
}

// CheckFinite is the opt-in guard for callers that need
// finite-only values. Construction never calls it.
func CheckFinite(name string, x float64) error {
	if !isFinite(x) {
		return infra.WrapErrorStackWithMessage(ErrNotFinite, fmt.Sprintf("%s = %v", name, x))
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Tolerance is both the absolute and relative bound used by ApproxEqual.
const Tolerance = 1e-9

func ApproxEqual(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, Tolerance, Tolerance)
}
