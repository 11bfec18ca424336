package num

import (
	"math"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

// I is the imaginary unit.
var I = Complex{Imag: 1}

// Complex is a real/imaginary pair of float64 values.
//
// Construction performs no validation: NaN and ±Inf components are
// kept as given, and nothing is normalized. Use Validate for a
// finite-only guarantee.
type Complex struct {
	Real float64
	Imag float64
}

func NewComplex(re, im float64) Complex {
	return Complex{Real: re, Imag: im}
}

func FromComplex128(c complex128) Complex {
	return Complex{Real: real(c), Imag: imag(c)}
}

func (c Complex) Complex128() complex128 {
	return complex(c.Real, c.Imag)
}

// Conjugate negates Imag on the receiver and returns the receiver
// itself, so the "result" aliases the original value.
//
// It is kept for callers relying on that behavior. It is a mutation
// disguised as a query: prefer Conjugated, or ConjugateInPlace when
// the mutation is wanted.
func (c *Complex) Conjugate() *Complex {
	c.ConjugateInPlace()
	return c
}

func (c *Complex) ConjugateInPlace() {
	c.Imag = -c.Imag
}

// Conjugated returns the conjugate and leaves c unchanged.
func (c Complex) Conjugated() Complex {
	return Complex{Real: c.Real, Imag: -c.Imag}
}

// String renders "<real>+<imag>i", e.g. "3+4i", "3-4i", "0+Infi".
func (c Complex) String() string {
	builder := strings.Builder{}
	builder.WriteString(strconv.FormatFloat(c.Real, 'g', -1, 64))
	im := strconv.FormatFloat(c.Imag, 'g', -1, 64)
	if im[0] != '-' && im[0] != '+' {
		builder.WriteByte('+')
	}
	builder.WriteString(im)
	builder.WriteByte('i')
	return builder.String()
}

// Arithmetic below is an extension over the bare value type and
// follows the complex128 IEEE-754 rules.

func (c Complex) Add(o Complex) Complex {
	return Complex{Real: c.Real + o.Real, Imag: c.Imag + o.Imag}
}

func (c Complex) Sub(o Complex) Complex {
	return Complex{Real: c.Real - o.Real, Imag: c.Imag - o.Imag}
}

func (c Complex) Mul(o Complex) Complex {
	return FromComplex128(c.Complex128() * o.Complex128())
}

// Div by zero yields Inf or NaN components, never a panic.
func (c Complex) Div(o Complex) Complex {
	return FromComplex128(c.Complex128() / o.Complex128())
}

// Abs is the modulus |c|.
func (c Complex) Abs() float64 {
	return math.Hypot(c.Real, c.Imag)
}

func (c Complex) Equal(o Complex) bool {
	return c.Real == o.Real && c.Imag == o.Imag
}

func (c Complex) ApproxEqual(o Complex) bool {
	return ApproxEqual(c.Real, o.Real) && ApproxEqual(c.Imag, o.Imag)
}

func (c Complex) IsFinite() bool {
	return isFinite(c.Real) && isFinite(c.Imag)
}

// Validate reports every non-finite component.
func (c Complex) Validate() error {
	return multierr.Combine(
		CheckFinite("real", c.Real),
		CheckFinite("imag", c.Imag),
	)
}
