package num

import (
	"math"

	"github.com/benz9527/xnum/lib/infra"
)

// E is Euler's number.
const E = math.E

// Exp returns e**x. Large x overflows to +Inf, which is not an error.
func Exp(x float64) float64 {
	return math.Exp(x)
}

// Power returns x**n for an integer exponent by repeated squaring.
// The exponent is never narrowed to a float, so large n keep their
// exact value. Power(x, 0) is 1 for every x and Power(x, -n) is 1/Power(x, n).
func Power[N infra.Integer](x float64, n N) float64 {
	if n == 0 {
		return 1
	}
	mag, neg := magnitude(n)
	if x == 0 || math.IsInf(x, 0) || math.IsNaN(x) {
		return powerSpecial(x, mag, neg)
	}

	// x**mag = a1 * 2**ae, the binary exponent is kept apart from the
	// mantissa so 1/x**mag can still land in the subnormal range.
	a1, ae := 1.0, 0
	xf, xe := math.Frexp(x)
	for i := mag; i != 0; i >>= 1 {
		if xe < -1<<12 || 1<<12 < xe {
			// Overflows or underflows whatever the remaining bits are.
			ae += xe
			break
		}
		if i&1 == 1 {
			a1 *= xf
			ae += xe
		}
		xf *= xf
		xe <<= 1
		if xf < .5 {
			xf += xf
			xe--
		}
	}
	if neg {
		a1 = 1 / a1
		ae = -ae
	}
	return math.Ldexp(a1, ae)
}

// powerSpecial handles ±0, ±Inf and NaN bases, where only the sign
// and the exponent parity matter.
func powerSpecial(x float64, mag uint64, neg bool) float64 {
	res := math.Abs(x)
	if mag&1 == 1 {
		res = math.Copysign(res, x)
	}
	if neg {
		return 1 / res
	}
	return res
}

// Root returns the n-th root of x, x**(1/n).
//
// n == 0 and an even n with a negative x are domain errors. An odd n
// with a negative x gives the real root, Root(-27, 3) == -3. A negative
// n gives 1/Root(x, -n). NaN propagates without error.
func Root[N infra.Integer](x float64, n N) (float64, error) {
	if n == 0 {
		return 0, domainError("root", "zero root degree")
	}
	mag, neg := magnitude(n)
	if x < 0 && mag&1 == 0 {
		return 0, domainError("root", "even root of a negative number")
	}
	r := positiveRoot(math.Abs(x), mag)
	if math.Signbit(x) {
		r = -r
	}
	if neg {
		r = 1 / r
	}
	return r, nil
}

func positiveRoot(x float64, n uint64) float64 {
	switch n {
	case 1:
		return x
	case 2:
		return math.Sqrt(x)
	case 3:
		return math.Cbrt(x)
	}
	return math.Pow(x, 1/float64(n))
}

// magnitude splits n into |n| and its sign without overflowing
// on the minimum signed value.
func magnitude[N infra.Integer](n N) (uint64, bool) {
	if n >= 0 {
		return uint64(n), false
	}
	return uint64(-(n + 1)) + 1, true
}
