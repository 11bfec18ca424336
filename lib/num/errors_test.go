package num

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDomainError(t *testing.T) {
	err := &DomainError{Func: "root", Reason: "zero root degree"}
	require.EqualError(t, err, "math domain error: root: zero root degree")
	require.True(t, errors.Is(err, ErrDomain))
	require.False(t, errors.Is(err, ErrNotFinite))
}

func TestCheckFinite(t *testing.T) {
	require.NoError(t, CheckFinite("x", 0))
	require.NoError(t, CheckFinite("x", -math.MaxFloat64))

	err := CheckFinite("x", math.Inf(-1))
	require.ErrorIs(t, err, ErrNotFinite)
	require.EqualError(t, err, "x = -Inf: not a finite number")

	require.ErrorIs(t, CheckFinite("y", math.NaN()), ErrNotFinite)
}

func TestApproxEqual(t *testing.T) {
	require.True(t, ApproxEqual(0.1+0.2, 0.3))
	require.True(t, ApproxEqual(1e20, 1e20+1e5))
	require.True(t, ApproxEqual(math.Inf(1), math.Inf(1)))
	require.False(t, ApproxEqual(1, 1.001))
	require.False(t, ApproxEqual(math.NaN(), math.NaN()))
}
