package infra

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func isOdd[N Integer](n N) bool {
	return n&1 == 1
}

type exponent int16

func TestIntegerConstraint(t *testing.T) {
	require.True(t, isOdd(int8(-1)))
	require.True(t, isOdd(exponent(7)))
	require.False(t, isOdd(uint16(8)))
	require.True(t, isOdd(uint64(math.MaxUint64)))
	require.False(t, isOdd(int64(math.MinInt64)))
	require.True(t, isOdd(uintptr(3)))
}
