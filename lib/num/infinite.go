package num

import (
	"fmt"
	"math"

	"github.com/benz9527/xnum/lib/infra"
)

// Sign of an Infinite, true is positive.
type Sign bool

const (
	Negative Sign = false
	Positive Sign = true
)

func (s Sign) String() string {
	if s {
		return "+"
	}
	return "-"
}

// ParseSign accepts the "+" and "-" tags.
func ParseSign(tag string) (Sign, error) {
	switch tag {
	case "+":
		return Positive, nil
	case "-":
		return Negative, nil
	}
	return Negative, infra.NewErrorStack(fmt.Sprintf("unknown infinite sign tag %q", tag))
}

// Infinite stands for +∞ or -∞ and carries no magnitude.
// The zero value is +∞.
//
// An Infinite has no arithmetic. Invert mutates the receiver,
// so concurrent callers must not share an instance while inverting.
type Infinite struct {
	neg bool
}

func NewInfinite(sign Sign) *Infinite {
	return &Infinite{neg: !bool(sign)}
}

func (inf *Infinite) Sign() Sign {
	return Sign(!inf.neg)
}

// Invert flips the sign in place. It is its own inverse.
func (inf *Infinite) Invert() {
	inf.neg = !inf.neg
}

func (inf *Infinite) String() string {
	return inf.Sign().String() + "∞"
}

// Float64 returns the IEEE-754 infinity of the same sign.
func (inf *Infinite) Float64() float64 {
	if inf.neg {
		return math.Inf(-1)
	}
	return math.Inf(1)
}

// IsInfinite reports whether v is an Infinite or a non-nil *Infinite.
func IsInfinite(v any) bool {
	switch i := v.(type) {
	case Infinite:
		return true
	case *Infinite:
		return i != nil
	}
	return false
}
