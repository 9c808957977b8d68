// Package bits decomposes field elements into constrained bit vectors and
// reconstructs field elements from them.
//
// Decomposition is the soundness-critical primitive of the library: without a
// width or modulus bound, two different bit strings could represent the same
// field element modulo wrap-around. Decompose therefore caps the width at one
// bit below the field size, and DecomposeFull adds an explicit in-circuit
// comparison with the field modulus.
package bits

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/peeraphut5053/franklin-crypto/frontend"
	"github.com/peeraphut5053/franklin-crypto/gadgets/boolean"
	"github.com/peeraphut5053/franklin-crypto/gadgets/num"
)

var (
	// ErrTooManyBits is returned at construction time when the requested
	// width could allow wrap-around ambiguity.
	ErrTooManyBits = errors.New("bit width exceeds field capacity")
	// ErrRangeViolation is returned at witness time when a value does not fit
	// the requested width.
	ErrRangeViolation = errors.New("value exceeds decomposition range")
)

// Decompose splits x into n bits, least significant first. It allocates n
// boolean gadgets and enforces that their weighted sum equals x. n is capped
// at fr.Bits-1 so the weighted sum cannot wrap around the modulus; use
// DecomposeFull for full-width decomposition or DecomposeUnchecked to opt out
// of the cap.
func Decompose(cs frontend.ConstraintSystem, x num.Num, n int) ([]boolean.Bit, error) {
	if n < 0 || n > fr.Bits-1 {
		return nil, fmt.Errorf("bits: decompose %d bits: %w", n, ErrTooManyBits)
	}
	return decompose(cs, x, n)
}

// DecomposeUnchecked is Decompose without the width cap. The weighted-sum
// constraint is still enforced, but for widths at or above the field size two
// distinct bit strings may satisfy it; callers are responsible for ruling
// that out.
func DecomposeUnchecked(cs frontend.ConstraintSystem, x num.Num, n int) ([]boolean.Bit, error) {
	if n < 0 {
		return nil, fmt.Errorf("bits: decompose %d bits: %w", n, ErrTooManyBits)
	}
	return decompose(cs, x, n)
}

// DecomposeFull splits x into fr.Bits bits and enforces, in-circuit, that the
// represented integer is strictly below the field modulus, making the
// decomposition unique.
func DecomposeFull(cs frontend.ConstraintSystem, x num.Num) ([]boolean.Bit, error) {
	bits, err := decompose(cs, x, fr.Bits)
	if err != nil {
		return nil, err
	}
	if err := AssertLessThanConstant(cs, bits, fr.Modulus()); err != nil {
		return nil, err
	}
	return bits, nil
}

func decompose(cs frontend.ConstraintSystem, x num.Num, n int) ([]boolean.Bit, error) {
	// witness bits
	var w *big.Int
	if v, ok := x.Value().Get(); ok {
		w = v.BigInt(new(big.Int))
		if w.BitLen() > n {
			return nil, fmt.Errorf("bits: decompose: value %s needs %d bits, want %d: %w",
				v.String(), w.BitLen(), n, ErrRangeViolation)
		}
	}

	bits := make([]boolean.Bit, n)
	for i := 0; i < n; i++ {
		v := frontend.Unknown()
		if w != nil {
			v = frontend.KnownBool(w.Bit(i) == 1)
		}
		b, err := boolean.Allocate(cs, v)
		if err != nil {
			return nil, fmt.Errorf("bits: decompose bit %d: %w", i, err)
		}
		bits[i] = b
	}

	// Σ 2^i b_i = x
	num.AssertEqual(cs, Recompose(cs, bits), x)
	return bits, nil
}

// Recompose returns the weighted sum Σ 2^i bits[i] (least significant bit
// first) as a purely linear combination, free of constraints.
func Recompose(cs frontend.ConstraintSystem, bits []boolean.Bit) num.Num {
	acc := num.Zero(cs)
	var coeff fr.Element
	coeff.SetOne()
	for _, b := range bits {
		acc = acc.Add(b.Num().Scale(coeff))
		coeff.Double(&coeff)
	}
	return acc
}

// AssertLessThanConstant enforces that the integer represented by bits
// (least significant first) is strictly smaller than the positive constant
// bound. The comparison walks the bound's bit pattern from the most
// significant position, tracking "already smaller" and "equal so far" bits.
func AssertLessThanConstant(cs frontend.ConstraintSystem, bits []boolean.Bit, bound *big.Int) error {
	if bound.Sign() <= 0 {
		return fmt.Errorf("bits: assert less than: bound must be positive")
	}
	// a vector of n bits cannot reach 2^n; a wider bound holds vacuously
	if bound.BitLen() > len(bits) {
		return nil
	}

	lt := boolean.Constant(cs, false)
	eq := boolean.Constant(cs, true)
	var err error

	for i := len(bits) - 1; i >= 0; i-- {
		b := bits[i]
		if bound.Bit(i) == 1 {
			// a zero bit here, with equality so far, decides strictly-less
			decides, derr := boolean.And(cs, eq, boolean.Not(cs, b))
			if derr != nil {
				return fmt.Errorf("bits: assert less than: %w", derr)
			}
			lt, err = boolean.Or(cs, lt, decides)
			if err != nil {
				return fmt.Errorf("bits: assert less than: %w", err)
			}
			eq, err = boolean.And(cs, eq, b)
		} else {
			// a one bit here can no longer be equal; it must already be smaller
			eq, err = boolean.And(cs, eq, boolean.Not(cs, b))
		}
		if err != nil {
			return fmt.Errorf("bits: assert less than: %w", err)
		}
	}

	num.AssertEqual(cs, lt.Num(), num.One(cs))
	return nil
}
