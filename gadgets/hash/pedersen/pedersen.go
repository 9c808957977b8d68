// Package pedersen implements a Pedersen-style algebraic hash over the
// embedded twisted Edwards curve.
//
// The input bit string is padded, cut into fixed-size segments, and each
// segment is used as the scalar of a fixed-base multiplication by a generator
// derived from the personalization tag; the per-segment points are combined
// by point addition. Distinct tags yield independent generators, which is the
// domain-separation mechanism.
//
// Padding rule: a single 1 bit is appended, then 0 bits up to the next
// segment boundary, so inputs of different lengths never collide. Segments
// are 248 bits, strictly below the prime subgroup order (~2^251), so the
// segment-to-scalar encoding is injective.
package pedersen

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	edbn254 "github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/peeraphut5053/franklin-crypto/frontend"
	gbits "github.com/peeraphut5053/franklin-crypto/gadgets/bits"
	"github.com/peeraphut5053/franklin-crypto/gadgets/boolean"
	"github.com/peeraphut5053/franklin-crypto/gadgets/num"
	"github.com/peeraphut5053/franklin-crypto/gadgets/twistededwards"
)

// SegmentBits is the number of input bits consumed per generator.
const SegmentBits = 248

// ErrInputTooLong is returned at construction time when the input exceeds
// the capacity the hasher was sized for.
var ErrInputTooLong = errors.New("pedersen: input exceeds configured capacity")

// Pedersen hashes bit strings of up to a fixed length, set at construction.
type Pedersen struct {
	curve           twistededwards.Curve
	personalization string
	generators      []edbn254.PointAffine
}

// New builds a hasher for inputs of up to maxBits bits, deriving one
// generator per segment from the personalization tag.
func New(curve twistededwards.Curve, personalization string, maxBits int) (*Pedersen, error) {
	if maxBits <= 0 {
		return nil, fmt.Errorf("pedersen: maxBits must be positive, got %d", maxBits)
	}
	// +1 for the padding bit
	nbSegments := (maxBits + 1 + SegmentBits - 1) / SegmentBits
	generators := make([]edbn254.PointAffine, nbSegments)
	for j := range generators {
		g, err := deriveGenerator(curve, personalization, j)
		if err != nil {
			return nil, err
		}
		generators[j] = g
	}
	return &Pedersen{
		curve:           curve,
		personalization: personalization,
		generators:      generators,
	}, nil
}

// Capacity returns the maximum number of input bits.
func (p *Pedersen) Capacity() int {
	return len(p.generators)*SegmentBits - 1
}

// Hash returns the X coordinate of HashToPoint as the digest.
func (p *Pedersen) Hash(cs frontend.ConstraintSystem, bits []boolean.Bit) (num.Num, error) {
	pt, err := p.HashToPoint(cs, bits)
	if err != nil {
		return num.Num{}, err
	}
	return pt.X, nil
}

// HashToPoint hashes bits and exposes the resulting curve point, so callers
// can keep chaining point operations on the intermediate result.
func (p *Pedersen) HashToPoint(cs frontend.ConstraintSystem, bits []boolean.Bit) (twistededwards.Point, error) {
	if len(bits) > p.Capacity() {
		return twistededwards.Point{}, fmt.Errorf("%w: %d bits, capacity %d", ErrInputTooLong, len(bits), p.Capacity())
	}

	padded := p.pad(cs, bits)
	acc := twistededwards.Identity(cs)
	for j := 0; j*SegmentBits < len(padded); j++ {
		segment := padded[j*SegmentBits : (j+1)*SegmentBits]
		t, err := twistededwards.ScalarMulFixed(cs, p.curve, p.generators[j], segment)
		if err != nil {
			return twistededwards.Point{}, fmt.Errorf("pedersen: segment %d: %w", j, err)
		}
		acc, err = twistededwards.Add(cs, p.curve, acc, t)
		if err != nil {
			return twistededwards.Point{}, fmt.Errorf("pedersen: segment %d: %w", j, err)
		}
	}
	return acc, nil
}

// HashPair hashes two field elements by decomposing each into its full,
// canonical bit string. It matches the merkle.Hasher shape; the hasher must be
// sized for 2*fr.Bits input bits.
func (p *Pedersen) HashPair(cs frontend.ConstraintSystem, left, right num.Num) (num.Num, error) {
	lb, err := gbits.DecomposeFull(cs, left)
	if err != nil {
		return num.Num{}, fmt.Errorf("pedersen: hash pair: %w", err)
	}
	rb, err := gbits.DecomposeFull(cs, right)
	if err != nil {
		return num.Num{}, fmt.Errorf("pedersen: hash pair: %w", err)
	}
	return p.Hash(cs, append(lb, rb...))
}

func (p *Pedersen) pad(cs frontend.ConstraintSystem, bits []boolean.Bit) []boolean.Bit {
	padded := make([]boolean.Bit, 0, len(bits)+SegmentBits)
	padded = append(padded, bits...)
	padded = append(padded, boolean.Constant(cs, true))
	for len(padded)%SegmentBits != 0 {
		padded = append(padded, boolean.Constant(cs, false))
	}
	return padded
}

// SumNative is the out-of-circuit counterpart of HashToPoint, used as the
// test oracle and by callers that build data structures (e.g. trees) outside
// the circuit.
func (p *Pedersen) SumNative(bits []bool) (edbn254.PointAffine, error) {
	if len(bits) > p.Capacity() {
		return edbn254.PointAffine{}, fmt.Errorf("%w: %d bits, capacity %d", ErrInputTooLong, len(bits), p.Capacity())
	}

	padded := make([]bool, len(bits), len(bits)+SegmentBits)
	copy(padded, bits)
	padded = append(padded, true)
	for len(padded)%SegmentBits != 0 {
		padded = append(padded, false)
	}

	var acc edbn254.PointAffine
	acc.X.SetZero()
	acc.Y.SetOne()
	for j := 0; j*SegmentBits < len(padded); j++ {
		segment := padded[j*SegmentBits : (j+1)*SegmentBits]
		scalar := new(big.Int)
		for i := len(segment) - 1; i >= 0; i-- {
			scalar.Lsh(scalar, 1)
			if segment[i] {
				scalar.SetBit(scalar, 0, 1)
			}
		}
		var t edbn254.PointAffine
		t.ScalarMultiplication(&p.generators[j], scalar)
		acc.Add(&acc, &t)
	}
	return acc, nil
}

// SumNativeX returns the X coordinate of SumNative.
func (p *Pedersen) SumNativeX(bits []bool) (fr.Element, error) {
	pt, err := p.SumNative(bits)
	if err != nil {
		return fr.Element{}, err
	}
	return pt.X, nil
}

// SumNativePair is the out-of-circuit counterpart of HashPair, used to build
// trees whose paths HashPair will verify.
func (p *Pedersen) SumNativePair(left, right fr.Element) (fr.Element, error) {
	bits := make([]bool, 0, 2*fr.Bits)
	for _, e := range []fr.Element{left, right} {
		w := e.BigInt(new(big.Int))
		for i := 0; i < fr.Bits; i++ {
			bits = append(bits, w.Bit(i) == 1)
		}
	}
	return p.SumNativeX(bits)
}
