/*
Copyright © 2020 ConsenSys

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package boolean implements the single-bit gadget.
//
// A Bit is a field element constrained to 0 or 1 by the quadratic relation
// x*(x-1) = 0. Logic operators are implemented by algebraic identities, each
// costing at most one constraint; operators over more than two operands fold
// pairwise to keep every emitted constraint of degree two.
package boolean

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/peeraphut5053/franklin-crypto/frontend"
	"github.com/peeraphut5053/franklin-crypto/gadgets/num"
)

// ErrNotBoolean is returned when a witness value is neither 0 nor 1.
var ErrNotBoolean = errors.New("witness value is not 0 or 1")

// Bit is a field element constrained to {0, 1}.
type Bit struct {
	n num.Num
}

// Allocate creates a fresh bit bound to v and enforces the booleanity
// constraint. A concrete v outside {0, 1} fails with ErrNotBoolean.
func Allocate(cs frontend.ConstraintSystem, v frontend.Value) (Bit, error) {
	if err := checkBitValue(v); err != nil {
		return Bit{}, fmt.Errorf("boolean: allocate: %w", err)
	}
	n, err := num.Allocate(cs, v)
	if err != nil {
		return Bit{}, fmt.Errorf("boolean: allocate: %w", err)
	}
	enforceBooleanity(cs, n)
	return Bit{n: n}, nil
}

// Constant returns b as a circuit constant, free of constraints.
func Constant(cs frontend.ConstraintSystem, b bool) Bit {
	if b {
		return Bit{n: num.One(cs)}
	}
	return Bit{n: num.Zero(cs)}
}

// FromNum reinterprets n as a bit, enforcing the booleanity constraint. Use
// it when n was not produced by this package; bits coming out of boolean
// operators are already constrained.
func FromNum(cs frontend.ConstraintSystem, n num.Num) (Bit, error) {
	if err := checkBitValue(n.Value()); err != nil {
		return Bit{}, fmt.Errorf("boolean: from num: %w", err)
	}
	enforceBooleanity(cs, n)
	return Bit{n: n}, nil
}

// LiftUnchecked wraps n as a Bit without adding the booleanity constraint.
// The caller must guarantee n cannot leave {0, 1} — e.g. it is an affine
// combination of constrained bits, such as the output of a bit multiplexer.
func LiftUnchecked(n num.Num) Bit {
	return Bit{n: n}
}

// Num returns the field-element view of b. This is a free reinterpretation.
func (b Bit) Num() num.Num {
	return b.n
}

// Value returns the concrete bit and whether it is known.
func (b Bit) Value() (bit bool, known bool) {
	v, ok := b.n.Value().Get()
	if !ok {
		return false, false
	}
	return v.IsOne(), true
}

// Not returns ¬b as 1-b, free of constraints.
func Not(cs frontend.ConstraintSystem, b Bit) Bit {
	return Bit{n: num.One(cs).Sub(b.n)}
}

// And returns a ∧ b with one constraint (a*b = r; a product of bits is a
// bit, no extra booleanity constraint is needed).
func And(cs frontend.ConstraintSystem, a, b Bit) (Bit, error) {
	r, err := num.Mul(cs, a.n, b.n)
	if err != nil {
		return Bit{}, fmt.Errorf("boolean: and: %w", err)
	}
	return Bit{n: r}, nil
}

// Or returns a ∨ b with one constraint, via a+b-ab.
func Or(cs frontend.ConstraintSystem, a, b Bit) (Bit, error) {
	r, err := num.Allocate(cs, combineBits(a, b, func(x, y bool) bool { return x || y }))
	if err != nil {
		return Bit{}, fmt.Errorf("boolean: or: %w", err)
	}
	// a*b = a + b - r
	cs.Enforce(a.n.LinearCombination(), b.n.LinearCombination(), a.n.Add(b.n).Sub(r).LinearCombination())
	return Bit{n: r}, nil
}

// Xor returns a ⊕ b with one constraint, via a+b-2ab.
func Xor(cs frontend.ConstraintSystem, a, b Bit) (Bit, error) {
	r, err := num.Allocate(cs, combineBits(a, b, func(x, y bool) bool { return x != y }))
	if err != nil {
		return Bit{}, fmt.Errorf("boolean: xor: %w", err)
	}
	// 2a*b = a + b - r
	var two fr.Element
	two.SetUint64(2)
	cs.Enforce(a.n.LinearCombination().Scale(two), b.n.LinearCombination(), a.n.Add(b.n).Sub(r).LinearCombination())
	return Bit{n: r}, nil
}

// AndAll folds And left to right. The empty conjunction is the constant 1.
func AndAll(cs frontend.ConstraintSystem, bits ...Bit) (Bit, error) {
	return fold(cs, true, And, bits)
}

// OrAll folds Or left to right. The empty disjunction is the constant 0.
func OrAll(cs frontend.ConstraintSystem, bits ...Bit) (Bit, error) {
	return fold(cs, false, Or, bits)
}

// XorAll folds Xor left to right. The empty sum is the constant 0.
func XorAll(cs frontend.ConstraintSystem, bits ...Bit) (Bit, error) {
	return fold(cs, false, Xor, bits)
}

func fold(cs frontend.ConstraintSystem, id bool, op func(frontend.ConstraintSystem, Bit, Bit) (Bit, error), bits []Bit) (Bit, error) {
	if len(bits) == 0 {
		return Constant(cs, id), nil
	}
	acc := bits[0]
	var err error
	for _, b := range bits[1:] {
		acc, err = op(cs, acc, b)
		if err != nil {
			return Bit{}, err
		}
	}
	return acc, nil
}

// IsZero returns a bit z with z = 1 iff n = 0, using the inverse trick:
// an auxiliary variable inv is allocated and the constraints n*inv = 1-z and
// n*z = 0 are enforced. Either constraint pins z for any witness of n.
func IsZero(cs frontend.ConstraintSystem, n num.Num) (Bit, error) {
	zVal := frontend.Unknown()
	invVal := frontend.Unknown()
	if v, ok := n.Value().Get(); ok {
		if v.IsZero() {
			zVal = frontend.KnownBool(true)
			invVal = frontend.Known(fr.Element{})
		} else {
			zVal = frontend.KnownBool(false)
			var inv fr.Element
			inv.Inverse(&v)
			invVal = frontend.Known(inv)
		}
	}

	z, err := Allocate(cs, zVal)
	if err != nil {
		return Bit{}, fmt.Errorf("boolean: is zero: %w", err)
	}
	inv, err := num.Allocate(cs, invVal)
	if err != nil {
		return Bit{}, fmt.Errorf("boolean: is zero: %w", err)
	}

	// n * inv = 1 - z
	cs.Enforce(n.LinearCombination(), inv.LinearCombination(), num.One(cs).Sub(z.n).LinearCombination())
	// n * z = 0
	cs.Enforce(n.LinearCombination(), z.n.LinearCombination(), frontend.LinearCombination{})
	return z, nil
}

// Equal returns a bit set to 1 iff a = b.
func Equal(cs frontend.ConstraintSystem, a, b num.Num) (Bit, error) {
	return IsZero(cs, a.Sub(b))
}

// enforceBooleanity adds x*(x-1) = 0.
func enforceBooleanity(cs frontend.ConstraintSystem, n num.Num) {
	cs.Enforce(n.LinearCombination(), n.Sub(num.One(cs)).LinearCombination(), frontend.LinearCombination{})
}

func checkBitValue(v frontend.Value) error {
	c, ok := v.Get()
	if !ok {
		return nil
	}
	if !c.IsZero() && !c.IsOne() {
		return fmt.Errorf("%w (got %s)", ErrNotBoolean, c.String())
	}
	return nil
}

func combineBits(a, b Bit, f func(x, y bool) bool) frontend.Value {
	av, ok := a.Value()
	if !ok {
		return frontend.Unknown()
	}
	bv, ok := b.Value()
	if !ok {
		return frontend.Unknown()
	}
	return frontend.KnownBool(f(av, bv))
}
