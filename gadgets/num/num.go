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

// Package num implements the field-element gadget, the base of every higher
// gadget in the library.
//
// A Num pairs a symbolic linear combination over constraint-system variables
// with an optional concrete value carried during Prove-mode synthesis. Affine
// operations (Add, Sub, Neg, Scale, AddConstant) only manipulate the linear
// combination and are free of constraints; Mul, Div and Inverse each allocate
// one variable and enforce exactly one constraint.
package num

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/peeraphut5053/franklin-crypto/frontend"
)

// ErrDivisionByZero is returned when a Div or Inverse witness has a zero
// denominator.
var ErrDivisionByZero = errors.New("division by zero")

// Num is a field element inside a circuit.
//
// Invariant: whenever the value is concrete, evaluating the linear
// combination at the witness yields that same value.
type Num struct {
	lc    frontend.LinearCombination
	value frontend.Value
}

// Allocate creates a fresh variable bound to v. In Setup mode the concrete
// part of v, if any, is discarded so the two synthesis modes cannot mix.
func Allocate(cs frontend.ConstraintSystem, v frontend.Value) (Num, error) {
	if cs.Mode() == frontend.Setup {
		v = frontend.Unknown()
	}
	va, err := cs.AllocateVariable(v)
	if err != nil {
		return Num{}, fmt.Errorf("num: allocate: %w", err)
	}
	return Num{lc: frontend.FromVariable(va), value: v}, nil
}

// Constant returns k as a circuit value. Constants are part of the circuit
// structure: no variable is allocated and the value is concrete in both
// synthesis modes.
func Constant(cs frontend.ConstraintSystem, k fr.Element) Num {
	return Num{lc: frontend.Constant(cs, k), value: frontend.Known(k)}
}

// ConstantUint64 returns u as a circuit value.
func ConstantUint64(cs frontend.ConstraintSystem, u uint64) Num {
	var k fr.Element
	k.SetUint64(u)
	return Constant(cs, k)
}

// Zero returns the constant 0.
func Zero(cs frontend.ConstraintSystem) Num {
	return Num{lc: frontend.LinearCombination{}, value: frontend.Known(fr.Element{})}
}

// One returns the constant 1.
func One(cs frontend.ConstraintSystem) Num {
	return ConstantUint64(cs, 1)
}

// Value returns the optional concrete value of n.
func (n Num) Value() frontend.Value {
	return n.value
}

// LinearCombination returns a copy of the symbolic representation of n.
func (n Num) LinearCombination() frontend.LinearCombination {
	return n.lc.Clone()
}

// Add returns n + o without adding a constraint.
func (n Num) Add(o Num) Num {
	return Num{
		lc:    n.lc.Add(o.lc),
		value: combine(n.value, o.value, func(r, a, b *fr.Element) { r.Add(a, b) }),
	}
}

// Sub returns n - o without adding a constraint.
func (n Num) Sub(o Num) Num {
	return Num{
		lc:    n.lc.Sub(o.lc),
		value: combine(n.value, o.value, func(r, a, b *fr.Element) { r.Sub(a, b) }),
	}
}

// Neg returns -n without adding a constraint.
func (n Num) Neg() Num {
	var zero frontend.Value
	if c, ok := n.value.Get(); ok {
		var r fr.Element
		r.Neg(&c)
		zero = frontend.Known(r)
	} else {
		zero = frontend.Unknown()
	}
	return Num{lc: n.lc.Neg(), value: zero}
}

// Scale returns k*n without adding a constraint.
func (n Num) Scale(k fr.Element) Num {
	var v frontend.Value
	if c, ok := n.value.Get(); ok {
		var r fr.Element
		r.Mul(&c, &k)
		v = frontend.Known(r)
	} else {
		v = frontend.Unknown()
	}
	return Num{lc: n.lc.Scale(k), value: v}
}

// AddConstant returns n + k without adding a constraint.
func (n Num) AddConstant(cs frontend.ConstraintSystem, k fr.Element) Num {
	return n.Add(Constant(cs, k))
}

// Mul returns a*b, allocating one variable and enforcing one constraint.
func Mul(cs frontend.ConstraintSystem, a, b Num) (Num, error) {
	v := combine(a.value, b.value, func(r, x, y *fr.Element) { r.Mul(x, y) })
	res, err := Allocate(cs, v)
	if err != nil {
		return Num{}, fmt.Errorf("num: mul: %w", err)
	}
	cs.Enforce(a.lc, b.lc, res.lc)
	return res, nil
}

// Square returns a*a.
func Square(cs frontend.ConstraintSystem, a Num) (Num, error) {
	return Mul(cs, a, a)
}

// Div returns a/b, allocating one variable q and enforcing b*q = a. The
// witness fails with ErrDivisionByZero when b is zero.
func Div(cs frontend.ConstraintSystem, a, b Num) (Num, error) {
	v := frontend.Unknown()
	if av, ok := a.value.Get(); ok {
		if bv, ok2 := b.value.Get(); ok2 {
			if bv.IsZero() {
				return Num{}, fmt.Errorf("num: div: %w", ErrDivisionByZero)
			}
			var r fr.Element
			r.Inverse(&bv)
			r.Mul(&r, &av)
			v = frontend.Known(r)
		}
	}
	res, err := Allocate(cs, v)
	if err != nil {
		return Num{}, fmt.Errorf("num: div: %w", err)
	}
	cs.Enforce(b.lc, res.lc, a.lc)
	return res, nil
}

// Inverse returns 1/a.
func Inverse(cs frontend.ConstraintSystem, a Num) (Num, error) {
	return Div(cs, One(cs), a)
}

// AssertEqual enforces a == b with one constraint.
func AssertEqual(cs frontend.ConstraintSystem, a, b Num) {
	var one fr.Element
	one.SetOne()
	cs.Enforce(a.lc, frontend.Constant(cs, one), b.lc)
}

func combine(a, b frontend.Value, f func(r, x, y *fr.Element)) frontend.Value {
	av, ok := a.Get()
	if !ok {
		return frontend.Unknown()
	}
	bv, ok := b.Get()
	if !ok {
		return frontend.Unknown()
	}
	var r fr.Element
	f(&r, &av, &bv)
	return frontend.Known(r)
}
