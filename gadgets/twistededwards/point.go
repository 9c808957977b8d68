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

package twistededwards

import (
	"errors"
	"fmt"

	edbn254 "github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/peeraphut5053/franklin-crypto/frontend"
	"github.com/peeraphut5053/franklin-crypto/gadgets/boolean"
	"github.com/peeraphut5053/franklin-crypto/gadgets/num"
	"github.com/peeraphut5053/franklin-crypto/gadgets/selector"
)

// ErrNotOnCurve is returned when concrete coordinates do not satisfy the
// curve equation.
var ErrNotOnCurve = errors.New("point is not on the curve")

// Point is a point of the embedded curve inside a circuit.
type Point struct {
	X, Y num.Num
}

// Constant embeds a fixed public point, free of constraints.
func Constant(cs frontend.ConstraintSystem, p edbn254.PointAffine) Point {
	return Point{
		X: num.Constant(cs, p.X),
		Y: num.Constant(cs, p.Y),
	}
}

// Identity returns the neutral element (0, 1) as a constant.
func Identity(cs frontend.ConstraintSystem) Point {
	return Point{X: num.Zero(cs), Y: num.One(cs)}
}

// Allocate creates an unknown point from coordinate values and enforces the
// curve equation. Concrete coordinates off the curve are rejected with
// ErrNotOnCurve before any variable is allocated.
func Allocate(cs frontend.ConstraintSystem, curve Curve, x, y frontend.Value) (Point, error) {
	if xv, ok := x.Get(); ok {
		if yv, ok2 := y.Get(); ok2 {
			var p edbn254.PointAffine
			p.X = xv
			p.Y = yv
			if !p.IsOnCurve() {
				return Point{}, fmt.Errorf("twistededwards: allocate (%s, %s): %w", xv.String(), yv.String(), ErrNotOnCurve)
			}
		}
	}

	px, err := num.Allocate(cs, x)
	if err != nil {
		return Point{}, fmt.Errorf("twistededwards: allocate: %w", err)
	}
	py, err := num.Allocate(cs, y)
	if err != nil {
		return Point{}, fmt.Errorf("twistededwards: allocate: %w", err)
	}
	p := Point{X: px, Y: py}
	if err := AssertOnCurve(cs, curve, p); err != nil {
		return Point{}, err
	}
	return p, nil
}

// AssertOnCurve enforces a*x^2 + y^2 = 1 + d*x^2*y^2 (4 constraints).
func AssertOnCurve(cs frontend.ConstraintSystem, curve Curve, p Point) error {
	xx, err := num.Square(cs, p.X)
	if err != nil {
		return fmt.Errorf("twistededwards: assert on curve: %w", err)
	}
	yy, err := num.Square(cs, p.Y)
	if err != nil {
		return fmt.Errorf("twistededwards: assert on curve: %w", err)
	}
	xxyy, err := num.Mul(cs, xx, yy)
	if err != nil {
		return fmt.Errorf("twistededwards: assert on curve: %w", err)
	}
	lhs := xx.Scale(curve.A).Add(yy)
	rhs := xxyy.Scale(curve.D).Add(num.One(cs))
	num.AssertEqual(cs, lhs, rhs)
	return nil
}

// Value returns the concrete point and whether both coordinates are known.
func (p Point) Value() (edbn254.PointAffine, bool) {
	var res edbn254.PointAffine
	xv, ok := p.X.Value().Get()
	if !ok {
		return res, false
	}
	yv, ok := p.Y.Value().Get()
	if !ok {
		return res, false
	}
	res.X = xv
	res.Y = yv
	return res, true
}

// Neg returns (-x, y), free of constraints.
func Neg(p Point) Point {
	return Point{X: p.X.Neg(), Y: p.Y}
}

// Add adds two points with the unified Edwards formulas
//
//	x3 = (x1*y2 + y1*x2) / (1 + d*x1*x2*y1*y2)
//	y3 = (y1*y2 - a*x1*x2) / (1 - d*x1*x2*y1*y2)
//
// valid for all curve points, identity and doubling included (7 constraints).
// cf https://eprint.iacr.org/2008/013.pdf
func Add(cs frontend.ConstraintSystem, curve Curve, p, q Point) (Point, error) {
	beta, err := num.Mul(cs, p.X, q.Y)
	if err != nil {
		return Point{}, fmt.Errorf("twistededwards: add: %w", err)
	}
	gamma, err := num.Mul(cs, p.Y, q.X)
	if err != nil {
		return Point{}, fmt.Errorf("twistededwards: add: %w", err)
	}
	delta, err := num.Mul(cs, p.Y, q.Y)
	if err != nil {
		return Point{}, fmt.Errorf("twistededwards: add: %w", err)
	}
	epsilon, err := num.Mul(cs, p.X, q.X)
	if err != nil {
		return Point{}, fmt.Errorf("twistededwards: add: %w", err)
	}
	tau, err := num.Mul(cs, delta, epsilon)
	if err != nil {
		return Point{}, fmt.Errorf("twistededwards: add: %w", err)
	}

	one := num.One(cs)
	x3, err := num.Div(cs, beta.Add(gamma), one.Add(tau.Scale(curve.D)))
	if err != nil {
		return Point{}, fmt.Errorf("twistededwards: add: %w", err)
	}
	y3, err := num.Div(cs, delta.Sub(epsilon.Scale(curve.A)), one.Sub(tau.Scale(curve.D)))
	if err != nil {
		return Point{}, fmt.Errorf("twistededwards: add: %w", err)
	}
	return Point{X: x3, Y: y3}, nil
}

// Double doubles p. The unified addition law covers the doubling case.
func Double(cs frontend.ConstraintSystem, curve Curve, p Point) (Point, error) {
	return Add(cs, curve, p, p)
}

// Select returns a if cond is 1 and b if cond is 0, selecting per coordinate
// (2 constraints).
func Select(cs frontend.ConstraintSystem, cond boolean.Bit, a, b Point) (Point, error) {
	x, err := selector.Select(cs, cond, a.X, b.X)
	if err != nil {
		return Point{}, fmt.Errorf("twistededwards: select: %w", err)
	}
	y, err := selector.Select(cs, cond, a.Y, b.Y)
	if err != nil {
		return Point{}, fmt.Errorf("twistededwards: select: %w", err)
	}
	return Point{X: x, Y: y}, nil
}

// ScalarMul computes [k]p for the scalar represented by bits, least
// significant first, with a double-and-add ladder scanning from the most
// significant bit. The bit count is a structural parameter fixed at circuit
// construction; only the bit values are private.
func ScalarMul(cs frontend.ConstraintSystem, curve Curve, p Point, bits []boolean.Bit) (Point, error) {
	acc := Identity(cs)
	var err error
	for i := len(bits) - 1; i >= 0; i-- {
		acc, err = Double(cs, curve, acc)
		if err != nil {
			return Point{}, fmt.Errorf("twistededwards: scalar mul bit %d: %w", i, err)
		}
		sum, err := Add(cs, curve, acc, p)
		if err != nil {
			return Point{}, fmt.Errorf("twistededwards: scalar mul bit %d: %w", i, err)
		}
		acc, err = Select(cs, bits[i], sum, acc)
		if err != nil {
			return Point{}, fmt.Errorf("twistededwards: scalar mul bit %d: %w", i, err)
		}
	}
	return acc, nil
}

// ScalarMulFixed computes [k]base for a fixed public base point. The
// doublings happen out of circuit: the i-th bit conditionally adds the
// precomputed constant [2^i]base, saving the in-circuit Double of the
// variable-base ladder.
func ScalarMulFixed(cs frontend.ConstraintSystem, curve Curve, base edbn254.PointAffine, bits []boolean.Bit) (Point, error) {
	acc := Identity(cs)
	var window edbn254.PointAffine
	window.Set(&base)
	for i, b := range bits {
		sum, err := Add(cs, curve, acc, Constant(cs, window))
		if err != nil {
			return Point{}, fmt.Errorf("twistededwards: fixed scalar mul bit %d: %w", i, err)
		}
		acc, err = Select(cs, b, sum, acc)
		if err != nil {
			return Point{}, fmt.Errorf("twistededwards: fixed scalar mul bit %d: %w", i, err)
		}
		window.Double(&window)
	}
	return acc, nil
}
