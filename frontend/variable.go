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

package frontend

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Variable is an opaque handle into the constraint system identifying one
// unknown of the field. Variables are owned by the constraint system; gadgets
// only reference them through linear combinations.
type Variable struct {
	index int
}

// NewVariable wraps a raw wire index. It is intended for ConstraintSystem
// implementations; gadget code obtains variables from AllocateVariable.
func NewVariable(index int) Variable {
	return Variable{index: index}
}

// Index returns the wire index of v.
func (v Variable) Index() int {
	return v.index
}

// Term is one coefficient*variable product inside a linear combination.
type Term struct {
	VID   int
	Coeff fr.Element
}

// LinearCombination is an ordered sum of terms. The order is the insertion
// order of the first occurrence of each variable; all operations below are
// deterministic so that identical gadget calls produce identical
// combinations across synthesis runs.
type LinearCombination []Term

// NewTerm packs a variable and a coefficient into a Term.
func NewTerm(v Variable, coeff fr.Element) Term {
	return Term{VID: v.index, Coeff: coeff}
}

// FromVariable returns the linear combination 1*v.
func FromVariable(v Variable) LinearCombination {
	var one fr.Element
	one.SetOne()
	return LinearCombination{{VID: v.index, Coeff: one}}
}

// Constant returns the linear combination k*one-wire.
func Constant(cs ConstraintSystem, k fr.Element) LinearCombination {
	return LinearCombination{{VID: cs.One().Index(), Coeff: k}}
}

// Clone returns a deep copy of l.
func (l LinearCombination) Clone() LinearCombination {
	res := make(LinearCombination, len(l))
	copy(res, l)
	return res
}

// Add returns l + o. Terms over the same variable are merged; two
// combinations ax + by and cx + dy result in (a+c)x + (b+d)y.
func (l LinearCombination) Add(o LinearCombination) LinearCombination {
	res := l.Clone()

	// quick map to find terms by variable id
	hm := make(map[int]int, len(res))
	for i := range res {
		hm[res[i].VID] = i
	}
	for _, t := range o {
		if i, ok := hm[t.VID]; ok {
			res[i].Coeff.Add(&res[i].Coeff, &t.Coeff)
		} else {
			res = append(res, t)
			hm[t.VID] = len(res) - 1
		}
	}
	return res
}

// Sub returns l - o.
func (l LinearCombination) Sub(o LinearCombination) LinearCombination {
	return l.Add(o.Neg())
}

// Neg returns -l.
func (l LinearCombination) Neg() LinearCombination {
	res := l.Clone()
	for i := range res {
		res[i].Coeff.Neg(&res[i].Coeff)
	}
	return res
}

// Scale returns k*l.
func (l LinearCombination) Scale(k fr.Element) LinearCombination {
	res := l.Clone()
	for i := range res {
		res[i].Coeff.Mul(&res[i].Coeff, &k)
	}
	return res
}

// Evaluate computes the value of l against a full assignment, where
// assignment[i] is the value of the variable of index i.
func (l LinearCombination) Evaluate(assignment []fr.Element) (fr.Element, error) {
	var res, t fr.Element
	for _, term := range l {
		if term.VID < 0 || term.VID >= len(assignment) {
			return fr.Element{}, fmt.Errorf("linear combination references unknown variable %d", term.VID)
		}
		t.Mul(&term.Coeff, &assignment[term.VID])
		res.Add(&res, &t)
	}
	return res, nil
}
