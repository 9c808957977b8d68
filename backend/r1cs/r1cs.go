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

// Package r1cs provides a reference in-memory rank-1 constraint system.
//
// It implements frontend.ConstraintSystem by recording constraints in call
// order and, in Prove mode, keeping the witness assignment alongside. It is
// the collaborator used by the gadget tests to check satisfaction and
// constraint-layout determinism; a proving backend would substitute its own
// implementation behind the same interface.
package r1cs

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/peeraphut5053/franklin-crypto/frontend"
)

// R1C is one rank-1 constraint L * R = O.
type R1C struct {
	L, R, O frontend.LinearCombination
}

// R1CS records variables and constraints of one synthesis run.
//
// A R1CS is bound to a single synthesis run and a single goroutine; it is
// discarded at the end of the run and never shared across runs.
type R1CS struct {
	mode        frontend.Mode
	nbVariables int
	constraints []R1C

	// witness assignment, Prove mode only. values[0] is the one-wire.
	values   []fr.Element
	assigned *bitset.BitSet
}

const initialCapacity = 1 << 10

// New returns an empty constraint system in the given mode. The one-wire is
// pre-allocated at index 0.
func New(mode frontend.Mode) *R1CS {
	s := &R1CS{
		mode:        mode,
		nbVariables: 1,
		constraints: make([]R1C, 0, initialCapacity),
		assigned:    bitset.New(initialCapacity),
	}
	if mode == frontend.Prove {
		var one fr.Element
		one.SetOne()
		s.values = make([]fr.Element, 1, initialCapacity)
		s.values[0] = one
	}
	s.assigned.Set(0)
	return s
}

// Mode returns the synthesis mode.
func (s *R1CS) Mode() frontend.Mode {
	return s.mode
}

// One returns the variable wired to the constant 1.
func (s *R1CS) One() frontend.Variable {
	return frontend.NewVariable(0)
}

// AllocateVariable creates a new wire. In Prove mode the value must be
// concrete and becomes part of the witness.
func (s *R1CS) AllocateVariable(v frontend.Value) (frontend.Variable, error) {
	idx := s.nbVariables
	if s.mode == frontend.Prove {
		c, ok := v.Get()
		if !ok {
			return frontend.Variable{}, frontend.ErrMissingAssignment
		}
		s.values = append(s.values, c)
		s.assigned.Set(uint(idx))
	}
	s.nbVariables++
	return frontend.NewVariable(idx), nil
}

// Enforce appends the constraint a * b = c.
func (s *R1CS) Enforce(a, b, c frontend.LinearCombination) {
	s.constraints = append(s.constraints, R1C{
		L: a.Clone(),
		R: b.Clone(),
		O: c.Clone(),
	})
}

// NbConstraints returns the number of constraints recorded so far.
func (s *R1CS) NbConstraints() int {
	return len(s.constraints)
}

// NbVariables returns the number of allocated wires, one-wire included.
func (s *R1CS) NbVariables() int {
	return s.nbVariables
}

// Constraints returns the recorded constraints. The slice is owned by the
// constraint system and must not be mutated.
func (s *R1CS) Constraints() []R1C {
	return s.constraints
}

// WitnessValue returns the assigned value of v. It is only available in
// Prove mode.
func (s *R1CS) WitnessValue(v frontend.Variable) (fr.Element, error) {
	if s.mode != frontend.Prove {
		return fr.Element{}, ErrNoWitness
	}
	if v.Index() < 0 || v.Index() >= len(s.values) || !s.assigned.Test(uint(v.Index())) {
		return fr.Element{}, frontend.ErrMissingAssignment
	}
	return s.values[v.Index()], nil
}
