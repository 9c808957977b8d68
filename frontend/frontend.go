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

// Package frontend defines the constraint-system abstraction consumed by the
// gadget packages.
//
// A ConstraintSystem collects rank-1 constraints a*b = c where a, b, c are
// linear combinations of variables. Gadgets allocate variables and enforce
// constraints through this interface exclusively; they never assume a
// particular backend representation. Constraints accumulate monotonically and
// are never removed, which keeps synthesis deterministic: two synthesis runs
// of the same circuit allocate identical variables and constraints in
// identical order, differing only in witness values.
package frontend

import "errors"

// Mode distinguishes the two synthesis modes of a constraint system.
//
// In Setup mode no concrete values exist; synthesis only lays out variables
// and constraints (this is the mode used to derive proving/verification keys).
// In Prove mode every allocated variable carries a concrete witness value.
type Mode uint8

const (
	// Setup lays out the circuit without witness values.
	Setup Mode = iota
	// Prove lays out the circuit and assigns a concrete value to every variable.
	Prove
)

func (m Mode) String() string {
	switch m {
	case Setup:
		return "setup"
	case Prove:
		return "prove"
	default:
		return "unknown"
	}
}

// ErrMissingAssignment is returned when a variable is allocated with a
// symbolic value while the constraint system runs in Prove mode.
var ErrMissingAssignment = errors.New("missing assignment for variable in prove mode")

// ConstraintSystem is the external collaborator every gadget writes into.
//
// Implementations must allocate variables with strictly increasing indices and
// append constraints in call order; both orders are part of the publicly
// verifiable circuit structure.
type ConstraintSystem interface {
	// Mode returns the synthesis mode. Gadgets use it to decide whether
	// concrete values must be present.
	Mode() Mode

	// One returns the variable wired to the constant 1.
	One() Variable

	// AllocateVariable creates a new variable. In Prove mode v must be
	// concrete, otherwise ErrMissingAssignment is returned. In Setup mode the
	// concrete part of v, if any, is ignored.
	AllocateVariable(v Value) (Variable, error)

	// Enforce appends the constraint a * b = c. Appending cannot fail; a
	// constraint whose witness does not satisfy it surfaces when the
	// backend checks satisfaction.
	Enforce(a, b, c LinearCombination)
}
