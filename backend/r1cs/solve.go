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

package r1cs

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/peeraphut5053/franklin-crypto/frontend"
	"github.com/peeraphut5053/franklin-crypto/logger"
)

var (
	// ErrUnsatisfied is returned when the witness violates a recorded constraint.
	ErrUnsatisfied = errors.New("constraint system is not satisfied")
	// ErrNoWitness is returned when a witness operation is attempted in Setup mode.
	ErrNoWitness = errors.New("no witness: constraint system is in setup mode")
)

// IsSatisfied re-evaluates every recorded constraint against the witness and
// returns nil if all of them hold. The evaluation is independent from the
// gadget logic that emitted the constraints; it only uses the recorded linear
// combinations and the assignment vector.
func (s *R1CS) IsSatisfied() error {
	if s.mode != frontend.Prove {
		return ErrNoWitness
	}

	for i, c := range s.constraints {
		if err := s.checkConstraint(i, c); err != nil {
			return err
		}
	}

	log := logger.Logger()
	log.Debug().
		Int("nbConstraints", len(s.constraints)).
		Int("nbVariables", s.nbVariables).
		Msg("constraint system satisfied")

	return nil
}

func (s *R1CS) checkConstraint(i int, c R1C) error {
	for _, lc := range []frontend.LinearCombination{c.L, c.R, c.O} {
		for _, t := range lc {
			if !s.assigned.Test(uint(t.VID)) {
				return fmt.Errorf("constraint %d references unassigned variable %d", i, t.VID)
			}
		}
	}

	l, err := c.L.Evaluate(s.values)
	if err != nil {
		return fmt.Errorf("constraint %d: %w", i, err)
	}
	r, err := c.R.Evaluate(s.values)
	if err != nil {
		return fmt.Errorf("constraint %d: %w", i, err)
	}
	o, err := c.O.Evaluate(s.values)
	if err != nil {
		return fmt.Errorf("constraint %d: %w", i, err)
	}

	var lr fr.Element
	lr.Mul(&l, &r)
	if !lr.Equal(&o) {
		return fmt.Errorf("%w: constraint %d: %s * %s != %s", ErrUnsatisfied, i, l.String(), r.String(), o.String())
	}
	return nil
}
