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
	"github.com/fxamacker/cbor/v2"
	"github.com/peeraphut5053/franklin-crypto/frontend"
	"golang.org/x/crypto/sha3"
)

// Layout is a witness-free snapshot of the constraint layout: variable count
// and the ordered list of constraints with their coefficients in canonical
// (big-endian, non-Montgomery) byte form. Verification keys are derived from
// this structure, so two synthesis runs of the same circuit must produce
// byte-identical layouts.
type Layout struct {
	NbVariables int                `cbor:"1,keyasint"`
	Constraints []LayoutConstraint `cbor:"2,keyasint"`
}

// LayoutConstraint mirrors one R1C.
type LayoutConstraint struct {
	L []LayoutTerm `cbor:"1,keyasint"`
	R []LayoutTerm `cbor:"2,keyasint"`
	O []LayoutTerm `cbor:"3,keyasint"`
}

// LayoutTerm mirrors one coefficient*variable term.
type LayoutTerm struct {
	VID   int    `cbor:"1,keyasint"`
	Coeff []byte `cbor:"2,keyasint"`
}

// Layout extracts the constraint layout of the system.
func (s *R1CS) Layout() Layout {
	res := Layout{
		NbVariables: s.nbVariables,
		Constraints: make([]LayoutConstraint, len(s.constraints)),
	}
	for i, c := range s.constraints {
		res.Constraints[i] = LayoutConstraint{
			L: layoutTerms(c.L),
			R: layoutTerms(c.R),
			O: layoutTerms(c.O),
		}
	}
	return res
}

func layoutTerms(lc frontend.LinearCombination) []LayoutTerm {
	res := make([]LayoutTerm, len(lc))
	for i, t := range lc {
		b := t.Coeff.Bytes()
		res[i] = LayoutTerm{VID: t.VID, Coeff: b[:]}
	}
	return res
}

// Fingerprint returns the Keccak-256 digest of the CBOR-serialized layout.
// Equal fingerprints across two synthesis runs certify that the runs
// allocated identical variables and constraints in identical order.
func (s *R1CS) Fingerprint() ([32]byte, error) {
	var res [32]byte
	b, err := cbor.Marshal(s.Layout())
	if err != nil {
		return res, err
	}
	h := sha3.NewLegacyKeccak256()
	h.Write(b)
	copy(res[:], h.Sum(nil))
	return res, nil
}
