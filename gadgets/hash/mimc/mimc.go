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

// Package mimc implements the MiMC algebraic hash, both natively over
// fr.Element and as a circuit gadget.
//
// The permutation is x -> x^5 over 110 rounds, chained with
// Miyaguchi–Preneel (the XOR of the standard scheme replaced by field
// addition). Round constants are derived from a seed string by iterated
// Keccak-256, so a seed acts as a domain-separation tag.
package mimc

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/peeraphut5053/franklin-crypto/frontend"
	"github.com/peeraphut5053/franklin-crypto/gadgets/num"
	"golang.org/x/crypto/sha3"
)

// Rounds is the number of rounds of the MiMC permutation.
const Rounds = 110

// MiMC holds the round constants for one seed.
type MiMC struct {
	params []fr.Element
}

// NewMiMC derives the round constants from seed.
func NewMiMC(seed string) MiMC {
	params := make([]fr.Element, Rounds)
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(seed))
	d := h.Sum(nil)
	for i := range params {
		h.Reset()
		h.Write(d)
		d = h.Sum(nil)
		params[i].SetBytes(d)
	}
	return MiMC{params: params}
}

// encrypt is the native keyed permutation E_k(m).
func (m MiMC) encrypt(k, msg fr.Element) fr.Element {
	t := msg
	var s, s2, s4 fr.Element
	for _, c := range m.params {
		// t = (t + k + c)^5
		s.Add(&t, &k).Add(&s, &c)
		s2.Square(&s)
		s4.Square(&s2)
		t.Mul(&s4, &s)
	}
	return t
}

// Sum hashes data with Miyaguchi–Preneel chaining: h = E_h(x) + h + x.
// It is the out-of-circuit counterpart of Hash, used to build trees and as
// the reference in tests.
func (m MiMC) Sum(data ...fr.Element) fr.Element {
	var h fr.Element
	for _, x := range data {
		e := m.encrypt(h, x)
		h.Add(&h, &e).Add(&h, &x)
	}
	return h
}

// Hash computes the MiMC hash of data in-circuit. Each round costs 3
// constraints (two squarings and one multiplication); the additions are free.
func (m MiMC) Hash(cs frontend.ConstraintSystem, data ...num.Num) (num.Num, error) {
	h := num.Zero(cs)
	for i, x := range data {
		e, err := m.encryptCircuit(cs, h, x)
		if err != nil {
			return num.Num{}, fmt.Errorf("mimc: input %d: %w", i, err)
		}
		h = h.Add(e).Add(x)
	}
	return h, nil
}

// HashPair hashes exactly two inputs. It matches the merkle.Hasher shape.
func (m MiMC) HashPair(cs frontend.ConstraintSystem, left, right num.Num) (num.Num, error) {
	return m.Hash(cs, left, right)
}

func (m MiMC) encryptCircuit(cs frontend.ConstraintSystem, k, msg num.Num) (num.Num, error) {
	t := msg
	for _, c := range m.params {
		s := t.Add(k).AddConstant(cs, c)
		s2, err := num.Square(cs, s)
		if err != nil {
			return num.Num{}, err
		}
		s4, err := num.Square(cs, s2)
		if err != nil {
			return num.Num{}, err
		}
		t, err = num.Mul(cs, s4, s)
		if err != nil {
			return num.Num{}, err
		}
	}
	return t, nil
}
