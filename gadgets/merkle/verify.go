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

// Package merkle verifies Merkle authentication paths in-circuit.
//
// A path is a list of sibling digests plus one direction bit per level,
// ordered leaf to root. Direction bit 1 means the running digest is the right
// child at that level; 0 means it is the left child. The hash used to combine
// siblings is pluggable so the same path logic works over MiMC, Pedersen or
// any other two-to-one compression.
package merkle

import (
	"errors"
	"fmt"

	"github.com/peeraphut5053/franklin-crypto/frontend"
	"github.com/peeraphut5053/franklin-crypto/gadgets/boolean"
	"github.com/peeraphut5053/franklin-crypto/gadgets/num"
	"github.com/peeraphut5053/franklin-crypto/gadgets/selector"
)

// Hasher combines two child digests into a parent digest.
// mimc.MiMC.HashPair satisfies this shape.
type Hasher func(cs frontend.ConstraintSystem, left, right num.Num) (num.Num, error)

// ErrDepthMismatch is returned at construction time when the number of
// siblings and the number of direction bits disagree.
var ErrDepthMismatch = errors.New("merkle: sibling and direction counts differ")

// ComputeRoot walks the path from leaf to root and returns the resulting
// digest. Each level costs two selection constraints plus the hasher's own.
func ComputeRoot(cs frontend.ConstraintSystem, hash Hasher, leaf num.Num, siblings []num.Num, directions []boolean.Bit) (num.Num, error) {
	if len(siblings) != len(directions) {
		return num.Num{}, fmt.Errorf("%w: %d siblings, %d directions", ErrDepthMismatch, len(siblings), len(directions))
	}

	current := leaf
	for i := range siblings {
		left, right, err := selector.Swap(cs, directions[i], current, siblings[i])
		if err != nil {
			return num.Num{}, fmt.Errorf("merkle: level %d: %w", i, err)
		}
		current, err = hash(cs, left, right)
		if err != nil {
			return num.Num{}, fmt.Errorf("merkle: level %d: %w", i, err)
		}
	}
	return current, nil
}

// VerifyProof recomputes the root from the path and enforces equality with
// root. The resulting circuit is unsatisfiable for any tampered path.
func VerifyProof(cs frontend.ConstraintSystem, hash Hasher, root, leaf num.Num, siblings []num.Num, directions []boolean.Bit) error {
	computed, err := ComputeRoot(cs, hash, leaf, siblings, directions)
	if err != nil {
		return err
	}
	num.AssertEqual(cs, computed, root)
	return nil
}

// IsMember is the soft variant of VerifyProof: instead of enforcing equality
// it returns a bit set to 1 iff the path checks out, so membership can feed
// further logic.
func IsMember(cs frontend.ConstraintSystem, hash Hasher, root, leaf num.Num, siblings []num.Num, directions []boolean.Bit) (boolean.Bit, error) {
	computed, err := ComputeRoot(cs, hash, leaf, siblings, directions)
	if err != nil {
		return boolean.Bit{}, err
	}
	return boolean.Equal(cs, computed, root)
}
