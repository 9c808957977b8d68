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
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Value is the sum type {Known(fr.Element), Unknown} threaded alongside
// symbolic variables during synthesis.
//
// In Prove mode gadgets carry Known values and use them to compute the witness
// of derived variables; in Setup mode every Value is Unknown. Modelling the
// duality as a dedicated type (rather than a nullable field) keeps the two
// synthesis modes from being confused.
type Value struct {
	concrete fr.Element
	known    bool
}

// Known returns a concrete Value.
func Known(v fr.Element) Value {
	return Value{concrete: v, known: true}
}

// KnownUint64 returns a concrete Value set to u.
func KnownUint64(u uint64) Value {
	var e fr.Element
	e.SetUint64(u)
	return Known(e)
}

// KnownBool returns a concrete Value set to 0 or 1.
func KnownBool(b bool) Value {
	if b {
		return KnownUint64(1)
	}
	return KnownUint64(0)
}

// Unknown returns a symbolic Value.
func Unknown() Value {
	return Value{}
}

// Get returns the concrete field element and true, or the zero element and
// false if the Value is symbolic.
func (v Value) Get() (fr.Element, bool) {
	return v.concrete, v.known
}

// IsKnown reports whether the Value is concrete.
func (v Value) IsKnown() bool {
	return v.known
}

func (v Value) String() string {
	if !v.known {
		return "<unknown>"
	}
	return v.concrete.String()
}
