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

// Package twistededwards implements point arithmetic on the twisted Edwards
// curve embedded in the BN254 scalar field (Baby-Jubjub).
//
// Twisted Edwards curves have unified addition formulas, valid for doubling
// and for the identity element alike, which is what makes them suitable for
// circuits: the addition law needs no exceptional-case branching.
package twistededwards

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	edbn254 "github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
)

// Curve holds the parameters of the embedded curve a*x^2 + y^2 = 1 + d*x^2*y^2.
type Curve struct {
	A, D     fr.Element
	Cofactor fr.Element
	Order    big.Int
	Base     edbn254.PointAffine
}

// NewCurve returns the parameters of the Baby-Jubjub curve.
func NewCurve() Curve {
	params := edbn254.GetEdwardsCurve()
	return Curve{
		A:        params.A,
		D:        params.D,
		Cofactor: params.Cofactor,
		Order:    params.Order,
		Base:     params.Base,
	}
}
