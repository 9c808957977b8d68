package pedersen

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	edbn254 "github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/peeraphut5053/franklin-crypto/gadgets/twistededwards"
	"golang.org/x/crypto/blake2b"
)

// ErrNoGenerator is returned when no curve point could be derived from the
// personalization tag. With 256 attempts per generator this is unreachable in
// practice; it guards against a broken tag/index encoding.
var ErrNoGenerator = errors.New("could not derive a generator from the personalization tag")

var cofactorBig = big.NewInt(8)

// deriveGenerator maps (tag, index) to a fixed point of the prime-order
// subgroup, by try-and-increment: the blake2b digest of tag||index||counter
// is interpreted as an x coordinate, the curve equation is solved for y, and
// the resulting point is cleared of its cofactor.
func deriveGenerator(curve twistededwards.Curve, tag string, index int) (edbn254.PointAffine, error) {
	buf := make([]byte, 0, len(tag)+8)
	buf = append(buf, tag...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(index))

	for ctr := uint32(0); ctr < 256; ctr++ {
		seed := binary.BigEndian.AppendUint32(buf, ctr)
		digest := blake2b.Sum256(seed)

		var x fr.Element
		x.SetBytes(digest[:])
		p, ok := solveForY(curve, x)
		if !ok {
			continue
		}

		// land in the prime-order subgroup
		p.ScalarMultiplication(&p, cofactorBig)
		if p.X.IsZero() && p.Y.IsOne() {
			continue
		}
		return p, nil
	}
	return edbn254.PointAffine{}, fmt.Errorf("pedersen: tag %q index %d: %w", tag, index, ErrNoGenerator)
}

// solveForY solves a*x^2 + y^2 = 1 + d*x^2*y^2 for y, i.e.
// y^2 = (1 - a*x^2) / (1 - d*x^2). The returned sign of y is whatever the
// field square root produces; derivation only needs determinism.
func solveForY(curve twistededwards.Curve, x fr.Element) (edbn254.PointAffine, bool) {
	var one, xx, t, nu, de, y2, y fr.Element
	one.SetOne()
	xx.Square(&x)

	t.Mul(&curve.A, &xx)
	nu.Sub(&one, &t)
	t.Mul(&curve.D, &xx)
	de.Sub(&one, &t)
	if de.IsZero() {
		return edbn254.PointAffine{}, false
	}
	de.Inverse(&de)
	y2.Mul(&nu, &de)
	if y.Sqrt(&y2) == nil {
		return edbn254.PointAffine{}, false
	}

	var p edbn254.PointAffine
	p.X = x
	p.Y = y
	if !p.IsOnCurve() {
		return edbn254.PointAffine{}, false
	}
	return p, true
}
