package twistededwards_test

import (
	"math/big"
	"testing"

	edbn254 "github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/peeraphut5053/franklin-crypto/backend/r1cs"
	"github.com/peeraphut5053/franklin-crypto/frontend"
	"github.com/peeraphut5053/franklin-crypto/gadgets/boolean"
	"github.com/peeraphut5053/franklin-crypto/gadgets/twistededwards"
	"github.com/stretchr/testify/require"
)

// allocPoint allocates p as a witness point, curve membership enforced.
func allocPoint(t *testing.T, cs frontend.ConstraintSystem, curve twistededwards.Curve, p edbn254.PointAffine) twistededwards.Point {
	t.Helper()
	res, err := twistededwards.Allocate(cs, curve, frontend.Known(p.X), frontend.Known(p.Y))
	require.NoError(t, err)
	return res
}

// scalarBits allocates the n low-order bits of k, least significant first.
func scalarBits(t *testing.T, cs frontend.ConstraintSystem, k *big.Int, n int) []boolean.Bit {
	t.Helper()
	bits := make([]boolean.Bit, n)
	for i := range bits {
		b, err := boolean.Allocate(cs, frontend.KnownBool(k.Bit(i) == 1))
		require.NoError(t, err)
		bits[i] = b
	}
	return bits
}

func assertPointEqual(t *testing.T, want edbn254.PointAffine, got twistededwards.Point) {
	t.Helper()
	gv, ok := got.Value()
	require.True(t, ok, "point value must be concrete in prove mode")
	require.True(t, gv.Equal(&want), "want (%s, %s), got (%s, %s)",
		want.X.String(), want.Y.String(), gv.X.String(), gv.Y.String())
}

// mulBase returns [k]Base natively.
func mulBase(curve twistededwards.Curve, k int64) edbn254.PointAffine {
	var p edbn254.PointAffine
	p.ScalarMultiplication(&curve.Base, big.NewInt(k))
	return p
}

func TestAllocateRejectsOffCurve(t *testing.T) {
	curve := twistededwards.NewCurve()
	cs := r1cs.New(frontend.Prove)

	_, err := twistededwards.Allocate(cs, curve, frontend.KnownUint64(1), frontend.KnownUint64(1))
	require.ErrorIs(t, err, twistededwards.ErrNotOnCurve)
}

func TestAllocateOnCurve(t *testing.T) {
	assert := require.New(t)
	curve := twistededwards.NewCurve()

	cs := r1cs.New(frontend.Prove)
	allocPoint(t, cs, curve, curve.Base)
	assert.NoError(cs.IsSatisfied())
}

func TestAddMatchesNative(t *testing.T) {
	assert := require.New(t)
	curve := twistededwards.NewCurve()

	p := mulBase(curve, 3)
	q := mulBase(curve, 7)
	var want edbn254.PointAffine
	want.Add(&p, &q)

	cs := r1cs.New(frontend.Prove)
	gp := allocPoint(t, cs, curve, p)
	gq := allocPoint(t, cs, curve, q)

	sum, err := twistededwards.Add(cs, curve, gp, gq)
	assert.NoError(err)
	assertPointEqual(t, want, sum)
	assert.NoError(cs.IsSatisfied())
}

// The unified formulas must hold for the exceptional cases of a generic
// addition law: identity operands and equal operands.
func TestAddUnifiedCases(t *testing.T) {
	assert := require.New(t)
	curve := twistededwards.NewCurve()
	p := mulBase(curve, 5)

	t.Run("identity left", func(t *testing.T) {
		cs := r1cs.New(frontend.Prove)
		gp := allocPoint(t, cs, curve, p)
		sum, err := twistededwards.Add(cs, curve, twistededwards.Identity(cs), gp)
		assert.NoError(err)
		assertPointEqual(t, p, sum)
		assert.NoError(cs.IsSatisfied())
	})

	t.Run("identity right", func(t *testing.T) {
		cs := r1cs.New(frontend.Prove)
		gp := allocPoint(t, cs, curve, p)
		sum, err := twistededwards.Add(cs, curve, gp, twistededwards.Identity(cs))
		assert.NoError(err)
		assertPointEqual(t, p, sum)
		assert.NoError(cs.IsSatisfied())
	})

	t.Run("doubling", func(t *testing.T) {
		var want edbn254.PointAffine
		want.Double(&p)

		cs := r1cs.New(frontend.Prove)
		gp := allocPoint(t, cs, curve, p)
		dbl, err := twistededwards.Double(cs, curve, gp)
		assert.NoError(err)
		assertPointEqual(t, want, dbl)
		assert.NoError(cs.IsSatisfied())
	})
}

func TestNeg(t *testing.T) {
	assert := require.New(t)
	curve := twistededwards.NewCurve()
	p := mulBase(curve, 9)

	cs := r1cs.New(frontend.Prove)
	gp := allocPoint(t, cs, curve, p)

	sum, err := twistededwards.Add(cs, curve, gp, twistededwards.Neg(gp))
	assert.NoError(err)

	var identity edbn254.PointAffine
	identity.X.SetZero()
	identity.Y.SetOne()
	assertPointEqual(t, identity, sum)
	assert.NoError(cs.IsSatisfied())
}

func TestSelectPoint(t *testing.T) {
	assert := require.New(t)
	curve := twistededwards.NewCurve()
	p := mulBase(curve, 2)
	q := mulBase(curve, 3)

	for _, cond := range []bool{false, true} {
		cs := r1cs.New(frontend.Prove)
		c, err := boolean.Allocate(cs, frontend.KnownBool(cond))
		assert.NoError(err)
		gp := allocPoint(t, cs, curve, p)
		gq := allocPoint(t, cs, curve, q)

		sel, err := twistededwards.Select(cs, c, gp, gq)
		assert.NoError(err)
		want := q
		if cond {
			want = p
		}
		assertPointEqual(t, want, sel)
		assert.NoError(cs.IsSatisfied())
	}
}

func TestScalarMul(t *testing.T) {
	assert := require.New(t)
	curve := twistededwards.NewCurve()

	for _, k := range []int64{0, 1, 2, 5, 0xdeadbeef} {
		var want edbn254.PointAffine
		want.ScalarMultiplication(&curve.Base, big.NewInt(k))

		cs := r1cs.New(frontend.Prove)
		gp := allocPoint(t, cs, curve, curve.Base)
		bits := scalarBits(t, cs, big.NewInt(k), 40)

		res, err := twistededwards.ScalarMul(cs, curve, gp, bits)
		assert.NoError(err)
		assertPointEqual(t, want, res)
		assert.NoError(cs.IsSatisfied())
	}
}

func TestScalarMulFixed(t *testing.T) {
	assert := require.New(t)
	curve := twistededwards.NewCurve()

	k := new(big.Int).SetUint64(0xfeedface)
	var want edbn254.PointAffine
	want.ScalarMultiplication(&curve.Base, k)

	cs := r1cs.New(frontend.Prove)
	bits := scalarBits(t, cs, k, 40)

	res, err := twistededwards.ScalarMulFixed(cs, curve, curve.Base, bits)
	assert.NoError(err)
	assertPointEqual(t, want, res)
	assert.NoError(cs.IsSatisfied())
}

// The base point has prime order, so [order+1]Base = Base.
func TestScalarMulOrderPlusOne(t *testing.T) {
	assert := require.New(t)
	curve := twistededwards.NewCurve()

	k := new(big.Int).Add(&curve.Order, big.NewInt(1))

	cs := r1cs.New(frontend.Prove)
	bits := scalarBits(t, cs, k, k.BitLen())

	res, err := twistededwards.ScalarMulFixed(cs, curve, curve.Base, bits)
	assert.NoError(err)
	assertPointEqual(t, curve.Base, res)
	assert.NoError(cs.IsSatisfied())
}

// Fixed-base and variable-base ladders implement the same map; the fixed-base
// variant just trades in-circuit doublings for precomputed constants.
func TestScalarMulVariantsAgree(t *testing.T) {
	assert := require.New(t)
	curve := twistededwards.NewCurve()
	k := big.NewInt(123456789)

	cs := r1cs.New(frontend.Prove)
	bits := scalarBits(t, cs, k, 32)
	gp := allocPoint(t, cs, curve, curve.Base)

	variable, err := twistededwards.ScalarMul(cs, curve, gp, bits)
	assert.NoError(err)
	fixed, err := twistededwards.ScalarMulFixed(cs, curve, curve.Base, bits)
	assert.NoError(err)

	vv, ok := variable.Value()
	assert.True(ok)
	fv, ok := fixed.Value()
	assert.True(ok)
	assert.True(vv.Equal(&fv))
	assert.True(cs.NbConstraints() > 0)
	assert.NoError(cs.IsSatisfied())
}

func TestScalarMulLayoutDeterminism(t *testing.T) {
	assert := require.New(t)
	curve := twistededwards.NewCurve()

	build := func(mode frontend.Mode, k int64) [32]byte {
		cs := r1cs.New(mode)
		var x, y frontend.Value
		if mode == frontend.Prove {
			x = frontend.Known(curve.Base.X)
			y = frontend.Known(curve.Base.Y)
		} else {
			x = frontend.Unknown()
			y = frontend.Unknown()
		}
		gp, err := twistededwards.Allocate(cs, curve, x, y)
		assert.NoError(err)

		bits := make([]boolean.Bit, 16)
		for i := range bits {
			v := frontend.Unknown()
			if mode == frontend.Prove {
				v = frontend.KnownBool(big.NewInt(k).Bit(i) == 1)
			}
			b, err := boolean.Allocate(cs, v)
			assert.NoError(err)
			bits[i] = b
		}

		_, err = twistededwards.ScalarMul(cs, curve, gp, bits)
		assert.NoError(err)
		f, err := cs.Fingerprint()
		assert.NoError(err)
		return f
	}

	setup := build(frontend.Setup, 0)
	p1 := build(frontend.Prove, 1234)
	p2 := build(frontend.Prove, 4321)
	assert.Equal(setup, p1)
	assert.Equal(p1, p2)
}
