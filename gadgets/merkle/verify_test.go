package merkle_test

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/peeraphut5053/franklin-crypto/backend/r1cs"
	"github.com/peeraphut5053/franklin-crypto/frontend"
	"github.com/peeraphut5053/franklin-crypto/gadgets/boolean"
	"github.com/peeraphut5053/franklin-crypto/gadgets/hash/mimc"
	"github.com/peeraphut5053/franklin-crypto/gadgets/merkle"
	"github.com/peeraphut5053/franklin-crypto/gadgets/num"
	"github.com/stretchr/testify/require"
)

const seed = "test_merkle"

// tree is a complete binary Merkle tree built natively over MiMC.
type tree struct {
	hasher mimc.MiMC
	depth  int
	// levels[0] is the leaves, levels[depth] is [root]
	levels [][]fr.Element
}

func buildTree(depth int) *tree {
	h := mimc.NewMiMC(seed)
	nbLeaves := 1 << depth

	levels := make([][]fr.Element, depth+1)
	levels[0] = make([]fr.Element, nbLeaves)
	for i := range levels[0] {
		levels[0][i].SetUint64(uint64(1000 + i))
	}
	for l := 1; l <= depth; l++ {
		prev := levels[l-1]
		levels[l] = make([]fr.Element, len(prev)/2)
		for i := range levels[l] {
			levels[l][i] = h.Sum(prev[2*i], prev[2*i+1])
		}
	}
	return &tree{hasher: h, depth: depth, levels: levels}
}

func (t *tree) root() fr.Element {
	return t.levels[t.depth][0]
}

// proof returns the sibling path and direction bits for leaf index.
// A set direction bit means the running digest is the right child.
func (t *tree) proof(index int) (siblings []fr.Element, directions []bool) {
	siblings = make([]fr.Element, t.depth)
	directions = make([]bool, t.depth)
	for l := 0; l < t.depth; l++ {
		directions[l] = index&1 == 1
		siblings[l] = t.levels[l][index^1]
		index >>= 1
	}
	return siblings, directions
}

type allocatedProof struct {
	root, leaf num.Num
	siblings   []num.Num
	directions []boolean.Bit
}

func allocProof(t *testing.T, cs frontend.ConstraintSystem, tr *tree, index int, root fr.Element) allocatedProof {
	t.Helper()
	assert := require.New(t)

	siblings, directions := tr.proof(index)

	rootN, err := num.Allocate(cs, frontend.Known(root))
	assert.NoError(err)
	leafN, err := num.Allocate(cs, frontend.Known(tr.levels[0][index]))
	assert.NoError(err)

	res := allocatedProof{root: rootN, leaf: leafN}
	for l := 0; l < tr.depth; l++ {
		s, err := num.Allocate(cs, frontend.Known(siblings[l]))
		assert.NoError(err)
		res.siblings = append(res.siblings, s)
		d, err := boolean.Allocate(cs, frontend.KnownBool(directions[l]))
		assert.NoError(err)
		res.directions = append(res.directions, d)
	}
	return res
}

func TestComputeRoot(t *testing.T) {
	tr := buildTree(3)
	want := tr.root()

	for index := 0; index < 8; index++ {
		assert := require.New(t)

		cs := r1cs.New(frontend.Prove)
		p := allocProof(t, cs, tr, index, want)

		got, err := merkle.ComputeRoot(cs, tr.hasher.HashPair, p.leaf, p.siblings, p.directions)
		assert.NoError(err)

		gv, ok := got.Value().Get()
		assert.True(ok)
		assert.True(gv.Equal(&want), "leaf %d", index)
		assert.NoError(cs.IsSatisfied())
	}
}

func TestVerifyProof(t *testing.T) {
	assert := require.New(t)
	tr := buildTree(4)

	cs := r1cs.New(frontend.Prove)
	p := allocProof(t, cs, tr, 11, tr.root())

	assert.NoError(merkle.VerifyProof(cs, tr.hasher.HashPair, p.root, p.leaf, p.siblings, p.directions))
	assert.NoError(cs.IsSatisfied())
}

func TestVerifyProofRejectsWrongRoot(t *testing.T) {
	assert := require.New(t)
	tr := buildTree(3)

	var wrongRoot fr.Element
	wrongRoot.SetUint64(12345)

	cs := r1cs.New(frontend.Prove)
	p := allocProof(t, cs, tr, 2, wrongRoot)

	assert.NoError(merkle.VerifyProof(cs, tr.hasher.HashPair, p.root, p.leaf, p.siblings, p.directions))
	assert.ErrorIs(cs.IsSatisfied(), r1cs.ErrUnsatisfied)
}

func TestVerifyProofRejectsTamperedSibling(t *testing.T) {
	assert := require.New(t)
	tr := buildTree(3)

	cs := r1cs.New(frontend.Prove)
	p := allocProof(t, cs, tr, 5, tr.root())

	// replace one sibling with an unrelated value
	tampered, err := num.Allocate(cs, frontend.KnownUint64(999))
	assert.NoError(err)
	p.siblings[1] = tampered

	assert.NoError(merkle.VerifyProof(cs, tr.hasher.HashPair, p.root, p.leaf, p.siblings, p.directions))
	assert.ErrorIs(cs.IsSatisfied(), r1cs.ErrUnsatisfied)
}

// Flipping a single bit of one sibling digest must already break the proof.
func TestVerifyProofRejectsBitFlippedSibling(t *testing.T) {
	assert := require.New(t)
	tr := buildTree(3)

	siblings, _ := tr.proof(5)
	corrupted := siblings[1].BigInt(new(big.Int))
	corrupted.Xor(corrupted, big.NewInt(1))
	var flipped fr.Element
	flipped.SetBigInt(corrupted)

	cs := r1cs.New(frontend.Prove)
	p := allocProof(t, cs, tr, 5, tr.root())

	s, err := num.Allocate(cs, frontend.Known(flipped))
	assert.NoError(err)
	p.siblings[1] = s

	assert.NoError(merkle.VerifyProof(cs, tr.hasher.HashPair, p.root, p.leaf, p.siblings, p.directions))
	assert.ErrorIs(cs.IsSatisfied(), r1cs.ErrUnsatisfied)
}

func TestVerifyProofRejectsFlippedDirection(t *testing.T) {
	assert := require.New(t)
	tr := buildTree(3)

	cs := r1cs.New(frontend.Prove)
	p := allocProof(t, cs, tr, 5, tr.root())

	_, directions := tr.proof(5)
	flipped, err := boolean.Allocate(cs, frontend.KnownBool(!directions[0]))
	assert.NoError(err)
	p.directions[0] = flipped

	assert.NoError(merkle.VerifyProof(cs, tr.hasher.HashPair, p.root, p.leaf, p.siblings, p.directions))
	assert.ErrorIs(cs.IsSatisfied(), r1cs.ErrUnsatisfied)
}

func TestVerifyProofRejectsTamperedLeaf(t *testing.T) {
	assert := require.New(t)
	tr := buildTree(3)

	cs := r1cs.New(frontend.Prove)
	p := allocProof(t, cs, tr, 5, tr.root())

	tampered, err := num.Allocate(cs, frontend.KnownUint64(999))
	assert.NoError(err)

	assert.NoError(merkle.VerifyProof(cs, tr.hasher.HashPair, p.root, tampered, p.siblings, p.directions))
	assert.ErrorIs(cs.IsSatisfied(), r1cs.ErrUnsatisfied)
}

func TestIsMember(t *testing.T) {
	assert := require.New(t)
	tr := buildTree(3)

	// valid path: member bit is 1 and the system stays satisfiable
	cs := r1cs.New(frontend.Prove)
	p := allocProof(t, cs, tr, 6, tr.root())

	member, err := merkle.IsMember(cs, tr.hasher.HashPair, p.root, p.leaf, p.siblings, p.directions)
	assert.NoError(err)
	v, ok := member.Value()
	assert.True(ok)
	assert.True(v)
	assert.NoError(cs.IsSatisfied())

	// invalid path: member bit is 0, the system is still satisfiable
	var wrongRoot fr.Element
	wrongRoot.SetUint64(777)
	cs = r1cs.New(frontend.Prove)
	p = allocProof(t, cs, tr, 6, wrongRoot)

	member, err = merkle.IsMember(cs, tr.hasher.HashPair, p.root, p.leaf, p.siblings, p.directions)
	assert.NoError(err)
	v, ok = member.Value()
	assert.True(ok)
	assert.False(v)
	assert.NoError(cs.IsSatisfied(), "a failed soft check must not make the circuit unsatisfiable")
}

func TestDepthMismatch(t *testing.T) {
	assert := require.New(t)
	tr := buildTree(3)

	cs := r1cs.New(frontend.Prove)
	p := allocProof(t, cs, tr, 0, tr.root())

	_, err := merkle.ComputeRoot(cs, tr.hasher.HashPair, p.leaf, p.siblings[:2], p.directions)
	assert.ErrorIs(err, merkle.ErrDepthMismatch)
}

func TestLayoutDeterminism(t *testing.T) {
	assert := require.New(t)
	tr := buildTree(3)

	build := func(index int) [32]byte {
		cs := r1cs.New(frontend.Prove)
		p := allocProof(t, cs, tr, index, tr.root())
		assert.NoError(merkle.VerifyProof(cs, tr.hasher.HashPair, p.root, p.leaf, p.siblings, p.directions))
		f, err := cs.Fingerprint()
		assert.NoError(err)
		return f
	}

	// the layout depends on the depth, never on the position or the values
	assert.Equal(build(0), build(7))
	assert.Equal(build(3), build(4))
}
