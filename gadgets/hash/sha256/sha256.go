// Package sha256 implements the SHA-256 hash function as a boolean circuit.
//
// Unlike the algebraic hashes, every word of internal state is represented as
// 32 constrained bits, so the digest matches the FIPS 180-4 standard
// bit-for-bit (crypto/sha256 is the reference in tests). This costs far more
// constraints than MiMC or Pedersen and is meant for circuits that must agree
// with externally produced SHA-256 digests.
//
// Bit strings handed to and returned by Hash are in big-endian bit order: the
// first bit is the most significant bit of the first byte of the message.
package sha256

import (
	"fmt"

	"github.com/peeraphut5053/franklin-crypto/frontend"
	"github.com/peeraphut5053/franklin-crypto/gadgets/bits"
	"github.com/peeraphut5053/franklin-crypto/gadgets/boolean"
	"github.com/peeraphut5053/franklin-crypto/gadgets/num"
	"github.com/peeraphut5053/franklin-crypto/gadgets/selector"
)

// word is a 32-bit unsigned integer as bits, least significant first.
type word []boolean.Bit

var initH = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

var roundK = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

// Hash computes the SHA-256 digest of data (standard padding included) and
// returns the 256 digest bits in big-endian bit order.
func Hash(cs frontend.ConstraintSystem, data []boolean.Bit) ([]boolean.Bit, error) {
	padded := pad(cs, data)

	h := make([]word, 8)
	for i := range h {
		h[i] = constWord(cs, initH[i])
	}

	for off := 0; off < len(padded); off += 512 {
		var err error
		h, err = compress(cs, h, padded[off:off+512])
		if err != nil {
			return nil, fmt.Errorf("sha256: block %d: %w", off/512, err)
		}
	}

	digest := make([]boolean.Bit, 0, 256)
	for i := range h {
		digest = append(digest, wordToMSBFirst(h[i])...)
	}
	return digest, nil
}

// PackDigest folds a 256-bit digest into a single field element by keeping
// its 253 low-order bits (the top 3 bits are dropped so the integer always
// fits the field). Free of constraints.
func PackDigest(cs frontend.ConstraintSystem, digest []boolean.Bit) (num.Num, error) {
	if len(digest) != 256 {
		return num.Num{}, fmt.Errorf("sha256: pack digest: want 256 bits, got %d", len(digest))
	}
	return bits.Recompose(cs, msbFirstToWord(digest[3:])), nil
}

// pad appends the standard SHA-256 padding as constant bits: a single 1 bit,
// zeros, and the 64-bit big-endian message length.
func pad(cs frontend.ConstraintSystem, data []boolean.Bit) []boolean.Bit {
	length := uint64(len(data))
	padded := make([]boolean.Bit, 0, ((len(data)+1+64)/512+1)*512)
	padded = append(padded, data...)
	padded = append(padded, boolean.Constant(cs, true))
	for len(padded)%512 != 448 {
		padded = append(padded, boolean.Constant(cs, false))
	}
	for i := 63; i >= 0; i-- {
		padded = append(padded, boolean.Constant(cs, (length>>uint(i))&1 == 1))
	}
	return padded
}

func compress(cs frontend.ConstraintSystem, h []word, block []boolean.Bit) ([]word, error) {
	// message schedule
	w := make([]word, 64)
	for t := 0; t < 16; t++ {
		w[t] = msbFirstToWord(block[32*t : 32*t+32])
	}
	for t := 16; t < 64; t++ {
		s0, err := xor3(cs, rotr(w[t-15], 7), rotr(w[t-15], 18), shr(cs, w[t-15], 3))
		if err != nil {
			return nil, err
		}
		s1, err := xor3(cs, rotr(w[t-2], 17), rotr(w[t-2], 19), shr(cs, w[t-2], 10))
		if err != nil {
			return nil, err
		}
		w[t], err = addWords(cs, w[t-16], s0, w[t-7], s1)
		if err != nil {
			return nil, err
		}
	}

	a, b, c, d := h[0], h[1], h[2], h[3]
	e, f, g, hh := h[4], h[5], h[6], h[7]

	for t := 0; t < 64; t++ {
		bigS1, err := xor3(cs, rotr(e, 6), rotr(e, 11), rotr(e, 25))
		if err != nil {
			return nil, err
		}
		ch, err := choose(cs, e, f, g)
		if err != nil {
			return nil, err
		}
		t1, err := addWords(cs, hh, bigS1, ch, constWord(cs, roundK[t]), w[t])
		if err != nil {
			return nil, err
		}
		bigS0, err := xor3(cs, rotr(a, 2), rotr(a, 13), rotr(a, 22))
		if err != nil {
			return nil, err
		}
		mj, err := majority(cs, a, b, c)
		if err != nil {
			return nil, err
		}
		t2, err := addWords(cs, bigS0, mj)
		if err != nil {
			return nil, err
		}

		hh, g, f = g, f, e
		e, err = addWords(cs, d, t1)
		if err != nil {
			return nil, err
		}
		d, c, b = c, b, a
		a, err = addWords(cs, t1, t2)
		if err != nil {
			return nil, err
		}
	}

	res := make([]word, 8)
	in := []word{a, b, c, d, e, f, g, hh}
	for i := range res {
		var err error
		res[i], err = addWords(cs, h[i], in[i])
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// choose computes Ch(e, f, g) = (e AND f) XOR (NOT e AND g) bitwise, one
// constraint per bit: each bit is the multiplexer f if e else g.
func choose(cs frontend.ConstraintSystem, e, f, g word) (word, error) {
	res := make(word, 32)
	for i := range res {
		v, err := selector.Select(cs, e[i], f[i].Num(), g[i].Num())
		if err != nil {
			return nil, err
		}
		res[i] = boolean.LiftUnchecked(v)
	}
	return res, nil
}

// majority computes Maj(a, b, c) bitwise: when a and b agree the result is
// their shared value, otherwise it is c (two constraints per bit).
func majority(cs frontend.ConstraintSystem, a, b, c word) (word, error) {
	res := make(word, 32)
	for i := range res {
		differs, err := boolean.Xor(cs, a[i], b[i])
		if err != nil {
			return nil, err
		}
		v, err := selector.Select(cs, differs, c[i].Num(), b[i].Num())
		if err != nil {
			return nil, err
		}
		res[i] = boolean.LiftUnchecked(v)
	}
	return res, nil
}

func xor3(cs frontend.ConstraintSystem, a, b, c word) (word, error) {
	res := make(word, 32)
	for i := range res {
		t, err := boolean.Xor(cs, a[i], b[i])
		if err != nil {
			return nil, err
		}
		res[i], err = boolean.Xor(cs, t, c[i])
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// addWords adds words modulo 2^32: the operands are summed as one field
// element and re-decomposed, the carry bits above position 31 are discarded.
func addWords(cs frontend.ConstraintSystem, ws ...word) (word, error) {
	sum := num.Zero(cs)
	for _, w := range ws {
		sum = sum.Add(bits.Recompose(cs, w))
	}
	extra := 0
	for 1<<extra < len(ws) {
		extra++
	}
	sumBits, err := bits.Decompose(cs, sum, 32+extra)
	if err != nil {
		return nil, err
	}
	return word(sumBits[:32]), nil
}

// rotr rotates right by n, a free rewiring of the bit slice.
func rotr(a word, n int) word {
	res := make(word, 32)
	for i := range res {
		res[i] = a[(i+n)%32]
	}
	return res
}

// shr shifts right by n, filling with constant zeros.
func shr(cs frontend.ConstraintSystem, a word, n int) word {
	res := make(word, 32)
	for i := range res {
		if i+n < 32 {
			res[i] = a[i+n]
		} else {
			res[i] = boolean.Constant(cs, false)
		}
	}
	return res
}

func constWord(cs frontend.ConstraintSystem, u uint32) word {
	res := make(word, 32)
	for i := range res {
		res[i] = boolean.Constant(cs, (u>>uint(i))&1 == 1)
	}
	return res
}

// msbFirstToWord reverses a 32-bit big-endian slice into LSB-first order.
func msbFirstToWord(b []boolean.Bit) word {
	res := make(word, len(b))
	for i := range res {
		res[i] = b[len(b)-1-i]
	}
	return res
}

func wordToMSBFirst(w word) []boolean.Bit {
	res := make([]boolean.Bit, len(w))
	for i := range res {
		res[i] = w[len(w)-1-i]
	}
	return res
}
