// Package franklincrypto provides a library of composable gadgets to build
// arithmetic circuits for zk-SNARK proof systems.
//
// A gadget is a reusable unit of constraint-emitting logic: it allocates
// variables and enforces rank-1 constraints (a*b = c over linear combinations)
// into a caller-supplied constraint system. Gadgets never own the constraint
// system; every operation takes it as an explicit parameter, so multiple
// independent circuits can be synthesized concurrently.
//
// The library is organized bottom-up:
//
//   - frontend: the constraint-system abstraction (Variable, LinearCombination,
//     the ConstraintSystem interface and the Setup/Prove synthesis modes)
//   - backend/r1cs: a reference in-memory constraint system used for witness
//     checking and constraint-layout fingerprinting
//   - gadgets/num, gadgets/boolean, gadgets/bits, gadgets/selector: field
//     element, boolean, bit-decomposition and multiplexer primitives
//   - gadgets/twistededwards: point arithmetic on the twisted Edwards curve
//     embedded in the BN254 scalar field
//   - gadgets/hash: MiMC and Pedersen algebraic hashes, and a bit-oriented
//     SHA-256 circuit
//   - gadgets/merkle: Merkle-path membership verification
//
// All values live in the BN254 scalar field (gnark-crypto fr.Element).
package franklincrypto
