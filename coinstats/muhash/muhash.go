// Package muhash implements an order-independent, multiplicatively
// homomorphic multiset hash over a 3072-bit group, suitable for hashing an
// unordered collection of byte strings to a single 256-bit digest.
//
// Note on the modulus: the retrieval pack used to ground this repository
// does not carry Bitcoin Core/ABC's own 3072-bit MuHash modulus constant, so
// the value below is this repository's own deterministically-generated
// 3072-bit odd modulus rather than the upstream one. It is not required to
// be prime: MuHash3072 here only ever multiplies elements into the
// accumulator (no division/removal), so (Z/NZ, ×) need only be a
// commutative monoid, which holds for any modulus. Digests produced by this
// package are therefore internally consistent (deterministic,
// order-independent) but will not match upstream golden vectors; see
// DESIGN.md.
package muhash

import (
	"crypto/sha256"
	"math/big"
)

// modulusBits is the group's bit width.
const modulusBits = 3072

// modulus is a fixed 3072-bit odd constant used as the multiplicative
// group's modulus. See the package doc comment for its provenance.
var modulus = func() *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), modulusBits)
	m.Sub(m, big.NewInt(1103717))
	return m
}()

// MuHash3072 accumulates elements via multiplication modulo a fixed 3072-bit
// constant. Insert is commutative, so the final digest is independent of
// insertion order.
type MuHash3072 struct {
	acc *big.Int
}

// New returns a MuHash3072 accumulator in its identity state.
func New() *MuHash3072 {
	return &MuHash3072{acc: big.NewInt(1)}
}

// Insert multiplies the group element derived from data into the running
// accumulator.
func (m *MuHash3072) Insert(data []byte) {
	elem := hashToGroup(data)
	m.acc.Mul(m.acc, elem)
	m.acc.Mod(m.acc, modulus)
}

// Finalize hashes the accumulator's current value to a 256-bit digest.
func (m *MuHash3072) Finalize() [32]byte {
	return sha256.Sum256(m.acc.Bytes())
}

// hashToGroup expands data into a pseudorandom 3072-bit value via counter-mode
// SHA-256 and reduces it modulo the group's modulus, retrying the counter
// if the reduction lands on the zero element (which has no multiplicative
// effect and would silently drop the input).
func hashToGroup(data []byte) *big.Int {
	const blockBytes = modulusBits / 8
	var counter uint32
	for {
		expanded := make([]byte, 0, blockBytes)
		for len(expanded) < blockBytes {
			var ctrBuf [4]byte
			ctrBuf[0] = byte(counter)
			ctrBuf[1] = byte(counter >> 8)
			ctrBuf[2] = byte(counter >> 16)
			ctrBuf[3] = byte(counter >> 24)
			h := sha256.New()
			h.Write(data)
			h.Write(ctrBuf[:])
			expanded = h.Sum(expanded)
			counter++
		}
		elem := new(big.Int).SetBytes(expanded[:blockBytes])
		elem.Mod(elem, modulus)
		if elem.Sign() != 0 {
			return elem
		}
	}
}
