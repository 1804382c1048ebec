// Package poseidon provides the out-of-circuit Poseidon2 compression
// function used to build and extend the Merkle accumulator and to derive
// commitments. Every function here must match bit-for-bit the in-circuit
// gadget used by circuits/inclusion — see
// TestInclusionCircuitCommitmentCrossCheck in that package.
package poseidon

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/poseidon2"

	"github.com/murihq/zkmembership/pkg/field"
)

// Hash2 computes the 2-to-1 Poseidon2 compression of a and b, in the same
// Merkle-Damgård sponge mode and canonical byte encoding used throughout
// this repository's hashing helpers.
func Hash2(a, b field.Fp) field.Fp {
	h := poseidon2.NewMerkleDamgardHasher()

	aBytes := a.Bytes()
	bBytes := b.Bytes()
	// poseidon2.NewMerkleDamgardHasher expects big-endian field-element
	// encodings (it feeds them directly into fr.Element.SetBytes
	// internally); field.Fp.Bytes returns little-endian, so reverse here.
	aBE := reverse(aBytes)
	bBE := reverse(bBytes)

	h.Write(aBE[:])
	h.Write(bBE[:])

	sum := h.Sum(nil)
	var out [32]byte
	copy(out[32-len(sum):], sum)
	f, _ := field.SetBytes(reverse(out))
	return f
}

// Commit derives the Poseidon commitment of a secret, defined as
// Hash2(FromUint64(secret), Zero()) — a length-1 hash padded with a
// domain-fixed zero second input.
func Commit(secret uint64) field.Fp {
	return Hash2(field.FromUint64(secret), field.Zero())
}

func reverse(b [32]byte) [32]byte {
	var out [32]byte
	for i := range b {
		out[i] = b[len(b)-1-i]
	}
	return out
}
