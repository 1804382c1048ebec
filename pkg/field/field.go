// Package field wraps the BN254 scalar field as the concrete realization of
// the 255-bit-class prime field Fp, used for every leaf, commitment, and
// root value in this repository.
package field

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Fp is an element of the BN254 scalar field, reduced modulo the field
// prime at every construction point.
type Fp struct {
	v fr.Element
}

// Zero returns the additive identity.
func Zero() Fp { return Fp{} }

// One returns the multiplicative identity.
func One() Fp {
	var f Fp
	f.v.SetOne()
	return f
}

// FromUint64 lifts an unsigned 64-bit integer into Fp.
func FromUint64(n uint64) Fp {
	var f Fp
	f.v.SetUint64(n)
	return f
}

// Add returns a + b.
func Add(a, b Fp) Fp {
	var out Fp
	out.v.Add(&a.v, &b.v)
	return out
}

// Sub returns a - b.
func Sub(a, b Fp) Fp {
	var out Fp
	out.v.Sub(&a.v, &b.v)
	return out
}

// Mul returns a * b.
func Mul(a, b Fp) Fp {
	var out Fp
	out.v.Mul(&a.v, &b.v)
	return out
}

// Equal reports whether a and b are the same field element.
func Equal(a, b Fp) bool {
	return a.v.Equal(&b.v)
}

// IsZero reports whether f is the additive identity.
func (f Fp) IsZero() bool {
	return f.v.IsZero()
}

// Bytes returns the canonical 32-byte little-endian encoding of f.
func (f Fp) Bytes() [32]byte {
	be := f.v.Bytes() // gnark-crypto encodes big-endian
	var le [32]byte
	for i := range be {
		le[i] = be[len(be)-1-i]
	}
	return le
}

// SetBytes interprets b as a canonical little-endian encoding and sets f to
// the corresponding field element. It returns an error if b does not
// represent a canonical encoding — i.e. if the little-endian integer it
// encodes is at or above the field modulus. fr.Element.SetBytes silently
// reduces out-of-range values modulo the field prime rather than erroring,
// so canonicality is checked by re-encoding the result and comparing it
// byte-for-byte against the input.
func SetBytes(b [32]byte) (Fp, error) {
	var be [32]byte
	for i := range b {
		be[i] = b[len(b)-1-i]
	}
	var f Fp
	f.v.SetBytes(be[:])

	if f.Bytes() != b {
		return Fp{}, fmt.Errorf("field: non-canonical encoding (value exceeds field modulus)")
	}
	return f, nil
}

// Hex returns the lowercase 64-character hex rendering of f's canonical
// little-endian encoding.
func (f Fp) Hex() string {
	b := f.Bytes()
	return hex.EncodeToString(b[:])
}

// FromHex parses a lowercase 64-character hex string into Fp, requiring an
// exact length and a canonical encoding.
func FromHex(s string) (Fp, error) {
	if len(s) != 64 {
		return Fp{}, fmt.Errorf("field: expected 64 hex characters, got %d", len(s))
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Fp{}, fmt.Errorf("field: invalid hex: %w", err)
	}
	var b [32]byte
	copy(b[:], raw)
	return SetBytes(b)
}

// String renders f for logging/debugging; not used for wire encoding.
func (f Fp) String() string {
	return f.v.String()
}

// BigInt returns f as a *big.Int, for bridging into gnark circuit witness
// assignments (frontend.Variable accepts *big.Int directly).
func (f Fp) BigInt() *big.Int {
	return f.v.BigInt(new(big.Int))
}
