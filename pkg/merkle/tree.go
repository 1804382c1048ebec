// Package merkle implements the Poseidon-hashed, power-of-two-padded binary
// Merkle accumulator: the sole shared mutable resource in this repository,
// guarded by a single sync.RWMutex.
package merkle

import (
	"fmt"
	"sync"

	"github.com/murihq/zkmembership/pkg/field"
	"github.com/murihq/zkmembership/pkg/poseidon"
)

// InclusionProof is the sibling hashes and direction bits along the path
// from a leaf to the root, ordered leaf-to-root.
type InclusionProof struct {
	Leaf       field.Fp
	Siblings   []field.Fp
	Directions []field.Fp // each 0 or 1; 0 = path node is the left child
	Root       field.Fp
}

// Tree is the Merkle accumulator. The zero value is not usable; construct
// with New.
type Tree struct {
	mu     sync.RWMutex
	leaves []field.Fp   // levels[0]
	levels [][]field.Fp // levels[k] has len(leaves) / 2^k entries; levels[depth] is the root
	depth  int
}

// RawLeaf lifts an unsigned 64-bit demo value into a leaf Fp. Used only for
// testing and the default demo tree; production leaves always go through
// CommitmentLeaf instead.
func RawLeaf(v uint64) field.Fp {
	return field.FromUint64(v)
}

// CommitmentLeaf wraps an already-computed Poseidon commitment as a leaf.
// This is the production path: callers compute poseidon.Commit(secret)
// themselves and never reveal the secret to the tree.
func CommitmentLeaf(c field.Fp) field.Fp {
	return c
}

// New builds a tree from an initial, non-empty sequence of leaves. The
// sequence is padded with Fp zero values up to the next power of two
// (Invariant I2) and every level is built from the padded leaves
// (Invariant I1). Passing an empty slice is a precondition violation; the
// degenerate seed [0] should be passed explicitly instead.
func New(initial []field.Fp) (*Tree, error) {
	if len(initial) == 0 {
		return nil, fmt.Errorf("merkle: New requires a non-empty leaf sequence (pass []field.Fp{field.Zero()} for the degenerate seed)")
	}

	t := &Tree{}
	t.leaves = padToPowerOfTwo(initial)
	t.build()
	return t, nil
}

// Append strips trailing zero padding leaves (stopping as soon as a
// non-zero leaf is reached, or only one leaf remains, so intentionally
// zero seed leaves are preserved), pushes v, re-pads to the next power of
// two, and rebuilds every level from scratch. Post-condition: Invariants
// I1-I3 hold; depth increases by at most 1.
func (t *Tree) Append(v field.Fp) {
	t.mu.Lock()
	defer t.mu.Unlock()

	leaves := t.leaves
	for len(leaves) > 1 && leaves[len(leaves)-1].IsZero() {
		leaves = leaves[:len(leaves)-1]
	}
	leaves = append(leaves, v)

	t.leaves = padToPowerOfTwo(leaves)
	t.build()
}

// Root returns the single element of the top level.
func (t *Tree) Root() field.Fp {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.levels[t.depth][0]
}

// NumLeaves returns the current (padded) leaf count.
func (t *Tree) NumLeaves() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.leaves)
}

// Depth returns log2(NumLeaves()).
func (t *Tree) Depth() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.depth
}

// Leaves returns a defensive copy of the current leaf sequence.
func (t *Tree) Leaves() []field.Fp {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]field.Fp, len(t.leaves))
	copy(out, t.leaves)
	return out
}

// FindCommitment returns the first leaf index equal to c, and whether one
// was found. Used by the Proof Service to locate a registered commitment
// before extracting its inclusion path.
func (t *Tree) FindCommitment(c field.Fp) (int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i, l := range t.leaves {
		if field.Equal(l, c) {
			return i, true
		}
	}
	return 0, false
}

// GenerateProof extracts the inclusion proof for leaf i. It returns
// (InclusionProof{}, false) iff i < 0 or i >= NumLeaves(); it never panics
// on an out-of-range index.
func (t *Tree) GenerateProof(i int) (InclusionProof, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if i < 0 || i >= len(t.leaves) {
		return InclusionProof{}, false
	}

	proof := InclusionProof{
		Leaf:       t.leaves[i],
		Siblings:   make([]field.Fp, t.depth),
		Directions: make([]field.Fp, t.depth),
		Root:       t.levels[t.depth][0],
	}

	current := i
	for k := 0; k < t.depth; k++ {
		sibling := current ^ 1
		proof.Siblings[k] = t.levels[k][sibling]
		if current%2 == 0 {
			proof.Directions[k] = field.Zero()
		} else {
			proof.Directions[k] = field.One()
		}
		current /= 2
	}

	return proof, true
}

// build recomputes every level from t.leaves and sets t.depth. It is O(n)
// in the padded leaf count; an implementer may optimize this to O(log n)
// per append without changing the accumulator's contract.
func (t *Tree) build() {
	n := len(t.leaves)
	depth := 0
	for (1 << depth) < n {
		depth++
	}
	t.depth = depth

	levels := make([][]field.Fp, depth+1)
	levels[0] = t.leaves
	for k := 1; k <= depth; k++ {
		prev := levels[k-1]
		cur := make([]field.Fp, len(prev)/2)
		for i := range cur {
			cur[i] = poseidon.Hash2(prev[2*i], prev[2*i+1])
		}
		levels[k] = cur
	}
	t.levels = levels
}

// padToPowerOfTwo zero-pads leaves up to the next power of two (Invariant
// I2). Unlike a duplicate-based scheme, padding leaves are the additive
// identity of Fp so that a padding position is unambiguously distinguished
// from any real commitment or raw demo value.
func padToPowerOfTwo(leaves []field.Fp) []field.Fp {
	n := len(leaves)
	next := 1
	for next < n {
		next <<= 1
	}
	if next == n {
		out := make([]field.Fp, n)
		copy(out, leaves)
		return out
	}
	out := make([]field.Fp, next)
	copy(out, leaves)
	for i := n; i < next; i++ {
		out[i] = field.Zero()
	}
	return out
}
