// Package inclusion defines the PLONK-style arithmetic circuit that proves
// "I know a secret whose Poseidon commitment is at position p in a Merkle
// tree whose root is Root".
package inclusion

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash"
	"github.com/consensys/gnark/std/permutation/poseidon2"
)

// Circuit is parameterized by depth at construction time rather than by a
// Go generic or fixed array size: Siblings and Directions are slices whose
// length is fixed once (by New) and must be identical between the instance
// passed to frontend.Compile and the instance used as a witness assignment.
// One compiled instance exists per depth actually observed, rather than a
// single circuit padded with sentinel levels.
type Circuit struct {
	// Public input: the expected root.
	Root frontend.Variable `gnark:",public"`

	// Private witness.
	Secret     frontend.Variable
	Siblings   []frontend.Variable
	Directions []frontend.Variable
}

// New allocates a Circuit shaped for the given depth. Used both to compile
// the constraint system (fields left unset) and, once Secret/Siblings/
// Directions/Root are filled in, as the witness assignment.
func New(depth int) *Circuit {
	return &Circuit{
		Siblings:   make([]frontend.Variable, depth),
		Directions: make([]frontend.Variable, depth),
	}
}

// Define implements frontend.Circuit.
func (c *Circuit) Define(api frontend.API) error {
	if len(c.Siblings) != len(c.Directions) {
		return fmt.Errorf("inclusion: siblings/directions length mismatch (%d vs %d)", len(c.Siblings), len(c.Directions))
	}
	depth := len(c.Siblings)

	p, err := poseidon2.NewPoseidon2FromParameters(api, 2, 6, 50)
	if err != nil {
		return err
	}
	hasher := hash.NewMerkleDamgardHasher(api, p, 0)

	// 1. Commitment: current = Poseidon2(secret, 0), a length-1 hash padded
	// with an explicit domain-fixed zero second input, exactly as
	// poseidon.Commit computes it out of circuit.
	hasher.Write(c.Secret, 0)
	current := hasher.Sum()
	hasher.Reset()

	// 2. For each level: binary check, conditional swap, hash.
	for k := 0; k < depth; k++ {
		direction := c.Directions[k]
		sibling := c.Siblings[k]

		// 2a. Binary check: direction * (1 - direction) == 0.
		api.AssertIsBoolean(direction)

		// 2b. Conditional swap under one selector: direction == 0 keeps
		// (current, sibling) as (left, right); direction == 1 swaps them.
		left := api.Select(direction, sibling, current)
		right := api.Select(direction, current, sibling)

		// 2c. Hash: parent = Poseidon2(left, right). A distinct hasher
		// region per level — Reset() re-seeds the same gadget instance
		// rather than accumulating across levels.
		hasher.Reset()
		hasher.Write(left, right)
		current = hasher.Sum()
	}

	// 3. Root equality.
	api.AssertIsEqual(current, c.Root)

	return nil
}
