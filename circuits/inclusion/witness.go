package inclusion

import (
	"fmt"

	"github.com/murihq/zkmembership/pkg/field"
	"github.com/murihq/zkmembership/pkg/merkle"
)

// BuildWitness maps an extracted inclusion proof and the prover's secret
// into a ready-to-use circuit assignment at the proof's exact depth. The
// caller is responsible for compiling a Circuit of the matching depth ahead
// of time (membership.Service obtains it from internal/setup's circuit
// cache).
func BuildWitness(secret uint64, proof merkle.InclusionProof) (*Circuit, error) {
	depth := len(proof.Siblings)
	if len(proof.Directions) != depth {
		return nil, fmt.Errorf("inclusion: proof siblings/directions length mismatch (%d vs %d)", depth, len(proof.Directions))
	}

	assignment := New(depth)
	assignment.Root = proof.Root.BigInt()
	assignment.Secret = field.FromUint64(secret).BigInt()
	for k := 0; k < depth; k++ {
		assignment.Siblings[k] = proof.Siblings[k].BigInt()
		assignment.Directions[k] = proof.Directions[k].BigInt()
	}
	return assignment, nil
}
