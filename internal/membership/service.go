// Package membership implements the core API that binds the Merkle
// accumulator, Poseidon primitives, and the inclusion circuit together:
// register, prove, current_root, depth.
package membership

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/logger"

	"github.com/murihq/zkmembership/circuits/inclusion"
	"github.com/murihq/zkmembership/config"
	"github.com/murihq/zkmembership/internal/setup"
	"github.com/murihq/zkmembership/pkg/field"
	"github.com/murihq/zkmembership/pkg/merkle"
	"github.com/murihq/zkmembership/pkg/poseidon"
)

// ErrInvalidCommitment is returned by Register for malformed hex, wrong
// length, or a non-canonical field encoding. The accumulator is left
// untouched.
var ErrInvalidCommitment = errors.New("membership: invalid commitment")

// Service is the core API's single entry point, wrapping a Merkle
// accumulator and a lazily-populated circuit cache.
type Service struct {
	tree    *merkle.Tree
	circuit *setup.Cache
}

// New builds a Service seeded with the given leaves (already converted via
// merkle.RawLeaf or merkle.CommitmentLeaf).
func New(seedLeaves []field.Fp) (*Service, error) {
	tree, err := merkle.New(seedLeaves)
	if err != nil {
		return nil, fmt.Errorf("membership: %w", err)
	}
	return &Service{
		tree:    tree,
		circuit: setup.NewCache(),
	}, nil
}

// NewDemo builds a Service seeded with config.DemoSeedSecrets, hashed via
// Poseidon commitment.
func NewDemo() (*Service, error) {
	leaves := make([]field.Fp, len(config.DemoSeedSecrets))
	for i, s := range config.DemoSeedSecrets {
		leaves[i] = merkle.CommitmentLeaf(poseidon.Commit(s))
	}
	return New(leaves)
}

// Register validates and appends a commitment encoded as 64 lowercase hex
// characters, returning the new root as 64 lowercase hex characters.
func (s *Service) Register(hex string) (string, error) {
	c, err := field.FromHex(hex)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCommitment, err)
	}

	s.tree.Append(merkle.CommitmentLeaf(c))

	root := s.tree.Root().Hex()
	logger.Logger().Info().Str("root", root).Int("numLeaves", s.tree.NumLeaves()).Msg("registered commitment")
	return root, nil
}

// Prove locates secret's commitment in the current tree snapshot, builds
// the inclusion-circuit witness, and runs the in-memory PLONK
// prover/verifier, returning true iff a valid proof is produced. It never
// returns an error to the caller: an unregistered secret or a rejected
// proof both degrade to a false result. A depth that exceeds
// config.MaxDepth is a fatal, unrecoverable condition (no circuit can
// exist for it) and surfaces as a panic from the underlying circuit cache,
// the sole enforcement point for that bound.
func (s *Service) Prove(secret uint64) bool {
	commitment := poseidon.Commit(secret)

	idx, found := s.tree.FindCommitment(commitment)
	if !found {
		logger.Logger().Debug().Uint64("secret", secret).Msg("prove: commitment not found")
		return false
	}

	proof, ok := s.tree.GenerateProof(idx)
	if !ok {
		// idx came from FindCommitment under an earlier read lock; Append
		// never removes or moves a non-zero leaf, so this would only
		// happen under a concurrent-mutation bug.
		panic("membership: DepthMismatch: generate_proof failed for an index FindCommitment just returned")
	}

	depth := len(proof.Siblings)
	entry, err := s.circuit.Get(depth)
	if err != nil {
		panic(fmt.Sprintf("membership: failed to prepare circuit for depth %d: %v", depth, err))
	}

	assignment, err := inclusion.BuildWitness(secret, proof)
	if err != nil {
		panic(fmt.Sprintf("membership: DepthMismatch: %v", err))
	}

	full, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		logger.Logger().Warn().Err(err).Msg("prove: witness construction failed")
		return false
	}
	public, err := full.Public()
	if err != nil {
		logger.Logger().Warn().Err(err).Msg("prove: public witness extraction failed")
		return false
	}

	proofObj, err := plonk.Prove(entry.CCS, entry.PK, full)
	if err != nil {
		logger.Logger().Info().Uint64("secret", secret).Msg("prove: prover rejected witness")
		return false
	}

	if err := plonk.Verify(proofObj, entry.VK, public); err != nil {
		logger.Logger().Info().Uint64("secret", secret).Msg("prove: verifier rejected proof")
		return false
	}

	return true
}

// CurrentRoot returns the accumulator's current root as 64 lowercase hex
// characters.
func (s *Service) CurrentRoot() string {
	return s.tree.Root().Hex()
}

// Depth returns the accumulator's current depth.
func (s *Service) Depth() int {
	return s.tree.Depth()
}
