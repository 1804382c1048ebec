package inclusion_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"

	"github.com/murihq/zkmembership/circuits/inclusion"
	"github.com/murihq/zkmembership/internal/setup"
	"github.com/murihq/zkmembership/pkg/field"
	"github.com/murihq/zkmembership/pkg/merkle"
	"github.com/murihq/zkmembership/pkg/poseidon"
)

// seedSecrets is the fixed seed set used to build an 8-leaf demo tree.
func seedSecrets() []uint64 {
	return []uint64{42, 99, 7, 13, 55, 77, 100, 200}
}

func buildSeedTree(t *testing.T) *merkle.Tree {
	t.Helper()
	secrets := seedSecrets()
	leaves := make([]field.Fp, len(secrets))
	for i, s := range secrets {
		leaves[i] = merkle.CommitmentLeaf(poseidon.Commit(s))
	}
	tree, err := merkle.New(leaves)
	if err != nil {
		t.Fatalf("merkle.New: %v", err)
	}
	return tree
}

// prove proves and verifies an inclusion witness against an already
// compiled and set-up circuit (ccs, pk, vk). Returns whether verification
// succeeded.
func prove(t *testing.T, ccs constraint.ConstraintSystem, pk plonk.ProvingKey, vk plonk.VerifyingKey, assignment *inclusion.Circuit) bool {
	t.Helper()

	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		t.Fatalf("create witness: %v", err)
	}

	publicWitness, err := witness.Public()
	if err != nil {
		t.Fatalf("extract public witness: %v", err)
	}

	proof, err := plonk.Prove(ccs, pk, witness)
	if err != nil {
		return false
	}

	return plonk.Verify(proof, vk, publicWitness) == nil
}

// TestInclusionCircuitEndToEnd checks membership proofs for several
// registered secrets against an 8-leaf seed tree (DEPTH = 3).
func TestInclusionCircuitEndToEnd(t *testing.T) {
	tree := buildSeedTree(t)
	if tree.Depth() != 3 {
		t.Fatalf("seed tree depth = %d, want 3", tree.Depth())
	}

	ccs, pk, vk, err := setup.DevSetup(tree.Depth())
	if err != nil {
		t.Fatalf("dev setup: %v", err)
	}

	for _, secret := range []uint64{42, 99, 200} {
		idx, ok := tree.FindCommitment(poseidon.Commit(secret))
		if !ok {
			t.Fatalf("secret %d: expected to find its commitment", secret)
		}
		mproof, ok := tree.GenerateProof(idx)
		if !ok {
			t.Fatalf("GenerateProof(%d) failed", idx)
		}

		assignment, err := inclusion.BuildWitness(secret, mproof)
		if err != nil {
			t.Fatalf("build witness for secret %d: %v", secret, err)
		}

		if ok := prove(t, ccs, pk, vk, assignment); !ok {
			t.Fatalf("secret %d: expected proof to verify", secret)
		}
	}
}

// TestInclusionCircuitRejectsWrongRoot checks proof soundness: a witness
// whose declared root does not match the real tree root must fail to
// verify (a forged public input cannot make an honest witness satisfy a
// different root).
func TestInclusionCircuitRejectsWrongRoot(t *testing.T) {
	tree := buildSeedTree(t)
	ccs, pk, vk, err := setup.DevSetup(tree.Depth())
	if err != nil {
		t.Fatalf("dev setup: %v", err)
	}

	idx, ok := tree.FindCommitment(poseidon.Commit(42))
	if !ok {
		t.Fatal("expected to find commitment for secret 42")
	}
	mproof, ok := tree.GenerateProof(idx)
	if !ok {
		t.Fatal("GenerateProof failed")
	}

	assignment, err := inclusion.BuildWitness(42, mproof)
	if err != nil {
		t.Fatalf("build witness: %v", err)
	}
	assignment.Root = field.FromUint64(999999).BigInt()

	if ok := prove(t, ccs, pk, vk, assignment); ok {
		t.Fatal("expected proof against a forged root to fail verification")
	}
}

// TestInclusionCircuitSwapCorrectness checks that flipping a direction bit
// without recomputing the corresponding sibling makes the circuit
// unsatisfiable.
func TestInclusionCircuitSwapCorrectness(t *testing.T) {
	tree := buildSeedTree(t)
	ccs, pk, vk, err := setup.DevSetup(tree.Depth())
	if err != nil {
		t.Fatalf("dev setup: %v", err)
	}

	idx, ok := tree.FindCommitment(poseidon.Commit(42))
	if !ok {
		t.Fatal("expected to find commitment for secret 42")
	}
	mproof, ok := tree.GenerateProof(idx)
	if !ok {
		t.Fatal("GenerateProof failed")
	}

	assignment, err := inclusion.BuildWitness(42, mproof)
	if err != nil {
		t.Fatalf("build witness: %v", err)
	}

	flipped := field.One()
	if field.Equal(mproof.Directions[0], field.One()) {
		flipped = field.Zero()
	}
	assignment.Directions[0] = flipped.BigInt()

	if ok := prove(t, ccs, pk, vk, assignment); ok {
		t.Fatal("expected flipped direction bit to make the witness unsatisfiable")
	}
}

// TestInclusionCircuitCommitmentCrossCheck checks that the in-circuit
// commitment (Poseidon2(secret, 0)) agrees with the out-of-circuit
// poseidon.Commit for the same secret, so a tree seeded with
// poseidon.Commit(secret) leaves is exactly what the circuit's first hash
// step reproduces.
func TestInclusionCircuitCommitmentCrossCheck(t *testing.T) {
	tree := buildSeedTree(t)
	ccs, pk, vk, err := setup.DevSetup(tree.Depth())
	if err != nil {
		t.Fatalf("dev setup: %v", err)
	}

	for _, secret := range seedSecrets() {
		commitment := poseidon.Commit(secret)
		idx, ok := tree.FindCommitment(commitment)
		if !ok {
			t.Fatalf("secret %d: commitment not found", secret)
		}
		if !field.Equal(tree.Leaves()[idx], commitment) {
			t.Fatalf("secret %d: leaf does not match poseidon.Commit", secret)
		}

		mproof, ok := tree.GenerateProof(idx)
		if !ok {
			t.Fatalf("GenerateProof(%d) failed", idx)
		}
		assignment, err := inclusion.BuildWitness(secret, mproof)
		if err != nil {
			t.Fatalf("build witness for secret %d: %v", secret, err)
		}
		if ok := prove(t, ccs, pk, vk, assignment); !ok {
			t.Fatalf("secret %d: commitment cross-check proof failed to verify", secret)
		}
	}
}

// TestInclusionCircuitVariousDepths checks the circuit compiles and proves
// correctly across several distinct depths.
func TestInclusionCircuitVariousDepths(t *testing.T) {
	cases := []struct {
		name    string
		secrets []uint64
	}{
		{"depth_0", []uint64{7}},
		{"depth_1", []uint64{7, 8}},
		{"depth_2", []uint64{1, 2, 3, 4}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			leaves := make([]field.Fp, len(tc.secrets))
			for i, s := range tc.secrets {
				leaves[i] = merkle.CommitmentLeaf(poseidon.Commit(s))
			}
			tree, err := merkle.New(leaves)
			if err != nil {
				t.Fatalf("merkle.New: %v", err)
			}

			ccs, pk, vk, err := setup.DevSetup(tree.Depth())
			if err != nil {
				t.Fatalf("dev setup: %v", err)
			}

			idx, ok := tree.FindCommitment(poseidon.Commit(tc.secrets[0]))
			if !ok {
				t.Fatal("expected to find commitment")
			}
			mproof, ok := tree.GenerateProof(idx)
			if !ok {
				t.Fatal("GenerateProof failed")
			}
			assignment, err := inclusion.BuildWitness(tc.secrets[0], mproof)
			if err != nil {
				t.Fatalf("build witness: %v", err)
			}

			if ok := prove(t, ccs, pk, vk, assignment); !ok {
				t.Fatal("expected proof to verify")
			}
		})
	}
}
