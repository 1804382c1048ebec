// Package setup compiles the inclusion circuit and runs its PLONK dev-mode
// setup, adapted from this repository's existing PLONK path (the Groth16
// backend, its per-circuit MPC ceremony, and Solidity export are dropped —
// see DESIGN.md's internal/setup entry for the full justification).
package setup

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/scs"
	"github.com/consensys/gnark/logger"
	"github.com/consensys/gnark/test/unsafekzg"

	"github.com/murihq/zkmembership/circuits/inclusion"
)

// CompileCircuit compiles an inclusion.Circuit of the given depth using the
// PLONK (sparse constraint system) builder.
func CompileCircuit(depth int) (constraint.ConstraintSystem, error) {
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), scs.NewBuilder, inclusion.New(depth))
	if err != nil {
		return nil, fmt.Errorf("setup: compile depth-%d circuit: %w", depth, err)
	}
	return ccs, nil
}

// DevSetup performs a single-party PLONK setup using an unsafe KZG SRS
// (NOT for production — PLONK's universal SRS still needs a real ceremony
// in deployment; this repository's core never runs one, matching the
// Non-goal excluding on-chain/production key management).
func DevSetup(depth int) (constraint.ConstraintSystem, plonk.ProvingKey, plonk.VerifyingKey, error) {
	ccs, err := CompileCircuit(depth)
	if err != nil {
		return nil, nil, nil, err
	}

	srs, srsLagrange, err := unsafekzg.NewSRS(ccs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("setup: generate unsafe KZG SRS for depth %d: %w", depth, err)
	}

	pk, vk, err := plonk.Setup(ccs, srs, srsLagrange)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("setup: plonk setup for depth %d: %w", depth, err)
	}

	logger.Logger().Info().Int("depth", depth).Int("constraints", ccs.GetNbConstraints()).Msg("compiled and set up inclusion circuit")

	return ccs, pk, vk, nil
}
