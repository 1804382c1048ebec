package setup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/plonk"
)

// ExportKeys writes a circuit's PLONK proving/verifying keys to outputDir,
// adapted from this repository's existing key-export path minus the
// Solidity verifier (a Non-goal — no on-chain export in this domain). The
// constraint system itself is never serialized: it is cheap and
// deterministic to recompile from a depth via CompileCircuit, exactly how
// Cache repopulates itself.
func ExportKeys(pk plonk.ProvingKey, vk plonk.VerifyingKey, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("setup: create output dir: %w", err)
	}

	if err := saveObject(filepath.Join(outputDir, "verifier.key"), vk); err != nil {
		return fmt.Errorf("setup: export verifying key: %w", err)
	}
	if err := saveObject(filepath.Join(outputDir, "prover.key"), pk); err != nil {
		return fmt.Errorf("setup: export proving key: %w", err)
	}
	return nil
}

// LoadKeys reads PLONK proving and verifying keys back from dir. Callers
// recompile the matching constraint system from its depth via
// CompileCircuit before using these keys.
func LoadKeys(dir string) (plonk.ProvingKey, plonk.VerifyingKey, error) {
	vk := plonk.NewVerifyingKey(ecc.BN254)
	if err := loadObject(filepath.Join(dir, "verifier.key"), vk); err != nil {
		return nil, nil, fmt.Errorf("setup: load verifying key: %w", err)
	}

	pk := plonk.NewProvingKey(ecc.BN254)
	if err := loadObject(filepath.Join(dir, "prover.key"), pk); err != nil {
		return nil, nil, fmt.Errorf("setup: load proving key: %w", err)
	}

	return pk, vk, nil
}

func saveObject(path string, obj io.WriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = obj.WriteTo(f)
	return err
}

func loadObject(path string, obj io.ReaderFrom) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = obj.ReadFrom(f)
	return err
}
