// Command compile runs the PLONK dev-mode setup for the inclusion circuit
// at a given depth and writes its proving/verifying keys to disk.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/murihq/zkmembership/config"
	"github.com/murihq/zkmembership/internal/setup"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	depth, err := strconv.Atoi(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid depth %q: %v\n", os.Args[1], err)
		os.Exit(1)
	}
	if depth < 0 || depth > config.MaxDepth {
		log.Fatalf("depth %d out of range: must be between 0 and %d (config.MaxDepth)", depth, config.MaxDepth)
	}

	_, pk, vk, err := setup.DevSetup(depth)
	if err != nil {
		log.Fatal(err)
	}

	dir := fmt.Sprintf("inclusion-depth-%d", depth)
	if err := setup.ExportKeys(pk, vk, dir); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("compiled and set up inclusion circuit at depth %d -> %s\n", depth, dir)
}

func printUsage() {
	fmt.Println(`Usage:
  go run ./cmd/compile DEPTH    Dev-mode PLONK setup for the inclusion circuit at DEPTH (single-party, unsafe KZG SRS — NOT for production)

DEPTH must be between 0 and config.MaxDepth. The keys are written under
./inclusion-depth-DEPTH/.`)
}
