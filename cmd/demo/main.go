// Command demo exercises the membership service's Core API end to end:
// it seeds an accumulator, registers a new commitment, and runs a few
// membership proofs, printing the result of each step. It stands in for a
// hypothetical HTTP layer the way cmd/test once pointed at `go test`.
package main

import (
	"fmt"
	"log"

	"github.com/murihq/zkmembership/config"
	"github.com/murihq/zkmembership/internal/membership"
	"github.com/murihq/zkmembership/pkg/poseidon"
)

func main() {
	svc, err := membership.NewDemo()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("seeded %d leaves, depth=%d, root=%s\n", len(config.DemoSeedSecrets), svc.Depth(), svc.CurrentRoot())

	for _, secret := range []uint64{42, 99, 200} {
		fmt.Printf("prove(%d) = %v\n", secret, svc.Prove(secret))
	}
	for _, secret := range []uint64{0, 1} {
		fmt.Printf("prove(%d) = %v\n", secret, svc.Prove(secret))
	}

	commitment := poseidon.Commit(999)
	root, err := svc.Register(commitment.Hex())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("register(999) -> root=%s\n", root)
	fmt.Printf("prove(999) = %v\n", svc.Prove(999))

	if _, err := svc.Register("deadbeef"); err != nil {
		fmt.Printf("register(\"deadbeef\") -> %v\n", err)
	}
}
