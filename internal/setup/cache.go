package setup

import (
	"fmt"
	"sync"

	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/constraint"

	"github.com/murihq/zkmembership/config"
)

// Entry bundles a compiled circuit with its PLONK proving/verifying keys
// for one fixed depth.
type Entry struct {
	Depth int
	CCS   constraint.ConstraintSystem
	PK    plonk.ProvingKey
	VK    plonk.VerifyingKey
}

// Cache lazily compiles and sets up one Entry per depth actually requested.
// The accumulator may grow to any depth, but a circuit (and its keys) only
// exists for depths Prove has actually been asked to serve.
type Cache struct {
	mu      sync.Mutex
	entries map[int]*Entry
}

// NewCache returns an empty circuit cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[int]*Entry)}
}

// Get returns the Entry for depth, compiling and setting it up on first
// use. It panics with DepthMismatch if depth exceeds config.MaxDepth: a
// depth this far out of bounds is a programmer error, not a recoverable
// condition, and no circuit can be compiled to serve it. Cache is the sole
// place this bound is enforced; callers do not need to check depth
// themselves before calling Get.
func (c *Cache) Get(depth int) (*Entry, error) {
	if depth < 0 || depth > config.MaxDepth {
		panic(fmt.Sprintf("setup: DepthMismatch: depth %d exceeds MaxDepth %d", depth, config.MaxDepth))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[depth]; ok {
		return e, nil
	}

	ccs, pk, vk, err := DevSetup(depth)
	if err != nil {
		return nil, fmt.Errorf("setup: cache miss for depth %d: %w", depth, err)
	}

	e := &Entry{Depth: depth, CCS: ccs, PK: pk, VK: vk}
	c.entries[depth] = e
	return e, nil
}
