// Package config holds the compile-time configuration surface for this
// repository. There is no environment-variable or file-based configuration
// layer: the accumulator's depth ceiling and the demo seed list are the
// only configuration knobs the core requires, and both are fixed constants
// here, matching this repository's existing convention.
package config

// MaxDepth bounds the depth-indexed circuit family. Appends that would grow
// the accumulator beyond this depth still succeed (the accumulator itself
// has no depth ceiling); only Prove against a tree deeper than MaxDepth
// surfaces the fatal DepthMismatch condition, since no circuit can be
// compiled for it.
const MaxDepth = 20

// DemoSeedSecrets is the fixed, documented seed list used to initialize a
// demo/test accumulator.
var DemoSeedSecrets = []uint64{42, 99, 7, 13, 55, 77, 100, 200}
