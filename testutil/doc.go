// Package testutil provides testing utilities for rexfs.
//
// This package is intended for use in tests and benchmarks only.
//
// # Byte Fixtures
//
//	data := testutil.Pattern(1024)   // byte i == i & 0xff
//	rng := testutil.NewRNG(seed)
//	blob := rng.Bytes(4096)          // reproducible random bytes
//	chunks := testutil.Chunks(data, 100)
package testutil
