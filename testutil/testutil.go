package testutil

import (
	"math/rand"
	"sync"
)

// Pattern returns size bytes where byte i is i & 0xff.
// Reads at any offset can be checked without keeping the fixture around.
func Pattern(size int) []byte {
	out := make([]byte, size)
	for i := range out {
		out[i] = byte(i & 0xff)
	}
	return out
}

// Chunks splits data into consecutive slices of at most size bytes.
// The slices alias data.
func Chunks(data []byte, size int) [][]byte {
	if size <= 0 {
		return [][]byte{data}
	}
	var out [][]byte
	for len(data) > size {
		out = append(out, data[:size])
		data = data[size:]
	}
	if len(data) > 0 {
		out = append(out, data)
	}
	return out
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Bytes returns n pseudo-random bytes.
func (r *RNG) Bytes(n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]byte, n)
	_, _ = r.rand.Read(out)
	return out
}

// CompressibleBytes returns n bytes drawn from a small alphabet, so codecs
// have something to shrink.
func (r *RNG) CompressibleBytes(n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	const alphabet = "0123"
	out := make([]byte, n)
	for i := range out {
		out[i] = alphabet[r.rand.Intn(len(alphabet))]
	}
	return out
}
