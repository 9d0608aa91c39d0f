package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPattern(t *testing.T) {
	p := Pattern(300)

	assert.Len(t, p, 300)
	assert.Equal(t, byte(0), p[0])
	assert.Equal(t, byte(255), p[255])
	assert.Equal(t, byte(0), p[256])
	assert.Equal(t, byte(43), p[299])
	assert.Empty(t, Pattern(0))
}

func TestChunks(t *testing.T) {
	data := Pattern(10)

	chunks := Chunks(data, 4)
	assert.Len(t, chunks, 3)
	assert.Equal(t, []byte{0, 1, 2, 3}, chunks[0])
	assert.Equal(t, []byte{8, 9}, chunks[2])

	assert.Len(t, Chunks(data, 10), 1)
	assert.Len(t, Chunks(data, 0), 1)
	assert.Empty(t, Chunks(nil, 4))
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	b1 := rng.Bytes(16)

	rng.Reset()
	b2 := rng.Bytes(16)

	assert.Equal(t, b1, b2)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestCompressibleBytes(t *testing.T) {
	rng := NewRNG(1)
	b := rng.CompressibleBytes(64)

	assert.Len(t, b, 64)
	for _, c := range b {
		assert.Contains(t, "0123", string(c))
	}
}
