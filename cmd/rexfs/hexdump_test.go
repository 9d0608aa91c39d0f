package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/rexfs/testutil"
)

func dump(t *testing.T, data []byte, width, chunk int) string {
	t.Helper()
	var out bytes.Buffer
	d := newDumper(&out, width)
	for _, c := range testutil.Chunks(data, chunk) {
		n, err := d.Write(c)
		require.NoError(t, err)
		require.Equal(t, len(c), n)
	}
	require.NoError(t, d.Close())
	return out.String()
}

func TestDumper_FullLine(t *testing.T) {
	got := dump(t, testutil.Pattern(16), 16, 16)
	assert.Equal(t,
		"00000000  00 01 02 03 04 05 06 07  08 09 0a 0b 0c 0d 0e 0f |................|\n",
		got)
}

func TestDumper_PartialLine(t *testing.T) {
	got := dump(t, []byte("ABCDEF"), 4, 1)
	want := "00000000  41 42 43 44 |ABCD|\n" +
		"00000004  45 46 " + strings.Repeat(" ", 6) + "|EF|\n"
	assert.Equal(t, want, got)
}

func TestDumper_ChunkingIndependent(t *testing.T) {
	data := []byte("hello, rex editor\x00\xff")
	want := dump(t, data, 16, len(data))
	for _, chunk := range []int{1, 3, 7, 16, 17} {
		assert.Equal(t, want, dump(t, data, 16, chunk), "chunk %d", chunk)
	}
	assert.Contains(t, want, "|hello, rex edito|")
	assert.Contains(t, want, "00000010  72 00 ff")
	assert.Contains(t, want, "|r..|")
}

func TestDumper_Empty(t *testing.T) {
	assert.Empty(t, dump(t, nil, 16, 1))
}

func TestDumper_DefaultWidth(t *testing.T) {
	d := newDumper(&bytes.Buffer{}, 0)
	assert.Equal(t, 16, d.width)
}
