package faultyfs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/rexfs"
	"github.com/hupe1980/rexfs/memfs"
)

func TestFS_GlobalLimit(t *testing.T) {
	inner := memfs.New(nil)
	ffs := New(inner)

	ffs.SetLimit(5) // Fail after 5 bytes

	f, err := ffs.Create("faulty.bin")
	require.NoError(t, err)

	// Write 5 bytes - OK
	n, err := f.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)

	// Write 1 byte - Fail
	n, err = f.Write([]byte("!"))
	assert.ErrorIs(t, err, ErrInjected)
	assert.Equal(t, 0, n)

	assert.Equal(t, int64(5), ffs.Written())
	require.NoError(t, f.Close())

	// Failed writes never reach the inner backend.
	assert.Equal(t, []byte("hello"), inner.MustExtract("faulty.bin"))
}

func TestFS_PerFileRule(t *testing.T) {
	ffs := New(memfs.New(nil))
	ffs.AddRule(".tmp", Fault{FailAfterBytes: 3})

	tmp, err := ffs.Create("out.tmp")
	require.NoError(t, err)
	defer tmp.Close()

	_, err = tmp.Write([]byte("abc"))
	require.NoError(t, err)
	_, err = tmp.Write([]byte("d"))
	assert.ErrorIs(t, err, ErrInjected)

	// Other names are unaffected.
	other, err := ffs.Create("out.bin")
	require.NoError(t, err)
	defer other.Close()
	_, err = other.Write([]byte("abcdef"))
	assert.NoError(t, err)
}

func TestFS_OpenCreateFaults(t *testing.T) {
	boom := errors.New("boom")
	inner := memfs.New(nil)
	inner.Seed("in.bin", []byte("x"))

	ffs := New(inner)
	ffs.AddRule("in.bin", Fault{FailOnOpen: true, Err: boom})
	ffs.AddRule("out", Fault{FailOnCreate: true})

	_, err := ffs.Open("in.bin")
	assert.ErrorIs(t, err, boom)

	_, err = ffs.Create("out.bin")
	assert.ErrorIs(t, err, ErrInjected)
	assert.False(t, inner.Registry().Has("out.bin"))

	ffs.ClearRules()
	got, err := rexfs.ReadFile(ffs, "in.bin")
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))
}

func TestFS_LongestPatternWins(t *testing.T) {
	ffs := New(memfs.New(nil))
	ffs.AddRule("data", Fault{FailOnCreate: true})
	ffs.AddRule("data/keep", Fault{})

	_, err := ffs.Create("data/drop.bin")
	assert.ErrorIs(t, err, ErrInjected)

	f, err := ffs.Create("data/keep.bin")
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestFS_ReadSyncCloseFaults(t *testing.T) {
	inner := memfs.New(nil)
	inner.Seed("r.bin", []byte("abc"))

	ffs := New(inner)
	ffs.AddRule("r.bin", Fault{FailOnRead: true, FailOnSync: true, FailOnClose: true})

	f, err := ffs.Open("r.bin")
	require.NoError(t, err)

	_, err = f.Read(make([]byte, 1))
	assert.ErrorIs(t, err, ErrInjected)
	assert.ErrorIs(t, f.Sync(), ErrInjected)
	assert.ErrorIs(t, f.Close(), ErrInjected)

	// The inner handle was still closed, so extraction succeeds.
	assert.Equal(t, []byte("abc"), inner.MustExtract("r.bin"))
}

func TestFS_PassesThroughInnerErrors(t *testing.T) {
	inner := memfs.New(nil)
	ffs := New(inner)

	_, err := ffs.Open("missing")
	assert.ErrorIs(t, err, rexfs.ErrNotFound)

	inner.Seed("taken", nil)
	_, err = ffs.Create("taken")
	assert.ErrorIs(t, err, rexfs.ErrExist)
}

func TestFS_ZeroFaultLeavesWritesAlone(t *testing.T) {
	inner := memfs.New(nil)
	ffs := New(inner)
	ffs.AddRule("r.bin", Fault{FailOnRead: true})

	require.NoError(t, rexfs.WriteFile(ffs, "r.bin", []byte("written")))

	f, err := ffs.Open("r.bin")
	require.NoError(t, err)
	_, err = f.Read(make([]byte, 1))
	assert.ErrorIs(t, err, ErrInjected)
	require.NoError(t, f.Close())

	assert.Equal(t, []byte("written"), inner.MustExtract("r.bin"))
}

func TestFS_FailOnWrite(t *testing.T) {
	inner := memfs.New(nil)
	ffs := New(inner)
	ffs.AddRule("w.bin", Fault{FailOnWrite: true})

	f, err := ffs.Create("w.bin")
	require.NoError(t, err)
	n, err := f.Write([]byte("x"))
	assert.ErrorIs(t, err, ErrInjected)
	assert.Equal(t, 0, n)
	require.NoError(t, f.Close())

	assert.Empty(t, inner.MustExtract("w.bin"))
}
