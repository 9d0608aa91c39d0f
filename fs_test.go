package rexfs_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/rexfs"
	"github.com/hupe1980/rexfs/compressfs"
	"github.com/hupe1980/rexfs/faultyfs"
	"github.com/hupe1980/rexfs/localfs"
	"github.com/hupe1980/rexfs/memfs"
	"github.com/hupe1980/rexfs/testutil"
)

func TestReadWriteFile(t *testing.T) {
	backends := map[string]rexfs.FileSystem{
		"memfs":   memfs.New(memfs.NewRegistry()),
		"localfs": localfs.New(t.TempDir()),
	}

	for name, fsys := range backends {
		t.Run(name, func(t *testing.T) {
			data := testutil.Pattern(1000)
			require.NoError(t, rexfs.WriteFile(fsys, "a.bin", data))

			got, err := rexfs.ReadFile(fsys, "a.bin")
			require.NoError(t, err)
			assert.Equal(t, data, got)

			_, err = rexfs.ReadFile(fsys, "missing.bin")
			assert.True(t, rexfs.IsNotFound(err))
		})
	}
}

func TestWriteFile_Exclusive(t *testing.T) {
	fsys := memfs.New(memfs.NewRegistry())
	require.NoError(t, rexfs.WriteFile(fsys, "a", []byte("first")))

	err := rexfs.WriteFile(fsys, "a", []byte("second"))
	assert.True(t, rexfs.IsExist(err))

	got, err := rexfs.ReadFile(fsys, "a")
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))
}

func TestWriteFile_Errors(t *testing.T) {
	reg := memfs.NewRegistry()
	fsys := faultyfs.New(memfs.New(reg))
	fsys.AddRule("sync", faultyfs.Fault{FailOnSync: true})
	fsys.AddRule("write", faultyfs.Fault{FailOnWrite: true})

	err := rexfs.WriteFile(fsys, "sync.bin", []byte("x"))
	assert.ErrorIs(t, err, faultyfs.ErrInjected)

	err = rexfs.WriteFile(fsys, "write.bin", []byte("x"))
	assert.ErrorIs(t, err, faultyfs.ErrInjected)

	// Both handles were closed, so extraction succeeds.
	_, err = reg.Extract("sync.bin")
	assert.NoError(t, err)
	_, err = reg.Extract("write.bin")
	assert.NoError(t, err)
}

func TestCopy(t *testing.T) {
	src := memfs.New(memfs.NewRegistry())
	dstReg := memfs.NewRegistry()
	dst := memfs.New(dstReg)

	data := testutil.NewRNG(3).Bytes(100_000)
	src.Seed("in.bin", data)

	n, err := rexfs.Copy(dst, src, "in.bin")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), n)
	assert.Equal(t, data, dstReg.MustExtract("in.bin"))

	n, err = rexfs.CopyAs(dst, "out.bin", src, "in.bin")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), n)
	assert.Equal(t, data, dstReg.MustExtract("out.bin"))
}

func TestCopyAs_Errors(t *testing.T) {
	srcReg := memfs.NewRegistry()
	src := memfs.New(srcReg)
	srcReg.Seed("in.bin", []byte("payload"))

	t.Run("MissingSource", func(t *testing.T) {
		_, err := rexfs.CopyAs(memfs.New(nil), "out", src, "nope")
		assert.True(t, rexfs.IsNotFound(err))
	})

	t.Run("CreateFails", func(t *testing.T) {
		dst := faultyfs.New(memfs.New(nil))
		dst.Default = faultyfs.Fault{FailOnCreate: true}

		_, err := rexfs.CopyAs(dst, "out", src, "in.bin")
		assert.ErrorIs(t, err, faultyfs.ErrInjected)
	})

	t.Run("CloseFails", func(t *testing.T) {
		boom := errors.New("boom")
		dst := faultyfs.New(memfs.New(nil))
		dst.Default = faultyfs.Fault{FailOnClose: true, Err: boom}

		n, err := rexfs.CopyAs(dst, "out", src, "in.bin")
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, int64(7), n)
	})

	// The source handle is released on every path.
	got, err := srcReg.Extract("in.bin")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))
}

func TestErrors(t *testing.T) {
	err := &rexfs.InvariantError{Op: "read", Path: "a", Reason: "cursor past end"}
	assert.ErrorIs(t, err, rexfs.ErrInvariant)
	assert.Equal(t, "read a: invariant violated: cursor past end", err.Error())

	assert.False(t, rexfs.IsNotFound(err))
	assert.False(t, rexfs.IsExist(err))
	assert.False(t, rexfs.IsNotFound(nil))
}

func TestClosedHandleSync(t *testing.T) {
	seed := func(t *testing.T, fsys rexfs.FileSystem) {
		t.Helper()
		require.NoError(t, rexfs.WriteFile(fsys, "a.bin", []byte("abc")))
	}

	zstdMem, err := compressfs.New(memfs.New(nil), compressfs.Zstd)
	require.NoError(t, err)

	backends := map[string]rexfs.FileSystem{
		"memfs":      memfs.New(nil),
		"localfs":    localfs.New(t.TempDir()),
		"compressfs": zstdMem,
	}

	for name, fsys := range backends {
		t.Run(name, func(t *testing.T) {
			seed(t, fsys)

			r, err := fsys.Open("a.bin")
			require.NoError(t, err)
			require.NoError(t, r.Close())
			assert.ErrorIs(t, r.Sync(), fs.ErrClosed)

			w, err := fsys.Create("b.bin")
			require.NoError(t, err)
			require.NoError(t, w.Close())
			assert.ErrorIs(t, w.Sync(), fs.ErrClosed)
		})
	}
}
