// Package rexfs provides the storage-access layer of the rex hex editor.
//
// The editor never touches the filesystem directly. It asks a [FileSystem]
// for a stream with Open (read existing content) or Create (write new
// content) and then talks to the returned [File].
//
// # Backends
//
//   - localfs.FS: the host filesystem (os.Open / os.Create)
//   - memfs.FS: in-memory double backed by an explicit registry, for tests
//   - objectfs/minio.FS, objectfs/s3.FS: object storage
//
// # Decorators
//
//   - compressfs: transparent zstd / lz4 framing
//   - throttlefs: byte-rate limiting
//   - faultyfs: fault injection for error-path tests
//   - [Instrument]: logging and metrics
//
// # Quick Start
//
//	fsys := localfs.New("")
//	data, err := rexfs.ReadFile(fsys, "dump.bin")
//
// Tests use the in-memory double with a registry scoped to the test:
//
//	reg := memfs.NewRegistry()
//	fsys := memfs.New(reg)
//	reg.Seed("in.bin", []byte{10, 20, 30})
//	// ... exercise code that opens "in.bin" and creates "out.bin" ...
//	got := reg.MustExtract("out.bin")
//
// # Create Semantics
//
// Backends intentionally disagree on Create for an occupied name. memfs
// fails with [ErrExist] (first writer wins). localfs and the object stores
// overwrite, matching the host's create-or-truncate behaviour. Code that
// needs either behaviour should test for it explicitly with [IsExist].
package rexfs
