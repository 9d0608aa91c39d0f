// Package compressfs adds transparent stream compression to any rexfs.FileSystem.
//
// Handles are bound to their direction: Create returns a write-only handle,
// Open a read-only one. Both zstd and lz4 use their standard frame formats,
// so files written through compressfs can be read by the usual tools.
//
//	inner := localfs.New("/var/dumps")
//	fsys, _ := compressfs.New(inner, compressfs.Zstd)
//	_ = rexfs.WriteFile(fsys, "core.zst", data)
package compressfs
