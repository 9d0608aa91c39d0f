// Package memfs provides an in-memory rexfs.FileSystem for deterministic tests.
//
// Files live in a [Registry] that maps paths to shared byte buffers. Every
// handle returned by Open or Create shares the buffer with the registry and
// keeps its own read cursor. Writes append; there is no seek or truncate.
//
// Two test-only operations bridge fixtures and assertions:
//
//   - Seed stores bytes under a path unconditionally (read fixtures)
//   - Extract removes a path and returns its bytes (post-conditions)
//
// Extract requires every handle on the path to be closed first.
//
// # Isolation
//
// There is no process-wide state. Each test creates its own registry:
//
//	reg := memfs.NewRegistry()
//	fsys := memfs.New(reg)
//
// # Create Semantics
//
// Create fails with rexfs.ErrExist when the path is present (first writer
// wins). This is stricter than localfs, which truncates.
package memfs
