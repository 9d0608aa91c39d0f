// Package throttlefs caps the throughput of a rexfs.FileSystem.
//
// All handles opened through one FS share a single token bucket, so the
// configured rate bounds the aggregate. Useful to simulate slow media in
// tests or to keep background copies from saturating a disk.
package throttlefs
