// Package localfs provides the rexfs.FileSystem backed by the host filesystem.
//
// Open delegates to os.Open and Create to os.Create. The returned handles are
// the *os.File values themselves; there is no extra buffering or validation.
//
// Create truncates an existing file. This differs from memfs, which rejects
// occupied names; callers relying on either behaviour should not mix them up.
package localfs
