// Package objectfs holds the handle types shared by the object-store backends.
//
// Object stores have no appendable files: Create streams writes into an
// upload that becomes visible when the handle is closed, and Open streams a
// GET. Handles are therefore bound to their direction.
//
// Backends live in the minio and s3 subpackages.
package objectfs
