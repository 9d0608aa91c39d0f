// Package mem provides byte-slice primitives shared by the backends.
//
// # Copy
//
// Copy moves a contiguous run of bytes between two slices of equal length.
// The in-memory backend uses it on its read path.
package mem
