// Package faultyfs wraps a rexfs.FileSystem and injects failures.
//
// Rules match on a substring of the file name and can fail Open, Create,
// reads, writes past a byte budget, Sync and Close:
//
//	ffs := faultyfs.New(memfs.New(nil))
//	ffs.AddRule(".tmp", faultyfs.Fault{FailAfterBytes: 1024})
//	ffs.SetLimit(1 << 20) // fail once 1MB has been written in total
//	// inject ffs into the component under test
//
// Errors are faultyfs.ErrInjected unless a rule or FS.Err says otherwise.
package faultyfs
