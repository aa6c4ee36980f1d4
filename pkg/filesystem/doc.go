// Package filesystem provides filesystem implementations for kassemble.
//
// This package contains implementations of the types.FS interface,
// including the standard OS filesystem and afero-backed filesystems used by tests.
package filesystem
