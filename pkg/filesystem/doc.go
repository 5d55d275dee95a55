// Package filesystem provides the FS abstraction used throughout prefs.
//
// Production code uses the OS implementation, whose file writes are atomic
// and durable (write to a temp file, fsync, rename). Tests substitute the
// in-memory implementation from pkg/testutil.
package filesystem
