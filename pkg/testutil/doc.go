// Package testutil provides test helpers: an in-memory filesystem
// implementing filesystem.FS and an environment sandbox that points HOME
// and the XDG base directories at a temp directory.
package testutil
