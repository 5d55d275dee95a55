package testutil

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

// SandboxEnv points HOME and the XDG base directories at a fresh temp
// directory for the duration of the test, so nothing touches the real
// user's data. Returns the temp home directory.
func SandboxEnv(t *testing.T) string {
	t.Helper()

	home := t.TempDir()

	// Registered before Setenv so it runs after the env restore and
	// re-reads the caller's real environment.
	t.Cleanup(xdg.Reload)

	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	// Our own overrides take priority over XDG; clear them
	t.Setenv("PREFS_CONFIG_DIR", "")
	t.Setenv("PREFS_DATA_DIR", "")
	t.Setenv("PREFS_CACHE_DIR", "")

	xdg.Reload()

	return home
}
