// Package paths provides centralized path handling for prefs.
// It implements XDG Base Directory specification compliance and maps
// hierarchical preference keys to per-application file locations.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/andybarron/preferences-go/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for prefs
	EnvConfigDir = "PREFS_CONFIG_DIR"

	// EnvDataDir overrides the XDG data directory for prefs
	EnvDataDir = "PREFS_DATA_DIR"

	// EnvCacheDir overrides the XDG cache directory for prefs
	EnvCacheDir = "PREFS_CACHE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default filenames and extensions
// IMPORTANT: These constants define the on-disk layout of saved preferences
// and must remain consistent across installations so that data written by
// one version can be read by another.
const (
	// DefaultBaseName is used when a key resolves to an empty filename
	DefaultBaseName = "prefs"

	// ExtensionPrefix prefixes every preferences file extension
	// (".prefs.json", ".prefs.toml", ".prefs.sealed", ...)
	ExtensionPrefix = ".prefs"
)

// Resolver provides per-application path management
type Resolver interface {
	// ConfigDir returns the app's config directory, the default home of
	// saved preferences
	ConfigDir() string

	// DataDir returns the app's data directory
	DataDir() string

	// CacheDir returns the app's cache directory
	CacheDir() string

	// StateDir returns the app's state directory
	StateDir() string

	// PrefsFile maps a preference key to an absolute file path with the
	// given extension (e.g. ".prefs.json")
	PrefsFile(key, ext string) (string, error)
}

// resolver implements Resolver for a single application identity
type resolver struct {
	// appDir is "<sanitized author>/<sanitized name>", joined under each base
	appDir string

	// xdgConfig is the resolved config base directory
	xdgConfig string

	// xdgData is the resolved data base directory
	xdgData string

	// xdgCache is the resolved cache base directory
	xdgCache string

	// xdgState is the resolved state base directory
	xdgState string
}

// New creates a Resolver for the application identified by author and name.
// Both are required; they become directory names and are sanitized the same
// way key segments are.
func New(author, name string) (Resolver, error) {
	if strings.TrimSpace(author) == "" || strings.TrimSpace(name) == "" {
		return nil, errors.New(errors.ErrInvalidApp, "application author and name are required")
	}

	r := &resolver{
		appDir: filepath.Join(EscapeSegment(author), EscapeSegment(name)),
	}
	r.setupXDGDirs()
	return r, nil
}

// setupXDGDirs initializes base directories, respecting environment overrides
func (r *resolver) setupXDGDirs() {
	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		r.xdgConfig = ExpandHome(configDir)
	} else {
		r.xdgConfig = xdg.ConfigHome
	}

	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		r.xdgData = ExpandHome(dataDir)
	} else {
		r.xdgData = xdg.DataHome
	}

	if cacheDir := os.Getenv(EnvCacheDir); cacheDir != "" {
		r.xdgCache = ExpandHome(cacheDir)
	} else {
		r.xdgCache = xdg.CacheHome
	}

	r.xdgState = xdg.StateHome
}

// ConfigDir returns the app's config directory
func (r *resolver) ConfigDir() string {
	return filepath.Join(r.xdgConfig, r.appDir)
}

// DataDir returns the app's data directory
func (r *resolver) DataDir() string {
	return filepath.Join(r.xdgData, r.appDir)
}

// CacheDir returns the app's cache directory
func (r *resolver) CacheDir() string {
	return filepath.Join(r.xdgCache, r.appDir)
}

// StateDir returns the app's state directory
func (r *resolver) StateDir() string {
	return filepath.Join(r.xdgState, r.appDir)
}

// PrefsFile maps a preference key to an absolute file path. Keys use forward
// slashes as separators on all platforms; each segment is sanitized, and the
// final segment carries the extension. An empty final segment falls back to
// the default base name, so "" resolves to "prefs<ext>" and "saves/" to
// "saves/prefs<ext>".
func (r *resolver) PrefsFile(key, ext string) (string, error) {
	rel, err := KeyToRelPath(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(r.ConfigDir(), rel+ext), nil
}

// KeyToRelPath converts a preference key into a sanitized relative path
// without extension. Segments named "." or ".." are rejected so a key can
// never escape the application's directory.
func KeyToRelPath(key string) (string, error) {
	segments := strings.Split(key, "/")

	parts := make([]string, 0, len(segments))
	for i, seg := range segments {
		if seg == "." || seg == ".." {
			return "", errors.Newf(errors.ErrInvalidKey, "key %q contains a relative segment", key)
		}
		if seg == "" {
			// Interior empty segments (double slashes, a leading slash) are
			// dropped; an empty final segment selects the default filename.
			if i == len(segments)-1 {
				parts = append(parts, DefaultBaseName)
			}
			continue
		}
		parts = append(parts, EscapeSegment(seg))
	}

	if len(parts) == 0 {
		parts = append(parts, DefaultBaseName)
	}

	return filepath.Join(parts...), nil
}

// allowed reports whether a key byte may pass through unescaped.
// The allowed set keeps human-readable paths: letters, digits, space,
// hyphen, underscore, period.
func allowed(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == ' ' || c == '-' || c == '_' || c == '.':
		return true
	}
	return false
}

const hexDigits = "0123456789ABCDEF"

// EscapeSegment percent-escapes path-hostile bytes in a single key segment
func EscapeSegment(seg string) string {
	escaped := make([]byte, 0, len(seg))
	for i := 0; i < len(seg); i++ {
		c := seg[i]
		if allowed(c) && c != '%' {
			escaped = append(escaped, c)
			continue
		}
		escaped = append(escaped, '%', hexDigits[c>>4], hexDigits[c&0x0F])
	}
	return string(escaped)
}

// UnescapeSegment reverses EscapeSegment. Malformed escapes pass through
// untouched, so unescaping is total.
func UnescapeSegment(seg string) string {
	unescaped := make([]byte, 0, len(seg))
	for i := 0; i < len(seg); i++ {
		if seg[i] == '%' && i+2 < len(seg) {
			hi := strings.IndexByte(hexDigits, seg[i+1])
			lo := strings.IndexByte(hexDigits, seg[i+2])
			if hi >= 0 && lo >= 0 {
				unescaped = append(unescaped, byte(hi<<4|lo))
				i += 2
				continue
			}
		}
		unescaped = append(unescaped, seg[i])
	}
	return string(unescaped)
}

// ExpandHome expands ~ to the home directory
func ExpandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	expanded := ExpandHome(path)

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path")
	}

	return filepath.Clean(abs), nil
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Try the HOME environment variable as a fallback
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get home directory")
	}
	return homeDir, nil
}
