package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andybarron/preferences-go/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		author   string
		app      string
		envSetup map[string]string
		validate func(t *testing.T, r Resolver)
		wantErr  bool
	}{
		{
			name:    "missing author",
			author:  "",
			app:     "editor",
			wantErr: true,
		},
		{
			name:    "missing name",
			author:  "acme",
			app:     "  ",
			wantErr: true,
		},
		{
			name:   "custom directories from env",
			author: "acme",
			app:    "editor",
			envSetup: map[string]string{
				EnvConfigDir: "/custom/config",
				EnvDataDir:   "/custom/data",
				EnvCacheDir:  "/custom/cache",
			},
			validate: func(t *testing.T, r Resolver) {
				if got := r.ConfigDir(); got != "/custom/config/acme/editor" {
					t.Errorf("ConfigDir() = %q", got)
				}
				if got := r.DataDir(); got != "/custom/data/acme/editor" {
					t.Errorf("DataDir() = %q", got)
				}
				if got := r.CacheDir(); got != "/custom/cache/acme/editor" {
					t.Errorf("CacheDir() = %q", got)
				}
			},
		},
		{
			name:   "author with hostile characters",
			author: "Rust language community",
			app:    "pre/fs",
			envSetup: map[string]string{
				EnvConfigDir: "/cfg",
			},
			validate: func(t *testing.T, r Resolver) {
				// Spaces survive, slashes do not
				if got := r.ConfigDir(); got != "/cfg/Rust language community/pre%2Ffs" {
					t.Errorf("ConfigDir() = %q", got)
				}
			},
		},
		{
			name:   "defaults are absolute",
			author: "acme",
			app:    "editor",
			validate: func(t *testing.T, r Resolver) {
				if !filepath.IsAbs(r.ConfigDir()) {
					t.Errorf("ConfigDir() should be absolute: %q", r.ConfigDir())
				}
				if !strings.HasSuffix(r.ConfigDir(), filepath.Join("acme", "editor")) {
					t.Errorf("ConfigDir() should end in acme/editor: %q", r.ConfigDir())
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear relevant environment variables first
			t.Setenv(EnvConfigDir, "")
			t.Setenv(EnvDataDir, "")
			t.Setenv(EnvCacheDir, "")

			for k, v := range tt.envSetup {
				t.Setenv(k, v)
			}

			r, err := New(tt.author, tt.app)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.IsErrorCode(err, errors.ErrInvalidApp) {
					t.Errorf("expected INVALID_APP, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, r)
			}
		})
	}
}

func TestPrefsFile(t *testing.T) {
	t.Setenv(EnvConfigDir, "/cfg")
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvCacheDir, "")

	r, err := New("acme", "editor")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		key      string
		expected string
		wantErr  bool
	}{
		{
			name:     "simple key",
			key:      "options",
			expected: "/cfg/acme/editor/options.prefs.json",
		},
		{
			name:     "nested key",
			key:      "options/graphics",
			expected: "/cfg/acme/editor/options/graphics.prefs.json",
		},
		{
			name:     "empty key uses default filename",
			key:      "",
			expected: "/cfg/acme/editor/prefs.prefs.json",
		},
		{
			name:     "trailing slash uses default filename",
			key:      "saves/",
			expected: "/cfg/acme/editor/saves/prefs.prefs.json",
		},
		{
			name:     "interior empty segments collapse",
			key:      "a//b",
			expected: "/cfg/acme/editor/a/b.prefs.json",
		},
		{
			name:     "hostile bytes are escaped",
			key:      "bookmarks/favorites:2024",
			expected: "/cfg/acme/editor/bookmarks/favorites%3A2024.prefs.json",
		},
		{
			name:    "parent traversal rejected",
			key:     "../escape",
			wantErr: true,
		},
		{
			name:    "dot segment rejected",
			key:     "a/./b",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.PrefsFile(tt.key, ".prefs.json")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.IsErrorCode(err, errors.ErrInvalidKey) {
					t.Errorf("expected INVALID_KEY, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("PrefsFile(%q) = %q, want %q", tt.key, got, tt.expected)
			}
		})
	}
}

func TestEscapeSegmentRoundTrip(t *testing.T) {
	tests := []string{
		"plain",
		"with space",
		"with-dash_and.dot",
		"slash/inside",
		"percent%sign",
		"unicode-héllo",
		"colon:star*quote\"",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			escaped := EscapeSegment(input)
			if strings.ContainsAny(escaped, "/\\:*\"") {
				t.Errorf("escaped segment still contains hostile characters: %q", escaped)
			}
			if got := UnescapeSegment(escaped); got != input {
				t.Errorf("round trip failed: %q -> %q -> %q", input, escaped, got)
			}
		})
	}
}

func TestUnescapeSegmentMalformed(t *testing.T) {
	// Malformed escapes pass through untouched
	tests := map[string]string{
		"trailing%":   "trailing%",
		"short%2":     "short%2",
		"bad%ZZ":      "bad%ZZ",
		"good%2Fpair": "good/pair",
	}

	for input, want := range tests {
		if got := UnescapeSegment(input); got != want {
			t.Errorf("UnescapeSegment(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestExpandHome(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"empty path", "", ""},
		{"bare tilde", "~", homeDir},
		{"tilde with slash", "~/prefs", filepath.Join(homeDir, "prefs")},
		{"tilde user untouched", "~other/prefs", "~other/prefs"},
		{"absolute untouched", "/etc/prefs", "/etc/prefs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandHome(tt.path); got != tt.expected {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestKeyToRelPath(t *testing.T) {
	rel, err := KeyToRelPath("tests/docs/basic-example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rel != filepath.Join("tests", "docs", "basic-example") {
		t.Errorf("unexpected rel path: %q", rel)
	}
}
