// Package config loads the prefs CLI's own configuration: defaults,
// then an optional config file, then environment overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/andybarron/preferences-go/pkg/errors"
)

// EnvPrefix is the prefix for environment overrides (PREFS_APP,
// PREFS_AUTHOR, PREFS_FORMAT, PREFS_NO_COLOR)
const EnvPrefix = "PREFS_"

// Settings is the CLI's resolved configuration
type Settings struct {
	// App is the default application name for commands that omit --app
	App string `koanf:"app"`

	// Author is the default application author for commands that omit
	// --author
	Author string `koanf:"author"`

	// Format is the default serialization format
	Format string `koanf:"format"`

	// NoColor disables styled terminal output
	NoColor bool `koanf:"no_color"`
}

// defaults are the lowest-priority configuration layer
var defaults = map[string]interface{}{
	"app":      "",
	"author":   "",
	"format":   "json",
	"no_color": false,
}

// FilePath returns the location of the CLI config file
func FilePath() string {
	return filepath.Join(xdg.ConfigHome, "prefs", "prefs.toml")
}

// Load resolves Settings by layering defaults, the config file (if it
// exists), and PREFS_* environment variables
func Load() (*Settings, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default configuration")
	}

	// 2. Config file, if present
	path := FilePath()
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config file %s", path)
		}
	}

	// 3. Environment overrides
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment configuration")
	}

	var settings Settings
	if err := k.Unmarshal("", &settings); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to decode configuration")
	}

	return &settings, nil
}
