// Package format holds the serialization codecs a preferences store can
// write its files with. JSON is the default; TOML, YAML and XML are
// available by name. The codec determines the file extension, so stores
// using different codecs never clobber each other's files.
package format

import (
	"sort"

	"github.com/andybarron/preferences-go/pkg/errors"
	"github.com/andybarron/preferences-go/pkg/paths"
)

// Codec serializes and deserializes preference values
type Codec interface {
	// Name is the codec's registry name ("json", "toml", ...)
	Name() string

	// Extension is the full file extension, e.g. ".prefs.json"
	Extension() string

	// Marshal serializes a value
	Marshal(v interface{}) ([]byte, error)

	// Unmarshal deserializes data into out (a pointer)
	Unmarshal(data []byte, out interface{}) error
}

var registry = map[string]Codec{
	"json": jsonCodec{},
	"toml": tomlCodec{},
	"yaml": yamlCodec{},
	"xml":  xmlCodec{},
}

// Default returns the default codec (JSON)
func Default() Codec {
	return jsonCodec{}
}

// Lookup returns the codec registered under name
func Lookup(name string) (Codec, error) {
	codec, ok := registry[name]
	if !ok {
		return nil, errors.Newf(errors.ErrUnsupportedFormat, "no codec registered for format %q", name)
	}
	return codec, nil
}

// Names returns the registered codec names, sorted
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// extensionFor builds the ".prefs.<name>" extension for a codec name
func extensionFor(name string) string {
	return paths.ExtensionPrefix + "." + name
}
