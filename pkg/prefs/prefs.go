package prefs

import (
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	stderrors "errors"

	"github.com/rs/zerolog"

	"github.com/andybarron/preferences-go/pkg/errors"
	"github.com/andybarron/preferences-go/pkg/filesystem"
	"github.com/andybarron/preferences-go/pkg/format"
	"github.com/andybarron/preferences-go/pkg/logging"
	"github.com/andybarron/preferences-go/pkg/paths"
)

// AppInfo identifies the application whose data is being stored. Use a
// single package-level value per program:
//
//	var appInfo = prefs.AppInfo{Name: "awesome-app", Author: "dedicated-dev"}
//
// Both fields become directory names and are sanitized before use.
type AppInfo struct {
	Name   string
	Author string
}

// Store reads and writes preferences for one application
type Store struct {
	app      AppInfo
	resolver paths.Resolver
	fs       filesystem.FS
	codec    format.Codec
	log      zerolog.Logger
}

// Option configures a Store
type Option func(*Store)

// WithFormat selects the serialization codec. The default is JSON; the
// other built-in codecs come from format.Lookup ("toml", "yaml", "xml").
func WithFormat(codec format.Codec) Option {
	return func(s *Store) {
		s.codec = codec
	}
}

// WithFS overrides the filesystem, primarily for tests
func WithFS(fsys filesystem.FS) Option {
	return func(s *Store) {
		s.fs = fsys
	}
}

// WithResolver overrides path resolution, primarily for tests
func WithResolver(r paths.Resolver) Option {
	return func(s *Store) {
		s.resolver = r
	}
}

// New creates a Store for the given application
func New(app AppInfo, opts ...Option) (*Store, error) {
	s := &Store{
		app:   app,
		fs:    filesystem.NewOS(),
		codec: format.Default(),
		log:   logging.GetLogger("prefs"),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.resolver == nil {
		resolver, err := paths.New(app.Author, app.Name)
		if err != nil {
			return nil, err
		}
		s.resolver = resolver
	}

	return s, nil
}

// App returns the application identity this store serves
func (s *Store) App() AppInfo {
	return s.app
}

// Format returns the store's codec
func (s *Store) Format() format.Codec {
	return s.codec
}

// Path returns the absolute file path a key resolves to
func (s *Store) Path(key string) (string, error) {
	return s.resolver.PrefsFile(key, s.codec.Extension())
}

// Save serializes value and writes it to the file the key resolves to,
// creating parent directories as needed. The write is atomic.
func (s *Store) Save(key string, value interface{}) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}

	data, err := s.codec.Marshal(value)
	if err != nil {
		return err
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create preferences directory for key %q", key)
	}

	if err := s.fs.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write preferences for key %q", key).
			WithDetail("path", path)
	}

	s.log.Debug().Str("key", key).Str("path", path).Int("bytes", len(data)).Msg("Preferences saved")
	return nil
}

// Load reads the file the key resolves to and deserializes it into out,
// which must be a pointer. Loading a key that was never saved returns a
// NOT_FOUND coded error.
func (s *Store) Load(key string, out interface{}) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return errors.Newf(errors.ErrNotFound, "no preferences saved under key %q", key).
				WithDetail("path", path)
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read preferences for key %q", key).
			WithDetail("path", path)
	}

	if err := s.codec.Unmarshal(data, out); err != nil {
		return err
	}

	s.log.Debug().Str("key", key).Str("path", path).Msg("Preferences loaded")
	return nil
}

// SaveTo serializes value to an arbitrary writer using the store's codec
func (s *Store) SaveTo(w io.Writer, value interface{}) error {
	data, err := s.codec.Marshal(value)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write preferences to stream")
	}
	return nil
}

// LoadFrom deserializes a value from an arbitrary reader using the store's
// codec
func (s *Store) LoadFrom(r io.Reader, out interface{}) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "failed to read preferences from stream")
	}
	return s.codec.Unmarshal(data, out)
}

// Exists reports whether preferences are saved under the key
func (s *Store) Exists(key string) (bool, error) {
	path, err := s.Path(key)
	if err != nil {
		return false, err
	}

	if _, err := s.fs.Stat(path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat preferences for key %q", key)
	}
	return true, nil
}

// Delete removes the preferences saved under the key. Deleting a key that
// does not exist is not an error.
func (s *Store) Delete(key string) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}

	if err := s.fs.Remove(path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to delete preferences for key %q", key)
	}

	s.log.Debug().Str("key", key).Str("path", path).Msg("Preferences deleted")
	return nil
}

// Keys returns every key with saved preferences under this store's codec,
// sorted. Files written with other codecs (other extensions) are ignored.
func (s *Store) Keys() ([]string, error) {
	base := s.resolver.ConfigDir()
	ext := s.codec.Extension()

	var keys []string
	if err := s.collectKeys(base, "", ext, &keys); err != nil {
		return nil, err
	}

	sort.Strings(keys)
	return keys, nil
}

// collectKeys walks dir recursively, translating matching filenames back
// into keys
func (s *Store) collectKeys(dir, prefix, ext string, keys *[]string) error {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to list preferences directory %q", dir)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			sub := prefix + paths.UnescapeSegment(name) + "/"
			if err := s.collectKeys(filepath.Join(dir, name), sub, ext, keys); err != nil {
				return err
			}
			continue
		}
		if !strings.HasSuffix(name, ext) {
			continue
		}
		segment := paths.UnescapeSegment(strings.TrimSuffix(name, ext))
		*keys = append(*keys, prefix+segment)
	}
	return nil
}

// Save stores value under key for the given application with default
// options. Shorthand for creating a Store first.
func Save(app AppInfo, key string, value interface{}) error {
	store, err := New(app)
	if err != nil {
		return err
	}
	return store.Save(key, value)
}

// Load reads the value saved under key for the given application with
// default options
func Load(app AppInfo, key string, out interface{}) error {
	store, err := New(app)
	if err != nil {
		return err
	}
	return store.Load(key, out)
}

// Delete removes the value saved under key for the given application with
// default options
func Delete(app AppInfo, key string) error {
	store, err := New(app)
	if err != nil {
		return err
	}
	return store.Delete(key)
}
