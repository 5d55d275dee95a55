package secure

import (
	"io"
	"io/fs"
	"path/filepath"

	stderrors "errors"

	"github.com/rs/zerolog"

	"github.com/andybarron/preferences-go/pkg/errors"
	"github.com/andybarron/preferences-go/pkg/filesystem"
	"github.com/andybarron/preferences-go/pkg/format"
	"github.com/andybarron/preferences-go/pkg/logging"
	"github.com/andybarron/preferences-go/pkg/paths"
	"github.com/andybarron/preferences-go/pkg/prefs"
)

// Extension is the file extension for sealed preferences. Plaintext stores
// never read or write it, so encrypted and plaintext data under the same
// key coexist.
const Extension = paths.ExtensionPrefix + ".sealed"

// Store reads and writes encrypted preferences for one application.
// Values are serialized as JSON before sealing, matching the plaintext
// store's default codec.
type Store struct {
	app      prefs.AppInfo
	resolver paths.Resolver
	fs       filesystem.FS
	manager  *Manager
	codec    format.Codec
	log      zerolog.Logger
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithFS overrides the filesystem, primarily for tests
func WithFS(fsys filesystem.FS) StoreOption {
	return func(s *Store) {
		s.fs = fsys
	}
}

// WithResolver overrides path resolution, primarily for tests
func WithResolver(r paths.Resolver) StoreOption {
	return func(s *Store) {
		s.resolver = r
	}
}

// NewStore creates an encrypted Store for the given application
func NewStore(app prefs.AppInfo, manager *Manager, opts ...StoreOption) (*Store, error) {
	if manager == nil {
		return nil, errors.New(errors.ErrInvalidInput, "a security manager is required")
	}

	s := &Store{
		app:     app,
		fs:      filesystem.NewOS(),
		manager: manager,
		codec:   format.Default(),
		log:     logging.GetLogger("secure"),
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

// Path returns the absolute file path a key resolves to
func (s *Store) Path(key string) (string, error) {
	return s.resolver.PrefsFile(key, Extension)
}

// Save serializes value, seals it, and writes it to the file the key
// resolves to. The write is atomic.
func (s *Store) Save(key string, value interface{}) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}

	plaintext, err := s.codec.Marshal(value)
	if err != nil {
		return err
	}

	sealed, err := s.manager.Seal(plaintext)
	if err != nil {
		return err
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create preferences directory for key %q", key)
	}

	if err := s.fs.WriteFile(path, sealed, 0600); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write sealed preferences for key %q", key).
			WithDetail("path", path)
	}

	s.log.Debug().Str("key", key).Str("cipher", s.manager.Cipher().String()).Msg("Sealed preferences saved")
	return nil
}

// Load reads the sealed file the key resolves to, opens it, and
// deserializes the plaintext into out
func (s *Store) Load(key string, out interface{}) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}

	sealed, err := s.fs.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return errors.Newf(errors.ErrNotFound, "no sealed preferences saved under key %q", key).
				WithDetail("path", path)
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read sealed preferences for key %q", key)
	}

	plaintext, err := s.manager.Open(sealed)
	if err != nil {
		return err
	}

	return s.codec.Unmarshal(plaintext, out)
}

// SaveTo seals value and writes the container to an arbitrary writer
func (s *Store) SaveTo(w io.Writer, value interface{}) error {
	plaintext, err := s.codec.Marshal(value)
	if err != nil {
		return err
	}

	sealed, err := s.manager.Seal(plaintext)
	if err != nil {
		return err
	}

	if _, err := w.Write(sealed); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write sealed preferences to stream")
	}
	return nil
}

// LoadFrom reads a sealed container from an arbitrary reader and
// deserializes the plaintext into out
func (s *Store) LoadFrom(r io.Reader, out interface{}) error {
	sealed, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "failed to read sealed preferences from stream")
	}

	plaintext, err := s.manager.Open(sealed)
	if err != nil {
		return err
	}

	return s.codec.Unmarshal(plaintext, out)
}

// Exists reports whether sealed preferences are saved under the key
func (s *Store) Exists(key string) (bool, error) {
	path, err := s.Path(key)
	if err != nil {
		return false, err
	}

	if _, err := s.fs.Stat(path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat sealed preferences for key %q", key)
	}
	return true, nil
}

// Delete removes the sealed preferences saved under the key
func (s *Store) Delete(key string) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}

	if err := s.fs.Remove(path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to delete sealed preferences for key %q", key)
	}
	return nil
}

// Save seals value under key for the given application with default options
func Save(app prefs.AppInfo, manager *Manager, key string, value interface{}) error {
	store, err := NewStore(app, manager)
	if err != nil {
		return err
	}
	return store.Save(key, value)
}

// Load opens the value sealed under key for the given application with
// default options
func Load(app prefs.AppInfo, manager *Manager, key string, out interface{}) error {
	store, err := NewStore(app, manager)
	if err != nil {
		return err
	}
	return store.Load(key, out)
}
