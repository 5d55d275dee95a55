// Package watch delivers change notifications for preference files, so a
// long-running application can pick up edits made by another process (or
// the user) without polling.
package watch

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/andybarron/preferences-go/pkg/errors"
	"github.com/andybarron/preferences-go/pkg/logging"
)

// Op describes what happened to a watched preferences file
type Op uint8

const (
	// Updated means the file was written or atomically replaced
	Updated Op = iota + 1

	// Removed means the file was deleted or renamed away
	Removed
)

// String returns the op's display name
func (op Op) String() string {
	switch op {
	case Updated:
		return "updated"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Event reports a change to a watched preferences file
type Event struct {
	// Path is the absolute path of the changed file
	Path string

	// Op is what happened to it
	Op Op
}

// Pather resolves preference keys to file paths. Both prefs.Store and
// secure.Store satisfy it.
type Pather interface {
	Path(key string) (string, error)
}

// Watcher emits Events for registered preference files. Watching is done
// on the parent directory, because saves are atomic replaces: the target
// file's inode changes on every write, and a watch on the file itself
// would go stale after the first save.
type Watcher struct {
	fsw    *fsnotify.Watcher
	events chan Event
	log    zerolog.Logger

	mu      sync.Mutex
	targets map[string]struct{}
	dirs    map[string]struct{}

	closeOnce sync.Once
	closed    chan struct{}
}

// New creates a Watcher. Callers must Close it when done.
func New() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to create filesystem watcher")
	}

	w := &Watcher{
		fsw:     fsw,
		events:  make(chan Event, 16),
		log:     logging.GetLogger("watch"),
		targets: make(map[string]struct{}),
		dirs:    make(map[string]struct{}),
		closed:  make(chan struct{}),
	}

	go w.run()
	return w, nil
}

// Watch registers a file path for change notifications. The file does not
// need to exist yet; its parent directory does.
func (w *Watcher) Watch(path string) error {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.closed:
		return errors.New(errors.ErrWatchClosed, "watcher is closed")
	default:
	}

	if _, ok := w.dirs[dir]; !ok {
		if err := w.fsw.Add(dir); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to watch directory %q", dir)
		}
		w.dirs[dir] = struct{}{}
	}

	w.targets[path] = struct{}{}
	w.log.Debug().Str("path", path).Msg("Watching preferences file")
	return nil
}

// WatchKey registers the file a key resolves to in the given store
func (w *Watcher) WatchKey(store Pather, key string) error {
	path, err := store.Path(key)
	if err != nil {
		return err
	}
	return w.Watch(path)
}

// Events returns the channel change notifications arrive on. It is closed
// when the Watcher is closed.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Close stops watching and closes the Events channel
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.closed)
		err = w.fsw.Close()
	})
	return err
}

// run pumps fsnotify events, filtering to registered targets
func (w *Watcher) run() {
	defer close(w.events)

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.dispatch(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("Filesystem watcher error")
		case <-w.closed:
			return
		}
	}
}

// dispatch translates one fsnotify event into at most one Event
func (w *Watcher) dispatch(ev fsnotify.Event) {
	path := filepath.Clean(ev.Name)

	w.mu.Lock()
	_, watched := w.targets[path]
	w.mu.Unlock()
	if !watched {
		return
	}

	var op Op
	switch {
	case ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write):
		// An atomic replace surfaces as Create on the target name
		op = Updated
	case ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename):
		op = Removed
	default:
		return
	}

	select {
	case w.events <- Event{Path: path, Op: op}:
	case <-w.closed:
	}
}
