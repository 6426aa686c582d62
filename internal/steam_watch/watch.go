// Package steam_watch watches Steam library directories and turns raw
// filesystem events into debounced "something changed" callbacks.
//
// Events within the debounce window are coalesced so one Steam write burst
// (Steam rewrites manifests several times during a download tick) fires the
// callback once. Callbacks run one at a time on the watcher's goroutine,
// which gives the aggregation pass the external serialization it requires.
package steam_watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 2 * time.Second

// manifestPattern selects the app-manifest files inside a library root.
const manifestPattern = "appmanifest_*.acf"

type ChangeKind int

const (
	// ManifestsChanged means one or more appmanifest files changed; the
	// caller should rebuild the app collection with its current roots.
	ManifestsChanged ChangeKind = iota
	// LibrariesChanged means the library-folders file itself changed; the
	// caller should re-run discovery before rebuilding.
	LibrariesChanged
)

type Config struct {
	// Roots are the steamapps directories to watch for manifest changes.
	Roots []string

	// LibraryFoldersFile is the libraryfolders.vdf path. Changes to it are
	// reported as LibrariesChanged.
	LibraryFoldersFile string

	// Debounce is the quiet period after the last event before the callback
	// fires. Zero or negative falls back to the default.
	Debounce time.Duration

	// OnChange receives the coalesced change kind and the paths seen in the
	// window. If both manifests and the library-folders file changed, the
	// kind is LibrariesChanged (the stronger of the two). A nil callback is
	// a no-op.
	OnChange func(kind ChangeKind, paths []string)
}

type Watcher struct {
	cfg      Config
	fsw      *fsnotify.Watcher
	debounce time.Duration
	libFile  string
}

func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("steam_watch: create fsnotify watcher: %w", err)
	}

	for _, root := range cfg.Roots {
		if err := fsw.Add(root); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("steam_watch: watch %s: %w", root, err)
		}
	}
	// The library-folders file lives inside the default root, but that root
	// may not be in cfg.Roots on exotic setups; watch its directory too.
	if cfg.LibraryFoldersFile != "" {
		dir := filepath.Dir(cfg.LibraryFoldersFile)
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("steam_watch: watch %s: %w", dir, err)
		}
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	libFile := ""
	if cfg.LibraryFoldersFile != "" {
		libFile = filepath.Clean(cfg.LibraryFoldersFile)
	}
	return &Watcher{cfg: cfg, fsw: fsw, debounce: debounce, libFile: libFile}, nil
}

// Run blocks until ctx is cancelled, dispatching debounced callbacks. It
// returns nil on clean cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		kind    = ManifestsChanged
		timer   *time.Timer
		fireMu  sync.Mutex // serializes OnChange invocations
	)

	fire := func() {
		if ctx.Err() != nil {
			return
		}
		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		paths := make([]string, 0, len(pending))
		for p := range pending {
			paths = append(paths, p)
		}
		firedKind := kind
		clear(pending)
		kind = ManifestsChanged
		mu.Unlock()

		if w.cfg.OnChange != nil {
			fireMu.Lock()
			w.cfg.OnChange(firedKind, paths)
			fireMu.Unlock()
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if err := w.fsw.Close(); err != nil {
			log.Warn("closing fsnotify watcher", "err", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("steam_watch: event channel closed unexpectedly")
			}
			evtKind, relevant := w.classify(evt.Name)
			if !relevant {
				continue
			}
			mu.Lock()
			pending[evt.Name] = struct{}{}
			if evtKind == LibrariesChanged {
				kind = LibrariesChanged
			}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("steam_watch: error channel closed unexpectedly")
			}
			log.Warn("fsnotify error", "err", err)
		}
	}
}

// classify decides whether a changed path is interesting and what it means.
func (w *Watcher) classify(path string) (ChangeKind, bool) {
	if w.libFile != "" && filepath.Clean(path) == w.libFile {
		return LibrariesChanged, true
	}
	matched, err := doublestar.Match(manifestPattern, filepath.Base(path))
	if err == nil && matched {
		return ManifestsChanged, true
	}
	return ManifestsChanged, false
}
