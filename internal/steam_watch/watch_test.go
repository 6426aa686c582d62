package steam_watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// TestWatcherCoalescesManifestWrites verifies that a burst of manifest writes
// inside the debounce window produces a single ManifestsChanged callback
// carrying every changed path.
func TestWatcherCoalescesManifestWrites(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	var (
		mu    sync.Mutex
		calls int
		kinds []ChangeKind
		paths []string
	)
	done := make(chan struct{})

	w, err := New(Config{
		Roots:    []string{root},
		Debounce: 100 * time.Millisecond,
		OnChange: func(kind ChangeKind, changed []string) {
			mu.Lock()
			defer mu.Unlock()
			calls++
			kinds = append(kinds, kind)
			paths = append(paths, changed...)
			if calls == 1 {
				close(done)
			}
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	for _, name := range []string{"appmanifest_570.acf", "appmanifest_730.acf", "ignored.txt"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
	time.Sleep(200 * time.Millisecond)

	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("expected 1 coalesced callback, got %d", calls)
	}
	if len(kinds) != 1 || kinds[0] != ManifestsChanged {
		t.Errorf("expected ManifestsChanged, got %v", kinds)
	}
	if len(paths) != 2 {
		t.Errorf("expected 2 manifest paths (ignored.txt filtered), got %v", paths)
	}
}

// TestWatcherLibraryFoldersWins verifies that a window containing both a
// manifest write and a library-folders write reports LibrariesChanged.
func TestWatcherLibraryFoldersWins(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	libFile := filepath.Join(root, "libraryfolders.vdf")

	var (
		mu   sync.Mutex
		kind ChangeKind
		once sync.Once
	)
	done := make(chan struct{})

	w, err := New(Config{
		Roots:              []string{root},
		LibraryFoldersFile: libFile,
		Debounce:           100 * time.Millisecond,
		OnChange: func(k ChangeKind, _ []string) {
			mu.Lock()
			defer mu.Unlock()
			kind = k
			once.Do(func() { close(done) })
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	if err := os.WriteFile(filepath.Join(root, "appmanifest_570.acf"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if err := os.WriteFile(libFile, []byte("y"), 0o644); err != nil {
		t.Fatalf("write libraryfolders: %v", err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}

	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if kind != LibrariesChanged {
		t.Errorf("expected LibrariesChanged, got %v", kind)
	}
}
