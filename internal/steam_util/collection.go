package steam_util

import (
	"path/filepath"
	"sort"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

const manifestPattern = "appmanifest_*.acf"

// AppCollection is the published result of one aggregation pass: every
// successfully parsed app, sorted ascending by name. Sorting is byte-wise and
// therefore case-sensitive ("Zelda" before "midway"), matching ordinal string
// comparison.
type AppCollection []AppRecord

// RebuildAppCollection runs one full aggregation pass over the given library
// roots. Per-file problems are warned about and skipped; the pass itself
// always completes. Runs are idempotent and side-effect free apart from
// logging; serializing concurrent calls is the caller's job.
func RebuildAppCollection(roots []string) AppCollection {
	var apps AppCollection
	for _, root := range roots {
		matches, err := filepath.Glob(filepath.Join(root, manifestPattern))
		if err != nil {
			// Only malformed patterns error here, and ours is fixed.
			continue
		}
		for _, path := range matches {
			record, err := ParseManifestFile(path)
			if err != nil {
				log.Warn("skipping manifest", "file", filepath.Base(path), "err", err)
				continue
			}
			if record == nil {
				continue
			}
			apps = append(apps, *record)
		}
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].Name < apps[j].Name })
	return apps
}

// Store holds the currently published AppCollection. One writer replaces the
// whole collection atomically; any number of readers see either the previous
// complete collection or the new one, never a partial state.
type Store struct {
	apps atomic.Pointer[AppCollection]
}

func NewStore() *Store {
	s := &Store{}
	s.apps.Store(&AppCollection{})
	return s
}

// Apps returns the current collection. The returned slice must be treated as
// read-only; it is shared with every other reader.
func (s *Store) Apps() AppCollection {
	return *s.apps.Load()
}

// Replace publishes a new collection in a single atomic swap.
func (s *Store) Replace(apps AppCollection) {
	s.apps.Store(&apps)
}
