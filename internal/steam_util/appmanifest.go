package steam_util

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Neuroquila-n8fall/SteamShutdown/internal/steam_vdf"
)

// StateFlags bits, as Steam writes them into appmanifest files.
const (
	StateUpdateRequired = 1 << 1
	StateFullyInstalled = 1 << 2
	StateUpdateRunning  = 1 << 8
	StateUpdatePaused   = 1 << 9
	StateUpdateStarted  = 1 << 10
)

// AppRecord is one installed application as read from its manifest.
// Immutable once built.
type AppRecord struct {
	ID    int
	Name  string
	State int
}

// Downloading reports whether Steam is actively fetching data for the app.
func (a AppRecord) Downloading() bool {
	return a.State&(StateUpdateRunning|StateUpdateStarted) != 0
}

func (a AppRecord) String() string {
	return fmt.Sprintf("%s (%d, state %d)", a.Name, a.ID, a.State)
}

// The id key's casing has varied across Steam versions; first present wins.
var appIDKeys = []string{"appid", "appID", "AppID"}

// ParseManifestFile reads one appmanifest_*.acf into an AppRecord.
//
// Zero-length files and files of only NUL bytes are transient states Steam
// leaves behind while writing; both return (nil, nil) so callers skip them
// without a warning. Any other failure (unreadable file, malformed content,
// missing fields) is an error the caller should warn about, then skip.
func ParseManifestFile(path string) (*AppRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read %s: %w", filepath.Base(path), err)
	}
	if len(data) == 0 || allNul(data) {
		return nil, nil
	}
	root, err := steam_vdf.ParseManifest(data)
	if err != nil {
		return nil, err
	}
	return mapAppRecord(root)
}

// mapAppRecord pulls the typed record out of the generic tree. Every lookup
// or parse failure becomes ErrMissingField; nothing here may abort more than
// the single file being mapped.
func mapAppRecord(root *steam_vdf.Object) (*AppRecord, error) {
	idValue, ok := root.FirstOf(appIDKeys...)
	if !ok {
		return nil, fmt.Errorf("%w: appid", ErrMissingField)
	}
	id, err := idValue.Int()
	if err != nil {
		return nil, fmt.Errorf("%w: appid: %v", ErrMissingField, err)
	}

	// Older manifests can lack "name"; the install directory stands in.
	nameValue, ok := root.FirstOf("name", "installdir")
	if !ok {
		return nil, fmt.Errorf("%w: name", ErrMissingField)
	}

	stateValue, ok := root.Get("StateFlags")
	if !ok {
		return nil, fmt.Errorf("%w: StateFlags", ErrMissingField)
	}
	state, err := stateValue.Int()
	if err != nil {
		return nil, fmt.Errorf("%w: StateFlags: %v", ErrMissingField, err)
	}

	return &AppRecord{ID: id, Name: nameValue.Str, State: state}, nil
}

func allNul(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}
