package steam_util

import "errors"

// Per-file errors are recovered locally: the file is skipped with one warning
// and the aggregation pass continues. Discovery-level errors are fatal to the
// whole subsystem and must stop the caller.
var (
	// ErrMissingField reports a manifest without a usable appid, name or
	// StateFlags entry (absent, or non-numeric where a number is required).
	ErrMissingField = errors.New("manifest missing required field")

	// ErrNoLibrariesFound reports that discovery produced zero library roots.
	ErrNoLibrariesFound = errors.New("no steam libraries found")

	// ErrLibraryFoldersUnreadable reports a missing or unreadable
	// libraryfolders.vdf.
	ErrLibraryFoldersUnreadable = errors.New("couldn't read libraryfolders.vdf")
)
