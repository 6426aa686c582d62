package steam_util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	libraryDirName         = "steamapps"
	libraryFoldersFileName = "libraryfolders.vdf"
)

// LibraryFoldersPath returns the path of the library-folders file under a
// Steam install. Watch this file to know when discovery must be re-run.
func LibraryFoldersPath(steamPath string) string {
	return filepath.Join(steamPath, libraryDirName, libraryFoldersFileName)
}

// DiscoverLibraryRoots returns the steamapps directories of every Steam
// library. The default root under the install path comes first and is always
// included; the rest come from libraryfolders.vdf in file order, kept only if
// the directory exists. No de-duplication: a library referenced both as the
// default and as an explicit entry shows up twice.
//
// A missing or unreadable libraryfolders.vdf is ErrLibraryFoldersUnreadable;
// an empty result is ErrNoLibrariesFound. Both are fatal to the caller, not
// per-file skips.
func DiscoverLibraryRoots(steamPath string) ([]string, error) {
	roots := []string{filepath.Join(steamPath, libraryDirName)}

	f, err := os.Open(LibraryFoldersPath(steamPath))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLibraryFoldersUnreadable, err)
	}
	defer f.Close()

	roots = append(roots, scanLibraryFolders(f)...)
	if len(roots) == 0 {
		return nil, ErrNoLibrariesFound
	}
	return roots, nil
}

// scanLibraryFolders pulls the "path" entries out of libraryfolders.vdf.
//
// Valve has moved these entries around between Steam versions ("1", "2", ...
// keys at the top level, then nested objects with a "path" member), so this
// deliberately does not use the manifest codec. It scans line by line:
// keep lines containing "path" (case-insensitive), strip whitespace and
// quotes, re-check the "path" prefix to drop keys that merely contain the
// substring, split on tabs, and take the second field. Candidates whose
// steamapps subdirectory doesn't exist are dropped. This is a heuristic and
// stays one: the exact layout of this file is not stable upstream.
func scanLibraryFolders(r io.Reader) []string {
	var roots []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(strings.ToLower(line), "path") {
			continue
		}
		cleaned := strings.ReplaceAll(strings.TrimSpace(line), "\"", "")
		if !strings.HasPrefix(strings.ToLower(cleaned), "path") {
			continue
		}
		fields := splitTabFields(cleaned)
		if len(fields) < 2 {
			continue
		}
		candidate := filepath.Join(fields[1], libraryDirName)
		if stat, err := os.Stat(candidate); err != nil || !stat.IsDir() {
			continue
		}
		roots = append(roots, candidate)
	}
	return roots
}

// splitTabFields splits on tabs and drops empty fields, so the double-tab
// key/value separator doesn't produce a blank middle field.
func splitTabFields(s string) []string {
	var fields []string
	for _, f := range strings.Split(s, "\t") {
		if f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
