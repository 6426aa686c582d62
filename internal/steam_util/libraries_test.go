package steam_util

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// makeLibrary creates <dir>/steamapps and returns dir.
func makeLibrary(t *testing.T, dir string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "steamapps"), 0o755))
	return dir
}

func writeLibraryFolders(t *testing.T, steamPath, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(steamPath, "steamapps"), 0o755))
	require.NoError(t, os.WriteFile(LibraryFoldersPath(steamPath), []byte(content), 0o644))
}

func TestDiscoverLibraryRoots(t *testing.T) {
	steamPath := t.TempDir()
	extra := makeLibrary(t, t.TempDir())
	missing := filepath.Join(t.TempDir(), "gone")

	writeLibraryFolders(t, steamPath, strings.Join([]string{
		"\"libraryfolders\"",
		"{",
		"\t\"0\"",
		"\t{",
		"\t\t\"path\"\t\t\"" + steamPath + "\"",
		"\t\t\"label\"\t\t\"\"",
		"\t}",
		"\t\"1\"",
		"\t{",
		"\t\t\"path\"\t\t\"" + extra + "\"",
		"\t}",
		"\t\"2\"",
		"\t{",
		"\t\t\"path\"\t\t\"" + missing + "\"",
		"\t}",
		"}",
		"",
	}, "\n"))

	roots, err := DiscoverLibraryRoots(steamPath)
	require.NoError(t, err)

	// Default root first; the default library is then repeated because its
	// own "path" entry survives too (no de-duplication). The nonexistent
	// library is dropped.
	require.Equal(t, []string{
		filepath.Join(steamPath, "steamapps"),
		filepath.Join(steamPath, "steamapps"),
		filepath.Join(extra, "steamapps"),
	}, roots)
}

func TestDiscoverLibraryRootsDefaultAlwaysIncluded(t *testing.T) {
	// The default root is listed even though <steamPath>/steamapps itself is
	// never existence-checked; only a readable libraryfolders.vdf matters.
	steamPath := t.TempDir()
	writeLibraryFolders(t, steamPath, "\"libraryfolders\"\n{\n}\n")

	roots, err := DiscoverLibraryRoots(steamPath)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(steamPath, "steamapps")}, roots)
}

func TestDiscoverLibraryRootsUnreadable(t *testing.T) {
	_, err := DiscoverLibraryRoots(filepath.Join(t.TempDir(), "nope"))
	require.True(t, errors.Is(err, ErrLibraryFoldersUnreadable), "got %v", err)
}

func TestScanLibraryFoldersHeuristics(t *testing.T) {
	lib := makeLibrary(t, t.TempDir())

	content := strings.Join([]string{
		// Plain entry, kept.
		"\t\t\"path\"\t\t\"" + lib + "\"",
		// Contains "path" but doesn't start with it after cleaning.
		"\t\t\"contentpath\"\t\t\"" + lib + "\"",
		// Fewer than two tab-separated fields.
		"\t\t\"path\"",
		// No "path" substring at all.
		"\t\t\"label\"\t\t\"whatever\"",
		// Mixed case still matches, and prefix casing is also ignored.
		"\t\t\"PATH\"\t\t\"" + lib + "\"",
	}, "\n")

	roots := scanLibraryFolders(strings.NewReader(content))
	require.Equal(t, []string{
		filepath.Join(lib, "steamapps"),
		filepath.Join(lib, "steamapps"),
	}, roots)
}

func TestScanLibraryFoldersDropsMissingDirs(t *testing.T) {
	roots := scanLibraryFolders(strings.NewReader(
		"\t\t\"path\"\t\t\"" + filepath.Join(t.TempDir(), "not-there") + "\"\n"))
	require.Empty(t, roots)
}
