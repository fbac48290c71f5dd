package library

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mp3ify/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, root, relPath, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(relPath))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func buildTestLibrary(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "Artist1/a.flac", "flac-a")
	writeFile(t, root, "Artist1/b.m4a", "m4a-b")
	writeFile(t, root, "Artist2/c.flac", "flac-c")
	writeFile(t, root, "Artist2/cover.jpg", "not audio")
	writeFile(t, root, "Artist2/notes.txt", "not audio")
	writeFile(t, root, "loose.flac", "flac-loose")
	writeFile(t, root, "FLAC_CONVERTED/Artist1/old.flac", "already archived")
	return root
}

func relPaths(tracks []domain.TrackFile) []string {
	paths := make([]string, len(tracks))
	for i, tr := range tracks {
		paths[i] = tr.RelPath
	}
	return paths
}

func TestScanDiscoversOnlyConvertibleFiles(t *testing.T) {
	root := buildTestLibrary(t)
	scanner := NewScanner(testLogger(), 1, []string{"FLAC_CONVERTED", "M4A_CONVERTED"})

	tracks, err := scanner.Scan(context.Background(), root)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"Artist1/a.flac",
		"Artist1/b.m4a",
		"Artist2/c.flac",
		"loose.flac",
	}, relPaths(tracks))
}

func TestScanClassifiesFormatsAndArtists(t *testing.T) {
	root := buildTestLibrary(t)
	scanner := NewScanner(testLogger(), 1, nil)

	tracks, err := scanner.Scan(context.Background(), root)
	require.NoError(t, err)

	byRel := make(map[string]domain.TrackFile)
	for _, tr := range tracks {
		byRel[tr.RelPath] = tr
	}

	a := byRel["Artist1/a.flac"]
	assert.Equal(t, domain.FormatFLAC, a.Format)
	assert.Equal(t, "Artist1", a.Artist)
	assert.Equal(t, int64(len("flac-a")), a.SizeBytes)

	b := byRel["Artist1/b.m4a"]
	assert.Equal(t, domain.FormatM4A, b.Format)

	loose := byRel["loose.flac"]
	assert.Equal(t, UnknownArtist, loose.Artist)
}

func TestScanUppercaseExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Artist1/SHOUTY.FLAC", "flac")
	writeFile(t, root, "Artist1/Mixed.M4a", "m4a")
	scanner := NewScanner(testLogger(), 1, nil)

	tracks, err := scanner.Scan(context.Background(), root)

	require.NoError(t, err)
	assert.Len(t, tracks, 2)
}

func TestScanMissingRoot(t *testing.T) {
	scanner := NewScanner(testLogger(), 1, nil)

	tracks, err := scanner.Scan(context.Background(), filepath.Join(t.TempDir(), "does-not-exist"))

	assert.ErrorIs(t, err, ErrRootNotFound)
	assert.Nil(t, tracks)
}

func TestScanRootIsAFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "file.flac", "flac")
	scanner := NewScanner(testLogger(), 1, nil)

	_, err := scanner.Scan(context.Background(), filepath.Join(root, "file.flac"))

	assert.ErrorIs(t, err, ErrRootNotFound)
}

func TestScanUnreadableRoot(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses permission checks")
	}

	root := buildTestLibrary(t)
	require.NoError(t, os.Chmod(root, 0000))
	t.Cleanup(func() { os.Chmod(root, 0755) })
	scanner := NewScanner(testLogger(), 1, nil)

	tracks, err := scanner.Scan(context.Background(), root)

	assert.ErrorIs(t, err, ErrRootNotFound)
	assert.Nil(t, tracks)
}

func TestScanSkipsUnreadableSubdirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses permission checks")
	}

	root := t.TempDir()
	writeFile(t, root, "Artist1/a.flac", "flac-a")
	writeFile(t, root, "Locked/hidden.flac", "flac-hidden")
	lockedDir := filepath.Join(root, "Locked")
	require.NoError(t, os.Chmod(lockedDir, 0000))
	t.Cleanup(func() { os.Chmod(lockedDir, 0755) })
	scanner := NewScanner(testLogger(), 1, nil)

	tracks, err := scanner.Scan(context.Background(), root)

	// The unreadable subdirectory is skipped, the rest of the scan survives.
	require.NoError(t, err)
	assert.Equal(t, []string{"Artist1/a.flac"}, relPaths(tracks))
}

func TestScanCancelledContext(t *testing.T) {
	root := buildTestLibrary(t)
	scanner := NewScanner(testLogger(), 1, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := scanner.Scan(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanIsReadOnly(t *testing.T) {
	root := buildTestLibrary(t)
	before := treeState(t, root)
	scanner := NewScanner(testLogger(), 1, []string{"FLAC_CONVERTED"})

	_, err := scanner.Scan(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, before, treeState(t, root))
}

// treeState captures every path and file size under root.
func treeState(t *testing.T, root string) map[string]int64 {
	t.Helper()
	state := make(map[string]int64)
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			state[path] = -1
		} else {
			state[path] = info.Size()
		}
		return nil
	})
	require.NoError(t, err)
	return state
}
