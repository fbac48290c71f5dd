package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"mp3ify/internal/domain"
)

// LocalArchiver moves originals into FLAC_CONVERTED/ or M4A_CONVERTED/ under
// the library root, mirroring each track's relative path.
type LocalArchiver struct {
	root string
}

// NewLocalArchiver creates a local archiver rooted at the library root.
func NewLocalArchiver(root string) (*LocalArchiver, error) {
	for _, dir := range MirrorDirs() {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			return nil, fmt.Errorf("failed to create archive directory %s: %w", dir, err)
		}
	}
	return &LocalArchiver{root: root}, nil
}

func (a *LocalArchiver) Archive(_ context.Context, track domain.TrackFile) (string, error) {
	dest := filepath.Join(a.root, mirrorDirFor(track.Format), filepath.FromSlash(track.RelPath))

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory for %s: %w", track.RelPath, err)
	}

	if err := moveFile(track.Path, dest); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", track.Path, err)
	}
	return dest, nil
}

func (a *LocalArchiver) Close() error { return nil }

// moveFile renames src to dest, falling back to copy+remove when the two
// paths are on different filesystems.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer srcFile.Close()

	destFile, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}

	if _, err := io.Copy(destFile, srcFile); err != nil {
		destFile.Close()
		os.Remove(dest)
		return fmt.Errorf("failed to copy %s to %s: %w", src, dest, err)
	}
	if err := destFile.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dest, err)
	}

	return os.Remove(src)
}
