package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"mp3ify/internal/domain"
)

// ErrRootNotFound is returned when the library root does not exist or is not
// a directory. It aborts a run before any conversion is attempted.
var ErrRootNotFound = errors.New("library root not found")

// Scanner performs the read-only filesystem scan that discovers TrackFiles.
type Scanner struct {
	logger      *slog.Logger
	artistDepth int
	skipDirs    map[string]bool
}

// NewScanner creates a Scanner. skipDirs names top-level directories under
// the root that are excluded from the scan (the archive mirrors).
func NewScanner(logger *slog.Logger, artistDepth int, skipDirs []string) *Scanner {
	skip := make(map[string]bool, len(skipDirs))
	for _, d := range skipDirs {
		skip[d] = true
	}
	return &Scanner{
		logger:      logger,
		artistDepth: artistDepth,
		skipDirs:    skip,
	}
}

// Scan walks the tree under root and returns every convertible track, sorted
// lexicographically by relative path so re-runs and dry-run previews see the
// same sequence. Unreadable entries are logged and skipped; a missing root is
// fatal.
func (s *Scanner) Scan(ctx context.Context, root string) ([]domain.TrackFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return nil, fmt.Errorf("unable to access library root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrRootNotFound, root)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve library root: %w", err)
	}

	var tracks []domain.TrackFile

	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err != nil {
			// A root that cannot be read aborts the run; anything below it
			// is warned about and skipped.
			if path == absRoot {
				return fmt.Errorf("%w: %s is not readable: %v", ErrRootNotFound, root, err)
			}
			s.logger.Warn("Skipping unreadable entry", "path", path, "error", err)
			return nil
		}

		if d.IsDir() {
			if path != absRoot && s.skipDirs[d.Name()] {
				s.logger.Debug("Skipping archive directory", "path", path)
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		format, ok := domain.FormatForExtension(filepath.Ext(d.Name()))
		if !ok {
			return nil
		}

		fileInfo, err := d.Info()
		if err != nil {
			s.logger.Warn("Skipping unreadable entry", "path", path, "error", err)
			return nil
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			s.logger.Warn("Skipping entry outside root", "path", path, "error", err)
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		tracks = append(tracks, domain.TrackFile{
			Path:      path,
			RelPath:   relPath,
			Artist:    ArtistForPath(relPath, s.artistDepth),
			Format:    format,
			SizeBytes: fileInfo.Size(),
		})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(tracks, func(i, j int) bool {
		return tracks[i].RelPath < tracks[j].RelPath
	})

	s.logger.Info("Library scan complete", "root", absRoot, "tracks", len(tracks))
	return tracks, nil
}
