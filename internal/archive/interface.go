// Package archive moves successfully converted originals out of the library,
// either into local mirror directories or to a GCS bucket.
package archive

import (
	"context"

	"mp3ify/internal/domain"
)

// Mirror directories created under the library root by the local backend.
// The scanner excludes them so archived originals are never re-indexed.
const (
	MirrorDirFLAC = "FLAC_CONVERTED"
	MirrorDirM4A  = "M4A_CONVERTED"
)

// MirrorDirs lists the directory names a library scan must skip.
func MirrorDirs() []string {
	return []string{MirrorDirFLAC, MirrorDirM4A}
}

// Archiver stores a converted track's original file and removes it from the
// library. It is never invoked in dry-run mode.
type Archiver interface {
	// Archive moves the original out of the library and returns its new
	// location (a filesystem path or an object name).
	Archive(ctx context.Context, track domain.TrackFile) (string, error)

	Close() error
}

// Noop leaves originals in place, for the "none" backend.
type Noop struct{}

func (Noop) Archive(_ context.Context, track domain.TrackFile) (string, error) {
	return track.Path, nil
}

func (Noop) Close() error { return nil }

func mirrorDirFor(format domain.Format) string {
	if format == domain.FormatM4A {
		return MirrorDirM4A
	}
	return MirrorDirFLAC
}
