// Package library implements the music library indexer: a read-only scan of
// a directory tree that classifies convertible audio files and groups them by
// artist inferred from the directory layout.
package library

import "strings"

// UnknownArtist groups tracks that sit too shallow in the tree for the
// configured depth to name an artist directory.
const UnknownArtist = "Unknown Artist"

// ArtistForPath infers the artist name from a track's slash-separated path
// relative to the library root. depth is 1-based: depth 1 names the top-level
// directory under the root, depth 2 the one below it, and so on.
//
// The last path element is the file itself and never names an artist; a track
// with fewer than depth directory levels above it maps to UnknownArtist.
func ArtistForPath(relPath string, depth int) string {
	parts := strings.Split(relPath, "/")
	if depth < 1 || len(parts) <= depth {
		return UnknownArtist
	}
	return parts[depth-1]
}
