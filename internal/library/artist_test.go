package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArtistForPath(t *testing.T) {
	testCases := []struct {
		name     string
		relPath  string
		depth    int
		expected string
	}{
		{
			name:     "artist directory at depth 1",
			relPath:  "Artist1/a.flac",
			depth:    1,
			expected: "Artist1",
		},
		{
			name:     "album subdirectory does not change the artist",
			relPath:  "Artist1/Album/01 - track.flac",
			depth:    1,
			expected: "Artist1",
		},
		{
			name:     "depth 2 names the second level",
			relPath:  "FLAC/Artist2/song.m4a",
			depth:    2,
			expected: "Artist2",
		},
		{
			name:     "file directly under the root",
			relPath:  "loose.flac",
			depth:    1,
			expected: UnknownArtist,
		},
		{
			name:     "file too shallow for depth 2",
			relPath:  "Artist1/a.flac",
			depth:    2,
			expected: UnknownArtist,
		},
		{
			name:     "zero depth never names an artist",
			relPath:  "Artist1/a.flac",
			depth:    0,
			expected: UnknownArtist,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ArtistForPath(tc.relPath, tc.depth))
		})
	}
}
