package library

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mp3ify/internal/domain"
)

func testTracks() []domain.TrackFile {
	return []domain.TrackFile{
		{RelPath: "Artist1/a.flac", Artist: "Artist1", Format: domain.FormatFLAC, SizeBytes: 100},
		{RelPath: "Artist1/b.m4a", Artist: "Artist1", Format: domain.FormatM4A, SizeBytes: 200},
		{RelPath: "Artist2/c.flac", Artist: "Artist2", Format: domain.FormatFLAC, SizeBytes: 300},
	}
}

func TestSelectAllWhenFilterIsEmpty(t *testing.T) {
	idx := BuildIndex("/music", testTracks())

	selected := idx.Select(nil)

	assert.Equal(t, testTracks(), selected)
}

func TestSelectByArtist(t *testing.T) {
	idx := BuildIndex("/music", testTracks())

	selected := idx.Select([]string{"Artist1"})

	assert.Equal(t, []string{"Artist1/a.flac", "Artist1/b.m4a"}, relPaths(selected))
}

func TestSelectIsCaseInsensitive(t *testing.T) {
	idx := BuildIndex("/music", testTracks())

	selected := idx.Select([]string{"aRtIsT2"})

	assert.Equal(t, []string{"Artist2/c.flac"}, relPaths(selected))
}

func TestSelectExactMatchOnly(t *testing.T) {
	idx := BuildIndex("/music", testTracks())

	// Prefixes and substrings must not match.
	assert.Empty(t, idx.Select([]string{"Artist"}))
	assert.Empty(t, idx.Select([]string{"rtist1"}))
}

func TestSelectUnknownArtistYieldsZeroTracks(t *testing.T) {
	idx := BuildIndex("/music", testTracks())

	selected := idx.Select([]string{"Nobody"})

	assert.Empty(t, selected)
}

func TestSelectIsSubsetOfFullIndex(t *testing.T) {
	idx := BuildIndex("/music", testTracks())
	all := relPaths(idx.Select(nil))

	selected := relPaths(idx.Select([]string{"Artist2", "Artist1"}))

	assert.Subset(t, all, selected)
	// Order follows the index, not the filter.
	assert.Equal(t, all, selected)
}

func TestSelectReturnsCopy(t *testing.T) {
	idx := BuildIndex("/music", testTracks())

	selected := idx.Select(nil)
	selected[0].Artist = "Mutated"

	assert.Equal(t, "Artist1", idx.Tracks()[0].Artist)
}

func TestArtists(t *testing.T) {
	idx := BuildIndex("/music", testTracks())

	entries := idx.Artists()

	assert.Equal(t, []ArtistEntry{
		{Name: "Artist1", TrackCount: 2, TotalBytes: 300},
		{Name: "Artist2", TrackCount: 1, TotalBytes: 300},
	}, entries)
}

func TestArtistsOnEmptyIndex(t *testing.T) {
	idx := BuildIndex("/music", nil)

	assert.Empty(t, idx.Artists())
	assert.Empty(t, idx.Select(nil))
}
