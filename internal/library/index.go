package library

import (
	"sort"
	"strings"

	"mp3ify/internal/domain"
)

// Index maps artist names to their tracks. Built once per run and never
// mutated afterwards.
type Index struct {
	root     string
	tracks   []domain.TrackFile
	byArtist map[string][]domain.TrackFile // keyed by lowercased artist name
	names    map[string]string             // lowercased -> first-seen spelling
}

// ArtistEntry summarizes one artist for listings.
type ArtistEntry struct {
	Name       string
	TrackCount int
	TotalBytes int64
}

// BuildIndex groups the scanned tracks by artist. The input is assumed to be
// sorted by relative path (the scanner guarantees this) and grouping
// preserves that order.
func BuildIndex(root string, tracks []domain.TrackFile) *Index {
	idx := &Index{
		root:     root,
		tracks:   tracks,
		byArtist: make(map[string][]domain.TrackFile),
		names:    make(map[string]string),
	}
	for _, t := range tracks {
		key := strings.ToLower(t.Artist)
		if _, seen := idx.names[key]; !seen {
			idx.names[key] = t.Artist
		}
		idx.byArtist[key] = append(idx.byArtist[key], t)
	}
	return idx
}

// Root returns the library root the index was built for.
func (i *Index) Root() string { return i.root }

// Tracks returns all indexed tracks in relative-path order.
func (i *Index) Tracks() []domain.TrackFile { return i.tracks }

// Artists lists every artist with track count and total size, sorted by name.
func (i *Index) Artists() []ArtistEntry {
	entries := make([]ArtistEntry, 0, len(i.byArtist))
	for key, tracks := range i.byArtist {
		entry := ArtistEntry{Name: i.names[key], TrackCount: len(tracks)}
		for _, t := range tracks {
			entry.TotalBytes += t.SizeBytes
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(a, b int) bool {
		return strings.ToLower(entries[a].Name) < strings.ToLower(entries[b].Name)
	})
	return entries
}

// Select returns the tracks to convert for the given artist filter, in the
// same relative-path order as the full index. An empty filter selects every
// track. Matching is case-insensitive and exact; a filter name that matches
// nothing simply contributes zero tracks.
func (i *Index) Select(artists []string) []domain.TrackFile {
	if len(artists) == 0 {
		// Copy so callers cannot mutate the index's backing array.
		return append([]domain.TrackFile(nil), i.tracks...)
	}

	wanted := make(map[string]bool, len(artists))
	for _, a := range artists {
		wanted[strings.ToLower(strings.TrimSpace(a))] = true
	}

	var selected []domain.TrackFile
	for _, t := range i.tracks {
		if wanted[strings.ToLower(t.Artist)] {
			selected = append(selected, t)
		}
	}
	return selected
}
