package domain

import "strings"

// Format identifies a convertible source audio format.
type Format string

const (
	FormatFLAC Format = "flac"
	FormatM4A  Format = "m4a"
)

// FormatForExtension maps a file extension (with or without the leading dot,
// any case) to a source format. The boolean is false for extensions that are
// not convertible.
func FormatForExtension(ext string) (Format, bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "flac":
		return FormatFLAC, true
	case "m4a":
		return FormatM4A, true
	default:
		return "", false
	}
}

// TrackFile represents a single convertible audio file discovered during a
// library scan. It is immutable after discovery.
type TrackFile struct {
	Path      string `json:"path"`     // absolute path
	RelPath   string `json:"rel_path"` // path relative to the library root, slash-separated
	Artist    string `json:"artist"`
	Format    Format `json:"format"`
	SizeBytes int64  `json:"size_bytes"`
}

// Conversion statuses.
const (
	StatusConverted = "converted"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
	StatusPlanned   = "planned" // dry-run only
)

// ConversionResult records the outcome of one track conversion.
type ConversionResult struct {
	Track      TrackFile `json:"track"`
	Status     string    `json:"status"`
	OutputPath string    `json:"output_path,omitempty"`
	// OutputBytes is the size of the produced file, or the projected size in
	// a dry run. Zero for failed and skipped tracks.
	OutputBytes int64  `json:"output_bytes,omitempty"`
	Error       string `json:"error,omitempty"`
}

// RunSummary aggregates the results of a conversion run.
type RunSummary struct {
	RunID          string `json:"run_id"`
	DryRun         bool   `json:"dry_run"`
	Converted      int    `json:"converted"`
	Failed         int    `json:"failed"`
	Skipped        int    `json:"skipped"`
	OriginalBytes  int64  `json:"original_bytes"`
	ConvertedBytes int64  `json:"converted_bytes"`
}

// BytesSaved returns the difference between original and converted sizes.
// Negative values are possible when the MP3 ends up larger than the source.
func (s RunSummary) BytesSaved() int64 {
	return s.OriginalBytes - s.ConvertedBytes
}

// Add folds a single result into the summary. Failed tracks count their
// original size but contribute no converted bytes; skipped tracks count
// nothing.
func (s *RunSummary) Add(r ConversionResult) {
	switch r.Status {
	case StatusConverted, StatusPlanned:
		s.Converted++
		s.OriginalBytes += r.Track.SizeBytes
		s.ConvertedBytes += r.OutputBytes
	case StatusFailed:
		s.Failed++
		s.OriginalBytes += r.Track.SizeBytes
	case StatusSkipped:
		s.Skipped++
	}
}
