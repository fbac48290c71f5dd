package audio

import "context"

// Transcoder converts a single audio file to MP3 and can probe source files
// for their duration.
type Transcoder interface {
	Transcode(ctx context.Context, params TranscodeParams) error
	Probe(ctx context.Context, path string) (ProbeInfo, error)
}

type TranscodeParams struct {
	InputPath  string
	OutputPath string
	// Bitrate in ffmpeg notation, e.g. "320k".
	Bitrate string
}

// ProbeInfo holds the subset of ffprobe output the converter needs.
type ProbeInfo struct {
	DurationSeconds float64
}
