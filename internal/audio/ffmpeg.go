// Package audio wraps the external ffmpeg and ffprobe binaries. All codec
// work is delegated to them; this package only assembles arguments, runs the
// commands and interprets their exit status.
package audio

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

const defaultBitrate = "320k"

var (
	ErrFileNotFound = fmt.Errorf("file not found")
	ErrFileEmpty    = fmt.Errorf("file is empty")
	ErrInvalidPath  = fmt.Errorf("invalid path")
)

// ffmpegError wraps FFmpeg command errors with additional context
type ffmpegError struct {
	cmd     string
	output  string
	wrapped error
}

func (e *ffmpegError) Error() string {
	return fmt.Sprintf("ffmpeg error: %s\nCommand: %s\nOutput: %s", e.wrapped, e.cmd, e.output)
}

func (e *ffmpegError) Unwrap() error {
	return e.wrapped
}

// newFFmpegError creates a new ffmpegError with truncated command output
func newFFmpegError(cmd *exec.Cmd, output []byte, err error) error {
	cmdStr := cmd.String()
	if len(cmdStr) > 200 {
		cmdStr = cmdStr[:200] + "..."
	}
	out := string(output)
	if len(out) > 2000 {
		out = out[len(out)-2000:]
	}
	return &ffmpegError{
		cmd:     cmdStr,
		output:  out,
		wrapped: err,
	}
}

type ffmpeg struct {
	logger *slog.Logger
}

// NewFFMPEGEngine builds the ffmpeg-backed Transcoder. It fails immediately
// if ffmpeg or ffprobe is not on PATH, so a misconfigured machine is caught
// before any run starts.
func NewFFMPEGEngine(logger *slog.Logger) (*ffmpeg, error) {
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			return nil, fmt.Errorf("required binary %s not found in PATH: %w", bin, err)
		}
	}
	return &ffmpeg{logger: logger}, nil
}

func (f *ffmpeg) validateFile(path string) error {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("unable to access file: %s: %w", path, err)
	}

	if fileInfo.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInvalidPath, path)
	}

	if fileInfo.Size() == 0 {
		return fmt.Errorf("%w: %s", ErrFileEmpty, path)
	}

	return nil
}

// Transcode converts the input to MP3 at the requested bitrate. Success is
// determined solely by ffmpeg's exit status.
func (f *ffmpeg) Transcode(ctx context.Context, params TranscodeParams) error {
	f.logger.Debug("Transcoding file", "input", params.InputPath, "output", params.OutputPath)

	if err := f.validateFile(params.InputPath); err != nil {
		return fmt.Errorf("transcode failed: %w", err)
	}

	bitrate := params.Bitrate
	if bitrate == "" {
		bitrate = defaultBitrate
	}

	outputDir := filepath.Dir(params.OutputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y",
		"-i", params.InputPath,
		"-map", "0:a",
		"-codec:a", "libmp3lame",
		"-b:a", bitrate,
		params.OutputPath,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return newFFmpegError(cmd, output, err)
	}

	return nil
}

// probeFormat mirrors the format section of ffprobe's JSON output.
type probeFormat struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe reads the duration of an audio file via ffprobe.
func (f *ffmpeg) Probe(ctx context.Context, path string) (ProbeInfo, error) {
	if err := f.validateFile(path); err != nil {
		return ProbeInfo{}, fmt.Errorf("probe failed: %w", err)
	}

	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return ProbeInfo{}, ctx.Err()
		}
		return ProbeInfo{}, newFFmpegError(cmd, output, err)
	}

	var parsed probeFormat
	if err := json.Unmarshal(output, &parsed); err != nil {
		return ProbeInfo{}, fmt.Errorf("failed to parse ffprobe output for %s: %w", path, err)
	}

	duration, err := strconv.ParseFloat(parsed.Format.Duration, 64)
	if err != nil {
		return ProbeInfo{}, fmt.Errorf("invalid duration %q for %s: %w", parsed.Format.Duration, path, err)
	}

	return ProbeInfo{DurationSeconds: duration}, nil
}
