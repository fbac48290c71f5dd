// Package converter orchestrates a conversion run: it takes the selected
// tracks in order, drives the transcoder one file at a time, archives the
// originals and accumulates the size accounting for the final report.
package converter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"

	"mp3ify/internal/archive"
	"mp3ify/internal/audio"
	"mp3ify/internal/domain"
	"mp3ify/internal/progress"
)

type Options struct {
	// Bitrate in ffmpeg notation, e.g. "320k".
	Bitrate string

	// DryRun previews the selection and projected sizes without writing or
	// deleting anything.
	DryRun bool

	// ShowBar renders a terminal progress bar during the run.
	ShowBar bool
}

type Converter struct {
	logger     *slog.Logger
	transcoder audio.Transcoder
	archiver   archive.Archiver
	tracker    *progress.Tracker
	opts       Options
}

func New(logger *slog.Logger, transcoder audio.Transcoder, archiver archive.Archiver, tracker *progress.Tracker, opts Options) *Converter {
	return &Converter{
		logger:     logger,
		transcoder: transcoder,
		archiver:   archiver,
		tracker:    tracker,
		opts:       opts,
	}
}

// Run converts the given tracks sequentially, in the order provided. A failed
// track is recorded and the run continues with the next file; only context
// cancellation stops the run early.
func (c *Converter) Run(ctx context.Context, tracks []domain.TrackFile) (*Report, error) {
	bitrateBits, err := parseBitrate(c.opts.Bitrate)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Summary: domain.RunSummary{
			RunID:  uuid.NewString(),
			DryRun: c.opts.DryRun,
		},
	}

	mode := "convert"
	if c.opts.DryRun {
		mode = "dry-run"
	}
	c.logger.Info("Starting run", "runID", report.Summary.RunID, "mode", mode, "tracks", len(tracks))
	c.tracker.SetStage(progress.StageConverting, fmt.Sprintf("Processing %d files", len(tracks)))

	var bar *progressbar.ProgressBar
	if c.opts.ShowBar {
		bar = progressbar.NewOptions(
			len(tracks),
			progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetTheme(progressbar.ThemeASCII),
			progressbar.OptionFullWidth(),
			progressbar.OptionShowCount(),
			progressbar.OptionSetDescription("[cyan]Converting...[reset]"),
		)
	}

	processed := 0
	for i, track := range tracks {
		select {
		case <-ctx.Done():
			c.tracker.SetError(ctx.Err())
			return nil, ctx.Err()
		default:
		}

		c.tracker.UpdateFileProgress(i+1, len(tracks), processed, track.RelPath)

		result := c.processTrack(ctx, track, bitrateBits)
		report.Results = append(report.Results, result)
		report.Summary.Add(result)

		processed++
		if bar != nil {
			bar.Add(1)
		}
	}

	c.tracker.SetStage(progress.StageComplete, "Run complete")
	c.logger.Info("Run complete",
		"runID", report.Summary.RunID,
		"converted", report.Summary.Converted,
		"failed", report.Summary.Failed,
		"skipped", report.Summary.Skipped,
		"originalBytes", report.Summary.OriginalBytes,
		"convertedBytes", report.Summary.ConvertedBytes,
		"bytesSaved", report.Summary.BytesSaved(),
	)
	return report, nil
}

func (c *Converter) processTrack(ctx context.Context, track domain.TrackFile, bitrateBits int64) domain.ConversionResult {
	outputPath := mp3Path(track.Path)

	if _, err := os.Stat(outputPath); err == nil {
		c.logger.Info("Skipping file, output already exists", "path", track.Path, "output", outputPath)
		return domain.ConversionResult{Track: track, Status: domain.StatusSkipped, OutputPath: outputPath}
	}

	if c.opts.DryRun {
		return c.previewTrack(ctx, track, outputPath, bitrateBits)
	}

	params := audio.TranscodeParams{
		InputPath:  track.Path,
		OutputPath: outputPath,
		Bitrate:    c.opts.Bitrate,
	}
	if err := c.transcoder.Transcode(ctx, params); err != nil {
		c.logger.Error("Conversion failed", "path", track.Path, "error", err)
		return domain.ConversionResult{Track: track, Status: domain.StatusFailed, Error: err.Error()}
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		c.logger.Error("Converted file missing", "path", outputPath, "error", err)
		return domain.ConversionResult{Track: track, Status: domain.StatusFailed, Error: err.Error()}
	}

	location, err := c.archiver.Archive(ctx, track)
	if err != nil {
		// The conversion itself succeeded; the original just stayed behind.
		c.logger.Warn("Failed to archive original", "path", track.Path, "error", err)
	} else {
		c.logger.Info("Archived original", "path", track.Path, "location", location)
	}

	c.logger.Info("Converted file", "path", track.Path, "output", outputPath, "bytes", info.Size())
	return domain.ConversionResult{
		Track:       track,
		Status:      domain.StatusConverted,
		OutputPath:  outputPath,
		OutputBytes: info.Size(),
	}
}

// previewTrack records what a real run would do, projecting the output size
// from the probed duration. No file is written or deleted.
func (c *Converter) previewTrack(ctx context.Context, track domain.TrackFile, outputPath string, bitrateBits int64) domain.ConversionResult {
	var projected int64
	info, err := c.transcoder.Probe(ctx, track.Path)
	if err != nil {
		c.logger.Warn("Probe failed, no size projection", "path", track.Path, "error", err)
	} else {
		projected = int64(info.DurationSeconds * float64(bitrateBits) / 8)
	}

	c.logger.Info("[DRY RUN] Would convert file",
		"path", track.Path,
		"output", outputPath,
		"projectedBytes", projected,
	)
	return domain.ConversionResult{
		Track:       track,
		Status:      domain.StatusPlanned,
		OutputPath:  outputPath,
		OutputBytes: projected,
	}
}

// mp3Path replaces the source extension with .mp3, preserving the original
// extension's case-insensitivity.
func mp3Path(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".mp3"
}

// parseBitrate converts ffmpeg bitrate notation ("320k", "128000") to bits
// per second.
func parseBitrate(bitrate string) (int64, error) {
	s := strings.ToLower(strings.TrimSpace(bitrate))
	multiplier := int64(1)
	if strings.HasSuffix(s, "k") {
		multiplier = 1000
		s = strings.TrimSuffix(s, "k")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid bitrate: %s", bitrate)
	}
	return n * multiplier, nil
}
