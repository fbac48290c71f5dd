package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"mp3ify/config"
	"mp3ify/internal/archive"
	"mp3ify/internal/library"
	"mp3ify/internal/progress"
)

// buildIndex scans the library, or reloads a previously written snapshot when
// useIndex is set.
func buildIndex(ctx context.Context, cfg *config.Config, logger *slog.Logger, root string, useIndex bool) (*library.Index, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve library root: %w", err)
	}

	if useIndex {
		idx, err := library.LoadSnapshot(cfg.Library.IndexFile, absRoot)
		if err != nil {
			return nil, fmt.Errorf("failed to load index (run `mp3ify index` first): %w", err)
		}
		logger.Info("Loaded index snapshot", "path", cfg.Library.IndexFile, "tracks", len(idx.Tracks()))
		return idx, nil
	}

	scanner := library.NewScanner(logger, cfg.Library.ArtistDepth, archive.MirrorDirs())
	tracks, err := scanner.Scan(ctx, absRoot)
	if err != nil {
		return nil, err
	}
	return library.BuildIndex(absRoot, tracks), nil
}

// stageLogListener logs stage transitions; per-file outcomes are logged by
// the converter itself.
func stageLogListener(logger *slog.Logger) func(progress.Event) {
	return func(e progress.Event) {
		if e.FileDetails != nil {
			return
		}
		logger.Info("Stage changed", "stage", string(e.Stage), "message", e.Message)
	}
}
