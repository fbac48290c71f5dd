package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mp3ify/internal/archive"
	"mp3ify/internal/audio"
	"mp3ify/internal/converter"
	"mp3ify/internal/progress"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var rootFlag string
	var artists []string
	var dryRun bool
	var useIndex bool
	var noProgress bool

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert library tracks to MP3",
		Long: `Scan the library, select tracks by artist and convert them to MP3 via
ffmpeg. Converted originals are archived according to the configured backend.
With --dry-run the selection and projected sizes are reported without writing
or deleting anything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			root, err := ctx.resolveRoot(rootFlag)
			if err != nil {
				return err
			}

			tracker := progress.NewTracker()
			tracker.AddListener(stageLogListener(logger))

			tracker.SetStage(progress.StageScanning, "Scanning library")
			idx, err := buildIndex(cmd.Context(), cfg, logger, root, useIndex)
			if err != nil {
				tracker.SetError(err)
				return err
			}

			for _, entry := range idx.Artists() {
				logger.Info("Discovered artist", "artist", entry.Name, "tracks", entry.TrackCount)
			}

			selected := idx.Select(artists)
			for _, artist := range artists {
				count := len(idx.Select([]string{artist}))
				logger.Info("Artist selection", "artist", strings.TrimSpace(artist), "tracks", count)
				if count == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No tracks found for artist %q\n", strings.TrimSpace(artist))
				}
			}

			if len(selected) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to convert.")
				return nil
			}

			transcoder, err := audio.NewFFMPEGEngine(logger)
			if err != nil {
				return err
			}

			var archiver archive.Archiver = archive.Noop{}
			if !dryRun {
				archiver, err = archive.New(cmd.Context(), cfg, idx.Root())
				if err != nil {
					return err
				}
				defer archiver.Close()
			}

			conv := converter.New(logger, transcoder, archiver, tracker, converter.Options{
				Bitrate: cfg.Encoding.Bitrate,
				DryRun:  dryRun,
				ShowBar: !noProgress,
			})

			report, err := conv.Run(cmd.Context(), selected)
			if err != nil {
				return err
			}

			report.Render(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVar(&rootFlag, "root", "", "Library root directory")
	cmd.Flags().StringSliceVar(&artists, "artists", nil, "Restrict conversion to these artists (case-insensitive, comma separated)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview the selection without converting")
	cmd.Flags().BoolVar(&useIndex, "use-index", false, "Reuse the index snapshot instead of rescanning")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")

	return cmd
}
