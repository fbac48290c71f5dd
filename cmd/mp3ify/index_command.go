package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mp3ify/internal/library"
)

func newIndexCommand(ctx *commandContext) *cobra.Command {
	var rootFlag string
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Scan the library and write an index snapshot",
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

			idx, err := buildIndex(cmd.Context(), cfg, logger, root, false)
			if err != nil {
				return err
			}

			output := cfg.Library.IndexFile
			if outputFlag != "" {
				output = outputFlag
			}

			if err := library.SaveSnapshot(output, idx); err != nil {
				return err
			}

			logger.Info("Index snapshot written", "path", output, "tracks", len(idx.Tracks()))
			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d tracks by %d artists -> %s\n",
				len(idx.Tracks()), len(idx.Artists()), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&rootFlag, "root", "", "Library root directory")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Snapshot destination (default from config)")

	return cmd
}
