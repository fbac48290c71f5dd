package main

import (
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newArtistsCommand(ctx *commandContext) *cobra.Command {
	var rootFlag string
	var useIndex bool

	cmd := &cobra.Command{
		Use:   "artists",
		Short: "List artists with convertible tracks",
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

			idx, err := buildIndex(cmd.Context(), cfg, logger, root, useIndex)
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetStyle(table.StyleLight)
			tw.AppendHeader(table.Row{"Artist", "Tracks", "Size"})
			for _, entry := range idx.Artists() {
				tw.AppendRow(table.Row{entry.Name, entry.TrackCount, humanize.Bytes(uint64(entry.TotalBytes))})
			}
			tw.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&rootFlag, "root", "", "Library root directory")
	cmd.Flags().BoolVar(&useIndex, "use-index", false, "Reuse the index snapshot instead of rescanning")

	return cmd
}
