package converter

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"mp3ify/internal/domain"
)

// Report holds the per-file results and the aggregate summary of one run.
type Report struct {
	Summary domain.RunSummary
	Results []domain.ConversionResult
}

type artistRow struct {
	name           string
	files          int
	failed         int
	originalBytes  int64
	convertedBytes int64
}

// Render writes the summary table: one row per artist plus a totals footer.
func (r *Report) Render(w io.Writer) {
	rows := map[string]*artistRow{}
	var order []string

	for _, result := range r.Results {
		if result.Status == domain.StatusSkipped {
			continue
		}
		key := strings.ToLower(result.Track.Artist)
		row, ok := rows[key]
		if !ok {
			row = &artistRow{name: result.Track.Artist}
			rows[key] = row
			order = append(order, key)
		}
		row.files++
		row.originalBytes += result.Track.SizeBytes
		if result.Status == domain.StatusFailed {
			row.failed++
		} else {
			row.convertedBytes += result.OutputBytes
		}
	}

	sizeHeader := "MP3"
	if r.Summary.DryRun {
		sizeHeader = "MP3 (projected)"
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Artist", "Files", "Failed", "Original", sizeHeader, "Saved"})

	for _, key := range order {
		row := rows[key]
		tw.AppendRow(table.Row{
			row.name,
			row.files,
			row.failed,
			humanize.Bytes(uint64(row.originalBytes)),
			humanize.Bytes(uint64(row.convertedBytes)),
			signedBytes(row.originalBytes - row.convertedBytes),
		})
	}

	tw.AppendFooter(table.Row{
		"Total",
		r.Summary.Converted + r.Summary.Failed,
		r.Summary.Failed,
		humanize.Bytes(uint64(r.Summary.OriginalBytes)),
		humanize.Bytes(uint64(r.Summary.ConvertedBytes)),
		signedBytes(r.Summary.BytesSaved()),
	})
	tw.Render()

	if r.Summary.Skipped > 0 {
		fmt.Fprintf(w, "%d files skipped (output already exists)\n", r.Summary.Skipped)
	}
}

// signedBytes formats a byte delta, keeping the sign for the odd case where
// an MP3 ends up larger than its source.
func signedBytes(n int64) string {
	if n < 0 {
		return "-" + humanize.Bytes(uint64(-n))
	}
	return humanize.Bytes(uint64(n))
}
