package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatForExtension(t *testing.T) {
	testCases := []struct {
		name     string
		ext      string
		expected Format
		ok       bool
	}{
		{name: "flac with dot", ext: ".flac", expected: FormatFLAC, ok: true},
		{name: "flac without dot", ext: "flac", expected: FormatFLAC, ok: true},
		{name: "uppercase flac", ext: ".FLAC", expected: FormatFLAC, ok: true},
		{name: "m4a", ext: ".m4a", expected: FormatM4A, ok: true},
		{name: "mixed case m4a", ext: ".M4a", expected: FormatM4A, ok: true},
		{name: "mp3 is not a source format", ext: ".mp3", ok: false},
		{name: "unrelated extension", ext: ".jpg", ok: false},
		{name: "empty", ext: "", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			format, ok := FormatForExtension(tc.ext)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, format)
			}
		})
	}
}

func TestRunSummaryAdd(t *testing.T) {
	var summary RunSummary

	summary.Add(ConversionResult{
		Track:       TrackFile{SizeBytes: 1000},
		Status:      StatusConverted,
		OutputBytes: 400,
	})
	summary.Add(ConversionResult{
		Track:  TrackFile{SizeBytes: 500},
		Status: StatusFailed,
		Error:  "ffmpeg exited 1",
	})
	summary.Add(ConversionResult{
		Track:  TrackFile{SizeBytes: 300},
		Status: StatusSkipped,
	})

	assert.Equal(t, 1, summary.Converted)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, int64(1500), summary.OriginalBytes)
	assert.Equal(t, int64(400), summary.ConvertedBytes)
	assert.Equal(t, int64(1100), summary.BytesSaved())
}

func TestRunSummaryAddPlanned(t *testing.T) {
	var summary RunSummary

	summary.Add(ConversionResult{
		Track:       TrackFile{SizeBytes: 2000},
		Status:      StatusPlanned,
		OutputBytes: 800,
	})

	assert.Equal(t, 1, summary.Converted)
	assert.Equal(t, int64(2000), summary.OriginalBytes)
	assert.Equal(t, int64(800), summary.ConvertedBytes)
}
