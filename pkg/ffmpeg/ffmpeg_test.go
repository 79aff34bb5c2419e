package ffmpeg

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBasic(t *testing.T) {
	cmd := NewCommand("in.mp4", "out.mkv")
	assert.Equal(t, []string{"-hide_banner", "-y", "-i", "in.mp4", "out.mkv"}, cmd.Build())
}

func TestBuildArgOrder(t *testing.T) {
	cmd := NewCommand("in.mp4", "out.mkv",
		VideoCodec("libx264"),
		Seek(90*time.Second),
		CRF(21),
	)
	args := cmd.Build()

	// -ss must precede -i regardless of option order.
	ssIdx := indexOf(args, "-ss")
	iIdx := indexOf(args, "-i")
	require.NotEqual(t, -1, ssIdx)
	assert.Less(t, ssIdx, iIdx)
	assert.Equal(t, "90.000", args[ssIdx+1])
}

func TestBuildCollectsFilters(t *testing.T) {
	cmd := NewCommand("in.mp4", "out.mkv",
		CropPixels(640, 1138, 100, 50),
		Scale(1080, 1920),
		SetSAR("1"),
	)
	args := cmd.Build()

	vfIdx := indexOf(args, "-vf")
	require.NotEqual(t, -1, vfIdx)
	assert.Equal(t, "crop=640:1138:100:50,scale=1080:1920,setsar=1", args[vfIdx+1])
}

func TestBuildFaststartForMP4(t *testing.T) {
	assert.Contains(t, NewCommand("in.mkv", "out.mp4").Build(), "-movflags")
	assert.NotContains(t, NewCommand("in.mkv", "out.webm").Build(), "-movflags")
}

func TestSeekTo(t *testing.T) {
	args := NewCommand("in.mp4", "out.mp4", SeekTo(2*time.Second, 8*time.Second)).Build()
	ssIdx := indexOf(args, "-ss")
	tIdx := indexOf(args, "-t")
	require.NotEqual(t, -1, ssIdx)
	require.NotEqual(t, -1, tIdx)
	assert.Equal(t, "2.000", args[ssIdx+1])
	assert.Equal(t, "6.000", args[tIdx+1])

	// Zero-length window emits no -t.
	args = NewCommand("in.mp4", "out.mp4", SeekTo(5*time.Second, 5*time.Second)).Build()
	assert.Equal(t, -1, indexOf(args, "-t"))
}

func TestSeekToSeconds(t *testing.T) {
	args := NewCommand("in.mp4", "out.mp4", SeekToSeconds(1.5, 9.25)).Build()
	ssIdx := indexOf(args, "-ss")
	tIdx := indexOf(args, "-t")
	assert.Equal(t, "1.500", args[ssIdx+1])
	assert.Equal(t, "7.750", args[tIdx+1])
}

func TestExportPresetForFormat(t *testing.T) {
	tests := []struct {
		format, quality string
		wantExt         string
		wantVideoArg    string
		wantAudio       bool
	}{
		{"mp4", "high", ".mp4", "libx264", true},
		{"mp4", "max", ".mp4", "slow", true},
		{"webm", "high", ".webm", "libvpx-vp9", true},
		{"webm", "max", ".webm", "18", true},
		{"gif", "high", ".gif", "-r", false},
		{"unknown", "", ".mp4", "libx264", true},
	}

	for _, tt := range tests {
		t.Run(tt.format+"/"+tt.quality, func(t *testing.T) {
			video, audio, ext := ExportPresetForFormat(tt.format, tt.quality)
			assert.Equal(t, tt.wantExt, ext)

			args := NewCommand("in", "out"+ext, Flatten(video, audio)...).Build()
			assert.Contains(t, args, tt.wantVideoArg)
			if tt.wantAudio {
				assert.Contains(t, args, "-c:a")
			} else {
				assert.NotContains(t, args, "-c:a")
			}
		})
	}
}

func TestErrorMessageTruncatesStderr(t *testing.T) {
	err := &Error{
		Args:   []string{"-i", "in.mp4", "out.mp4"},
		Stderr: "line1\nline2\nline3\nline4\nline5",
		Err:    errors.New("exit status 1"),
	}

	msg := err.Error()
	assert.Contains(t, msg, "line5")
	assert.NotContains(t, msg, "line1", "error message keeps only the tail of stderr")
	assert.Contains(t, err.FullStderr(), "line1")
	assert.Equal(t, "ffmpeg -i in.mp4 out.mp4", err.Command())
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("exit status 1")
	err := &Error{Err: inner}
	assert.ErrorIs(t, err, inner)
}

func TestLogLevelPrecedesSeek(t *testing.T) {
	args := NewCommand("in.mp4", "out.mp4", Seek(time.Second), LogLevel("error")).Build()
	assert.Less(t, indexOf(args, "-loglevel"), indexOf(args, "-ss"))
}

func indexOf(args []string, want string) int {
	for i, a := range args {
		if a == want {
			return i
		}
	}
	return -1
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0.000", formatDuration(0))
	assert.Equal(t, "1.500", formatDuration(1500*time.Millisecond))
	assert.Equal(t, "3661.000", formatDuration(3661*time.Second))
	assert.False(t, strings.Contains(formatDuration(time.Hour), ":"))
}
