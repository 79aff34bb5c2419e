package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ProbeResult holds the source properties the editor needs: intrinsic frame
// size and rate for coordinate mapping, duration for the trim window, and
// stream presence for rejecting non-video inputs.
type ProbeResult struct {
	Width    int
	Height   int
	FPS      float64
	Duration float64 // seconds
	HasVideo bool
	HasAudio bool
}

// probeFormat and probeStream mirror the ffprobe JSON fields consumed here.
type probeFormat struct {
	Duration string `json:"duration"`
}

type probeStream struct {
	CodecType    string `json:"codec_type"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
}

// Probe inspects a media file with ffprobe.
func Probe(ctx context.Context, path string) (*ProbeResult, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-hide_banner",
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	var out struct {
		Format  probeFormat   `json:"format"`
		Streams []probeStream `json:"streams"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return nil, fmt.Errorf("ffprobe: parse output: %w", err)
	}

	result := &ProbeResult{}
	result.Duration, _ = strconv.ParseFloat(out.Format.Duration, 64)

	for _, stream := range out.Streams {
		switch stream.CodecType {
		case "video":
			if !result.HasVideo {
				result.Width = stream.Width
				result.Height = stream.Height
				result.FPS = frameRate(stream)
			}
			result.HasVideo = true
		case "audio":
			result.HasAudio = true
		}
	}

	return result, nil
}

// frameRate resolves a stream's frame rate from the "num/den" ratio form,
// preferring r_frame_rate and falling back to the stream average.
func frameRate(s probeStream) float64 {
	if fps := parseRatio(s.RFrameRate); fps > 0 {
		return fps
	}
	return parseRatio(s.AvgFrameRate)
}

func parseRatio(ratio string) float64 {
	num, den, found := strings.Cut(ratio, "/")
	if !found {
		f, _ := strconv.ParseFloat(ratio, 64)
		return f
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}
