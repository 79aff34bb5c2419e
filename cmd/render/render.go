package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"thirdcoast.systems/clipstudio/internal/editor"
	"thirdcoast.systems/clipstudio/internal/render"
	"thirdcoast.systems/clipstudio/pkg/ffmpeg"
	"thirdcoast.systems/clipstudio/pkg/utils/filename"
	"thirdcoast.systems/clipstudio/pkg/utils/geometry"
)

type renderOptions struct {
	In      string
	Source  string
	Out     string
	Format  string
	Quality string
	Filters []ffmpeg.FilterSpec
	Smooth  bool
	Width   int
	Height  int
}

// smoothSampleRate is how densely -smooth resamples the eased interpolation
// into motion steps.
const smoothSampleRate = 10.0

// sourceExtensions are tried in order when resolving a sibling source video.
var sourceExtensions = []string{".mp4", ".mkv", ".webm", ".mov", ".avi"}

func renderFile(ctx context.Context, opts renderOptions) error {
	data, err := os.ReadFile(opts.In)
	if err != nil {
		return fmt.Errorf("read recording file: %w", err)
	}
	file, err := editor.DecodeRecordingFile(data, filepath.Ext(opts.In))
	if err != nil {
		return err
	}

	source := opts.Source
	if source == "" {
		source, err = findSiblingSource(opts.In)
		if err != nil {
			return err
		}
	}

	probe, err := ffmpeg.Probe(ctx, source)
	if err != nil {
		return fmt.Errorf("probe source: %w", err)
	}
	if !probe.HasVideo {
		return fmt.Errorf("source has no video stream: %s", source)
	}
	video := geometry.Size{Width: float64(probe.Width), Height: float64(probe.Height)}

	// Older recording files carry no duration; bound against the source.
	if file.Duration <= 0 {
		file.Duration = probe.Duration
	}

	track := editor.NewTrack()
	if n := track.Import(file); n == 0 {
		return fmt.Errorf("no usable keyframes in %s", opts.In)
	}

	trim := editor.NewTrimRange(file.Duration)
	trim.SetStart(file.StartTime)
	if file.EndTime > 0 {
		trim.SetEnd(file.EndTime)
	}

	canvas := video
	if file.Canvas != nil && file.Canvas.Valid() {
		canvas = *file.Canvas
	}

	if opts.Smooth {
		track = resampleTrack(track, trim)
	}

	spec, err := editor.BuildExportSpec(trim, track, canvas, video)
	if err != nil {
		return err
	}
	spec.Filters = opts.Filters
	steps := render.MotionSteps(spec)

	appearance, err := ffmpeg.CompileFilters(spec.Filters)
	if err != nil {
		return err
	}

	videoPreset, audioPreset, ext := ffmpeg.ExportPresetForFormat(opts.Format, opts.Quality)
	out := resolveOutputPath(opts, ext)
	scratch := out + ".part"

	scriptPath := ""
	if len(steps) > 1 {
		script, err := os.CreateTemp("", "motion-*.cmd")
		if err != nil {
			return fmt.Errorf("create motion script: %w", err)
		}
		scriptPath = script.Name()
		defer os.Remove(scriptPath)
		if _, err := script.WriteString(ffmpeg.MotionScript(steps)); err != nil {
			script.Close()
			return fmt.Errorf("write motion script: %w", err)
		}
		if err := script.Close(); err != nil {
			return err
		}
	}

	ffOpts := []ffmpeg.Option{ffmpeg.SeekToSeconds(spec.TrimStart, spec.TrimEnd)}
	ffOpts = append(ffOpts, ffmpeg.Flatten(videoPreset, audioPreset)...)
	ffOpts = append(ffOpts, ffmpeg.MotionCrop(steps, scriptPath, opts.Width, opts.Height)...)
	ffOpts = append(ffOpts, appearance...)

	slog.Info("rendering",
		"in", opts.In,
		"src", source,
		"out", out,
		"keyframes", len(spec.Keyframes),
		"clip_seconds", spec.TrimmedDuration(),
	)

	cmd := ffmpeg.NewCommand(source, scratch, ffOpts...)
	progressChan := make(chan ffmpeg.Progress, 100)
	proc, err := cmd.StartWithProgress(ctx, progressChan)
	if err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	clipDuration := spec.TrimmedDuration()
	lastPct := -1
	lastUpdate := time.Time{}
	for progress := range progressChan {
		pct := progress.Percent(clipDuration)
		if pct != lastPct && time.Since(lastUpdate) > time.Second {
			lastPct = pct
			lastUpdate = time.Now()
			slog.Info("progress", "in", filepath.Base(opts.In), "pct", pct, "speed", progress.Speed)
		}
	}

	if err := proc.Wait(); err != nil {
		_ = os.Remove(scratch)
		return fmt.Errorf("ffmpeg failed: %w", err)
	}

	check, err := ffmpeg.Probe(ctx, scratch)
	if err != nil {
		_ = os.Remove(scratch)
		return fmt.Errorf("output validation failed (ffprobe): %w", err)
	}
	if check.Duration <= 0 {
		_ = os.Remove(scratch)
		return fmt.Errorf("output validation failed: empty duration")
	}

	if err := os.Rename(scratch, out); err != nil {
		return err
	}

	slog.Info("render complete", "out", out, "seconds", check.Duration)
	return nil
}

// resampleTrack replaces the raw keyframes with the eased interpolation
// sampled at a fixed rate, so the hold-last-value export steps approximate
// the smoothed live preview.
func resampleTrack(track *editor.Track, trim *editor.TrimRange) *editor.Track {
	var kfs []editor.Keyframe
	step := 1.0 / smoothSampleRate
	for t := trim.Start(); t <= trim.End(); t += step {
		sel := track.Interpolate(t, true)
		if sel == nil {
			break
		}
		kfs = append(kfs, editor.Keyframe{Timestamp: t, Selection: *sel})
	}
	if len(kfs) == 0 {
		return track
	}

	out := editor.NewTrack()
	out.Import(editor.RecordingFile{Keyframes: kfs, Duration: track.Duration()})
	return out
}

// findSiblingSource looks for a video file next to the recording file with
// the same base name.
func findSiblingSource(recordingPath string) (string, error) {
	base := strings.TrimSuffix(recordingPath, filepath.Ext(recordingPath))
	for _, ext := range sourceExtensions {
		candidate := base + ext
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no sibling source video for %s (pass -src)", recordingPath)
}

func resolveOutputPath(opts renderOptions, ext string) string {
	base := filename.Sanitize(strings.TrimSuffix(filepath.Base(opts.In), filepath.Ext(opts.In)), 0)
	switch {
	case opts.Out == "":
		return filepath.Join(filepath.Dir(opts.In), base+"-clip"+ext)
	case isDir(opts.Out):
		return filepath.Join(opts.Out, base+ext)
	default:
		return opts.Out
	}
}

func isDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}
