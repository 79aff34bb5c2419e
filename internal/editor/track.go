package editor

import (
	"math"
	"sort"
	"time"
)

// DefaultSampleRate is the target keyframe sampling rate during continuous
// recording, in samples per second. The minimum spacing between stored
// keyframes is its reciprocal.
const DefaultSampleRate = 30.0

// Keyframe is a timestamped snapshot of the selection rectangle, used as an
// interpolation and export anchor. Keyframes are immutable once recorded;
// re-recording at the same timestamp overwrites.
type Keyframe struct {
	Timestamp  float64       `json:"timestamp" yaml:"timestamp"`
	Selection  SelectionRect `json:"selection" yaml:"selection"`
	RecordedAt time.Time     `json:"recordedAt" yaml:"recordedAt"`
}

// TrackStats summarizes a track for diagnostics.
type TrackStats struct {
	Count          int     `json:"count"`
	FirstTimestamp float64 `json:"first_timestamp"`
	LastTimestamp  float64 `json:"last_timestamp"`
	MeanInterval   float64 `json:"mean_interval"`
}

// Track is an ordered, timestamp-keyed record of selection snapshots. It owns
// its keyframes exclusively; callers always receive copies. Out-of-bounds
// timestamps and wrong-state record calls are silent no-ops: recording is a
// best-effort, high-frequency operation where failing loudly would be
// disruptive backpressure against normal input.
type Track struct {
	keyframes   map[float64]Keyframe
	recording   bool
	duration    float64
	lastTime    float64
	minInterval float64

	// Optional event hooks, called synchronously.
	OnRecordingStarted func()
	OnRecordingStopped func(count int, duration float64)
	OnKeyframeRecorded func(Keyframe)
}

// NewTrack creates an empty track sampling at DefaultSampleRate.
func NewTrack() *Track {
	return &Track{
		keyframes:   make(map[float64]Keyframe),
		minInterval: 1.0 / DefaultSampleRate,
	}
}

// StartRecording clears the track and begins a recording session bounded by
// videoDuration. Returns ErrRecordingActive if one is already in progress.
func (t *Track) StartRecording(videoDuration float64) error {
	if t.recording {
		return ErrRecordingActive
	}
	t.keyframes = make(map[float64]Keyframe)
	t.lastTime = 0
	t.duration = videoDuration
	t.recording = true
	if t.OnRecordingStarted != nil {
		t.OnRecordingStarted()
	}
	return nil
}

// StopRecording ends the recording session. No-op when not recording.
func (t *Track) StopRecording() {
	if !t.recording {
		return
	}
	t.recording = false
	if t.OnRecordingStopped != nil {
		t.OnRecordingStopped(len(t.keyframes), t.duration)
	}
}

// Recording reports whether a recording session is active.
func (t *Track) Recording() bool { return t.recording }

// Record stores a selection snapshot at the given timestamp. No-op unless
// recording; timestamps outside [0, duration] are dropped. Samples closer
// than the minimum interval to the last stored keyframe are dropped to bound
// memory growth during continuous recording.
func (t *Track) Record(timestamp float64, selection SelectionRect) {
	if !t.recording {
		return
	}
	if timestamp < 0 || timestamp > t.duration {
		return
	}
	if timestamp-t.lastTime < t.minInterval {
		if _, exists := t.keyframes[t.lastTime]; exists {
			return
		}
	}
	kf := Keyframe{
		Timestamp:  timestamp,
		Selection:  selection,
		RecordedAt: time.Now(),
	}
	t.keyframes[timestamp] = kf
	t.lastTime = timestamp
	if t.OnKeyframeRecorded != nil {
		t.OnKeyframeRecorded(kf)
	}
}

// Interpolate reconstructs the selection at an arbitrary timestamp. Returns
// nil when the track is empty. Exact hits return the keyframe's selection
// unchanged; timestamps outside the track's ends return the nearest boundary
// keyframe (no extrapolation). Between keyframes each numeric field is
// linearly interpolated; when smoothing is on, the progress value is passed
// through an ease-in-out curve first (the field set is unaffected).
func (t *Track) Interpolate(timestamp float64, smoothing bool) *SelectionRect {
	if len(t.keyframes) == 0 {
		return nil
	}

	times := t.TimestampsSorted()

	beforeIdx, afterIdx := -1, -1
	for i, ts := range times {
		if ts <= timestamp {
			beforeIdx = i
		}
		if ts >= timestamp {
			afterIdx = i
			break
		}
	}

	switch {
	case beforeIdx == -1:
		sel := t.keyframes[times[0]].Selection
		return &sel
	case afterIdx == -1:
		sel := t.keyframes[times[len(times)-1]].Selection
		return &sel
	case beforeIdx == afterIdx:
		sel := t.keyframes[times[beforeIdx]].Selection
		return &sel
	}

	before := t.keyframes[times[beforeIdx]]
	after := t.keyframes[times[afterIdx]]

	progress := (timestamp - before.Timestamp) / (after.Timestamp - before.Timestamp)
	if smoothing {
		progress = easeInOut(progress)
	}

	sel := SelectionRect{
		X:      lerp(before.Selection.X, after.Selection.X, progress),
		Y:      lerp(before.Selection.Y, after.Selection.Y, progress),
		Width:  lerp(before.Selection.Width, after.Selection.Width, progress),
		Height: lerp(before.Selection.Height, after.Selection.Height, progress),
		Zoom:   lerp(before.Selection.Zoom, after.Selection.Zoom, progress),
	}
	return &sel
}

// ExportRange returns keyframes with start <= timestamp <= end, ascending.
func (t *Track) ExportRange(start, end float64) []Keyframe {
	var out []Keyframe
	for _, ts := range t.TimestampsSorted() {
		if ts >= start && ts <= end {
			out = append(out, t.keyframes[ts])
		}
	}
	return out
}

// Delete removes the keyframe at the exact timestamp. Silent if absent.
func (t *Track) Delete(timestamp float64) {
	delete(t.keyframes, timestamp)
}

// Clear removes all keyframes.
func (t *Track) Clear() {
	t.keyframes = make(map[float64]Keyframe)
	t.lastTime = 0
}

// Len returns the number of stored keyframes.
func (t *Track) Len() int { return len(t.keyframes) }

// Duration returns the video duration the track was recorded against.
func (t *Track) Duration() float64 { return t.duration }

// SetDuration sets the bound used for timestamp validation outside a
// recording session (e.g. after an import).
func (t *Track) SetDuration(d float64) { t.duration = d }

// TimestampsSorted returns all keyframe timestamps in ascending order.
func (t *Track) TimestampsSorted() []float64 {
	times := make([]float64, 0, len(t.keyframes))
	for ts := range t.keyframes {
		times = append(times, ts)
	}
	sort.Float64s(times)
	return times
}

// Keyframes returns copies of all keyframes in ascending timestamp order.
func (t *Track) Keyframes() []Keyframe {
	times := t.TimestampsSorted()
	out := make([]Keyframe, 0, len(times))
	for _, ts := range times {
		out = append(out, t.keyframes[ts])
	}
	return out
}

// Stats summarizes the track: count, first/last timestamp, and the mean
// interval between consecutive keyframes.
func (t *Track) Stats() TrackStats {
	times := t.TimestampsSorted()
	stats := TrackStats{Count: len(times)}
	if len(times) == 0 {
		return stats
	}
	stats.FirstTimestamp = times[0]
	stats.LastTimestamp = times[len(times)-1]
	if len(times) > 1 {
		stats.MeanInterval = (stats.LastTimestamp - stats.FirstTimestamp) / float64(len(times)-1)
	}
	return stats
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// easeInOut is a quadratic ease-in-out curve over [0,1].
func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}
