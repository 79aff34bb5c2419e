package editor

// TrimRange is the [start, end) sub-interval of the source video retained for
// export. Handles clamp to [0, duration] and reject values that would invert
// the range; out-of-bounds input is normal pointer noise, never an error.
type TrimRange struct {
	start    float64
	end      float64
	duration float64
}

// NewTrimRange creates a range covering the full video duration.
func NewTrimRange(duration float64) *TrimRange {
	if duration < 0 {
		duration = 0
	}
	return &TrimRange{start: 0, end: duration, duration: duration}
}

// SetStart moves the start handle. The value is clamped to [0, duration];
// a value at or past the end handle is rejected (no-op).
func (r *TrimRange) SetStart(t float64) {
	t = clampFloat(t, 0, r.duration)
	if t >= r.end {
		return
	}
	r.start = t
}

// SetEnd moves the end handle. The value is clamped to [0, duration];
// a value at or before the start handle is rejected (no-op).
func (r *TrimRange) SetEnd(t float64) {
	t = clampFloat(t, 0, r.duration)
	if t <= r.start {
		return
	}
	r.end = t
}

// Reset restores the range to the full duration.
func (r *TrimRange) Reset(duration float64) {
	if duration < 0 {
		duration = 0
	}
	r.start = 0
	r.end = duration
	r.duration = duration
}

// Start returns the trim start in seconds.
func (r *TrimRange) Start() float64 { return r.start }

// End returns the trim end in seconds.
func (r *TrimRange) End() float64 { return r.end }

// Duration returns the trimmed duration (end - start).
func (r *TrimRange) Duration() float64 { return r.end - r.start }

// Contains reports whether t falls within the trimmed window.
func (r *TrimRange) Contains(t float64) bool {
	return t >= r.start && t <= r.end
}

// Relative shifts a source-video timestamp onto the trim-relative timeline.
func (r *TrimRange) Relative(t float64) float64 {
	return t - r.start
}

// Clamp pulls a timestamp into the trimmed window, used when preview
// playback loops within the trim.
func (r *TrimRange) Clamp(t float64) float64 {
	return clampFloat(t, r.start, r.end)
}
