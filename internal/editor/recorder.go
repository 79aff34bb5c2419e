package editor

// Recorder coordinates playback and recording over two independent boolean
// axes (isPlaying, isRecording) with one rule: recording cannot outlive
// playback, so pausing while recording auto-stops the recording session.
// Pausing or seeking does NOT clear recorded keyframes; only an explicit
// stop/clear does.
type Recorder struct {
	selection *Selection
	track     *Track
	trim      *TrimRange
	duration  float64

	playing     bool
	recording   bool
	currentTime float64
}

// NewRecorder wires the orchestrator to its collaborators. duration is the
// source video duration in seconds.
func NewRecorder(selection *Selection, track *Track, trim *TrimRange, duration float64) *Recorder {
	return &Recorder{
		selection: selection,
		track:     track,
		trim:      trim,
		duration:  duration,
	}
}

// Play starts playback.
func (r *Recorder) Play() {
	r.playing = true
}

// Pause stops playback. Recording cannot outlive playback, so an active
// recording session is stopped too (its keyframes are kept).
func (r *Recorder) Pause() {
	r.playing = false
	if r.recording {
		r.recording = false
		r.track.StopRecording()
	}
}

// Seek moves the playhead, clamped into the trim window so preview playback
// stays inside it. Seeking during recording keeps the recorded keyframes.
func (r *Recorder) Seek(t float64) {
	r.currentTime = r.trim.Clamp(clampFloat(t, 0, r.duration))
}

// StartRecording arms a new recording session (clearing prior keyframes).
// Returns ErrRecordingActive if one is already in progress.
func (r *Recorder) StartRecording() error {
	if err := r.track.StartRecording(r.duration); err != nil {
		return err
	}
	r.recording = true
	return nil
}

// StopRecording explicitly ends the recording session, keeping the track.
func (r *Recorder) StopRecording() {
	r.recording = false
	r.track.StopRecording()
}

// Tick advances the playhead to t on a playback time-update. While recording,
// the current selection snapshot is sampled into the track. When playback
// reaches the end of the trim window the playhead loops back to the trim
// start. Returns the (possibly looped) current time.
func (r *Recorder) Tick(t float64) float64 {
	r.currentTime = clampFloat(t, 0, r.duration)

	if r.playing && r.recording {
		r.track.Record(r.currentTime, r.selection.Snapshot())
	}

	if r.playing && r.currentTime >= r.trim.End() {
		r.currentTime = r.trim.Start()
	}

	return r.currentTime
}

// IsPlaying reports the playback axis.
func (r *Recorder) IsPlaying() bool { return r.playing }

// IsRecording reports the recording axis.
func (r *Recorder) IsRecording() bool { return r.recording }

// CurrentTime returns the playhead position in seconds.
func (r *Recorder) CurrentTime() float64 { return r.currentTime }
