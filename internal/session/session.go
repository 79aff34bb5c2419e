// Package session holds the live editing sessions the browser extension
// drives over HTTP. A session wires one source video to an editor core
// (selection, track, trim, recorder) and serializes access to it: handlers
// run on echo's goroutines, and every editor operation goes through the
// session mutex.
package session

import (
	"sync"
	"time"

	"thirdcoast.systems/clipstudio/internal/editor"
	"thirdcoast.systems/clipstudio/pkg/utils/geometry"
)

// Session is one open clip editing session.
type Session struct {
	ID         string        `json:"id"`
	SourcePath string        `json:"source_path"`
	Video      geometry.Size `json:"video"`
	Duration   float64       `json:"duration"`
	FPS        float64       `json:"fps"`
	CreatedAt  time.Time     `json:"created_at"`

	mu         sync.Mutex
	lastActive time.Time

	selection *editor.Selection
	track     *editor.Track
	trim      *editor.TrimRange
	recorder  *editor.Recorder
}

func newSession(id, sourcePath string, video geometry.Size, duration, fps float64, canvas geometry.Size) *Session {
	selection := editor.NewSelection(canvas)
	track := editor.NewTrack()
	trim := editor.NewTrimRange(duration)

	return &Session{
		ID:         id,
		SourcePath: sourcePath,
		Video:      video,
		Duration:   duration,
		FPS:        fps,
		CreatedAt:  time.Now().UTC(),
		lastActive: time.Now().UTC(),
		selection:  selection,
		track:      track,
		trim:       trim,
		recorder:   editor.NewRecorder(selection, track, trim, duration),
	}
}

func (s *Session) touch() {
	s.lastActive = time.Now().UTC()
}

// LastActive returns the time of the most recent operation.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// SetObserver registers the selection-changed observer, normally the SSE
// bridge pushing state back to the extension overlay.
func (s *Session) SetObserver(fn func(editor.SelectionRect)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.SetObserver(fn)
}

// SetCanvasSize updates the canvas geometry when the player viewport resizes.
func (s *Session) SetCanvasSize(canvas geometry.Size) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.selection.SetCanvasSize(canvas)
}

// Selection returns a snapshot of the current selection rect.
func (s *Session) Selection() editor.SelectionRect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Snapshot()
}

// BeginDrag, MoveDrag and EndInteraction forward pointer events into the
// selection state machine.
func (s *Session) BeginDrag(p editor.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.selection.BeginDrag(p)
}

func (s *Session) MoveDrag(p editor.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.selection.UpdateDrag(p)
}

// HandleAt hit-tests the corner resize handles.
func (s *Session) HandleAt(p editor.Point) editor.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.HandleAt(p)
}

func (s *Session) BeginResize(h editor.Handle, p editor.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.selection.BeginResize(h, p)
}

func (s *Session) MoveResize(p editor.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.selection.UpdateResize(p)
}

func (s *Session) Zoom(delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.selection.ApplyZoom(delta)
}

func (s *Session) EndInteraction() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.selection.EndInteraction()
}

// RestoreSelection replaces the selection rect, used on extension re-attach.
func (s *Session) RestoreSelection(rect editor.SelectionRect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.selection.Restore(rect)
}

// Playback and recording.

func (s *Session) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.recorder.Play()
}

func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.recorder.Pause()
}

func (s *Session) Seek(t float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.recorder.Seek(t)
}

// Tick advances the playhead on a player time-update and returns the
// (possibly looped) current time.
func (s *Session) Tick(t float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.recorder.Tick(t)
}

func (s *Session) StartRecording() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.recorder.StartRecording()
}

func (s *Session) StopRecording() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.recorder.StopRecording()
}

// PlaybackState is the flat status view the extension polls.
type PlaybackState struct {
	Playing     bool    `json:"playing"`
	Recording   bool    `json:"recording"`
	CurrentTime float64 `json:"current_time"`
	Keyframes   int     `json:"keyframes"`
	TrimStart   float64 `json:"trim_start"`
	TrimEnd     float64 `json:"trim_end"`
}

func (s *Session) Playback() PlaybackState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return PlaybackState{
		Playing:     s.recorder.IsPlaying(),
		Recording:   s.recorder.IsRecording(),
		CurrentTime: s.recorder.CurrentTime(),
		Keyframes:   s.track.Len(),
		TrimStart:   s.trim.Start(),
		TrimEnd:     s.trim.End(),
	}
}

// Keyframe track access.

func (s *Session) Keyframes() []editor.Keyframe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.track.Keyframes()
}

func (s *Session) TrackStats() editor.TrackStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.track.Stats()
}

func (s *Session) DeleteKeyframe(timestamp float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.track.Delete(timestamp)
}

func (s *Session) ClearTrack() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.track.Clear()
}

// Interpolate reconstructs the selection at a timestamp for live preview.
func (s *Session) Interpolate(timestamp float64, smoothing bool) *editor.SelectionRect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.track.Interpolate(timestamp, smoothing)
}

// Trim handles.

func (s *Session) SetTrimStart(t float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.trim.SetStart(t)
}

func (s *Session) SetTrimEnd(t float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.trim.SetEnd(t)
}

func (s *Session) ResetTrim() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.trim.Reset(s.Duration)
}

// Export and persistence.

// BuildExportSpec derives the render instruction set from the current
// session state. Returns editor.ErrNoKeyframes when the trim window holds
// no keyframes.
func (s *Session) BuildExportSpec() (*editor.ExportSpec, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return editor.BuildExportSpec(s.trim, s.track, s.selection.CanvasSize(), s.Video)
}

// RecordingFile snapshots the track and trim into the wire format.
func (s *Session) RecordingFile() editor.RecordingFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return editor.BuildRecordingFile(s.track, s.trim, s.selection.CanvasSize())
}

// ImportRecording replaces the track contents from a recording file and
// returns the number of keyframes inserted.
func (s *Session) ImportRecording(f editor.RecordingFile) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.track.Import(f)
}
