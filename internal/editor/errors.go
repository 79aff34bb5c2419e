package editor

import "errors"

var (
	// ErrRecordingActive is returned when a recording session is started
	// while one is already in progress. This indicates a caller bug, so it
	// is propagated rather than swallowed.
	ErrRecordingActive = errors.New("editor: recording already active")

	// ErrNoKeyframes is returned when an export is requested over a trim
	// window that contains no recorded keyframes.
	ErrNoKeyframes = errors.New("editor: no keyframes in trim range")
)
