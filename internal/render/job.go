// Package render owns the export job catalog and the background workers that
// turn an editor export spec into an encoded clip file.
package render

import (
	"errors"
	"time"

	"thirdcoast.systems/clipstudio/internal/editor"
)

// Status represents the current state of an export job.
type Status string

const (
	// StatusQueued indicates the job is waiting for an available worker.
	StatusQueued Status = "queued"
	// StatusProcessing indicates a worker is encoding the clip.
	StatusProcessing Status = "processing"
	// StatusReady indicates the output file is encoded and validated.
	StatusReady Status = "ready"
	// StatusError indicates encoding failed.
	StatusError Status = "error"
	// StatusCanceled indicates the job was canceled before completion.
	StatusCanceled Status = "canceled"
)

// ErrInvalidTransition is returned when an invalid state transition is attempted.
var ErrInvalidTransition = errors.New("invalid state transition")

// validTransitions defines which state transitions are allowed.
var validTransitions = map[Status][]Status{
	StatusQueued:     {StatusProcessing, StatusCanceled},
	StatusProcessing: {StatusReady, StatusError, StatusCanceled},
	StatusReady:      {},
	StatusError:      {},
	StatusCanceled:   {},
}

// CanTransition checks if a transition to the given status is valid.
func (s Status) CanTransition(to Status) bool {
	allowed, ok := validTransitions[s]
	if !ok {
		return false
	}
	for _, next := range allowed {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether the status is final.
func (s Status) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// Job is one export request: the source file, the crop/trim spec derived
// from the editor session, and encoding state.
type Job struct {
	ID         string `json:"id"`
	SessionID  string `json:"session_id"`
	SourcePath string `json:"source_path"`
	OutputPath string `json:"output_path,omitempty"`
	Format     string `json:"format"`
	Quality    string `json:"quality"`

	Spec editor.ExportSpec `json:"spec"`

	Status       Status  `json:"status"`
	Progress     int     `json:"progress"`
	Error        string  `json:"error,omitempty"`
	SizeBytes    int64   `json:"size_bytes"`
	Duration     float64 `json:"duration_seconds"`
	PublishedURL string  `json:"published_url,omitempty"`

	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// Done reports whether the job has reached a terminal state.
func (j *Job) Done() bool {
	return j.Status.Terminal()
}
