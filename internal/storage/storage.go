// Package storage manages the on-disk layout of rendered clips (scratch
// space plus the final exports directory) and optional publishing of
// finished files to S3.
package storage

import (
	"context"
	"errors"
)

// ErrS3NotConfigured is returned when publish operations are attempted
// without an S3 target configured.
var ErrS3NotConfigured = errors.New("S3 storage is not configured")

// Publisher delivers a finished export to remote storage and returns the
// public URL. Local-only deployments use a Storage whose Publish returns
// ErrS3NotConfigured, and callers treat that as "skip".
type Publisher interface {
	Publish(ctx context.Context, key, path string) (url string, err error)
}

// Storage is the full file layout contract used by the render workers.
type Storage interface {
	Publisher

	// ScratchPath returns a path inside the scratch directory for
	// intermediate files (in-progress encodes, motion scripts).
	ScratchPath(name string) string

	// Promote atomically moves a finished scratch file into the exports
	// directory and returns its final path.
	Promote(scratchPath, finalName string) (string, error)

	// ExportPath returns the path a promoted file will have.
	ExportPath(name string) string

	// Remove deletes files, ignoring ones already gone.
	Remove(paths ...string) error
}
