package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStorage implements Storage on the local disk under a single data
// directory: data/scratch for in-progress files, data/exports for finished
// clips. Publish is unsupported unless wrapped by S3Storage.
type LocalStorage struct {
	scratchDir string
	exportsDir string
}

// NewLocalStorage creates the scratch and exports directories under dataDir.
// If dataDir is empty a directory under os.TempDir() is used.
func NewLocalStorage(dataDir string) (*LocalStorage, error) {
	if dataDir == "" {
		dataDir = filepath.Join(os.TempDir(), "clipstudio")
	}

	s := &LocalStorage{
		scratchDir: filepath.Join(dataDir, "scratch"),
		exportsDir: filepath.Join(dataDir, "exports"),
	}
	for _, dir := range []string{s.scratchDir, s.exportsDir} {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}
	return s, nil
}

// ScratchDir returns the scratch directory path.
func (s *LocalStorage) ScratchDir() string {
	return s.scratchDir
}

// ExportsDir returns the exports directory path.
func (s *LocalStorage) ExportsDir() string {
	return s.exportsDir
}

// ScratchPath returns a path inside the scratch directory.
func (s *LocalStorage) ScratchPath(name string) string {
	return filepath.Join(s.scratchDir, name)
}

// ExportPath returns the final path for a named export.
func (s *LocalStorage) ExportPath(name string) string {
	return filepath.Join(s.exportsDir, name)
}

// Promote moves a finished scratch file into the exports directory. The
// rename is atomic because both directories live on the same filesystem, so
// a download handler never sees a half-written file.
func (s *LocalStorage) Promote(scratchPath, finalName string) (string, error) {
	final := s.ExportPath(finalName)
	if err := os.Rename(scratchPath, final); err != nil {
		return "", fmt.Errorf("promote export: %w", err)
	}
	return final, nil
}

// Remove deletes files, continuing past missing ones and returning the
// first real error encountered.
func (s *LocalStorage) Remove(paths ...string) error {
	var firstErr error
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			if firstErr == nil {
				firstErr = fmt.Errorf("remove %s: %w", p, err)
			}
		}
	}
	return firstErr
}

// Publish is not supported by LocalStorage and returns ErrS3NotConfigured.
func (s *LocalStorage) Publish(_ context.Context, _ string, _ string) (string, error) {
	return "", ErrS3NotConfigured
}
