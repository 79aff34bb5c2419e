package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalStorageCreatesLayout(t *testing.T) {
	dataDir := t.TempDir()
	s, err := NewLocalStorage(dataDir)
	require.NoError(t, err)

	assert.DirExists(t, filepath.Join(dataDir, "scratch"))
	assert.DirExists(t, filepath.Join(dataDir, "exports"))
	assert.Equal(t, filepath.Join(dataDir, "scratch", "a.mp4"), s.ScratchPath("a.mp4"))
	assert.Equal(t, filepath.Join(dataDir, "exports", "a.mp4"), s.ExportPath("a.mp4"))
}

func TestPromoteMovesFile(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	scratch := s.ScratchPath("job1.mp4.part")
	require.NoError(t, os.WriteFile(scratch, []byte("encoded"), 0o644))

	final, err := s.Promote(scratch, "job1.mp4")
	require.NoError(t, err)
	assert.Equal(t, s.ExportPath("job1.mp4"), final)

	data, err := os.ReadFile(final)
	require.NoError(t, err)
	assert.Equal(t, "encoded", string(data))
	assert.NoFileExists(t, scratch)
}

func TestPromoteMissingSource(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Promote(s.ScratchPath("nope.mp4"), "nope.mp4")
	assert.Error(t, err)
}

func TestRemoveIgnoresMissing(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	present := s.ScratchPath("present.cmd")
	require.NoError(t, os.WriteFile(present, []byte("x"), 0o644))

	require.NoError(t, s.Remove(present, s.ScratchPath("absent.cmd")))
	assert.NoFileExists(t, present)
}

func TestLocalPublishNotConfigured(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Publish(context.Background(), "k", "p")
	assert.ErrorIs(t, err, ErrS3NotConfigured)
}
