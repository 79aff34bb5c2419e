package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thirdcoast.systems/clipstudio/internal/editor"
)

func TestIsRecordingFile(t *testing.T) {
	assert.True(t, isRecordingFile("take1.json"))
	assert.True(t, isRecordingFile("take1.YAML"))
	assert.True(t, isRecordingFile("take1.yml"))
	assert.False(t, isRecordingFile("take1.mp4"))
	assert.False(t, isRecordingFile("take1"))
}

func TestFindSiblingSource(t *testing.T) {
	dir := t.TempDir()
	recording := filepath.Join(dir, "take1.json")
	source := filepath.Join(dir, "take1.mp4")
	require.NoError(t, os.WriteFile(recording, []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(source, []byte("x"), 0o644))

	found, err := findSiblingSource(recording)
	require.NoError(t, err)
	assert.Equal(t, source, found)

	_, err = findSiblingSource(filepath.Join(dir, "other.json"))
	assert.Error(t, err)
}

func TestResolveOutputPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("default sits next to the input", func(t *testing.T) {
		opts := renderOptions{In: filepath.Join(dir, "take1.json")}
		assert.Equal(t, filepath.Join(dir, "take1-clip.mp4"), resolveOutputPath(opts, ".mp4"))
	})

	t.Run("directory output keeps the base name", func(t *testing.T) {
		opts := renderOptions{In: filepath.Join(dir, "take1.json"), Out: dir}
		assert.Equal(t, filepath.Join(dir, "take1.webm"), resolveOutputPath(opts, ".webm"))
	})

	t.Run("explicit file wins", func(t *testing.T) {
		opts := renderOptions{In: "take1.json", Out: filepath.Join(dir, "final.mp4")}
		assert.Equal(t, filepath.Join(dir, "final.mp4"), resolveOutputPath(opts, ".mp4"))
	})
}

func TestResampleTrack(t *testing.T) {
	track := editor.NewTrack()
	track.Import(editor.RecordingFile{
		Duration: 10,
		Keyframes: []editor.Keyframe{
			{Timestamp: 2, Selection: editor.SelectionRect{X: 0, Width: 100, Height: 100, Zoom: 1}},
			{Timestamp: 4, Selection: editor.SelectionRect{X: 100, Width: 100, Height: 100, Zoom: 1}},
		},
	})
	trim := editor.NewTrimRange(10)
	trim.SetStart(2)
	trim.SetEnd(4)

	resampled := resampleTrack(track, trim)
	// 2..4 at 10 Hz inclusive start, plus float tail.
	assert.GreaterOrEqual(t, resampled.Len(), 20)

	// The eased path still lands on the original keyframes.
	at := resampled.Interpolate(2.0, false)
	require.NotNil(t, at)
	assert.InDelta(t, 0.0, at.X, 1e-9)

	mid := resampled.Interpolate(3.0, false)
	require.NotNil(t, mid)
	assert.InDelta(t, 50.0, mid.X, 1.0)
}

func TestResampleTrackEmpty(t *testing.T) {
	track := editor.NewTrack()
	trim := editor.NewTrimRange(10)
	assert.Same(t, track, resampleTrack(track, trim))
}
