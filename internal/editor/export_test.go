package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thirdcoast.systems/clipstudio/pkg/utils/geometry"
)

func TestBuildExportSpecNoKeyframes(t *testing.T) {
	track := NewTrack()
	require.NoError(t, track.StartRecording(10))
	track.Record(1.0, sel(0, 0, 100, 100, 1))
	track.StopRecording()

	trim := NewTrimRange(10)
	trim.SetStart(5.0)

	spec, err := BuildExportSpec(trim, track, geometry.Size{Width: 800, Height: 450}, geometry.Size{Width: 1920, Height: 1080})
	assert.ErrorIs(t, err, ErrNoKeyframes)
	assert.Nil(t, spec)
	assert.Equal(t, 1, track.Len(), "a failed build must leave the track untouched")
	assert.Equal(t, 5.0, trim.Start())
}

func TestBuildExportSpecRetimestampsAndMaps(t *testing.T) {
	// Canvas shows the 1920x1080 video letterboxed into 960x540: scale 0.5,
	// no offsets. Canvas-space coordinates double into video space.
	canvas := geometry.Size{Width: 960, Height: 540}
	video := geometry.Size{Width: 1920, Height: 1080}

	track := NewTrack()
	require.NoError(t, track.StartRecording(10))
	track.Record(3.0, sel(100, 50, 200, 300, 1.2))
	track.Record(6.0, sel(400, 100, 200, 300, 1.5))
	track.Record(9.5, sel(0, 0, 200, 300, 1.0)) // past the trim window
	track.StopRecording()

	trim := NewTrimRange(10)
	trim.SetStart(2.0)
	trim.SetEnd(8.0)

	spec, err := BuildExportSpec(trim, track, canvas, video)
	require.NoError(t, err)
	require.Len(t, spec.Keyframes, 2)

	assert.Equal(t, 2.0, spec.TrimStart)
	assert.Equal(t, 8.0, spec.TrimEnd)
	assert.Equal(t, 6.0, spec.TrimmedDuration())
	assert.Equal(t, ExportAspectWidth, spec.AspectWidth)
	assert.Equal(t, ExportAspectHeight, spec.AspectHeight)

	first := spec.Keyframes[0]
	assert.InDelta(t, 1.0, first.Time, 1e-9)
	assert.InDelta(t, 200.0, first.Crop.X, 1e-9)
	assert.InDelta(t, 100.0, first.Crop.Y, 1e-9)
	assert.InDelta(t, 400.0, first.Crop.Width, 1e-9)
	assert.InDelta(t, 600.0, first.Crop.Height, 1e-9)
	assert.Equal(t, 1.2, first.Zoom)

	second := spec.Keyframes[1]
	assert.InDelta(t, 4.0, second.Time, 1e-9)
	assert.InDelta(t, 800.0, second.Crop.X, 1e-9)
}

func TestBuildExportSpecClampsCropToVideo(t *testing.T) {
	// Pillarboxed display: 1080x1920 video inside a 960x540 canvas gives
	// scale 0.28125 and a horizontal offset, so canvas-edge selections map
	// to negative video X before clamping.
	canvas := geometry.Size{Width: 960, Height: 540}
	video := geometry.Size{Width: 1080, Height: 1920}

	track := NewTrack()
	require.NoError(t, track.StartRecording(10))
	track.Record(1.0, sel(0, 0, 200, 300, 1.0))
	track.StopRecording()

	spec, err := BuildExportSpec(NewTrimRange(10), track, canvas, video)
	require.NoError(t, err)

	crop := spec.Keyframes[0].Crop
	assert.GreaterOrEqual(t, crop.X, 0.0)
	assert.GreaterOrEqual(t, crop.Y, 0.0)
	assert.LessOrEqual(t, crop.X+crop.Width, video.Width)
	assert.LessOrEqual(t, crop.Y+crop.Height, video.Height)
}

func TestExportSpecAtHoldsLastValue(t *testing.T) {
	spec := &ExportSpec{
		Keyframes: []ExportKeyframe{
			{Time: 0.0, Crop: geometry.Rect{X: 0}},
			{Time: 2.0, Crop: geometry.Rect{X: 100}},
			{Time: 5.0, Crop: geometry.Rect{X: 300}},
		},
	}

	// A step function, never a blend: values hold until the next keyframe.
	assert.Equal(t, 0.0, spec.At(0.0).Crop.X)
	assert.Equal(t, 0.0, spec.At(1.999).Crop.X)
	assert.Equal(t, 100.0, spec.At(2.0).Crop.X)
	assert.Equal(t, 100.0, spec.At(4.9).Crop.X)
	assert.Equal(t, 300.0, spec.At(5.0).Crop.X)
	assert.Equal(t, 300.0, spec.At(60.0).Crop.X)

	// Before the first keyframe the first value applies.
	assert.Equal(t, 0.0, spec.At(-1.0).Crop.X)
}
