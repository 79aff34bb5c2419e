package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thirdcoast.systems/clipstudio/pkg/utils/geometry"
)

func testCanvas() geometry.Size {
	return geometry.Size{Width: 500, Height: 900}
}

func TestNewSelectionCenteredAtDefaultSize(t *testing.T) {
	canvas := testCanvas()
	s := NewSelection(canvas)
	rect := s.Snapshot()

	// Largest 9:16 fit on a 500x900 canvas is 506.25x900, so width caps at
	// the height-limited scale.
	maxW, maxH := s.maxSize()
	assert.InDelta(t, maxW*0.8, rect.Width, 1e-9)
	assert.InDelta(t, maxH*0.8, rect.Height, 1e-9)
	assert.InDelta(t, (canvas.Width-rect.Width)/2, rect.X, 1e-9)
	assert.InDelta(t, (canvas.Height-rect.Height)/2, rect.Y, 1e-9)
	assert.Equal(t, 1.0, rect.Zoom)
}

func TestDragClampsToCanvas(t *testing.T) {
	s := NewSelection(testCanvas())
	start := s.Snapshot()

	// Press at the rect's top-left corner, then drag far past the left edge.
	s.BeginDrag(Point{X: start.X, Y: start.Y})
	require.True(t, s.Dragging())

	s.UpdateDrag(Point{X: -20, Y: start.Y})

	rect := s.Snapshot()
	assert.Equal(t, 0.0, rect.X, "rect must pin to the canvas edge, not leave it")
	assert.Equal(t, start.Width, rect.Width)
}

func TestDragOutsideRectIgnored(t *testing.T) {
	s := NewSelection(testCanvas())
	before := s.Snapshot()

	s.BeginDrag(Point{X: -50, Y: -50})
	assert.False(t, s.Dragging())

	s.UpdateDrag(Point{X: 100, Y: 100})
	assert.Equal(t, before, s.Snapshot(), "move without a press must be a no-op")
}

func TestDragNotifiesEveryMove(t *testing.T) {
	s := NewSelection(testCanvas())
	start := s.Snapshot()

	var calls int
	s.SetObserver(func(SelectionRect) { calls++ })

	s.BeginDrag(Point{X: start.X + 10, Y: start.Y + 10})
	s.UpdateDrag(Point{X: start.X + 20, Y: start.Y + 10})
	s.UpdateDrag(Point{X: start.X + 30, Y: start.Y + 10})
	s.UpdateDrag(Point{X: start.X + 40, Y: start.Y + 10})
	assert.Equal(t, 3, calls, "drag is live feedback, one notify per move")

	s.EndInteraction()
	assert.Equal(t, 4, calls)
	assert.False(t, s.Dragging())
}

func TestResizeNotifiesOnlyOnCommit(t *testing.T) {
	s := NewSelection(testCanvas())
	start := s.Snapshot()

	var calls int
	s.SetObserver(func(SelectionRect) { calls++ })

	s.BeginResize(HandleBottomRight, Point{X: start.X + start.Width, Y: start.Y + start.Height})
	require.True(t, s.Resizing())

	s.UpdateResize(Point{X: start.X + start.Width - 30, Y: start.Y + start.Height - 30})
	s.UpdateResize(Point{X: start.X + start.Width - 60, Y: start.Y + start.Height - 60})
	assert.Equal(t, 0, calls, "resize must not notify mid-gesture")

	s.EndInteraction()
	assert.Equal(t, 1, calls)
}

func TestResizeEnforcesMinimumSize(t *testing.T) {
	s := NewSelection(testCanvas())
	start := s.Snapshot()

	s.BeginResize(HandleBottomRight, Point{X: start.X + start.Width, Y: start.Y + start.Height})
	// Collapse the rect well past the floor.
	s.UpdateResize(Point{X: start.X + 1, Y: start.Y + 1})
	s.EndInteraction()

	rect := s.Snapshot()
	assert.Equal(t, MinSelectionSize, rect.Width)
	assert.Equal(t, MinSelectionSize, rect.Height)
}

func TestResizeTopLeftAnchorsOppositeCorner(t *testing.T) {
	s := NewSelection(testCanvas())
	start := s.Snapshot()
	right := start.X + start.Width
	bottom := start.Y + start.Height

	s.BeginResize(HandleTopLeft, Point{X: start.X, Y: start.Y})
	s.UpdateResize(Point{X: start.X + 40, Y: start.Y + 40})
	s.EndInteraction()

	rect := s.Snapshot()
	assert.InDelta(t, right, rect.X+rect.Width, 1e-9)
	assert.InDelta(t, bottom, rect.Y+rect.Height, 1e-9)
	assert.InDelta(t, start.Width-40, rect.Width, 1e-9)
}

func TestBeginResizeOutsideHitRadiusIgnored(t *testing.T) {
	s := NewSelection(testCanvas())
	start := s.Snapshot()

	s.BeginResize(HandleTopLeft, Point{X: start.X + HandleHitRadius*2, Y: start.Y + HandleHitRadius*2})
	assert.False(t, s.Resizing())
}

func TestHandleAt(t *testing.T) {
	s := NewSelection(testCanvas())
	r := s.Snapshot()

	assert.Equal(t, HandleTopLeft, s.HandleAt(Point{X: r.X + 5, Y: r.Y - 5}))
	assert.Equal(t, HandleBottomRight, s.HandleAt(Point{X: r.X + r.Width, Y: r.Y + r.Height}))
	assert.Equal(t, Handle(""), s.HandleAt(Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}))
}

func TestZoomClampAndIdempotence(t *testing.T) {
	s := NewSelection(testCanvas())

	// Already at 1.0; push past the maximum.
	for range 40 {
		s.ApplyZoom(0.1)
	}
	assert.Equal(t, MaxZoom, s.Snapshot().Zoom)

	// Further zoom-in deltas land on the current zoom and must not move the
	// rect at all.
	before := s.Snapshot()
	s.ApplyZoom(0.1)
	assert.Equal(t, before, s.Snapshot())

	for range 60 {
		s.ApplyZoom(-0.1)
	}
	assert.Equal(t, MinZoom, s.Snapshot().Zoom)
}

func TestZoomScalesAboutCenterWithinCanvas(t *testing.T) {
	s := NewSelection(testCanvas())
	before := s.Snapshot()
	cx := before.X + before.Width/2
	cy := before.Y + before.Height/2

	s.ApplyZoom(-0.5)
	after := s.Snapshot()

	assert.InDelta(t, cx, after.X+after.Width/2, 1e-9)
	assert.InDelta(t, cy, after.Y+after.Height/2, 1e-9)
	assert.Less(t, after.Width, before.Width)

	// Zooming far in must stay inside the canvas.
	for range 40 {
		s.ApplyZoom(0.1)
	}
	rect := s.Snapshot()
	canvas := s.CanvasSize()
	assert.GreaterOrEqual(t, rect.X, 0.0)
	assert.GreaterOrEqual(t, rect.Y, 0.0)
	assert.LessOrEqual(t, rect.X+rect.Width, canvas.Width+1e-9)
	assert.LessOrEqual(t, rect.Y+rect.Height, canvas.Height+1e-9)
}

func TestZoomNotifiesOnEndInteraction(t *testing.T) {
	s := NewSelection(testCanvas())

	var calls int
	s.SetObserver(func(SelectionRect) { calls++ })

	s.ApplyZoom(-0.2)
	s.ApplyZoom(-0.2)
	assert.Equal(t, 0, calls)

	s.EndInteraction()
	assert.Equal(t, 1, calls)
}

func TestSetCanvasSizeReclamps(t *testing.T) {
	s := NewSelection(testCanvas())

	s.SetCanvasSize(geometry.Size{Width: 300, Height: 400})
	rect := s.Snapshot()
	assert.LessOrEqual(t, rect.X+rect.Width, 300.0)
	assert.LessOrEqual(t, rect.Y+rect.Height, 400.0)

	// Invalid canvas sizes are ignored.
	s.SetCanvasSize(geometry.Size{Width: 0, Height: -1})
	assert.Equal(t, geometry.Size{Width: 300, Height: 400}, s.CanvasSize())
}

func TestRestore(t *testing.T) {
	s := NewSelection(testCanvas())

	s.Restore(SelectionRect{X: 10, Y: 20, Width: 90, Height: 160, Zoom: 99})
	rect := s.Snapshot()
	assert.Equal(t, 10.0, rect.X)
	assert.Equal(t, MaxZoom, rect.Zoom, "restore clamps zoom into range")

	// Degenerate rects are rejected wholesale.
	s.Restore(SelectionRect{Width: 0, Height: 100, Zoom: 1})
	assert.Equal(t, rect, s.Snapshot())
}
