// Package editor implements the clip editor core: the selection rectangle
// state machine, the keyframe track with temporal interpolation, the trim
// range, the export spec builder, and the playback/recording orchestrator.
// It has no transport or framework dependency; the HTTP API and the offline
// renderer are just callers.
package editor

import (
	"math"

	"thirdcoast.systems/clipstudio/pkg/utils/geometry"
)

const (
	// MinZoom and MaxZoom bound the selection zoom multiplier.
	MinZoom = 0.3
	MaxZoom = 3.0

	// MinSelectionSize is the floor for selection width and height in
	// canvas pixels, enforced during resize and zoom.
	MinSelectionSize = 50.0

	// HandleHitRadius is the pointer distance within which a corner handle
	// press registers.
	HandleHitRadius = 16.0

	// Target crop aspect for portrait export. The maximum selection size is
	// the largest 9:16 rectangle that fits the canvas.
	targetAspectW = 9.0
	targetAspectH = 16.0
)

// SelectionRect is the user-controlled crop region over the displayed video,
// in canvas-display pixel space. Zoom is a multiplier applied about the
// rect's own center.
type SelectionRect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
	Zoom   float64 `json:"zoom" yaml:"zoom"`
}

// Rect returns the selection's bounds without the zoom factor.
func (r SelectionRect) Rect() geometry.Rect {
	return geometry.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// Point is a pointer position in canvas pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Handle identifies one of the four corner resize handles.
type Handle string

const (
	HandleTopLeft     Handle = "top-left"
	HandleTopRight    Handle = "top-right"
	HandleBottomLeft  Handle = "bottom-left"
	HandleBottomRight Handle = "bottom-right"
)

type interactionState int

const (
	stateIdle interactionState = iota
	stateDragging
	stateResizing
)

// Selection owns one SelectionRect and the pointer-interaction state machine
// (idle | dragging | resizing). Operations invoked in the wrong state are
// silent no-ops: pointer event streams routinely deliver moves after a missed
// press and the editor must shrug those off.
//
// Notification policy: drag updates notify the observer on every move (live
// feedback); resize and zoom notify only when the interaction ends.
type Selection struct {
	canvas   geometry.Size
	rect     SelectionRect
	state    interactionState
	anchor   Point
	handle   Handle
	observer func(SelectionRect)
}

// NewSelection creates a selection centered on the canvas, sized to 80% of
// the largest 9:16 rectangle that fits it, at zoom 1.0.
func NewSelection(canvas geometry.Size) *Selection {
	s := &Selection{canvas: canvas}
	maxW, maxH := s.maxSize()
	s.rect = SelectionRect{
		Width:  maxW * 0.8,
		Height: maxH * 0.8,
		Zoom:   1.0,
	}
	s.rect.X = (canvas.Width - s.rect.Width) / 2
	s.rect.Y = (canvas.Height - s.rect.Height) / 2
	return s
}

// SetObserver registers the single selection-changed observer. The observer
// is called synchronously with a snapshot; there is no fan-out.
func (s *Selection) SetObserver(fn func(SelectionRect)) {
	s.observer = fn
}

// SetCanvasSize updates the canvas bounds and re-clamps the current rect.
func (s *Selection) SetCanvasSize(canvas geometry.Size) {
	if !canvas.Valid() {
		return
	}
	s.canvas = canvas
	s.clampRect()
}

// CanvasSize returns the current canvas bounds.
func (s *Selection) CanvasSize() geometry.Size {
	return s.canvas
}

// Snapshot returns a copy of the current selection rect.
func (s *Selection) Snapshot() SelectionRect {
	return s.rect
}

// Restore replaces the selection rect wholesale, clamped to the canvas.
// Used when the extension re-attaches to a session or applies an
// interpolated preview state.
func (s *Selection) Restore(rect SelectionRect) {
	if rect.Width <= 0 || rect.Height <= 0 {
		return
	}
	rect.Zoom = clampFloat(rect.Zoom, MinZoom, MaxZoom)
	s.rect = rect
	s.clampRect()
	s.notify()
}

// BeginDrag starts a drag when the pointer is inside the current rect.
// Presses outside the rect leave the state at idle.
func (s *Selection) BeginDrag(p Point) {
	if s.state != stateIdle {
		return
	}
	if !s.contains(p) {
		return
	}
	s.anchor = Point{X: p.X - s.rect.X, Y: p.Y - s.rect.Y}
	s.state = stateDragging
}

// UpdateDrag moves the rect so the pointer keeps its press offset, clamped so
// the rect stays fully inside the canvas, and notifies on every move.
func (s *Selection) UpdateDrag(p Point) {
	if s.state != stateDragging {
		return
	}
	s.rect.X = p.X - s.anchor.X
	s.rect.Y = p.Y - s.anchor.Y
	s.clampRect()
	s.notify()
}

// HandleAt returns the corner handle within hit radius of p, or "" if none.
func (s *Selection) HandleAt(p Point) Handle {
	for h, c := range s.corners() {
		if math.Hypot(p.X-c.X, p.Y-c.Y) <= HandleHitRadius {
			return h
		}
	}
	return ""
}

// BeginResize starts a resize when the pointer is within hit radius of the
// named corner handle.
func (s *Selection) BeginResize(h Handle, p Point) {
	if s.state != stateIdle {
		return
	}
	c, ok := s.corners()[h]
	if !ok {
		return
	}
	if math.Hypot(p.X-c.X, p.Y-c.Y) > HandleHitRadius {
		return
	}
	s.handle = h
	s.state = stateResizing
}

// UpdateResize adjusts the rect with the corner opposite the active handle
// anchored, enforcing the minimum size floor and re-clamping to the canvas.
// No notification until the interaction ends.
func (s *Selection) UpdateResize(p Point) {
	if s.state != stateResizing {
		return
	}

	right := s.rect.X + s.rect.Width
	bottom := s.rect.Y + s.rect.Height

	switch s.handle {
	case HandleTopLeft:
		s.rect.Width = clampFloat(right-p.X, MinSelectionSize, right)
		s.rect.Height = clampFloat(bottom-p.Y, MinSelectionSize, bottom)
		s.rect.X = right - s.rect.Width
		s.rect.Y = bottom - s.rect.Height
	case HandleTopRight:
		s.rect.Width = math.Max(p.X-s.rect.X, MinSelectionSize)
		s.rect.Height = clampFloat(bottom-p.Y, MinSelectionSize, bottom)
		s.rect.Y = bottom - s.rect.Height
	case HandleBottomLeft:
		s.rect.Width = clampFloat(right-p.X, MinSelectionSize, right)
		s.rect.Height = math.Max(p.Y-s.rect.Y, MinSelectionSize)
		s.rect.X = right - s.rect.Width
	case HandleBottomRight:
		s.rect.Width = math.Max(p.X-s.rect.X, MinSelectionSize)
		s.rect.Height = math.Max(p.Y-s.rect.Y, MinSelectionSize)
	}

	s.clampRect()
}

// ApplyZoom adjusts the zoom multiplier by delta, scaling the rect about its
// own center. The zoom is clamped to [MinZoom, MaxZoom]; a delta that lands
// on the current zoom is a no-op. Size is bounded below by the minimum floor
// and above by the largest 9:16 rectangle that fits the canvas. Notification
// is deferred to EndInteraction.
func (s *Selection) ApplyZoom(delta float64) {
	newZoom := clampFloat(s.rect.Zoom+delta, MinZoom, MaxZoom)
	if newZoom == s.rect.Zoom {
		return
	}

	factor := newZoom / s.rect.Zoom
	cx := s.rect.X + s.rect.Width/2
	cy := s.rect.Y + s.rect.Height/2

	maxW, maxH := s.maxSize()
	s.rect.Width = clampFloat(s.rect.Width*factor, MinSelectionSize, maxW)
	s.rect.Height = clampFloat(s.rect.Height*factor, MinSelectionSize, maxH)
	s.rect.X = cx - s.rect.Width/2
	s.rect.Y = cy - s.rect.Height/2
	s.rect.Zoom = newZoom

	s.clampRect()
}

// EndInteraction returns the state machine to idle and fires the selection
// changed notification (the commit notify for resize and zoom).
func (s *Selection) EndInteraction() {
	if s.state == stateIdle {
		// Zoom commits arrive as end-interaction too, so still notify.
		s.notify()
		return
	}
	s.state = stateIdle
	s.handle = ""
	s.notify()
}

// Dragging reports whether a drag is in progress.
func (s *Selection) Dragging() bool { return s.state == stateDragging }

// Resizing reports whether a resize is in progress.
func (s *Selection) Resizing() bool { return s.state == stateResizing }

func (s *Selection) contains(p Point) bool {
	return p.X >= s.rect.X && p.X <= s.rect.X+s.rect.Width &&
		p.Y >= s.rect.Y && p.Y <= s.rect.Y+s.rect.Height
}

func (s *Selection) corners() map[Handle]Point {
	return map[Handle]Point{
		HandleTopLeft:     {X: s.rect.X, Y: s.rect.Y},
		HandleTopRight:    {X: s.rect.X + s.rect.Width, Y: s.rect.Y},
		HandleBottomLeft:  {X: s.rect.X, Y: s.rect.Y + s.rect.Height},
		HandleBottomRight: {X: s.rect.X + s.rect.Width, Y: s.rect.Y + s.rect.Height},
	}
}

// maxSize is the largest rectangle at the target 9:16 aspect that fits the
// canvas. Selections may be any aspect but never exceed these bounds.
func (s *Selection) maxSize() (w, h float64) {
	scale := math.Min(s.canvas.Width/targetAspectW, s.canvas.Height/targetAspectH)
	return targetAspectW * scale, targetAspectH * scale
}

func (s *Selection) clampRect() {
	clamped := geometry.ClampToBounds(s.rect.Rect(), s.canvas)
	s.rect.X, s.rect.Y = clamped.X, clamped.Y
	s.rect.Width, s.rect.Height = clamped.Width, clamped.Height
}

func (s *Selection) notify() {
	if s.observer != nil {
		s.observer(s.rect)
	}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
