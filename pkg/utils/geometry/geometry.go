// Package geometry provides pure coordinate transforms between the display
// canvas the editor draws over and the source video's pixel grid. The video is
// letterboxed or pillarboxed inside the canvas; these functions compute that
// fit and map rectangles across it in both directions.
package geometry

import (
	"errors"
	"math"
)

// ErrInvalidGeometry is returned when a transform receives a canvas or video
// size with a non-positive dimension.
var ErrInvalidGeometry = errors.New("geometry: canvas and video dimensions must be positive")

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Letterbox returns the scale and centering offsets at which a video of the
// given intrinsic size is rendered inside the canvas:
//
//	scale = min(canvasW/videoW, canvasH/videoH)
//
// with the scaled video centered, leaving bars on the constrained axis.
func Letterbox(canvas, video Size) (scale, offsetX, offsetY float64, err error) {
	if !canvas.Valid() || !video.Valid() {
		return 0, 0, 0, ErrInvalidGeometry
	}
	scale = math.Min(canvas.Width/video.Width, canvas.Height/video.Height)
	offsetX = (canvas.Width - video.Width*scale) / 2
	offsetY = (canvas.Height - video.Height*scale) / 2
	return scale, offsetX, offsetY, nil
}

// ToVideoSpace maps a rectangle expressed in canvas-display pixels into
// source-video pixels by undoing the letterbox fit. The result is NOT clamped
// to the video bounds; a selection overlapping a letterbox bar maps to
// negative or out-of-range coordinates and the caller decides how to clamp.
func ToVideoSpace(display Rect, canvas, video Size) (Rect, error) {
	scale, offsetX, offsetY, err := Letterbox(canvas, video)
	if err != nil {
		return Rect{}, err
	}
	return Rect{
		X:      (display.X - offsetX) / scale,
		Y:      (display.Y - offsetY) / scale,
		Width:  display.Width / scale,
		Height: display.Height / scale,
	}, nil
}

// ToDisplaySpace maps a rectangle in source-video pixels onto the canvas,
// applying the same letterbox fit the renderer uses. It is the exact inverse
// of ToVideoSpace, so round-trips are identity up to floating-point error.
func ToDisplaySpace(videoRect Rect, canvas, video Size) (Rect, error) {
	scale, offsetX, offsetY, err := Letterbox(canvas, video)
	if err != nil {
		return Rect{}, err
	}
	return Rect{
		X:      videoRect.X*scale + offsetX,
		Y:      videoRect.Y*scale + offsetY,
		Width:  videoRect.Width * scale,
		Height: videoRect.Height * scale,
	}, nil
}

// ClampToBounds shrinks r to fit inside bounds and moves its origin so the
// whole rectangle lies within [0, bounds.Width] x [0, bounds.Height].
func ClampToBounds(r Rect, bounds Size) Rect {
	if r.Width > bounds.Width {
		r.Width = bounds.Width
	}
	if r.Height > bounds.Height {
		r.Height = bounds.Height
	}
	r.X = clamp(r.X, 0, bounds.Width-r.Width)
	r.Y = clamp(r.Y, 0, bounds.Height-r.Height)
	return r
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
