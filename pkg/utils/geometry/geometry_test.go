package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLetterbox(t *testing.T) {
	tests := []struct {
		name              string
		canvas, video     Size
		wantScale         float64
		wantOffX, wantOffY float64
	}{
		{
			name:      "pillarboxed portrait video in landscape canvas",
			canvas:    Size{Width: 1280, Height: 720},
			video:     Size{Width: 720, Height: 1280},
			wantScale: 720.0 / 1280.0,
			wantOffX:  (1280 - 720*(720.0/1280.0)) / 2,
			wantOffY:  0,
		},
		{
			name:      "letterboxed wide video",
			canvas:    Size{Width: 1280, Height: 720},
			video:     Size{Width: 3840, Height: 1600},
			wantScale: 1280.0 / 3840.0,
			wantOffX:  0,
			wantOffY:  (720 - 1600*(1280.0/3840.0)) / 2,
		},
		{
			name:      "exact fit",
			canvas:    Size{Width: 1920, Height: 1080},
			video:     Size{Width: 1920, Height: 1080},
			wantScale: 1,
			wantOffX:  0,
			wantOffY:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scale, offX, offY, err := Letterbox(tt.canvas, tt.video)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantScale, scale, 1e-9)
			assert.InDelta(t, tt.wantOffX, offX, 1e-9)
			assert.InDelta(t, tt.wantOffY, offY, 1e-9)
		})
	}
}

func TestToVideoSpaceInvalidGeometry(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 100, Height: 100}

	_, err := ToVideoSpace(r, Size{Width: 0, Height: 720}, Size{Width: 1920, Height: 1080})
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	_, err = ToVideoSpace(r, Size{Width: 1280, Height: 720}, Size{Width: 1920, Height: -1})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestToVideoSpaceDoesNotClamp(t *testing.T) {
	// Selection sitting inside the left pillarbox bar maps to negative video X.
	canvas := Size{Width: 1280, Height: 720}
	video := Size{Width: 720, Height: 1280}

	got, err := ToVideoSpace(Rect{X: 0, Y: 0, Width: 100, Height: 100}, canvas, video)
	require.NoError(t, err)
	assert.Negative(t, got.X)
}

func TestRoundTripIdentity(t *testing.T) {
	cases := []struct {
		canvas, video Size
	}{
		{Size{Width: 1280, Height: 720}, Size{Width: 1920, Height: 1080}},
		{Size{Width: 1280, Height: 720}, Size{Width: 720, Height: 1280}},
		{Size{Width: 800, Height: 600}, Size{Width: 3840, Height: 2160}},
		{Size{Width: 1920, Height: 1080}, Size{Width: 854, Height: 480}},
	}

	rects := []Rect{
		{X: 100, Y: 50, Width: 300, Height: 500},
		{X: 0, Y: 0, Width: 50, Height: 50},
		{X: 640.5, Y: 360.25, Width: 123.75, Height: 219.5},
	}

	for _, c := range cases {
		for _, r := range rects {
			fwd, err := ToVideoSpace(r, c.canvas, c.video)
			require.NoError(t, err)
			back, err := ToDisplaySpace(fwd, c.canvas, c.video)
			require.NoError(t, err)

			assert.InDelta(t, r.X, back.X, 1e-9)
			assert.InDelta(t, r.Y, back.Y, 1e-9)
			assert.InDelta(t, r.Width, back.Width, 1e-9)
			assert.InDelta(t, r.Height, back.Height, 1e-9)
		}
	}
}

func TestClampToBounds(t *testing.T) {
	bounds := Size{Width: 500, Height: 400}

	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{
			name: "negative origin clamps to zero",
			in:   Rect{X: -20, Y: 10, Width: 100, Height: 100},
			want: Rect{X: 0, Y: 10, Width: 100, Height: 100},
		},
		{
			name: "origin clamps so rect stays inside",
			in:   Rect{X: 450, Y: 350, Width: 100, Height: 100},
			want: Rect{X: 400, Y: 300, Width: 100, Height: 100},
		},
		{
			name: "oversized rect shrinks to bounds",
			in:   Rect{X: 0, Y: 0, Width: 900, Height: 800},
			want: Rect{X: 0, Y: 0, Width: 500, Height: 400},
		},
		{
			name: "already inside is unchanged",
			in:   Rect{X: 10, Y: 10, Width: 100, Height: 100},
			want: Rect{X: 10, Y: 10, Width: 100, Height: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampToBounds(tt.in, bounds))
		})
	}
}
