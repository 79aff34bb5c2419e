package editor

import (
	"thirdcoast.systems/clipstudio/pkg/ffmpeg"
	"thirdcoast.systems/clipstudio/pkg/utils/geometry"
)

// Export target aspect: portrait 9:16.
const (
	ExportAspectWidth  = 9
	ExportAspectHeight = 16
)

// ExportKeyframe is one crop/zoom/pan target on the trim-relative timeline,
// with the crop window already mapped into source-video pixels and clamped to
// the video bounds.
type ExportKeyframe struct {
	Time float64       `json:"time"` // seconds relative to trim start
	Crop geometry.Rect `json:"crop"` // source-video pixels
	Zoom float64       `json:"zoom"`
}

// ExportSpec is the derived instruction set for the render engine: trim
// boundaries plus the ordered crop/zoom/pan targets. It is built fresh on
// every export request and never mutated in place.
//
// The engine consumes the keyframes as a hold-last-value step function: at
// render time t, the crop is that of the latest keyframe at or before t.
// This is deliberately distinct from the eased interpolation used for live
// preview; the step form keeps the engine's filter expressions tractable.
type ExportSpec struct {
	TrimStart    float64          `json:"trim_start"`
	TrimEnd      float64          `json:"trim_end"`
	Keyframes    []ExportKeyframe `json:"keyframes"`
	AspectWidth  int              `json:"aspect_width"`
	AspectHeight int              `json:"aspect_height"`
	Canvas       geometry.Size    `json:"canvas"`
	Video        geometry.Size    `json:"video"`

	// Filters are optional appearance adjustments applied after the crop and
	// scale stages. They ride along from the export request untouched.
	Filters []ffmpeg.FilterSpec `json:"filters,omitempty"`
}

// BuildExportSpec projects the keyframes inside the trim window onto the
// trim-relative timeline and maps each selection from canvas space into
// source-video pixels. Returns ErrNoKeyframes when the window is empty; the
// track and trim are never mutated.
func BuildExportSpec(trim *TrimRange, track *Track, canvas, video geometry.Size) (*ExportSpec, error) {
	kfs := track.ExportRange(trim.Start(), trim.End())
	if len(kfs) == 0 {
		return nil, ErrNoKeyframes
	}

	spec := &ExportSpec{
		TrimStart:    trim.Start(),
		TrimEnd:      trim.End(),
		Keyframes:    make([]ExportKeyframe, 0, len(kfs)),
		AspectWidth:  ExportAspectWidth,
		AspectHeight: ExportAspectHeight,
		Canvas:       canvas,
		Video:        video,
	}

	for _, kf := range kfs {
		crop, err := geometry.ToVideoSpace(kf.Selection.Rect(), canvas, video)
		if err != nil {
			return nil, err
		}
		spec.Keyframes = append(spec.Keyframes, ExportKeyframe{
			Time: trim.Relative(kf.Timestamp),
			Crop: geometry.ClampToBounds(crop, video),
			Zoom: kf.Selection.Zoom,
		})
	}

	return spec, nil
}

// At returns the keyframe in effect at trim-relative time t under the
// hold-last-value policy: the latest keyframe at or before t, or the first
// keyframe when t precedes it.
func (s *ExportSpec) At(t float64) ExportKeyframe {
	current := s.Keyframes[0]
	for _, kf := range s.Keyframes[1:] {
		if kf.Time > t {
			break
		}
		current = kf
	}
	return current
}

// TrimmedDuration returns the duration of the export window.
func (s *ExportSpec) TrimmedDuration() float64 {
	return s.TrimEnd - s.TrimStart
}
