package ffmpeg

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// MotionStep is one crop window change on the output timeline. Steps form a
// step function: each window holds until the next step's time. Coordinates
// are source-video pixels.
type MotionStep struct {
	Time   float64 `json:"time"` // seconds from output start
	Width  int     `json:"width"`
	Height int     `json:"height"`
	X      int     `json:"x"`
	Y      int     `json:"y"`
}

// Even returns the step with width/height rounded down to even values,
// required by yuv420p encoders.
func (s MotionStep) Even() MotionStep {
	s.Width -= s.Width % 2
	s.Height -= s.Height % 2
	return s
}

// MotionScript renders a sendcmd command file that retargets the crop filter
// at each step time. The first step seeds the crop filter's initial window,
// so commands start at the second step. Steps are emitted in time order.
//
// Line format per the sendcmd filter:
//
//	4.20 crop w 640, crop h 1138, crop x 100, crop y 50;
func MotionScript(steps []MotionStep) string {
	ordered := make([]MotionStep, len(steps))
	copy(ordered, steps)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Time < ordered[j].Time })

	var b strings.Builder
	for _, s := range ordered[1:] {
		s = s.Even()
		fmt.Fprintf(&b, "%s crop w %d, crop h %d, crop x %d, crop y %d;\n",
			formatSeconds(s.Time), s.Width, s.Height, s.X, s.Y)
	}
	return b.String()
}

// MotionCrop builds the filter chain for a moving crop: crop the source to
// the (possibly retargeted) window, then scale to the fixed output size.
//
// With one step the crop is static. With more, a sendcmd filter driven by a
// script file (see MotionScript) retargets the crop at each step time, and
// the scale is re-evaluated per frame so changing window sizes still land on
// the fixed output dimensions.
func MotionCrop(steps []MotionStep, scriptPath string, outW, outH int) []Option {
	if len(steps) == 0 {
		return []Option{Scale(outW, outH)}
	}

	first := steps[0].Even()
	if len(steps) == 1 {
		return []Option{
			CropPixels(first.Width, first.Height, first.X, first.Y),
			Scale(outW, outH),
			SetSAR("1"),
		}
	}

	return []Option{
		Filter("sendcmd=f=" + escapeFilterArg(scriptPath)),
		CropPixels(first.Width, first.Height, first.X, first.Y),
		ScaleFrameEval(outW, outH),
		SetSAR("1"),
	}
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}

// escapeFilterArg escapes characters that terminate a filtergraph argument
// (Windows drive-letter colons being the usual offender in paths).
func escapeFilterArg(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `:`, `\:`, `'`, `\'`, `,`, `\,`, `;`, `\;`, `[`, `\[`, `]`, `\]`)
	return r.Replace(s)
}
