package ffmpeg

import (
	"fmt"
)

// CropPixels adds a static crop filter with pixel coordinates.
func CropPixels(w, h, x, y int) Option {
	return Filter(fmt.Sprintf("crop=%d:%d:%d:%d", w, h, x, y))
}

// Scale adds a scale filter.
// Use -2 for width or height to auto-calculate while maintaining aspect ratio
// and ensuring even dimensions (required for h264).
func Scale(width, height int) Option {
	return Filter(fmt.Sprintf("scale=%d:%d", width, height))
}

// ScaleWidth scales to a specific width, auto-calculating height with even dimensions.
func ScaleWidth(width int) Option {
	return Scale(width, -2)
}

// ScaleFrameEval adds a scale filter re-evaluated per frame, for use after a
// crop whose window size changes mid-stream.
func ScaleFrameEval(width, height int) Option {
	return Filter(fmt.Sprintf("scale=%d:%d:eval=frame", width, height))
}

// SetSAR forces the sample aspect ratio, normally to 1 after crop+scale so
// players don't stretch the output.
func SetSAR(ratio string) Option {
	return Filter("setsar=" + ratio)
}

// FPS adds an fps filter to change frame rate.
func FPS(rate float64) Option {
	return Filter(fmt.Sprintf("fps=%g", rate))
}

// ScaleForceAspect scales with force_original_aspect_ratio option.
// mode can be "increase", "decrease", or "disable".
func ScaleForceAspect(width, height int, mode string) Option {
	return Filter(fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=%s", width, height, mode))
}

// PadCenter adds padding to center the video in the target dimensions.
func PadCenter(width, height int) Option {
	return Filter(fmt.Sprintf("pad=%d:%d:(ow-iw)/2:(oh-ih)/2", width, height))
}

// EvenDimensions ensures output dimensions are divisible by 2 (required for h264).
// This should be applied after any crop filter that may produce odd dimensions.
func EvenDimensions() Option {
	return Filter("scale=trunc(iw/2)*2:trunc(ih/2)*2")
}
