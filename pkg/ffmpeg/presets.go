package ffmpeg

// Preset bundles combine common option combinations.

// PresetClipHQ returns options for high-quality clip export.
// The medium preset enables the full x264 feature set (CABAC, B-frames,
// multiple reference frames, subpixel ME); CRF 21 is high quality without
// bloating file sizes.
func PresetClipHQ() []Option {
	return []Option{
		VideoCodec("libx264"),
		CRF(21),
		Preset("medium"),
		PixelFormat("yuv420p"),
	}
}

// PresetClipFast returns options for fast preview-grade clip encoding.
func PresetClipFast() []Option {
	return []Option{
		VideoCodec("libx264"),
		CRF(26),
		Preset("veryfast"),
		PixelFormat("yuv420p"),
	}
}

// PresetClipAAC returns options for high-quality AAC audio export.
func PresetClipAAC() []Option {
	return []Option{
		AudioCodec("aac"),
		AudioBitrate("192k"),
		AudioChannels(2),
	}
}

// PresetClipWebM returns options for VP9/Opus WebM export.
// Uses CRF 24 with row-mt for reasonable encode speed.
func PresetClipWebM() []Option {
	return []Option{
		VideoCodec("libvpx-vp9"),
		CRF(24),
		ExtraArgs("-b:v", "0", "-row-mt", "1"),
		PixelFormat("yuv420p"),
	}
}

// PresetClipOpus returns options for Opus audio in WebM container.
func PresetClipOpus() []Option {
	return []Option{
		AudioCodec("libopus"),
		AudioBitrate("128k"),
		AudioChannels(2),
	}
}

// PresetClipGIF returns options for GIF output (frame rate cap, no audio).
func PresetClipGIF() []Option {
	return []Option{
		ExtraArgs("-r", "15"),
		NoAudio,
	}
}

// ExportPresetForFormat returns (video codec options, audio options, file
// extension) for the given format string. Unknown formats fall back to
// (h264, aac, ".mp4").
func ExportPresetForFormat(format, quality string) (video []Option, audio []Option, ext string) {
	switch format {
	case "webm":
		video = PresetClipWebM()
		audio = PresetClipOpus()
		ext = ".webm"
		if quality == "max" {
			video = append(video, CRF(18))
		}
	case "gif":
		video = PresetClipGIF()
		audio = nil
		ext = ".gif"
	default: // "mp4"
		video = PresetClipHQ()
		audio = PresetClipAAC()
		ext = ".mp4"
		if quality == "max" {
			video = append(video, CRF(17), Preset("slow"))
		}
	}
	return
}

// Flatten merges multiple option slices into one.
func Flatten(groups ...[]Option) []Option {
	var all []Option
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}
