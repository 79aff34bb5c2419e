package editor

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"thirdcoast.systems/clipstudio/pkg/utils/geometry"
)

// RecordingFile is the wire format for persisting or handing off a recorded
// keyframe track together with its trim window. It serializes to JSON or
// YAML. Canvas is carried so an offline renderer can redo the canvas-to-video
// mapping; older files without it are mapped 1:1 against the video frame.
type RecordingFile struct {
	Keyframes      []Keyframe     `json:"keyframes" yaml:"keyframes"`
	StartTime      float64        `json:"startTime" yaml:"startTime"`
	EndTime        float64        `json:"endTime" yaml:"endTime"`
	Duration       float64        `json:"duration" yaml:"duration"`
	TotalKeyframes int            `json:"totalKeyframes" yaml:"totalKeyframes"`
	ExportedAt     time.Time      `json:"exportedAt" yaml:"exportedAt"`
	Canvas         *geometry.Size `json:"canvas,omitempty" yaml:"canvas,omitempty"`
}

// BuildRecordingFile snapshots a track and trim into the wire format.
func BuildRecordingFile(track *Track, trim *TrimRange, canvas geometry.Size) RecordingFile {
	f := RecordingFile{
		Keyframes:      track.Keyframes(),
		StartTime:      trim.Start(),
		EndTime:        trim.End(),
		Duration:       track.Duration(),
		TotalKeyframes: track.Len(),
		ExportedAt:     time.Now().UTC(),
	}
	if canvas.Valid() {
		f.Canvas = &canvas
	}
	return f
}

// Import replaces the track's entire contents with the file's keyframes:
// clear, then bulk-insert. Each timestamp is bounds-checked against the
// file's own [0, duration]; out-of-range keyframes are dropped. No other
// cross-field consistency is validated. Returns the number inserted.
func (t *Track) Import(f RecordingFile) int {
	t.Clear()
	t.duration = f.Duration

	inserted := 0
	for _, kf := range f.Keyframes {
		if kf.Timestamp < 0 || kf.Timestamp > f.Duration {
			continue
		}
		t.keyframes[kf.Timestamp] = kf
		if kf.Timestamp > t.lastTime {
			t.lastTime = kf.Timestamp
		}
		inserted++
	}
	return inserted
}

// EncodeJSON writes the file as indented JSON.
func (f RecordingFile) EncodeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

// EncodeYAML writes the file as YAML.
func (f RecordingFile) EncodeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(f)
}

// DecodeRecordingFile parses a recording file. The format is chosen by the
// content type or filename hint ("yaml"/"yml" selects YAML, anything else
// JSON).
func DecodeRecordingFile(data []byte, hint string) (RecordingFile, error) {
	var f RecordingFile
	if isYAMLHint(hint) {
		if err := yaml.Unmarshal(data, &f); err != nil {
			return RecordingFile{}, fmt.Errorf("parse recording yaml: %w", err)
		}
		return f, nil
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return RecordingFile{}, fmt.Errorf("parse recording json: %w", err)
	}
	return f, nil
}

func isYAMLHint(hint string) bool {
	h := strings.ToLower(hint)
	return strings.Contains(h, "yaml") || strings.Contains(h, "yml")
}
