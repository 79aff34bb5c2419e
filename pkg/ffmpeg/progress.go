package ffmpeg

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"
)

// Progress is one snapshot of an export's -progress stream. Only the fields
// the clip pipeline consumes are retained: position for percent math, frame
// and speed for operator logs, Done for the terminal update.
type Progress struct {
	Frame   int64
	FPS     float64
	OutTime time.Duration
	Speed   string // encoding speed multiplier as reported, e.g. "2.5x"
	Done    bool   // true on the final "progress=end" update
}

// Seconds returns the rendered output position in seconds.
func (p Progress) Seconds() float64 {
	return p.OutTime.Seconds()
}

// Percent reports completion against a clip duration in seconds, clamped to
// [0, 99]. 100 is never reported here; the caller owns the terminal state.
func (p Progress) Percent(clipSeconds float64) int {
	if clipSeconds <= 0 {
		return 0
	}
	pct := int(p.Seconds() / clipSeconds * 100)
	if pct < 0 {
		return 0
	}
	if pct > 99 {
		return 99
	}
	return pct
}

// progressParser accumulates key=value lines until a "progress=" line
// completes an update.
type progressParser struct {
	current Progress
}

// feed consumes one line of -progress output. The returned snapshot is valid
// only when complete is true.
func (p *progressParser) feed(line string) (snapshot Progress, complete bool) {
	key, value, found := strings.Cut(strings.TrimSpace(line), "=")
	if !found {
		return Progress{}, false
	}

	switch key {
	case "frame":
		p.current.Frame, _ = strconv.ParseInt(value, 10, 64)
	case "fps":
		p.current.FPS, _ = strconv.ParseFloat(value, 64)
	case "out_time_us":
		us, _ := strconv.ParseInt(value, 10, 64)
		p.current.OutTime = time.Duration(us) * time.Microsecond
	case "speed":
		p.current.Speed = value
	case "progress":
		p.current.Done = value == "end"
		return p.current, true
	}

	return Progress{}, false
}

// ParseProgressOutput reads ffmpeg -progress output until the stream ends or
// the final update arrives, sending one Progress per completed update. The
// channel is left open; the caller decides when to close it.
func ParseProgressOutput(r io.Reader, progress chan<- Progress) {
	parser := progressParser{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		snapshot, complete := parser.feed(scanner.Text())
		if !complete {
			continue
		}
		progress <- snapshot
		if snapshot.Done {
			return
		}
	}
}
