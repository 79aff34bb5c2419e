package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sync"
	"time"

	"thirdcoast.systems/clipstudio/internal/editor"
	"thirdcoast.systems/clipstudio/internal/storage"
	"thirdcoast.systems/clipstudio/pkg/ffmpeg"
)

// Pool runs the export workers. Each worker claims queued jobs from the
// store, encodes them with ffmpeg, and promotes the result into the exports
// directory. Workers sleep on a wake channel with a periodic poll as backstop.
type Pool struct {
	store   *Store
	files   storage.Storage
	logger  *slog.Logger
	workers int
	outW    int
	outH    int

	wake chan struct{}

	mu      sync.Mutex
	running map[string]context.CancelFunc
}

// NewPool creates a worker pool encoding to outW x outH.
func NewPool(store *Store, files storage.Storage, logger *slog.Logger, workers, outW, outH int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{
		store:   store,
		files:   files,
		logger:  logger,
		workers: workers,
		outW:    outW,
		outH:    outH,
		wake:    make(chan struct{}, 1),
		running: make(map[string]context.CancelFunc),
	}
}

// Start recovers jobs stuck in processing from a previous instance and
// launches the workers. It returns immediately; workers exit when ctx ends.
func (p *Pool) Start(ctx context.Context) {
	if n, err := p.store.ResetStuck(ctx); err != nil {
		p.logger.Error("failed to recover stuck jobs", "error", err)
	} else if n > 0 {
		p.logger.Info("requeued stuck jobs", "count", n)
	}

	p.logger.Info("render workers started", "workers", p.workers)
	for i := 0; i < p.workers; i++ {
		go p.worker(ctx)
	}
}

// Wake nudges an idle worker, called after enqueuing a job.
func (p *Pool) Wake() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Cancel cancels a job: the catalog row moves to canceled and, when a worker
// is mid-encode, its ffmpeg process is stopped.
func (p *Pool) Cancel(ctx context.Context, id string) error {
	if err := p.store.MarkCanceled(ctx, id); err != nil {
		return err
	}

	p.mu.Lock()
	cancel, ok := p.running[id]
	p.mu.Unlock()
	if ok {
		cancel()
	}
	return nil
}

func (p *Pool) worker(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		// Process jobs until queue is empty
		for {
			job, err := p.store.ClaimNextQueued(ctx)
			if err != nil {
				if errors.Is(err, ErrJobNotFound) {
					break
				}
				p.logger.Error("failed to claim queued job", "error", err)
				time.Sleep(2 * time.Second)
				break
			}

			if err := p.process(ctx, job); err != nil {
				p.logger.Error("export failed", "job_id", job.ID, "error", err)
				if ferr := p.store.FinishError(ctx, job.ID, err.Error()); ferr != nil && !errors.Is(ferr, ErrJobNotFound) {
					// ErrJobNotFound here means the job was canceled mid-encode.
					p.logger.Error("failed to record job error", "job_id", job.ID, "error", ferr)
				}
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-p.wake:
			// new job notification
		case <-time.After(5 * time.Second):
			// periodic poll
		}
	}
}

func (p *Pool) process(ctx context.Context, job *Job) error {
	p.logger.Info("processing export", "job_id", job.ID, "session_id", job.SessionID, "format", job.Format)

	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	p.mu.Lock()
	p.running[job.ID] = cancel
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		delete(p.running, job.ID)
		p.mu.Unlock()
	}()

	videoPreset, audioPreset, ext := ffmpeg.ExportPresetForFormat(job.Format, job.Quality)
	scratchPath := p.files.ScratchPath(job.ID + ext + ".part")
	finalName := job.ID + ext

	if err := p.store.SetOutputPath(ctx, job.ID, p.files.ExportPath(finalName)); err != nil {
		p.logger.Warn("failed to record output path", "job_id", job.ID, "error", err)
	}

	steps := MotionSteps(&job.Spec)

	var cleanup []string
	defer func() { _ = p.files.Remove(cleanup...) }()

	scriptPath := ""
	if len(steps) > 1 {
		scriptPath = p.files.ScratchPath(job.ID + ".cmd")
		if err := os.WriteFile(scriptPath, []byte(ffmpeg.MotionScript(steps)), 0o644); err != nil {
			return fmt.Errorf("write motion script: %w", err)
		}
		cleanup = append(cleanup, scriptPath)
	}

	opts := []ffmpeg.Option{ffmpeg.SeekToSeconds(job.Spec.TrimStart, job.Spec.TrimEnd)}
	opts = append(opts, ffmpeg.Flatten(videoPreset, audioPreset)...)
	opts = append(opts, ffmpeg.MotionCrop(steps, scriptPath, p.outW, p.outH)...)

	// Appearance filters run after the crop/scale stages so they see the
	// final frame.
	appearance, err := ffmpeg.CompileFilters(job.Spec.Filters)
	if err != nil {
		return fmt.Errorf("compile appearance filters: %w", err)
	}
	opts = append(opts, appearance...)

	cmd := ffmpeg.NewCommand(job.SourcePath, scratchPath, opts...)

	progressChan := make(chan ffmpeg.Progress, 100)
	proc, err := cmd.StartWithProgress(jobCtx, progressChan)
	if err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	// Progress updates, throttled; 100 is reserved for the ready state.
	clipDuration := job.Spec.TrimmedDuration()
	lastPct := -1
	lastUpdate := time.Time{}
	for progress := range progressChan {
		pct := progress.Percent(clipDuration)
		now := time.Now()
		if pct != lastPct && now.Sub(lastUpdate) > time.Second {
			lastPct = pct
			lastUpdate = now
			_ = p.store.UpdateProgress(ctx, job.ID, pct)
		}
	}

	if err := proc.Wait(); err != nil {
		_ = os.Remove(scratchPath)
		if jobCtx.Err() != nil && ctx.Err() == nil {
			// Canceled via Cancel(); the row is already terminal.
			p.logger.Info("export canceled", "job_id", job.ID)
			return nil
		}
		return fmt.Errorf("ffmpeg failed: %w", err)
	}

	st, err := os.Stat(scratchPath)
	if err != nil {
		return fmt.Errorf("output file missing: %w", err)
	}

	// Validate output is a playable media file
	probe, probeErr := ffmpeg.Probe(ctx, scratchPath)
	if probeErr != nil {
		_ = os.Remove(scratchPath)
		return fmt.Errorf("output validation failed (ffprobe): %w", probeErr)
	}
	if probe.Duration <= 0 {
		_ = os.Remove(scratchPath)
		return fmt.Errorf("output validation failed: empty duration")
	}

	finalPath, err := p.files.Promote(scratchPath, finalName)
	if err != nil {
		return err
	}

	if err := p.store.FinishReady(ctx, job.ID, st.Size(), probe.Duration); err != nil {
		return fmt.Errorf("failed to mark job ready: %w", err)
	}

	if url, err := p.files.Publish(ctx, "clips/"+finalName, finalPath); err != nil {
		if !errors.Is(err, storage.ErrS3NotConfigured) {
			p.logger.Warn("publish failed", "job_id", job.ID, "error", err)
		}
	} else if err := p.store.SetPublishedURL(ctx, job.ID, url); err != nil {
		p.logger.Warn("failed to record published url", "job_id", job.ID, "error", err)
	}

	p.logger.Info("export ready", "job_id", job.ID, "path", finalPath, "bytes", st.Size())
	return nil
}

// MotionSteps converts an export spec's keyframes into crop retarget steps.
// Crop windows round to whole pixels with even dimensions.
func MotionSteps(spec *editor.ExportSpec) []ffmpeg.MotionStep {
	steps := make([]ffmpeg.MotionStep, 0, len(spec.Keyframes))
	for _, kf := range spec.Keyframes {
		steps = append(steps, ffmpeg.MotionStep{
			Time:   kf.Time,
			Width:  int(math.Round(kf.Crop.Width)),
			Height: int(math.Round(kf.Crop.Height)),
			X:      int(math.Round(kf.Crop.X)),
			Y:      int(math.Round(kf.Crop.Y)),
		}.Even())
	}
	return steps
}
