// Command render produces a portrait clip from a recording file and its
// source video without the studio service: the same track import, export
// builder, and ffmpeg pipeline, driven from the command line. A directory
// of recording files is rendered as a bounded-parallel batch; -watch keeps
// rendering files as they are dropped into a spool directory.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"thirdcoast.systems/clipstudio/pkg/ffmpeg"
)

func main() {
	var opts renderOptions
	var watchDir string
	var filtersJSON string
	var jobs int

	flag.StringVar(&opts.In, "in", "", "recording file (.json/.yaml) or a directory of them")
	flag.StringVar(&opts.Source, "src", "", "source video (default: sibling of the recording file)")
	flag.StringVar(&opts.Out, "o", "", "output file, or output directory in batch/watch mode")
	flag.StringVar(&opts.Format, "format", "mp4", "output format: mp4, webm or gif")
	flag.StringVar(&opts.Quality, "quality", "high", "quality tier: fast, high or max")
	flag.StringVar(&filtersJSON, "filters", "", `appearance filters as a JSON array, e.g. '[{"type":"grayscale"}]'`)
	flag.BoolVar(&opts.Smooth, "smooth", false, "resample the motion through the eased interpolator")
	flag.IntVar(&opts.Width, "w", 1080, "output width")
	flag.IntVar(&opts.Height, "h", 1920, "output height")
	flag.StringVar(&watchDir, "watch", "", "watch a spool directory for recording files")
	flag.IntVar(&jobs, "jobs", 2, "parallel renders in batch mode")
	flag.Parse()

	if filtersJSON != "" {
		if err := json.Unmarshal([]byte(filtersJSON), &opts.Filters); err != nil {
			slog.Error("invalid -filters", "error", err)
			os.Exit(2)
		}
		if _, err := ffmpeg.CompileFilters(opts.Filters); err != nil {
			slog.Error("invalid -filters", "error", err)
			os.Exit(2)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watchDir != "" {
		if err := watchSpool(ctx, watchDir, opts); err != nil {
			slog.Error("watch failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if opts.In == "" {
		flag.Usage()
		os.Exit(2)
	}

	st, err := os.Stat(opts.In)
	if err != nil {
		slog.Error("cannot read input", "error", err)
		os.Exit(1)
	}

	if st.IsDir() {
		if err := renderBatch(ctx, opts, jobs); err != nil {
			slog.Error("batch render failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := renderFile(ctx, opts); err != nil {
		slog.Error("render failed", "error", err, "in", opts.In)
		os.Exit(1)
	}
}

// renderBatch renders every recording file in the input directory, at most
// `jobs` at a time.
func renderBatch(ctx context.Context, opts renderOptions, jobs int) error {
	entries, err := os.ReadDir(opts.In)
	if err != nil {
		return err
	}
	if jobs < 1 {
		jobs = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	count := 0
	for _, entry := range entries {
		if entry.IsDir() || !isRecordingFile(entry.Name()) {
			continue
		}
		count++
		fileOpts := opts
		fileOpts.In = filepath.Join(opts.In, entry.Name())
		fileOpts.Source = ""
		g.Go(func() error {
			return renderFile(ctx, fileOpts)
		})
	}

	slog.Info("batch render", "dir", opts.In, "files", count, "jobs", jobs)
	return g.Wait()
}

func isRecordingFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
