package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay is how long a spool file must sit unmodified before it is
// rendered, so half-written drops are not picked up.
const settleDelay = 2 * time.Second

// watchSpool renders recording files as they appear in dir. The source video
// must sit next to the recording file (same basename); outputs land in -o
// when set, otherwise next to the input.
func watchSpool(ctx context.Context, dir string, opts renderOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	slog.Info("watching spool directory", "dir", dir)

	// A pending timestamp per file debounces the create/write event bursts
	// editors and copies produce.
	pending := map[string]time.Time{}
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !isRecordingFile(event.Name) {
				continue
			}
			pending[event.Name] = time.Now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)

		case <-ticker.C:
			for path, touched := range pending {
				if time.Since(touched) < settleDelay {
					continue
				}
				delete(pending, path)

				fileOpts := opts
				fileOpts.In = path
				fileOpts.Source = ""
				if err := renderFile(ctx, fileOpts); err != nil {
					slog.Error("spool render failed", "error", err, "in", filepath.Base(path))
				}
			}
		}
	}
}
