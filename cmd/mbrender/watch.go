package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long the preset must stay quiet before a render starts.
// Editors often write a file in several steps.
const settle = 150 * time.Millisecond

// watchPreset calls onChange after every burst of writes to path until ctx
// is done. The directory is watched rather than the file so that editors
// replacing the file by rename are still seen.
func watchPreset(ctx context.Context, path string, onChange func(), logf func(string, ...any)) error {
	path = filepath.Clean(path)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	logf("watching %s", path)

	timer := time.NewTimer(settle)
	timer.Stop()

	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}

			logf("%s: %s", ev.Op, ev.Name)
			timer.Reset(settle)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			logf("watch: %v", err)
		case <-timer.C:
			onChange()
		}
	}
}
