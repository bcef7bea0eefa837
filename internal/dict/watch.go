package dict

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the burst of write events a shard rewrite
// produces into a single reload.
const reloadDebounce = 500 * time.Millisecond

// Watch reloads the dictionary whenever one of its shard files changes on
// disk. It blocks until ctx is cancelled. Shards are rewritten wholesale
// by the offline batch job, so a debounced full reload is sufficient.
func (d *Dictionary) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Watch the containing directories: batch jobs typically replace the
	// shard file via rename, which drops a watch on the file itself.
	dirs := make(map[string]struct{})
	for _, shard := range d.shards {
		dirs[filepath.Dir(shard)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return err
		}
	}

	shardSet := make(map[string]struct{}, len(d.shards))
	for _, shard := range d.shards {
		shardSet[filepath.Clean(shard)] = struct{}{}
	}

	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if _, watched := shardSet[filepath.Clean(event.Name)]; !watched {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
				timerC = timer.C
			} else {
				timer.Reset(reloadDebounce)
			}
		case <-timerC:
			timerC = nil
			timer = nil
			if err := d.Reload(); err != nil {
				slog.Warn("dictionary reload failed, keeping previous entries", "error", err)
			} else {
				slog.Info("dictionary reloaded", "keys", d.Len())
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("dictionary watcher error", "error", err)
		}
	}
}
