package engine

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 250 * time.Millisecond

// Watch monitors root for source changes and invokes onChange with the batch
// of still-existing changed files collected during one debounce window.
// Blocks until ctx is done.
func (e *Engine) Watch(ctx context.Context, root string, onChange func([]string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}
	defer w.Close()

	exc := compileGlobs(e.cfg.Exclude)
	addDirs := func(base string) {
		_ = filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return nil
			}
			if rel, rerr := filepath.Rel(root, path); rerr == nil && rel != "." {
				if matchAny(exc, filepath.ToSlash(rel)+"/") {
					return fs.SkipDir
				}
			}
			_ = w.Add(path)
			return nil
		})
	}
	addDirs(root)

	inc := compileGlobs(e.cfg.Include)
	pending := map[string]struct{}{}
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op.Has(fsnotify.Create) {
				if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
					addDirs(ev.Name) // new subtree needs its own watches
					continue
				}
			}
			rel, rerr := filepath.Rel(root, ev.Name)
			if rerr != nil || !matchAny(inc, filepath.ToSlash(rel)) {
				continue
			}
			pending[ev.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
				timerC = timer.C
			} else {
				timer.Reset(debounceDelay)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			e.log.Warn("watch error", "err", err)
		case <-timerC:
			var paths []string
			for p := range pending {
				if _, err := os.Stat(p); err == nil {
					paths = append(paths, p)
				}
			}
			sort.Strings(paths)
			pending = map[string]struct{}{}
			timer = nil
			timerC = nil
			if len(paths) > 0 {
				onChange(paths)
			}
		}
	}
}
