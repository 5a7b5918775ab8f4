package codebase

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const defaultPollInterval = time.Second

// jdlFiles maps every *.jdl file under root to its modification time.
// Hidden directories are skipped and unreadable entries ignored.
func jdlFiles(root string) map[string]time.Time {
	files := make(map[string]time.Time)
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		switch {
		case err != nil:
			return nil
		case d.IsDir():
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		case filepath.Ext(path) != fileExt:
			return nil
		}
		if info, err := d.Info(); err == nil {
			files[path] = info.ModTime()
		}
		return nil
	})
	return files
}

// fileChanges lists, in path order, the documents to reparse and the ones
// that disappeared between two snapshots.
type fileChanges struct {
	modified []string
	removed  []string
}

func (fc fileChanges) empty() bool {
	return len(fc.modified) == 0 && len(fc.removed) == 0
}

func diffSnapshots(prev, next map[string]time.Time) fileChanges {
	var fc fileChanges
	for path, mod := range next {
		if old, ok := prev[path]; !ok || mod.After(old) {
			fc.modified = append(fc.modified, path)
		}
	}
	for path := range prev {
		if _, ok := next[path]; !ok {
			fc.removed = append(fc.removed, path)
		}
	}
	sort.Strings(fc.modified)
	sort.Strings(fc.removed)
	return fc
}

// Watcher keeps a Codebase in step with the *.jdl files on disk by polling
// their modification times.
type Watcher struct {
	codebase *Codebase
	interval time.Duration
	snapshot map[string]time.Time

	done      chan struct{}
	closeOnce sync.Once
}

// NewWatcher returns a watcher polling c's root every interval, or every
// second when interval is not positive.
func NewWatcher(c *Codebase, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Watcher{
		codebase: c,
		interval: interval,
		snapshot: map[string]time.Time{},
		done:     make(chan struct{}),
	}
}

// Watch polls once, then again on every tick until ctx is done or Close is
// called.
func (w *Watcher) Watch(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.poll()
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case <-ticker.C:
		}
	}
}

func (w *Watcher) Close() {
	w.closeOnce.Do(func() { close(w.done) })
}

// poll reparses documents modified since the previous call and drops the
// removed ones.
func (w *Watcher) poll() fileChanges {
	next := jdlFiles(w.codebase.RootDir())
	changes := diffSnapshots(w.snapshot, next)
	w.snapshot = next

	for _, path := range changes.modified {
		if err := w.codebase.ScanFile(path); err != nil {
			log.Warningf("rescan: %s", err)
			delete(w.snapshot, path)
		}
	}
	for _, path := range changes.removed {
		w.codebase.RemoveFile(path)
	}
	if !changes.empty() {
		log.Debugf("synced %s: %d modified, %d removed",
			w.codebase.RootDir(), len(changes.modified), len(changes.removed))
	}
	return changes
}
