package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fivemoreminix/broadnic/pkg/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

// autosaveTick is the data of the interrupt event that asks the event loop to
// take a snapshot for the autosaver.
type autosaveTick struct{}

// autosavePath returns where the document at path is autosaved: a hidden file
// next to it, so the rename in writeAtomic stays on one filesystem.
func autosavePath(path string) string {
	dir, name := filepath.Split(path)
	return filepath.Join(dir, "."+name+".autosave")
}

// writeAtomic writes snap to a temporary file in the directory of path and
// renames it over path. Readers of path see either the old or the new
// contents, never a partial write.
func writeAtomic(snap *buffer.Snapshot, path string) error {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, name+".tmp*")
	if err != nil {
		return fmt.Errorf("autosave %s: %w", path, err)
	}
	defer os.Remove(tmp.Name()) // No-op once renamed

	if _, err := snap.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("autosave %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("autosave %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("autosave %s: %w", path, err)
	}
	return nil
}

// An autosaver writes snapshots of one document in the background. At most
// one write is in flight; snapshots taken while one is running are dropped.
type autosaver struct {
	path string
	log  logrus.FieldLogger

	writing *semaphore.Weighted // Held by the running write
}

func newAutosaver(docPath string, log logrus.FieldLogger) *autosaver {
	return &autosaver{
		path:    autosavePath(docPath),
		log:     log.WithField("autosave", autosavePath(docPath)),
		writing: semaphore.NewWeighted(1),
	}
}

// Save starts writing snap unless a write is already running, and reports
// whether it started.
func (a *autosaver) Save(snap *buffer.Snapshot) bool {
	if !a.writing.TryAcquire(1) {
		a.log.Debug("previous autosave still running, skipping")
		return false
	}

	go func() {
		defer a.writing.Release(1)

		start := time.Now()
		if err := writeAtomic(snap, a.path); err != nil {
			a.log.WithError(err).Warn("autosave failed")
			return
		}
		a.log.WithFields(logrus.Fields{
			"bytes":   snap.Len(),
			"lines":   snap.Lines(),
			"elapsed": time.Since(start),
		}).Debug("autosaved")
	}()
	return true
}

// Wait blocks until the running write, if any, has finished.
func (a *autosaver) Wait() {
	_ = a.writing.Acquire(context.Background(), 1) // Never fails without a deadline
	a.writing.Release(1)
}

// Discard waits for the running write and removes the autosave file. It is
// called once the document itself has been saved.
func (a *autosaver) Discard() {
	a.Wait()
	if err := os.Remove(a.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		a.log.WithError(err).Warn("could not remove autosave file")
	}
}

// postAutosaveTicks posts an autosaveTick interrupt to s every interval until
// ctx is done. A tick that does not fit in the event queue is dropped.
func postAutosaveTicks(ctx context.Context, s tcell.Screen, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = s.PostEvent(tcell.NewEventInterrupt(autosaveTick{}))
		}
	}
}
