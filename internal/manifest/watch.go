package manifest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rjeczalik/notify"
)

// debounce coalesces the burst of events a copy or editor save produces.
const debounce = 200 * time.Millisecond

// Logger is the subset of logging.Logger that Watch reports through.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Error(string, ...interface{})
}

// Watch generates the manifest for dir, then regenerates it after every
// change to the folder until ctx is cancelled. Changes to images.json itself
// and to atomic-write temp files are ignored so a write cannot retrigger.
func Watch(ctx context.Context, dir string, opts Options, log Logger) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	events := make(chan notify.EventInfo, 16)
	if err := notify.Watch(abs, events, notify.Create, notify.Remove, notify.Rename, notify.Write); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	defer notify.Stop(events)

	m, path, err := Generate(dir, opts)
	if err != nil {
		return err
	}
	log.Success("Wrote %s (%d images)", path, len(m))
	log.Info("Watching %s for changes", dir)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if ignoredPath(ev.Path()) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			m, path, err := Generate(dir, opts)
			if err != nil {
				log.Error("Manifest not updated: %v", err)
				continue
			}
			log.Success("Wrote %s (%d images)", path, len(m))
		}
	}
}

func ignoredPath(path string) bool {
	base := filepath.Base(path)
	return base == FileName || strings.HasPrefix(base, ".tmp-")
}
