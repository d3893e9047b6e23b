package shader

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/glchapters/internal/logger"
)

// Watcher reports writes to a fixed set of shader files.
//
// The parent directories are watched rather than the files themselves so that
// editors replacing a file by rename are still noticed.
type Watcher struct {
	fsw     *fsnotify.Watcher
	files   map[string]struct{}
	changes chan string
	done    chan struct{}
	wg      sync.WaitGroup
	log     *zap.Logger
}

// NewWatcher starts watching paths.
func NewWatcher(paths ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &Watcher{
		fsw:     fsw,
		files:   make(map[string]struct{}, len(paths)),
		changes: make(chan string, 16),
		done:    make(chan struct{}),
		log:     logger.Named("shader-watch"),
	}

	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			path, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			if _, ok := w.files[path]; !ok {
				continue
			}
			select {
			case w.changes <- path:
			default:
				// Poll dedups anyway; a full buffer already carries a pending reload.
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

// Poll drains pending changes without blocking. Each path appears once.
func (w *Watcher) Poll() []string {
	var out []string
	seen := make(map[string]struct{})
	for {
		select {
		case p := <-w.changes:
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		default:
			return out
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}
