package pointfile

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"autotap/internal/core/autoclicker"
)

const debounceDelay = 50 * time.Millisecond

// Watcher reloads a points file whenever it changes on disk and hands the new
// point set to a callback. Editors often emit several events per save, so
// events are debounced.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func([]autoclicker.ClickPoint)
	logger   autoclicker.Logger

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewWatcher watches the directory holding path, since Save replaces the file
// by rename and a watch on the file itself would be lost.
func NewWatcher(path string, onChange func([]autoclicker.ClickPoint), logger autoclicker.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = watcher.Close()
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return &Watcher{
		path:     abs,
		watcher:  watcher,
		onChange: onChange,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}, nil
}

func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.watchLoop()
}

func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		_ = w.watcher.Close()
	})
	w.wg.Wait()
}

func (w *Watcher) watchLoop() {
	defer w.wg.Done()

	debounce := time.NewTimer(0)
	<-debounce.C
	defer debounce.Stop()

	for {
		select {
		case <-w.stopCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounce.Reset(debounceDelay)

		case <-debounce.C:
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Points file watch error", "path", w.path, "err", err)
		}
	}
}

func (w *Watcher) reload() {
	points, err := Load(w.path)
	if err != nil {
		w.logger.Warn("Ignoring unreadable points file", "path", w.path, "err", err)
		return
	}
	w.logger.Info("Points file reloaded", "path", w.path, "points", len(points))
	w.onChange(points)
}
