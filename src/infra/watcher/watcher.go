package watcher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"lrcsolid/src/music"
)

// Files are often still being copied when the create event fires, so each
// file gets a settle period before its event is emitted.
const debounce = 2 * time.Second

// Watcher monitors a directory for new audio files and emits a FileEvent
// per file once it stops changing.
type Watcher struct {
	watcher   *fsnotify.Watcher
	eventChan chan<- FileEvent
	timersMu  sync.Mutex
	timers    map[string]*time.Timer
	stopChan  chan struct{}
	running   bool
}

// NewWatcher creates a new file system watcher.
func NewWatcher(eventChan chan<- FileEvent) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:   fsw,
		eventChan: eventChan,
		timers:    make(map[string]*time.Timer),
		stopChan:  make(chan struct{}),
	}, nil
}

// Start begins watching the given directory for new files.
func (w *Watcher) Start(ctx context.Context, watchPath string) error {
	slog.Info("Starting file watcher", "path", watchPath)

	if err := w.watcher.Add(watchPath); err != nil {
		return err
	}

	w.running = true
	go w.watchLoop(ctx)

	return nil
}

// Stop stops the file watcher.
func (w *Watcher) Stop() {
	if !w.running {
		return
	}

	slog.Info("Stopping file watcher")
	w.running = false
	close(w.stopChan)

	w.timersMu.Lock()
	for _, timer := range w.timers {
		timer.Stop()
	}
	w.timersMu.Unlock()

	w.watcher.Close()
}

// watchLoop processes file system events.
func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", "error", err)

		case <-w.stopChan:
			return

		case <-ctx.Done():
			return
		}
	}
}

// handleEvent processes a single file system event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create != fsnotify.Create {
		return
	}
	if !music.IsSupportedPath(event.Name) {
		return
	}

	slog.Info("Detected new supported file", "file", event.Name)

	w.timersMu.Lock()
	defer w.timersMu.Unlock()

	if timer, ok := w.timers[event.Name]; ok {
		timer.Stop()
	}
	path := event.Name
	w.timers[path] = time.AfterFunc(debounce, func() {
		w.emit(path)
	})
}

// emit delivers a file event after its debounce period.
func (w *Watcher) emit(path string) {
	w.timersMu.Lock()
	delete(w.timers, path)
	w.timersMu.Unlock()

	select {
	case w.eventChan <- FileEvent{Path: path, Timestamp: time.Now()}:
	default:
		slog.Warn("Event channel full, dropping file event", "path", path)
	}
}
