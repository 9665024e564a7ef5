package store

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned when operating on a closed watcher.
var ErrWatcherClosed = errors.New("watcher is closed")

// ReloadHandler is called after the watched store reloaded, with the
// reload error if one occurred.
type ReloadHandler func(err error)

// Watcher reloads a FileStore when its backing file changes on disk.
// Editors replace files with rename dances, so the watch covers the
// file's directory and events are debounced before reloading.
type Watcher struct {
	store    *FileStore
	handler  ReloadHandler
	debounce time.Duration

	fsw *fsnotify.Watcher

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
	done   chan struct{}
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before a reload fires.
// The default is 100ms.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// NewWatcher starts watching the store's backing file. The handler is
// invoked after every reload triggered by an external change.
func NewWatcher(st *FileStore, handler ReloadHandler, opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		store:    st,
		handler:  handler,
		debounce: 100 * time.Millisecond,
		fsw:      fsw,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	// Watch the directory: the file itself may not exist yet, and
	// atomic-rename saves replace the inode.
	dir := filepath.Dir(st.Path())
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	go w.processLoop()
	return w, nil
}

// Close stops watching. Pending debounced reloads are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) processLoop() {
	defer close(w.done)

	target := filepath.Clean(w.store.Path())
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.scheduleReload()

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	err := w.store.Reload()
	if w.handler != nil {
		w.handler(err)
	}
}
