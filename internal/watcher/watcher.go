// Package watcher re-runs a handler on dialect files as they change.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounceWindow = 100 * time.Millisecond

// Watcher wraps fsnotify and invokes a handler per written file, with
// write bursts coalesced into one invocation.
type Watcher struct {
	fw      *fsnotify.Watcher
	logger  *zap.Logger
	handler func(path string)
	match   func(path string) bool

	mu       sync.Mutex
	lastSeen map[string]time.Time
	watching bool
}

// New returns a Watcher that calls handler for every written file
// accepted by match.
func New(logger *zap.Logger, match func(string) bool, handler func(string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		fw:       fw,
		logger:   logger,
		handler:  handler,
		match:    match,
		lastSeen: make(map[string]time.Time),
	}, nil
}

// Add registers paths to watch. Directories are walked so nested files
// are covered too.
func (w *Watcher) Add(paths ...string) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("error accessing %s: %w", path, err)
		}
		if !info.IsDir() {
			if err := w.fw.Add(path); err != nil {
				return err
			}
			continue
		}
		err = filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				return w.fw.Add(p)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}
	return nil
}

// Start begins the event loop in a goroutine.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watching {
		return fmt.Errorf("already watching")
	}
	w.watching = true
	go w.loop()
	return nil
}

// Stop ends the event loop and releases the underlying watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	w.watching = false
	w.mu.Unlock()
	return w.fw.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !w.match(event.Name) {
		return
	}
	if !w.shouldHandle(event.Name) {
		return
	}
	w.handler(event.Name)
}

// shouldHandle coalesces the multiple write events editors emit for one
// save into a single handler call.
func (w *Watcher) shouldHandle(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := time.Now()
	if last, ok := w.lastSeen[path]; ok && now.Sub(last) < debounceWindow {
		return false
	}
	w.lastSeen[path] = now
	return true
}
