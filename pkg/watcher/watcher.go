package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last change before a
// callback runs
const DefaultDebounce = 500 * time.Millisecond

// FileWatcher reports changes to individual files. It watches the parent
// directories, so files replaced by rename are still tracked.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	files    map[string]func(string)
	dirs     map[string]int
	debounce time.Duration
	timers   map[string]*time.Timer
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(debounce time.Duration) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		files:    make(map[string]func(string)),
		dirs:     make(map[string]int),
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
	}, nil
}

// Watch calls onChange with the absolute path whenever the file is
// written or replaced
func (fw *FileWatcher) Watch(file string, onChange func(string)) error {
	absPath, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", file, err)
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if _, exists := fw.files[absPath]; !exists {
		dir := filepath.Dir(absPath)
		if fw.dirs[dir] == 0 {
			if err := fw.watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
		}
		fw.dirs[dir]++
	}
	fw.files[absPath] = onChange
	return nil
}

// Unwatch stops reporting changes of the file
func (fw *FileWatcher) Unwatch(file string) error {
	absPath, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", file, err)
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if _, exists := fw.files[absPath]; !exists {
		return nil
	}
	delete(fw.files, absPath)
	if timer, exists := fw.timers[absPath]; exists {
		timer.Stop()
		delete(fw.timers, absPath)
	}

	dir := filepath.Dir(absPath)
	fw.dirs[dir]--
	if fw.dirs[dir] == 0 {
		delete(fw.dirs, dir)
		if err := fw.watcher.Remove(dir); err != nil {
			return fmt.Errorf("failed to unwatch %s: %w", dir, err)
		}
	}
	return nil
}

// Run dispatches file events until the context ends or the watcher is closed
func (fw *FileWatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				fw.handleFileChange(filepath.Clean(event.Name))
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fmt.Printf("Watcher error: %v\n", err)
		}
	}
}

// Start runs the event loop in the background
func (fw *FileWatcher) Start() {
	go fw.Run(context.Background())
}

// handleFileChange handles a file change event with debouncing
func (fw *FileWatcher) handleFileChange(filePath string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	callback, exists := fw.files[filePath]
	if !exists {
		return
	}

	if timer, exists := fw.timers[filePath]; exists {
		timer.Stop()
	}

	fw.timers[filePath] = time.AfterFunc(fw.debounce, func() {
		callback(filePath)
	})
}

// Close stops the watcher and pending callbacks
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	for _, timer := range fw.timers {
		timer.Stop()
	}
	fw.timers = make(map[string]*time.Timer)
	fw.mu.Unlock()

	return fw.watcher.Close()
}
