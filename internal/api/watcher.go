package api

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/talentflow/talentflow/internal/config"
	"github.com/talentflow/talentflow/internal/model"
)

// debounceDelay coalesces bursts of writes to one file into one event.
const debounceDelay = 100 * time.Millisecond

// ChangeSubscriber receives change notifications from a DataWatcher.
type ChangeSubscriber interface {
	OnChange(event model.ChangeEvent)
}

// DataWatcher watches a data directory and notifies subscribers when jobs,
// candidates or the job ordering change on disk, whether through the API or
// through another process editing the files.
type DataWatcher struct {
	watcher *fsnotify.Watcher
	dataDir string
	seq     atomic.Uint64

	mu          sync.RWMutex
	subscribers []ChangeSubscriber
	running     bool
	stopped     bool // once stopped, cannot restart
	stopCh      chan struct{}

	debounceMu sync.Mutex
	debounce   map[string]*time.Timer
}

// NewDataWatcher creates a watcher for the given data directory.
func NewDataWatcher(dataDir string) (*DataWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &DataWatcher{
		watcher:  watcher,
		dataDir:  dataDir,
		debounce: make(map[string]*time.Timer),
		stopCh:   make(chan struct{}),
	}, nil
}

// Subscribe adds a subscriber.
func (dw *DataWatcher) Subscribe(sub ChangeSubscriber) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	dw.subscribers = append(dw.subscribers, sub)
}

// Start begins watching. The data directory and its jobs and candidates
// subdirectories are watched; subdirectories created later are picked up.
func (dw *DataWatcher) Start() error {
	dw.mu.Lock()
	if dw.running {
		dw.mu.Unlock()
		return nil
	}
	if dw.stopped {
		dw.mu.Unlock()
		return fmt.Errorf("data watcher cannot be restarted after stop")
	}
	dw.running = true
	dw.mu.Unlock()

	if err := dw.watcher.Add(dw.dataDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dw.dataDir, err)
	}
	for _, sub := range []string{config.JobsDir, config.CandidatesDir} {
		dir := filepath.Join(dw.dataDir, sub)
		if _, err := os.Stat(dir); err == nil {
			if err := dw.watcher.Add(dir); err != nil {
				log.Printf("Warning: failed to watch %s: %v", dir, err)
			}
		}
	}

	go dw.run()
	return nil
}

// Stop stops watching. Pending debounced events are dropped.
func (dw *DataWatcher) Stop() error {
	dw.mu.Lock()
	if !dw.running || dw.stopped {
		dw.mu.Unlock()
		return nil
	}
	dw.running = false
	dw.stopped = true
	dw.mu.Unlock()

	dw.debounceMu.Lock()
	for path, timer := range dw.debounce {
		timer.Stop()
		delete(dw.debounce, path)
	}
	dw.debounceMu.Unlock()

	close(dw.stopCh)
	return dw.watcher.Close()
}

func (dw *DataWatcher) run() {
	for {
		select {
		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			dw.handleEvent(event)
		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Data watcher error: %v", err)
		case <-dw.stopCh:
			return
		}
	}
}

func (dw *DataWatcher) handleEvent(event fsnotify.Event) {
	base := filepath.Base(event.Name)
	// Atomic writes go through name.tmp then rename; only the rename target matters.
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, ".tmp") || strings.HasSuffix(base, "~") {
		return
	}

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := dw.watcher.Add(event.Name); err != nil {
				log.Printf("Warning: failed to watch %s: %v", event.Name, err)
			}
			return
		}
	}

	dw.debounceMu.Lock()
	defer dw.debounceMu.Unlock()
	if timer, ok := dw.debounce[event.Name]; ok {
		timer.Stop()
	}
	dw.debounce[event.Name] = time.AfterFunc(debounceDelay, func() {
		dw.debounceMu.Lock()
		delete(dw.debounce, event.Name)
		dw.debounceMu.Unlock()
		dw.emit(event)
	})
}

func (dw *DataWatcher) emit(event fsnotify.Event) {
	dw.mu.RLock()
	if dw.stopped {
		dw.mu.RUnlock()
		return
	}
	subs := make([]ChangeSubscriber, len(dw.subscribers))
	copy(subs, dw.subscribers)
	dw.mu.RUnlock()

	change, ok := classifyChange(dw.dataDir, event)
	if !ok {
		return
	}
	change.Seq = dw.seq.Add(1)

	for _, sub := range subs {
		sub.OnChange(change)
	}
}

// classifyChange maps a filesystem event under dataDir to a ChangeEvent.
// Files that are not jobs, candidates or the ordering are ignored.
func classifyChange(dataDir string, event fsnotify.Event) (model.ChangeEvent, bool) {
	rel, err := filepath.Rel(dataDir, event.Name)
	if err != nil {
		return model.ChangeEvent{}, false
	}

	change := model.ChangeEvent{Path: filepath.ToSlash(rel)}
	switch {
	case event.Op&fsnotify.Create != 0:
		change.Op = model.ChangeCreated
	case event.Op&fsnotify.Write != 0:
		change.Op = model.ChangeModified
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		// A rename source no longer exists under its old name.
		change.Op = model.ChangeDeleted
	default:
		return model.ChangeEvent{}, false
	}

	parts := strings.Split(change.Path, "/")
	switch {
	case len(parts) == 1 && parts[0] == config.BoardFileName:
		change.Kind = model.ChangeKindBoard
	case len(parts) == 2 && parts[0] == config.JobsDir && strings.HasSuffix(parts[1], ".json"):
		change.Kind = model.ChangeKindJob
		change.ID = strings.TrimSuffix(parts[1], ".json")
	case len(parts) == 2 && parts[0] == config.CandidatesDir && strings.HasSuffix(parts[1], ".json"):
		change.Kind = model.ChangeKindCandidate
		change.ID = strings.TrimSuffix(parts[1], ".json")
	default:
		return model.ChangeEvent{}, false
	}
	return change, true
}
