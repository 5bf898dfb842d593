package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

const debounceDelay = 100 * time.Millisecond

// WatchTarget describes what to watch for a file-backed provider: the
// directories to register and a predicate selecting relevant paths.
// Recursive targets also watch directories created under Dirs.
type WatchTarget struct {
	Dirs      []string
	Recursive bool
	Match     func(path string) bool
}

func fileTarget(path string) WatchTarget {
	clean := filepath.Clean(path)
	return WatchTarget{
		Dirs: []string{filepath.Dir(clean)},
		Match: func(p string) bool {
			return filepath.Clean(p) == clean
		},
	}
}

// Watcher reports changes to a provider's files. Bursts of filesystem
// events are collapsed into one notification.
type Watcher struct {
	target  WatchTarget
	watcher *fsnotify.Watcher
	events  chan struct{}

	mu    sync.Mutex
	timer *time.Timer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher starts watching the files p reads.
func NewWatcher(p Watchable) (*Watcher, error) {
	target, err := p.WatchTarget()
	if err != nil {
		return nil, fmt.Errorf("resolve watch target: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dirs := slices.Clone(target.Dirs)
	slices.Sort(dirs)
	for _, dir := range slices.Compact(dirs) {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		target:  target,
		watcher: fw,
		events:  make(chan struct{}, 1),
		ctx:     ctx,
		cancel:  cancel,
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// Events delivers one value per settled burst of changes. The channel is
// never closed; stop reading once Close returns.
func (w *Watcher) Events() <-chan struct{} { return w.events }

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.cancel()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Str("component", "watcher").Msg("filesystem watch error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}

	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") || strings.HasSuffix(name, ".tmp") {
		return
	}

	if w.target.Recursive && event.Has(fsnotify.Create) && w.addDir(event.Name) {
		// files may have landed before the new directory was watched
		w.schedule()
		return
	}

	if w.target.Match != nil && !w.target.Match(event.Name) {
		return
	}

	w.schedule()
}

// addDir watches path and its subdirectories when path is a directory.
func (w *Watcher) addDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}

	dirs, err := subdirs(path)
	if err != nil {
		log.Warn().Err(err).Str("component", "watcher").Str("dir", path).Msg("scan new directory")
		return true
	}
	for _, dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			log.Warn().Err(err).Str("component", "watcher").Str("dir", dir).Msg("watch new directory")
		}
	}
	return true
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceDelay, w.notify)
}

func (w *Watcher) notify() {
	if w.ctx.Err() != nil {
		return
	}

	select {
	case w.events <- struct{}{}:
	default:
		// a notification is already pending
	}
}
