// Package watcher reports changes to the files a treemap is built from, so
// the explorer can reload its data and series options while running.
//
// Changes are detected with fsnotify on the parent directories, which
// survives editors that save by renaming a temporary file. When fsnotify is
// unavailable the watcher falls back to polling modification times. Bursts
// of events are coalesced into one notification.
package watcher

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/treemap/pkg/errors"
)

// Defaults for Options.
const (
	DefaultDebounce     = 150 * time.Millisecond
	DefaultPollInterval = time.Second
)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the watcher waits for events to settle.
func WithDebounce(d time.Duration) Option { return func(w *Watcher) { w.debounce = d } }

// WithPollInterval sets the stat interval of polling mode.
func WithPollInterval(d time.Duration) Option { return func(w *Watcher) { w.poll = d } }

// WithPolling forces polling mode.
func WithPolling() Option { return func(w *Watcher) { w.forcePoll = true } }

// WithLogger sets the logger watch errors are reported to.
func WithLogger(l *log.Logger) Option { return func(w *Watcher) { w.logger = l } }

// Watcher watches a fixed set of files.
type Watcher struct {
	paths     []string
	debounce  time.Duration
	poll      time.Duration
	forcePoll bool
	logger    *log.Logger

	changes chan []string

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]bool
	polling bool

	// sendMu serializes fire so a batch left unread can be merged.
	sendMu sync.Mutex
}

// New returns a watcher of paths. Empty paths are ignored.
func New(paths []string, opts ...Option) (*Watcher, error) {
	w := &Watcher{
		debounce: DefaultDebounce,
		poll:     DefaultPollInterval,
		changes:  make(chan []string, 1),
		pending:  map[string]bool{},
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "watch %s", p)
		}
		w.paths = append(w.paths, abs)
	}
	if len(w.paths) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nothing to watch")
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = log.New(io.Discard)
	}
	return w, nil
}

// Changes receives the sorted paths of the files that changed once they
// have settled. A batch that is not received in time is merged into the
// next one.
func (w *Watcher) Changes() <-chan []string { return w.changes }

// Polling reports whether the watcher fell back to polling.
func (w *Watcher) Polling() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.polling
}

// Run watches until ctx is done. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stopTimer()
	if !w.forcePoll {
		fsw, err := w.newFSWatcher()
		if err == nil {
			return w.runNotify(ctx, fsw)
		}
		w.logger.Warn("fsnotify unavailable, polling", "err", err)
	}
	w.mu.Lock()
	w.polling = true
	w.mu.Unlock()
	return w.runPoll(ctx)
}

func (w *Watcher) newFSWatcher() (*fsnotify.Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	added := map[string]bool{}
	for _, p := range w.paths {
		dir := filepath.Dir(p)
		if added[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
		added[dir] = true
	}
	return fsw, nil
}

func (w *Watcher) runNotify(ctx context.Context, fsw *fsnotify.Watcher) error {
	defer fsw.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.watched(ev.Name) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.trigger(filepath.Clean(ev.Name))
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)
		}
	}
}

type stamp struct {
	mtime time.Time
	size  int64
}

func (w *Watcher) runPoll(ctx context.Context) error {
	last := make(map[string]stamp, len(w.paths))
	for _, p := range w.paths {
		last[p] = statOf(p)
	}

	ticker := time.NewTicker(w.poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			for _, p := range w.paths {
				cur := statOf(p)
				if cur != last[p] {
					last[p] = cur
					if !cur.mtime.IsZero() {
						w.trigger(p)
					}
				}
			}
		}
	}
}

func statOf(path string) stamp {
	info, err := os.Stat(path)
	if err != nil {
		return stamp{}
	}
	return stamp{mtime: info.ModTime(), size: info.Size()}
}

func (w *Watcher) watched(name string) bool {
	name = filepath.Clean(name)
	for _, p := range w.paths {
		if p == name {
			return true
		}
	}
	return false
}

// trigger adds path to the pending batch and restarts the debounce timer.
func (w *Watcher) trigger(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[path] = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

// fire delivers the pending batch, folding in any batch still unread.
func (w *Watcher) fire() {
	w.mu.Lock()
	batch := w.pending
	w.pending = map[string]bool{}
	w.timer = nil
	w.mu.Unlock()
	if len(batch) == 0 {
		return
	}

	w.sendMu.Lock()
	defer w.sendMu.Unlock()
	select {
	case old := <-w.changes:
		for _, p := range old {
			batch[p] = true
		}
	default:
	}
	paths := make([]string, 0, len(batch))
	for p := range batch {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	w.changes <- paths
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
