package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/adamaslan/leakgate/internal/logging"
	"github.com/adamaslan/leakgate/internal/scan"
)

// DefaultDebounce is the quiet period after the last file event before
// the pending set is rescanned. Editors often fire several events per
// save; one batch per save is the goal.
const DefaultDebounce = 400 * time.Millisecond

// Notify receives the result of each incremental rescan.
type Notify func(*scan.Result)

// Config controls a Watcher.
type Config struct {
	// Root is the directory tree to watch, normally the repository root.
	Root string

	// Debounce overrides DefaultDebounce when positive.
	Debounce time.Duration
}

// Watcher owns one fsnotify session over a worktree.
type Watcher struct {
	scanner  *scan.Scanner
	log      *logging.Logger
	notify   Notify
	fsw      *fsnotify.Watcher
	root     string
	debounce time.Duration
}

// New sets up the watch tree eagerly so that by the time it returns,
// every existing directory under root is being watched. Run consumes
// the events.
func New(scanner *scan.Scanner, log *logging.Logger, notify Notify, cfg Config) (*Watcher, error) {
	if notify == nil {
		return nil, errors.New("notify callback is required")
	}
	fi, err := os.Stat(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("watch root: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("watch root %s: not a directory", cfg.Root)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if log == nil {
		log = logging.Nop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		scanner:  scanner,
		log:      log,
		notify:   notify,
		fsw:      fsw,
		root:     cfg.Root,
		debounce: cfg.Debounce,
	}
	if err := w.addTree(cfg.Root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Close releases the fsnotify session. Run closes on return; Close is
// for a Watcher that never ran.
func (w *Watcher) Close() error { return w.fsw.Close() }

// Run consumes events until ctx is cancelled or the event stream closes.
// Changed files are coalesced per debounce window and rescanned as one
// batch; each batch's result goes to the notify callback.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	w.log.Info("watching", zap.String("root", w.root))

	pending := make(map[string]scan.Target)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev, pending)
			if len(pending) > 0 {
				if timer != nil {
					timer.Stop()
				}
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			}

		case <-fire:
			fire = nil
			timer = nil
			targets := make([]scan.Target, 0, len(pending))
			for _, t := range pending {
				targets = append(targets, t)
			}
			clear(pending)

			res, err := w.scanner.Scan(ctx, targets)
			if err != nil {
				return err
			}
			w.log.Debug("rescan",
				zap.Int("files", len(targets)),
				zap.Int("findings", len(res.Findings)))
			w.notify(res)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

// handleEvent routes one fsnotify event: new directories extend the
// watch tree, relevant file changes join the pending batch.
func (w *Watcher) handleEvent(ev fsnotify.Event, pending map[string]scan.Target) {
	if ev.Op.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			if skipDir(filepath.Base(ev.Name)) {
				return
			}
			if err := w.addTree(ev.Name); err != nil {
				w.log.Warn("watch add", zap.String("dir", ev.Name), zap.Error(err))
			}
			return
		}
	}
	if !relevant(ev.Op) {
		return
	}
	if t, ok := w.target(ev.Name); ok {
		pending[t.Name] = t
	}
}

// addTree watches dir and every non-skipped directory below it.
// Unreadable subtrees are logged and left out rather than failing the
// whole session.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.log.Warn("watch walk", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// target maps an event path inside the root to a scan target. Paths
// outside the root or under skipped directories are rejected.
func (w *Watcher) target(path string) (scan.Target, bool) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return scan.Target{}, false
	}
	name := filepath.ToSlash(rel)
	for _, seg := range strings.Split(name, "/") {
		if skipDir(seg) {
			return scan.Target{}, false
		}
	}
	return scan.Target{Path: path, Name: name}, true
}

// skipDir excludes trees that are either version-control metadata,
// dependency dumps too churny to watch, or warning-exempt template
// conventions.
func skipDir(base string) bool {
	switch {
	case base == ".git", base == "node_modules", base == "vendor":
		return true
	case strings.EqualFold(base, "templates"):
		return true
	}
	return false
}

// relevant keeps events that can introduce content: creates and writes.
// Chmod changes no bytes; removed and renamed-away paths have nothing
// left to scan.
func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Create) || op.Has(fsnotify.Write)
}
