package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
)

// DefaultDebounce is the quiet window used when none is configured.
const DefaultDebounce = 300 * time.Millisecond

// Watcher rebuilds the site on Markdown changes below Dir.
type Watcher struct {
	dir      string
	builder  Builder
	debounce time.Duration
	logger   *slog.Logger
	recorder metrics.Recorder
	stdout   io.Writer

	// watching is false while dir does not exist and an ancestor is
	// watched instead. Only touched by Run.
	watching bool

	readyOnce sync.Once
	ready     chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet window. Zero rebuilds on the first event.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(w *Watcher) {
		if r != nil {
			w.recorder = r
		}
	}
}

// WithStdout sets where progress lines are printed.
func WithStdout(out io.Writer) Option {
	return func(w *Watcher) {
		if out != nil {
			w.stdout = out
		}
	}
}

// New creates a Watcher for the Markdown tree rooted at dir.
func New(dir string, b Builder, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      filepath.Clean(dir),
		builder:  b,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		stdout:   io.Discard,
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Ready is closed once the initial build has run and the tree, or its nearest
// existing ancestor while the tree is missing, is being watched.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run performs one build, then rebuilds on change until ctx is done.
// Build failures are logged and do not stop the watcher. A Markdown
// directory that does not exist yet is waited for.
func (w *Watcher) Run(ctx context.Context) error {
	if w.builder == nil {
		return ferrors.WatchError("builder required").Build()
	}

	worker := newRebuilder(w.builder, w.logger, w.recorder, w.stdout)
	worker.build(ctx)
	if ctx.Err() != nil {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryWatch, "create file watcher").Build()
	}
	defer func() { _ = fsw.Close() }()

	watching, err := w.attach(fsw)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryWatch, "watch markdown directory").
			WithContext("path", w.dir).Build()
	}
	w.watching = watching
	if !watching {
		w.logger.WarnContext(ctx, "Markdown directory does not exist yet, waiting for it",
			logfields.Path(w.dir))
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.run(ctx)
	}()
	defer wg.Wait()

	_, _ = fmt.Fprint(w.stdout, "👀 Watch mode enabled. Watching for changes...\n\n")
	w.logger.InfoContext(ctx, "Watching for changes",
		logfields.Path(w.dir), slog.Duration("debounce", w.debounce))
	w.readyOnce.Do(func() { close(w.ready) })

	quiet := time.NewTimer(time.Hour)
	stopTimer(quiet)
	defer quiet.Stop()
	var quietC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			w.logger.InfoContext(ctx, "Watch stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(ctx, fsw, event) {
				w.recorder.IncWatchTrigger()
				stopTimer(quiet)
				quiet.Reset(w.debounce)
				quietC = quiet.C
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnContext(ctx, "File watcher error", logfields.Error(err))

		case <-quietC:
			quietC = nil
			worker.request()
		}
	}
}

// handleEvent starts watching newly created directories and reports whether
// the event should trigger a rebuild.
func (w *Watcher) handleEvent(ctx context.Context, fsw *fsnotify.Watcher, event fsnotify.Event) bool {
	if !w.watching {
		if event.Has(fsnotify.Create) && w.leadsToRoot(event.Name) {
			return w.reattach(ctx, fsw)
		}
		return false
	}
	if event.Name == w.dir && (event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
		w.reattach(ctx, fsw)
		return true
	}
	// Ancestors watched while waiting still report their own entries.
	if !w.contains(event.Name) {
		return false
	}
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if Ignored(filepath.Base(event.Name)) {
				return false
			}
			if err := w.addTree(fsw, event.Name); err != nil {
				w.logger.WarnContext(ctx, "Could not watch new directory",
					logfields.Path(event.Name), logfields.Error(err))
			}
			// Files may have been moved in along with the directory.
			return true
		}
	}
	if !Relevant(event) {
		return false
	}
	w.logger.DebugContext(ctx, "Source changed",
		logfields.Path(event.Name), logfields.Event(event.Op.String()))
	return true
}

// reattach re-resolves what to watch after the Markdown directory or one of
// its ancestors appeared or went away. It reports whether that changed.
func (w *Watcher) reattach(ctx context.Context, fsw *fsnotify.Watcher) bool {
	watching, err := w.attach(fsw)
	if err != nil {
		w.logger.WarnContext(ctx, "Could not watch markdown directory",
			logfields.Path(w.dir), logfields.Error(err))
		return false
	}
	changed := watching != w.watching
	w.watching = watching
	switch {
	case changed && watching:
		w.logger.InfoContext(ctx, "Markdown directory appeared", logfields.Path(w.dir))
	case changed:
		w.logger.WarnContext(ctx, "Markdown directory removed, waiting for it", logfields.Path(w.dir))
	}
	return changed
}

// attach watches the Markdown tree, or its nearest existing ancestor while
// the tree is missing. It reports whether the tree itself is watched.
func (w *Watcher) attach(fsw *fsnotify.Watcher) (bool, error) {
	dir, child := w.dir, ""
	for {
		info, err := os.Stat(dir)
		switch {
		case err == nil && !info.IsDir():
			return false, fmt.Errorf("%s is not a directory", dir)
		case err == nil && child == "":
			return true, w.addTree(fsw, dir)
		case err == nil:
			if err := fsw.Add(dir); err != nil {
				return false, err
			}
			// The next level may have appeared before the watch was in place.
			if _, err := os.Stat(child); err == nil {
				dir, child = w.dir, ""
				continue
			}
			return false, nil
		case !errors.Is(err, fs.ErrNotExist):
			return false, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false, err
		}
		dir, child = parent, dir
	}
}

// leadsToRoot reports whether path is the Markdown directory or one of its
// ancestors.
func (w *Watcher) leadsToRoot(path string) bool {
	path = filepath.Clean(path)
	return path == w.dir || strings.HasPrefix(w.dir, path+string(filepath.Separator))
}

func (w *Watcher) contains(path string) bool {
	rel, err := filepath.Rel(w.dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (w *Watcher) addTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && Ignored(d.Name()) {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
