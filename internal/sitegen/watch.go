package sitegen

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/sitestamp/internal/logfields"
)

// DefaultDebounce is the quiet period after the last change before a re-run.
const DefaultDebounce = 300 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	ConfigPath   string
	TemplateRoot string
	OutputDir    string // events below this directory are ignored
	Debounce     time.Duration
	// PollInterval, when positive, also regenerates on a fixed schedule for
	// filesystems that deliver no change events (NFS, some container mounts).
	PollInterval time.Duration
	Logger       *slog.Logger
}

// Watch calls rebuild whenever the configuration file or anything under the
// template root changes, until ctx is canceled. Bursts of events are debounced
// and rebuilds never overlap: a change during a rebuild schedules exactly one
// more.
func Watch(ctx context.Context, opts WatchOptions, rebuild func()) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	absConfig, err := filepath.Abs(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	absOutput := ""
	if opts.OutputDir != "" {
		if absOutput, err = filepath.Abs(opts.OutputDir); err != nil {
			return fmt.Errorf("resolve output path: %w", err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	// Editors often replace files by rename, so the config is watched through its directory.
	if err := watcher.Add(filepath.Dir(absConfig)); err != nil {
		return fmt.Errorf("watch config directory: %w", err)
	}
	if err := addDirsRecursive(watcher, opts.TemplateRoot, absOutput, logger); err != nil {
		return err
	}

	requests, trigger := newDebouncer(debounce)
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			case <-requests:
				logger.Info("Change detected; regenerating site")
				rebuild()
			}
		}
	}()
	defer func() {
		close(done)
		wg.Wait()
	}()

	if opts.PollInterval > 0 {
		poller, err := startPoller(opts.PollInterval, trigger, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := poller.Shutdown(); err != nil {
				logger.Warn("Failed to stop poll scheduler", logfields.Error(err))
			}
		}()
	}

	logger.Info("Watching for changes", logfields.Config(opts.ConfigPath), logfields.TemplateRoot(opts.TemplateRoot))
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watcher")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			if abs != absConfig && (!isUnder(abs, opts.TemplateRoot) || shouldIgnoreEvent(abs, absOutput)) {
				continue
			}
			if ev.Op&fsnotify.Create == fsnotify.Create {
				if fi, statErr := os.Stat(abs); statErr == nil && fi.IsDir() {
					_ = addDirsRecursive(watcher, abs, absOutput, logger)
				}
			}
			logger.Debug("File change detected", logfields.Path(abs), slog.String("op", ev.Op.String()))
			trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// newDebouncer returns a request channel and a trigger that fires it once the
// trigger has been quiet for d. Pending requests coalesce.
func newDebouncer(d time.Duration) (<-chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	requests := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case requests <- struct{}{}:
			default:
			}
		})
	}
	return requests, trigger
}

// startPoller schedules trigger every interval. Polled rebuilds go through the
// same debouncer as file events, so they never overlap with them.
func startPoller(interval time.Duration, trigger func(), logger *slog.Logger) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			logger.Debug("Poll interval elapsed")
			trigger()
		}),
		gocron.WithName("template-poll"),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create poll job: %w", err)
	}
	s.Start()
	logger.Info("Polling for changes", slog.Duration("interval", interval))
	return s, nil
}

func addDirsRecursive(w *fsnotify.Watcher, root, skip string, logger *slog.Logger) error {
	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("watch template root: %w", err)
	}
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if abs, absErr := filepath.Abs(path); absErr == nil && skip != "" && isUnder(abs, skip) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			logger.Warn("Watch add failed", logfields.Dir(path), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnoreEvent filters hidden files, editor droppings and our own output.
func shouldIgnoreEvent(path, output string) bool {
	if output != "" && isUnder(path, output) {
		return true
	}
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	return strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasSuffix(base, ".tmp")
}

func isUnder(path, root string) bool {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absRoot, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
