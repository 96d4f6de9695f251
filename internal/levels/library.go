package levels

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Source is one pack of levels feeding a Library.
type Source struct {
	Pack   string
	Loader *Loader
	Dir    string // on-disk directory to watch, "" for read-only packs
}

// Library merges the levels of several sources. Level IDs are unique:
// when two sources hold the same ID, the earlier source wins.
// A Library is safe for concurrent use.
type Library struct {
	sources []Source
	logger  *log.Logger

	mu      sync.RWMutex
	levels  []Level
	byID    map[string]int
	changed chan struct{}
}

// NewLibrary creates a library and loads every source once.
func NewLibrary(logger *log.Logger, sources ...Source) (*Library, error) {
	if logger == nil {
		logger = log.Default()
	}
	l := &Library{
		sources: sources,
		logger:  logger,
		changed: make(chan struct{}),
	}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Reload rescans all sources and wakes everyone waiting on Changed.
func (l *Library) Reload() error {
	var (
		merged []Level
		byID   = make(map[string]int)
	)
	for _, src := range l.sources {
		lvls, err := src.Loader.LoadAll()
		if err != nil {
			return fmt.Errorf("levels: pack %s: %w", src.Pack, err)
		}
		for _, lvl := range lvls {
			if _, dup := byID[lvl.ID]; dup {
				l.logger.Warn("duplicate level ID, keeping first", "id", lvl.ID, "pack", src.Pack)
				continue
			}
			lvl.Pack = src.Pack
			byID[lvl.ID] = len(merged)
			merged = append(merged, lvl)
		}
	}

	l.mu.Lock()
	l.levels = merged
	l.byID = byID
	close(l.changed)
	l.changed = make(chan struct{})
	l.mu.Unlock()

	l.logger.Debug("levels loaded", "count", len(merged))
	return nil
}

// Levels returns a copy of the current level list.
func (l *Library) Levels() []Level {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Level, len(l.levels))
	copy(out, l.levels)
	return out
}

// Get returns the level with the given ID.
func (l *Library) Get(id string) (Level, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i, ok := l.byID[id]
	if !ok {
		return Level{}, false
	}
	return l.levels[i], true
}

// Changed returns a channel that is closed on the next reload.
func (l *Library) Changed() <-chan struct{} {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.changed
}

// Watch reloads the library whenever a level file changes in one of the
// sources' directories. It blocks until ctx is done or a watcher fails.
func (l *Library) Watch(ctx context.Context) error {
	var dirs []string
	for _, src := range l.sources {
		if src.Dir != "" {
			dirs = append(dirs, src.Dir)
		}
	}
	if len(dirs) == 0 {
		<-ctx.Done()
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, dir := range dirs {
		g.Go(func() error {
			w, err := NewWatcher(dir)
			if err != nil {
				return fmt.Errorf("levels: watching %s: %w", dir, err)
			}
			defer w.Close()

			for {
				select {
				case <-ctx.Done():
					return nil
				case name, ok := <-w.Events:
					if !ok {
						return nil
					}
					l.logger.Info("level file changed", "path", name)
					if err := l.Reload(); err != nil {
						l.logger.Error("reloading levels", "error", err)
					}
				case err, ok := <-w.Errors:
					if !ok {
						return nil
					}
					l.logger.Warn("watcher error", "dir", dir, "error", err)
				}
			}
		})
	}
	return g.Wait()
}
