// Package levels discovers Sokoban level files and prepares them for the
// level selector: loading, paging and thumbnails.
package levels

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"runtime"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

// Extension is the file extension of level files.
const Extension = ".xsb"

// Default size limits. Larger levels do not fit a selector thumbnail.
const (
	DefaultMaxWidth  = 20
	DefaultMaxHeight = 20
)

// ErrTooLarge is returned for levels exceeding the loader's size limits.
var ErrTooLarge = errors.New("levels: level too large")

// Level is a parsed, playable level file.
type Level struct {
	ID     string   // File name without extension, used as the highscore key
	Name   string   // File name as shown in the selector
	Pack   string   // ID of the pack the level came from, set by Library
	Path   string   // Path inside the loader's filesystem
	Rows   []string // Raw level encoding
	Width  int
	Height int
}

// NewState creates a fresh play state for the level.
func (l Level) NewState() (*sokoban.State, error) {
	return sokoban.Load(l.Rows)
}

// Loader loads level files from a filesystem.
type Loader struct {
	FS        fs.FS
	MaxWidth  int
	MaxHeight int
	Logger    *log.Logger
}

// NewLoader creates a loader over fsys with the default size limits.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{
		FS:        fsys,
		MaxWidth:  DefaultMaxWidth,
		MaxHeight: DefaultMaxHeight,
	}
}

// LoadAll scans the filesystem for level files and parses them in parallel.
// Invalid files are skipped with a warning. Levels are sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	var paths []string
	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(path.Ext(p), Extension) {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: scanning: %w", err)
	}

	results := make([]*Level, len(paths))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range paths {
		g.Go(func() error {
			lvl, err := l.LoadFile(p)
			if err != nil {
				l.logger().Warn("skipping level", "path", p, "error", err)
				return nil
			}
			results[i] = &lvl
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	levels := make([]Level, 0, len(results))
	for _, lvl := range results {
		if lvl != nil {
			levels = append(levels, *lvl)
		}
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads and validates a single level file.
func (l *Loader) LoadFile(p string) (Level, error) {
	f, err := l.FS.Open(p)
	if err != nil {
		return Level{}, fmt.Errorf("opening %s: %w", p, err)
	}
	defer f.Close()

	return l.read(p, f)
}

func (l *Loader) read(p string, r io.Reader) (Level, error) {
	rows, err := sokoban.ReadRows(r)
	if err != nil {
		return Level{}, fmt.Errorf("%s: %w", p, err)
	}

	static, _, _, err := sokoban.Parse(rows)
	if err != nil {
		return Level{}, fmt.Errorf("%s: %w", p, err)
	}

	if l.MaxWidth > 0 && static.Width() > l.MaxWidth || l.MaxHeight > 0 && static.Height() > l.MaxHeight {
		return Level{}, fmt.Errorf("%w: %s is %dx%d, limit %dx%d",
			ErrTooLarge, p, static.Width(), static.Height(), l.MaxWidth, l.MaxHeight)
	}

	name := path.Base(p)
	return Level{
		ID:     strings.TrimSuffix(name, path.Ext(name)),
		Name:   name,
		Path:   p,
		Rows:   rows,
		Width:  static.Width(),
		Height: static.Height(),
	}, nil
}

// LoadByID loads the level with the given ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("levels: level not found: %s", id)
}

func (l *Loader) logger() *log.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return log.Default()
}
