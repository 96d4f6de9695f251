// Package registry provides a global registry of level packs.
// Packs register themselves in init() functions or from CLI flags, allowing
// the platform to list and open them without hardcoded dependencies.
package registry

import (
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"
)

// Pack is a named collection of level files.
type Pack interface {
	// ID returns a unique identifier for this pack (e.g., "builtin").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// FS returns the filesystem holding the pack's level files.
	FS() fs.FS

	// Dir returns the on-disk directory of the pack, or "" for packs that
	// cannot change at runtime (embedded packs).
	Dir() string
}

// PackInfo contains metadata about a registered pack.
type PackInfo struct {
	ID    string
	Title string
	Dir   string
}

// Factory is a function that creates a pack.
type Factory func() Pack

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]PackInfo)
	mu        sync.RWMutex
)

// Register adds a pack factory to the registry.
// Panics if a pack with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: pack %q already registered", id))
	}

	factories[id] = f

	p := f()
	infos[id] = PackInfo{ID: id, Title: p.Title(), Dir: p.Dir()}
}

// List returns information about all registered packs, sorted by ID.
func List() []PackInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PackInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create opens a pack by its ID.
func Create(id string) (Pack, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown pack %q", id)
	}

	return f(), nil
}

// Exists checks if a pack with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

type fsPack struct {
	id, title, dir string
	fsys           fs.FS
}

func (p fsPack) ID() string    { return p.id }
func (p fsPack) Title() string { return p.title }
func (p fsPack) FS() fs.FS     { return p.fsys }
func (p fsPack) Dir() string   { return p.dir }

// NewFSPack wraps a read-only filesystem, such as an embed.FS, as a pack.
func NewFSPack(id, title string, fsys fs.FS) Pack {
	return fsPack{id: id, title: title, fsys: fsys}
}

// NewDirPack exposes an on-disk directory as a pack.
func NewDirPack(id, title, dir string) Pack {
	return fsPack{id: id, title: title, dir: dir, fsys: os.DirFS(dir)}
}

// RegisterDir registers dir as a pack unless the ID is already taken.
func RegisterDir(id, title, dir string) error {
	if Exists(id) {
		return fmt.Errorf("registry: pack %q already registered", id)
	}
	if info, err := os.Stat(dir); err != nil {
		return fmt.Errorf("registry: level directory: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("registry: %s is not a directory", dir)
	}

	Register(id, func() Pack {
		return NewDirPack(id, title, dir)
	})
	return nil
}
