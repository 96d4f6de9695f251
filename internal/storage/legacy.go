package storage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LegacyEntry is one line of a plain-text highscore file.
type LegacyEntry struct {
	Name  string
	Moves int
}

// ParseLegacy reads highscore lines of the form "NAME moves".
// Blank lines are ignored; any other malformed line is an error.
func ParseLegacy(r io.Reader) ([]LegacyEntry, error) {
	var entries []LegacyEntry
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("storage: legacy line %d: expected \"NAME moves\", got %q", line, text)
		}
		moves, err := strconv.Atoi(fields[1])
		if err != nil || moves < 0 {
			return nil, fmt.Errorf("storage: legacy line %d: bad move count %q", line, fields[1])
		}
		name, err := NormalizeName(fields[0])
		if err != nil {
			return nil, fmt.Errorf("storage: legacy line %d: %w", line, err)
		}
		entries = append(entries, LegacyEntry{Name: name, Moves: moves})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("storage: reading legacy scores: %w", err)
	}
	return entries, nil
}

// ImportLegacy saves entries under levelID in one transaction.
func (s *Store) ImportLegacy(levelID string, entries []LegacyEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO scores (level_id, name, moves) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("storage: cannot prepare import: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(levelID, e.Name, e.Moves); err != nil {
			return fmt.Errorf("storage: cannot import score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit import: %w", err)
	}
	return nil
}

// ImportLegacyDir imports every <level>.txt highscore file in dir.
// The file name without extension becomes the level ID.
// Returns the number of imported entries per level.
func (s *Store) ImportLegacyDir(dir string) (map[string]int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("storage: scanning %s: %w", dir, err)
	}

	imported := make(map[string]int, len(paths))
	for _, p := range paths {
		levelID := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))

		entries, err := readLegacyFile(p)
		if err != nil {
			return imported, err
		}
		if err := s.ImportLegacy(levelID, entries); err != nil {
			return imported, err
		}
		imported[levelID] = len(entries)
	}
	return imported, nil
}

func readLegacyFile(p string) ([]LegacyEntry, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	defer f.Close()

	entries, err := ParseLegacy(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return entries, nil
}
