// Package sokoban implements the puzzle rules of Sokoban: parsing the text
// level encoding into static geometry and entity positions, validating and
// applying moves, and detecting the win condition.
// It is UI-agnostic and deterministic.
package sokoban

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Level symbols.
const (
	Wall           byte = '#'
	Floor          byte = ' '
	Target         byte = '.'
	Crate          byte = '$'
	CrateOnTarget  byte = '*'
	Player         byte = '@'
	PlayerOnTarget byte = '+'
)

// Static is the immutable layer of a level: walls, floor and targets.
// Rows keep their original lengths; any cell outside a row reads as Wall.
type Static struct {
	rows  [][]byte
	width int
}

// Width returns the length of the longest row.
func (s *Static) Width() int {
	return s.width
}

// Height returns the number of rows.
func (s *Static) Height() int {
	return len(s.rows)
}

// At returns the static symbol at p. Coordinates outside the grid,
// including positions past the end of a short row, are walls.
func (s *Static) At(p Point) byte {
	if p.Y < 0 || p.Y >= len(s.rows) {
		return Wall
	}
	row := s.rows[p.Y]
	if p.X < 0 || p.X >= len(row) {
		return Wall
	}
	return row[p.X]
}

// Walkable reports whether the player may stand on p.
func (s *Static) Walkable(p Point) bool {
	c := s.At(p)
	return c == Floor || c == Target
}

// Row returns a copy of row y, or "" if y is out of range.
func (s *Static) Row(y int) string {
	if y < 0 || y >= len(s.rows) {
		return ""
	}
	return string(s.rows[y])
}

// Targets returns every target cell in row-major order.
func (s *Static) Targets() []Point {
	var targets []Point
	for y, row := range s.rows {
		for x, c := range row {
			if c == Target {
				targets = append(targets, P(x, y))
			}
		}
	}
	return targets
}

// Parse separates a level encoding into its static layer, the player start
// and the crate positions. Crates are returned in row-major order.
//
// Short rows are not padded with floor: cells past the end of a row read as
// Wall (see Static.At), so neither the player nor a crate can enter them.
//
// A level must contain exactly one player start; zero or several starts,
// an empty encoding and symbols outside the level alphabet all fail with
// ErrMalformedLevel.
func Parse(rows []string) (*Static, Point, []Point, error) {
	if len(rows) == 0 {
		return nil, Point{}, nil, fmt.Errorf("%w: no rows", ErrMalformedLevel)
	}

	static := &Static{rows: make([][]byte, len(rows))}
	var (
		player  Point
		players int
		crates  []Point
	)

	for y, row := range rows {
		line := []byte(row)
		if len(line) > static.width {
			static.width = len(line)
		}

		for x, c := range line {
			switch c {
			case Wall, Floor, Target:
			case Player:
				player = P(x, y)
				players++
				line[x] = Floor
			case PlayerOnTarget:
				player = P(x, y)
				players++
				line[x] = Target
			case Crate:
				crates = append(crates, P(x, y))
				line[x] = Floor
			case CrateOnTarget:
				crates = append(crates, P(x, y))
				line[x] = Target
			default:
				return nil, Point{}, nil, fmt.Errorf("%w: unknown symbol %q at %s", ErrMalformedLevel, c, P(x, y))
			}
		}
		static.rows[y] = line
	}

	if static.width == 0 {
		return nil, Point{}, nil, fmt.Errorf("%w: all rows are empty", ErrMalformedLevel)
	}

	switch players {
	case 0:
		return nil, Point{}, nil, fmt.Errorf("%w: no player start", ErrMalformedLevel)
	case 1:
	default:
		return nil, Point{}, nil, fmt.Errorf("%w: %d player starts", ErrMalformedLevel, players)
	}

	return static, player, crates, nil
}

// ReadRows reads a level encoding, one row per line.
// Line terminators (including "\r\n") are stripped. Rows may be of any length.
func ReadRows(r io.Reader) ([]string, error) {
	var rows []string
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			rows = append(rows, strings.TrimSuffix(line, "\r"))
		}
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading level: %w", err)
		}
	}
}

// SplitRows splits raw level text into rows.
func SplitRows(text string) []string {
	rows, _ := ReadRows(strings.NewReader(text)) // only fails on reader errors
	return rows
}
