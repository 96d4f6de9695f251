package sokoban

import (
	"fmt"
	"os"
	"strings"
)

// MoveResult describes the outcome of a Move call.
type MoveResult uint8

const (
	MoveNone MoveResult = iota // blocked, nothing changed
	MoveStep                   // player walked to an empty cell
	MovePush                   // player walked and pushed a crate
)

// String returns the name of the move result.
func (r MoveResult) String() string {
	switch r {
	case MoveNone:
		return "None"
	case MoveStep:
		return "Step"
	case MovePush:
		return "Push"
	default:
		return "Unknown"
	}
}

// Moved reports whether the move changed the state.
func (r MoveResult) Moved() bool {
	return r == MoveStep || r == MovePush
}

// State is a level in play: the static layer plus the mutable player,
// crates, move counter and finished flag.
// A State is owned by a single session and is not safe for concurrent use.
type State struct {
	source []string
	static *Static

	player   Point
	crates   []Point
	moves    int
	finished bool
}

// Load parses rows into a fresh State with a zero move counter.
func Load(rows []string) (*State, error) {
	source := make([]string, len(rows))
	copy(source, rows)

	s := &State{source: source}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadString parses raw level text, one row per line.
func LoadString(text string) (*State, error) {
	return Load(SplitRows(text))
}

// LoadFile reads and parses the level file at path.
func LoadFile(path string) (*State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening level %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ReadRows(f)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	s, err := Load(rows)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return s, nil
}

// Reset reloads the level from its source rows, discarding all progress.
// On error the state is left untouched.
func (s *State) Reset() error {
	static, player, crates, err := Parse(s.source)
	if err != nil {
		return err
	}

	s.static = static
	s.player = player
	s.crates = crates
	s.moves = 0
	s.finished = IsFinished(static, crates)
	return nil
}

// Move attempts to move the player one cell in direction d, pushing a crate
// if one is in the way. Rules, in order:
//   - walk if the goal cell holds no crate and is floor or target;
//   - otherwise push if the goal holds a crate, the cell behind it holds no
//     crate and is not a wall;
//   - otherwise nothing happens.
//
// A blocked move is not an error: it returns MoveNone and leaves the state,
// including the move counter, unchanged.
func (s *State) Move(d Direction) (MoveResult, error) {
	if !d.Valid() {
		return MoveNone, fmt.Errorf("%w: %s", ErrInvalidDirection, d)
	}

	goal := s.player.Step(d)
	behind := goal.Step(d)
	crate := s.crateIndex(goal)

	switch {
	case crate < 0 && s.static.Walkable(goal):
		s.player = goal
		s.moves++
		s.finished = IsFinished(s.static, s.crates)
		return MoveStep, nil

	case crate >= 0 && !s.HasCrate(behind) && s.static.At(behind) != Wall:
		s.player = goal
		s.crates[crate] = behind
		s.moves++
		s.finished = IsFinished(s.static, s.crates)
		return MovePush, nil
	}

	return MoveNone, nil
}

// IsFinished reports whether every target in static is covered by a crate.
// A level without targets is finished.
func IsFinished(static *Static, crates []Point) bool {
	covered := make(map[Point]bool, len(crates))
	for _, c := range crates {
		covered[c] = true
	}
	for _, t := range static.Targets() {
		if !covered[t] {
			return false
		}
	}
	return true
}

func (s *State) crateIndex(p Point) int {
	for i, c := range s.crates {
		if c == p {
			return i
		}
	}
	return -1
}

// HasCrate reports whether a crate occupies p.
func (s *State) HasCrate(p Point) bool {
	return s.crateIndex(p) >= 0
}

// Static returns the immutable level layer.
func (s *State) Static() *Static {
	return s.static
}

// Player returns the player position.
func (s *State) Player() Point {
	return s.player
}

// Crates returns a copy of the crate positions.
func (s *State) Crates() []Point {
	crates := make([]Point, len(s.crates))
	copy(crates, s.crates)
	return crates
}

// Moves returns the number of successful moves since the last load.
func (s *State) Moves() int {
	return s.moves
}

// Finished reports whether all targets were covered after the last successful move.
func (s *State) Finished() bool {
	return s.finished
}

// Clone returns an independent copy of the state. The static layer is shared.
func (s *State) Clone() *State {
	c := *s
	c.crates = s.Crates()
	return &c
}

// Rows encodes the current state back into the level alphabet.
func (s *State) Rows() []string {
	grid := make([][]byte, s.static.Height())
	for y := range grid {
		grid[y] = []byte(s.static.Row(y))
	}

	for _, c := range s.crates {
		if grid[c.Y][c.X] == Target {
			grid[c.Y][c.X] = CrateOnTarget
		} else {
			grid[c.Y][c.X] = Crate
		}
	}

	p := s.player
	if grid[p.Y][p.X] == Target {
		grid[p.Y][p.X] = PlayerOnTarget
	} else {
		grid[p.Y][p.X] = Player
	}

	rows := make([]string, len(grid))
	for y, row := range grid {
		rows[y] = string(row)
	}
	return rows
}

// String returns the encoded state, rows joined with newlines.
func (s *State) String() string {
	return strings.Join(s.Rows(), "\n")
}
