package sokoban

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T, rows ...string) *State {
	t.Helper()
	s, err := Load(rows)
	require.NoError(t, err)
	return s
}

func TestParseSeparatesLayers(t *testing.T) {
	rows := []string{
		"#######",
		"#+$*. #",
		"#  $  #",
		"#######",
	}

	static, player, crates, err := Parse(rows)
	require.NoError(t, err)

	assert.Equal(t, P(1, 1), player)
	assert.Equal(t, []Point{P(2, 1), P(3, 1), P(3, 2)}, crates)
	assert.Equal(t, 7, static.Width())
	assert.Equal(t, 4, static.Height())
	assert.Equal(t, "#. .. #", static.Row(1))
	assert.Equal(t, "#     #", static.Row(2))
	assert.Equal(t, []Point{P(1, 1), P(3, 1), P(4, 1)}, static.Targets())
}

func TestParseDoesNotMutateInput(t *testing.T) {
	rows := []string{"#####", "#@$.#", "#####"}
	_, _, _, err := Parse(rows)
	require.NoError(t, err)
	assert.Equal(t, "#@$.#", rows[1])
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"nil input", nil},
		{"only empty rows", []string{"", ""}},
		{"no player", []string{"#####", "# $.#", "#####"}},
		{"two players", []string{"#####", "#@ @#", "#####"}},
		{"player and player on target", []string{"#####", "#@ +#", "#####"}},
		{"unknown symbol", []string{"#####", "#@X.#", "#####"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := Parse(tc.rows)
			assert.ErrorIs(t, err, ErrMalformedLevel)

			_, err = Load(tc.rows)
			assert.ErrorIs(t, err, ErrMalformedLevel)
		})
	}
}

func TestStaticOutOfRangeIsWall(t *testing.T) {
	static, _, _, err := Parse([]string{"#####", "#@", "#####"})
	require.NoError(t, err)

	assert.Equal(t, 5, static.Width())
	assert.Equal(t, Wall, static.At(P(-1, 0)))
	assert.Equal(t, Wall, static.At(P(0, -1)))
	assert.Equal(t, Wall, static.At(P(5, 0)))
	assert.Equal(t, Wall, static.At(P(0, 3)))
	// Past the end of the short row.
	assert.Equal(t, Wall, static.At(P(2, 1)))
	assert.Equal(t, Floor, static.At(P(1, 1)))
	assert.Equal(t, "", static.Row(7))
}

func TestRoundTrip(t *testing.T) {
	levels := [][]string{
		{"#####", "#@$.#", "#####"},
		{"  ####", "###  ####", "#     $ #", "# #  #$ #", "# . .#+ #", "#########"},
		{"#######", "#.*$  #", "#  @  #", "#######"},
		{"", "#####", "#*+ #", "#####", ""},
	}

	for _, rows := range levels {
		s := mustLoad(t, rows...)
		assert.Equal(t, rows, s.Rows())
	}
}

func TestScenarioANoCratesNotFinished(t *testing.T) {
	s := mustLoad(t, "#####", "#@ .#", "#####")

	assert.Equal(t, P(1, 1), s.Player())
	assert.Empty(t, s.Crates())
	assert.False(t, s.Finished())

	res, err := s.Move(Right)
	require.NoError(t, err)
	assert.Equal(t, MoveStep, res)
	res, err = s.Move(Right)
	require.NoError(t, err)
	assert.Equal(t, MoveStep, res)

	assert.Equal(t, P(3, 1), s.Player())
	assert.False(t, s.Finished(), "standing on a target does not cover it")
}

func TestScenarioBPushOntoTarget(t *testing.T) {
	s := mustLoad(t, "#####", "#@$.#", "#####")
	require.False(t, s.Finished())

	res, err := s.Move(Right)
	require.NoError(t, err)

	assert.Equal(t, MovePush, res)
	assert.Equal(t, P(2, 1), s.Player())
	assert.Equal(t, []Point{P(3, 1)}, s.Crates())
	assert.Equal(t, 1, s.Moves())
	assert.True(t, s.Finished())
	assert.Equal(t, []string{"#####", "# @*#", "#####"}, s.Rows())
}

func TestScenarioCWallBlocksMove(t *testing.T) {
	s := mustLoad(t, "#####", "#@$.#", "#####")
	before := s.Rows()

	res, err := s.Move(Down)
	require.NoError(t, err)

	assert.Equal(t, MoveNone, res)
	assert.Equal(t, 0, s.Moves())
	assert.Equal(t, before, s.Rows())
}

func TestScenarioDPushIntoWall(t *testing.T) {
	s := mustLoad(t, "#####", "# @$#", "#####")

	res, err := s.Move(Right)
	require.NoError(t, err)

	assert.Equal(t, MoveNone, res)
	assert.Equal(t, P(2, 1), s.Player())
	assert.Equal(t, []Point{P(3, 1)}, s.Crates())
	assert.Equal(t, 0, s.Moves())
}

func TestPushIntoCrateBlocked(t *testing.T) {
	s := mustLoad(t, "######", "#@$$ #", "######")

	res, err := s.Move(Right)
	require.NoError(t, err)

	assert.Equal(t, MoveNone, res)
	assert.Equal(t, 0, s.Moves())
}

func TestPushOffGridEdgeBlocked(t *testing.T) {
	// Open edges: the row ends right after the crate.
	s := mustLoad(t, "@$")

	res, err := s.Move(Right)
	require.NoError(t, err)
	assert.Equal(t, MoveNone, res)

	res, err = s.Move(Left)
	require.NoError(t, err)
	assert.Equal(t, MoveNone, res, "walking off the grid is blocked")

	res, err = s.Move(Up)
	require.NoError(t, err)
	assert.Equal(t, MoveNone, res)
}

func TestPushPastShortRowBlocked(t *testing.T) {
	s := mustLoad(t,
		"#####",
		"# @ #",
		"# $",
		"#    ",
	)

	// The crate at (2,2) can be pushed down to (2,3) which exists.
	res, err := s.Move(Down)
	require.NoError(t, err)
	assert.Equal(t, MovePush, res)

	// Now pushing further runs off the bottom of the grid.
	res, err = s.Move(Down)
	require.NoError(t, err)
	assert.Equal(t, MoveNone, res)
}

func TestInvalidDirection(t *testing.T) {
	s := mustLoad(t, "#####", "#@$.#", "#####")

	for _, d := range []Direction{{0, 0}, {1, 1}, {-1, 1}, {2, 0}, {0, -2}} {
		res, err := s.Move(d)
		assert.ErrorIs(t, err, ErrInvalidDirection, "direction %v", d)
		assert.Equal(t, MoveNone, res)
	}
	assert.Equal(t, 0, s.Moves())
	assert.Equal(t, P(1, 1), s.Player())
}

func TestFinishedIsNotMonotonic(t *testing.T) {
	s := mustLoad(t,
		"#######",
		"#@$.  #",
		"#######",
	)

	_, err := s.Move(Right)
	require.NoError(t, err)
	require.True(t, s.Finished())

	res, err := s.Move(Right)
	require.NoError(t, err)
	assert.Equal(t, MovePush, res)
	assert.False(t, s.Finished(), "pushing the last crate off its target clears finished")
	assert.Equal(t, 2, s.Moves())
}

func TestVacuousWin(t *testing.T) {
	s := mustLoad(t, "####", "#@ #", "####")
	assert.True(t, s.Finished())

	s = mustLoad(t, "#####", "#@$ #", "#####")
	assert.True(t, s.Finished(), "crates without targets still count as finished")
}

func TestBlockedMoveSkipsFinishedCheck(t *testing.T) {
	s := mustLoad(t, "####", "#@ #", "####")
	require.True(t, s.Finished())

	res, err := s.Move(Up)
	require.NoError(t, err)
	assert.Equal(t, MoveNone, res)
	assert.True(t, s.Finished())
}

func TestMoveDeterminism(t *testing.T) {
	rows := []string{
		"  ####",
		"###  ####",
		"#     $ #",
		"# #  #$ #",
		"# . .#@ #",
		"#########",
	}
	path := []Direction{Up, Up, Left, Down, Left, Left, Down, Down, Right, Up, Left, Left}

	a := mustLoad(t, rows...)
	for _, d := range path {
		b := a.Clone()
		ra, erra := a.Move(d)
		rb, errb := b.Move(d)

		require.NoError(t, erra)
		require.NoError(t, errb)
		assert.Equal(t, ra, rb)
		assert.Equal(t, a.Rows(), b.Rows())
		assert.Equal(t, a.Moves(), b.Moves())
		assert.Equal(t, a.Finished(), b.Finished())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := mustLoad(t, "######", "#@$ .#", "######")
	c := s.Clone()

	_, err := c.Move(Right)
	require.NoError(t, err)

	assert.Equal(t, P(1, 1), s.Player())
	assert.Equal(t, []Point{P(2, 1)}, s.Crates())
	assert.Equal(t, 0, s.Moves())
	assert.Equal(t, []Point{P(3, 1)}, c.Crates())
}

func TestCratesInvariantOverRandomWalk(t *testing.T) {
	s := mustLoad(t,
		"########",
		"#  .   #",
		"# $$$  #",
		"#. @ . #",
		"#  $   #",
		"#   .  #",
		"########",
	)

	dirs := Directions()
	for i := 0; i < 500; i++ {
		_, err := s.Move(dirs[(i*7+i/3)%len(dirs)])
		require.NoError(t, err)

		seen := make(map[Point]bool)
		for _, c := range s.Crates() {
			assert.False(t, seen[c], "two crates at %s", c)
			seen[c] = true
			assert.NotEqual(t, Wall, s.Static().At(c), "crate on wall at %s", c)
		}
		assert.False(t, seen[s.Player()], "player on a crate")
		assert.True(t, s.Static().Walkable(s.Player()))
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	rows := []string{"#####", "#@$.#", "#####"}
	s := mustLoad(t, rows...)

	_, err := s.Move(Right)
	require.NoError(t, err)
	require.True(t, s.Finished())

	require.NoError(t, s.Reset())
	assert.Equal(t, rows, s.Rows())
	assert.Equal(t, 0, s.Moves())
	assert.False(t, s.Finished())
}

func TestLoadCopiesSource(t *testing.T) {
	rows := []string{"#####", "#@$.#", "#####"}
	s := mustLoad(t, rows...)
	rows[1] = "#   #"

	require.NoError(t, s.Reset())
	assert.Equal(t, P(1, 1), s.Player())
}

func TestLoadString(t *testing.T) {
	s, err := LoadString("#####\r\n#@$.#\r\n#####\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"#####", "#@$.#", "#####"}, s.Rows())
}

func TestLoadStringLongRow(t *testing.T) {
	// Longer than bufio.Scanner's default token limit.
	wide := strings.Repeat("#", 70003)
	row := "#@$." + strings.Repeat(" ", 69998) + "#"
	s, err := LoadString(wide + "\n" + row + "\n" + wide + "\n")
	require.NoError(t, err)
	assert.Equal(t, 70003, s.Static().Width())
	assert.Equal(t, 3, s.Static().Height())

	res, err := s.Move(Right)
	require.NoError(t, err)
	assert.Equal(t, MovePush, res)
	assert.True(t, s.Finished())
}

func TestReadRows(t *testing.T) {
	rows, err := ReadRows(strings.NewReader("##\r\n\n#@"))
	require.NoError(t, err)
	assert.Equal(t, []string{"##", "", "#@"}, rows)

	boom := errors.New("boom")
	_, err = ReadRows(iotest.ErrReader(boom))
	assert.ErrorIs(t, err, boom)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "01.xsb")
	require.NoError(t, os.WriteFile(path, []byte("#####\n#@$.#\n#####\n"), 0o600))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, P(1, 1), s.Player())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.xsb"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.xsb")
	require.NoError(t, os.WriteFile(bad, []byte("#####\n# $.#\n#####\n"), 0o600))
	_, err = LoadFile(bad)
	assert.ErrorIs(t, err, ErrMalformedLevel)
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "Left", Left.String())
	assert.Equal(t, "Down", Down.String())
	assert.Equal(t, "Direction(1,1)", Direction{1, 1}.String())
	assert.Equal(t, "Push", MovePush.String())
	assert.True(t, MoveStep.Moved())
	assert.False(t, MoveNone.Moved())
}
