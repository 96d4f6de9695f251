package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-sokoban/internal/levels"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

func TestPackRegistered(t *testing.T) {
	require.True(t, registry.Exists(PackID))

	p, err := registry.Create(PackID)
	require.NoError(t, err)
	assert.Equal(t, "", p.Dir())
}

func TestAllLevelsLoadAndFit(t *testing.T) {
	p, err := registry.Create(PackID)
	require.NoError(t, err)

	lvls, err := levels.NewLoader(p.FS()).LoadAll()
	require.NoError(t, err)
	require.Len(t, lvls, 7)

	for _, lvl := range lvls {
		state, err := lvl.NewState()
		require.NoError(t, err, lvl.ID)

		assert.LessOrEqual(t, lvl.Width, levels.DefaultMaxWidth, lvl.ID)
		assert.LessOrEqual(t, lvl.Height, levels.DefaultMaxHeight, lvl.ID)
		assert.False(t, state.Finished(), "%s starts solved", lvl.ID)
		assert.Len(t, state.Crates(), len(state.Static().Targets()), lvl.ID)
	}
}

func TestFirstLevelSolution(t *testing.T) {
	p, _ := registry.Create(PackID)
	lvl, err := levels.NewLoader(p.FS()).LoadByID("01")
	require.NoError(t, err)

	state, err := lvl.NewState()
	require.NoError(t, err)

	for _, d := range []sokoban.Direction{sokoban.Up, sokoban.Left, sokoban.Left, sokoban.Down, sokoban.Right, sokoban.Right} {
		_, err := state.Move(d)
		require.NoError(t, err)
	}
	assert.True(t, state.Finished())
	assert.Equal(t, 6, state.Moves())
}
