package breakout_test

import (
	"testing"

	"github.com/plus3/breakout/breakout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGame(t *testing.T) *breakout.GameState {
	t.Helper()
	gs := &breakout.GameState{}
	breakout.ResetGame(gs, breakout.DefaultLayout())
	return gs
}

func TestResetGame(t *testing.T) {
	gs := &breakout.GameState{Score: 120, Lives: 0}
	breakout.ResetGame(gs, breakout.DefaultLayout())

	assert.Equal(t, 0, gs.Score)
	assert.Equal(t, 3, gs.Lives)
	assert.Equal(t, breakout.GridRows*breakout.GridCols, gs.ActiveBlocks())
	assert.False(t, gs.Cleared())

	assert.Equal(t, 60, gs.Blocks[0][0].Points)
	assert.Equal(t, 10, gs.Blocks[breakout.GridRows-1][0].Points)
	assert.Equal(t, gs.Blocks[2][0].Color, gs.Blocks[2][9].Color)
	assert.NotEqual(t, gs.Blocks[0][0].Color, gs.Blocks[1][0].Color)
}

func TestResetGameRestoresDestroyedBlocks(t *testing.T) {
	gs := newGame(t)
	require.NoError(t, gs.DestroyBlock(0, 0))
	require.NoError(t, gs.DestroyBlock(5, 9))

	breakout.ResetGame(gs, breakout.Layout{Lives: -2})
	assert.Equal(t, 0, gs.Score)
	assert.Equal(t, 0, gs.Lives)
	assert.True(t, gs.Blocks[0][0].Active)
	assert.True(t, gs.Blocks[5][9].Active)
}

func TestDestroyBlock(t *testing.T) {
	gs := newGame(t)

	require.NoError(t, gs.DestroyBlock(1, 3))
	assert.False(t, gs.Blocks[1][3].Active)
	assert.Equal(t, 50, gs.Score)
	assert.Equal(t, breakout.GridRows*breakout.GridCols-1, gs.ActiveBlocks())
}

func TestDestroyBlockTwiceFails(t *testing.T) {
	gs := newGame(t)
	require.NoError(t, gs.DestroyBlock(2, 2))
	score := gs.Score

	err := gs.DestroyBlock(2, 2)
	require.ErrorIs(t, err, breakout.ErrBlockInactive)
	assert.Equal(t, score, gs.Score)
	assert.False(t, gs.Blocks[2][2].Active)
}

func TestDestroyBlockOutOfRange(t *testing.T) {
	gs := newGame(t)

	for _, idx := range [][2]int{{-1, 0}, {0, -1}, {breakout.GridRows, 0}, {0, breakout.GridCols}, {100, 100}} {
		err := gs.DestroyBlock(idx[0], idx[1])
		assert.ErrorIs(t, err, breakout.ErrBlockOutOfRange, "index %v", idx)
	}
	assert.Equal(t, 0, gs.Score)
	assert.Equal(t, breakout.GridRows*breakout.GridCols, gs.ActiveBlocks())
}

func TestRestoreBlock(t *testing.T) {
	gs := newGame(t)

	assert.ErrorIs(t, gs.RestoreBlock(0, 0), breakout.ErrBlockActive)
	assert.ErrorIs(t, gs.RestoreBlock(0, breakout.GridCols), breakout.ErrBlockOutOfRange)

	require.NoError(t, gs.DestroyBlock(0, 0))
	require.NoError(t, gs.RestoreBlock(0, 0))
	assert.True(t, gs.Blocks[0][0].Active)
	assert.Equal(t, 60, gs.Score)

	require.NoError(t, gs.DestroyBlock(0, 0))
	assert.Equal(t, 120, gs.Score)
}

func TestToggleBlock(t *testing.T) {
	gs := newGame(t)

	require.NoError(t, gs.ToggleBlock(3, 4))
	assert.False(t, gs.Blocks[3][4].Active)
	assert.Equal(t, 30, gs.Score)

	require.NoError(t, gs.ToggleBlock(3, 4))
	assert.True(t, gs.Blocks[3][4].Active)
	assert.Equal(t, 30, gs.Score)

	assert.ErrorIs(t, gs.ToggleBlock(-1, 4), breakout.ErrBlockOutOfRange)
}

func TestDestroyNextClearsGrid(t *testing.T) {
	gs := newGame(t)
	require.NoError(t, gs.DestroyBlock(0, 0))

	row, col, ok := gs.DestroyNext()
	require.True(t, ok)
	assert.Equal(t, 0, row)
	assert.Equal(t, 1, col)

	for !gs.Cleared() {
		_, _, ok = gs.DestroyNext()
		require.True(t, ok)
	}

	_, _, ok = gs.DestroyNext()
	assert.False(t, ok)

	expected := 0
	for row := range breakout.GridRows {
		expected += (breakout.GridRows - row) * 10 * breakout.GridCols
	}
	assert.Equal(t, expected, gs.Score)
}

func TestBlockAccessor(t *testing.T) {
	gs := newGame(t)

	block, err := gs.Block(4, 7)
	require.NoError(t, err)
	block.Points = 999
	assert.Equal(t, 999, gs.Blocks[4][7].Points)

	_, err = gs.Block(breakout.GridRows, 0)
	assert.ErrorIs(t, err, breakout.ErrBlockOutOfRange)
	assert.Contains(t, err.Error(), "(6, 0)")
}

func TestAddLives(t *testing.T) {
	gs := newGame(t)

	gs.AddLives(2)
	assert.Equal(t, 5, gs.Lives)

	gs.AddLives(-10)
	assert.Equal(t, 0, gs.Lives)

	gs.AddLives(-1)
	assert.Equal(t, 0, gs.Lives)
}
