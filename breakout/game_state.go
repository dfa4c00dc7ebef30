// Package breakout holds the game state of the Breakout prototype and the
// ECS systems that drive it. Rendering lives in the front-end packages under
// render/.
package breakout

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	GridRows = 6
	GridCols = 10
)

var (
	ErrBlockOutOfRange = errors.New("block index out of range")
	ErrBlockInactive   = errors.New("block already destroyed")
	ErrBlockActive     = errors.New("block already active")
	ErrMissingState    = errors.New("game state missing")
)

// Block is one breakable cell of the grid. Position is the centre in
// normalised device coordinates.
type Block struct {
	Position mgl32.Vec2
	Size     mgl32.Vec2
	Color    mgl32.Vec3
	Points   int
	Active   bool
}

// GameState is the score, lives and block grid. It is stored as an ECS
// singleton and only changes through debug actions.
type GameState struct {
	Score  int
	Lives  int
	Blocks [GridRows][GridCols]Block
}

// ResetGame zeroes the score, restores the starting lives and rebuilds every
// block as active.
func ResetGame(gs *GameState, layout Layout) {
	gs.Score = 0
	gs.Lives = max(layout.Lives, 0)

	for row := range GridRows {
		color := layout.RowColor(row)
		for col := range GridCols {
			gs.Blocks[row][col] = Block{
				Position: layout.BlockCenter(row, col),
				Size:     layout.BlockSize(),
				Color:    color,
				Points:   (GridRows - row) * 10,
				Active:   true,
			}
		}
	}
}

// Block returns the block at row, col.
func (gs *GameState) Block(row, col int) (*Block, error) {
	if row < 0 || row >= GridRows || col < 0 || col >= GridCols {
		return nil, fmt.Errorf("%w: (%d, %d) outside %dx%d grid", ErrBlockOutOfRange, row, col, GridRows, GridCols)
	}
	return &gs.Blocks[row][col], nil
}

// DestroyBlock deactivates the block and adds its points to the score.
func (gs *GameState) DestroyBlock(row, col int) error {
	block, err := gs.Block(row, col)
	if err != nil {
		return err
	}
	if !block.Active {
		return fmt.Errorf("%w: (%d, %d)", ErrBlockInactive, row, col)
	}

	block.Active = false
	gs.Score += block.Points
	return nil
}

// RestoreBlock reactivates a destroyed block. The score is left alone.
func (gs *GameState) RestoreBlock(row, col int) error {
	block, err := gs.Block(row, col)
	if err != nil {
		return err
	}
	if block.Active {
		return fmt.Errorf("%w: (%d, %d)", ErrBlockActive, row, col)
	}

	block.Active = true
	return nil
}

// ToggleBlock destroys an active block or restores a destroyed one.
func (gs *GameState) ToggleBlock(row, col int) error {
	block, err := gs.Block(row, col)
	if err != nil {
		return err
	}
	if block.Active {
		return gs.DestroyBlock(row, col)
	}
	return gs.RestoreBlock(row, col)
}

// DestroyNext destroys the first active block in row-major order and
// reports which one. ok is false when the grid is cleared.
func (gs *GameState) DestroyNext() (row, col int, ok bool) {
	for row := range GridRows {
		for col := range GridCols {
			if gs.Blocks[row][col].Active {
				// Cannot fail: the block is in range and active.
				_ = gs.DestroyBlock(row, col)
				return row, col, true
			}
		}
	}
	return 0, 0, false
}

// ActiveBlocks counts the blocks still standing.
func (gs *GameState) ActiveBlocks() int {
	n := 0
	for row := range GridRows {
		for col := range GridCols {
			if gs.Blocks[row][col].Active {
				n++
			}
		}
	}
	return n
}

func (gs *GameState) Cleared() bool {
	return gs.ActiveBlocks() == 0
}

// AddLives adjusts lives by delta. Lives never drop below zero.
func (gs *GameState) AddLives(delta int) {
	gs.Lives = max(gs.Lives+delta, 0)
}
