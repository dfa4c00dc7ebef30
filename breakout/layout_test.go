package breakout_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/breakout/breakout"
	"github.com/stretchr/testify/assert"
)

func TestLayoutGridFitsBounds(t *testing.T) {
	layout := breakout.DefaultLayout()
	size := layout.BlockSize()

	first := layout.BlockCenter(0, 0)
	last := layout.BlockCenter(breakout.GridRows-1, breakout.GridCols-1)

	assert.InDelta(t, layout.Left, first.X()-size.X()/2, 1e-5)
	assert.InDelta(t, layout.Right, last.X()+size.X()/2, 1e-5)
	assert.InDelta(t, layout.Top, first.Y()+size.Y()/2, 1e-5)
	assert.Less(t, last.Y(), first.Y())
}

func TestLayoutBlocksDoNotOverlap(t *testing.T) {
	layout := breakout.DefaultLayout()
	size := layout.BlockSize()

	a := layout.BlockCenter(0, 0)
	b := layout.BlockCenter(0, 1)
	c := layout.BlockCenter(1, 0)

	assert.InDelta(t, size.X()+layout.Gap, b.X()-a.X(), 1e-5)
	assert.InDelta(t, size.Y()+layout.Gap, a.Y()-c.Y(), 1e-5)
}

func TestRowColorRamp(t *testing.T) {
	layout := breakout.DefaultLayout()
	layout.Saturation, layout.Value = 1, 1

	assert.True(t, layout.RowColor(0).ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-4))
	assert.True(t, layout.RowColor(breakout.GridRows-1).ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-4))

	for row := range breakout.GridRows {
		c := layout.RowColor(row)
		for i := range 3 {
			assert.GreaterOrEqual(t, c[i], float32(0))
			assert.LessOrEqual(t, c[i], float32(1))
		}
	}
}

func TestToColorful(t *testing.T) {
	c := breakout.ToColorful(mgl32.Vec3{1, 0.5, 0})
	assert.Equal(t, "#ff8000", c.Hex())
}
