package breakout

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// Layout places the block grid in normalised device coordinates and picks
// the row colours. Rows are numbered from the top.
type Layout struct {
	Lives int

	Left, Right float32
	Top         float32
	RowHeight   float32
	Gap         float32

	// Row colours run along an HSV ramp from HueStart to HueEnd (degrees).
	HueStart, HueEnd  float64
	Saturation, Value float64
}

func DefaultLayout() Layout {
	return Layout{
		Lives:      3,
		Left:       -0.9,
		Right:      0.9,
		Top:        0.9,
		RowHeight:  0.06,
		Gap:        0.01,
		HueStart:   0,
		HueEnd:     240,
		Saturation: 0.75,
		Value:      0.95,
	}
}

// BlockSize is the size shared by every block.
func (l Layout) BlockSize() mgl32.Vec2 {
	width := (l.Right - l.Left - l.Gap*float32(GridCols-1)) / float32(GridCols)
	return mgl32.Vec2{width, l.RowHeight}
}

// BlockCenter returns the centre of the block at row, col.
func (l Layout) BlockCenter(row, col int) mgl32.Vec2 {
	size := l.BlockSize()
	x := l.Left + size.X()/2 + float32(col)*(size.X()+l.Gap)
	y := l.Top - size.Y()/2 - float32(row)*(size.Y()+l.Gap)
	return mgl32.Vec2{x, y}
}

// RowColor returns the colour of row.
func (l Layout) RowColor(row int) mgl32.Vec3 {
	t := 0.0
	if GridRows > 1 {
		t = float64(row) / float64(GridRows-1)
	}
	hue := l.HueStart + (l.HueEnd-l.HueStart)*t
	return vec3(colorful.Hsv(hue, l.Saturation, l.Value).Clamped())
}

func vec3(c colorful.Color) mgl32.Vec3 {
	return mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}
}

// ToColorful converts v to a go-colorful colour.
func ToColorful(v mgl32.Vec3) colorful.Color {
	return colorful.Color{R: float64(v.X()), G: float64(v.Y()), B: float64(v.Z())}
}
