// Package panel is the in-game Debug window. It edits the breakout world
// directly: colours, paddles, score, lives and the block grid.
package panel

import (
	"fmt"
	"math"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/breakout/breakout"
	"github.com/plus3/breakout/ecs/debugui"
)

// Panel renders the Debug window for one world.
type Panel struct {
	World *breakout.World
}

// Spawn attaches a Debug window to w as an ImguiItem.
func Spawn(w *breakout.World) *Panel {
	p := &Panel{World: w}
	w.Storage.Spawn(debugui.ImguiItem{Render: p.Render})
	return p
}

// Press toggles the block at (row, col). A failure ends the session.
func (p *Panel) Press(row, col int) {
	state := p.state()
	if state == nil {
		return
	}
	if err := state.ToggleBlock(row, col); err != nil {
		p.fail(err)
	}
}

// SetScore overwrites the score.
func (p *Panel) SetScore(score int) {
	if state := p.state(); state != nil {
		state.Score = score
	}
}

// SetLives overwrites the lives, never below zero.
func (p *Panel) SetLives(lives int) {
	if state := p.state(); state != nil {
		state.Lives = max(lives, 0)
	}
}

// state returns the game state, failing the session when it is missing.
func (p *Panel) state() *breakout.GameState {
	state := p.World.State.Get()
	if state == nil {
		p.fail(breakout.ErrMissingState)
	}
	return state
}

func (p *Panel) fail(err error) {
	if session := p.World.Session.Get(); session != nil {
		session.Fail(fmt.Errorf("debug panel: %w", err))
	}
}

// SetPaddle moves a paddle to x, clamped into its bounds.
func (p *Panel) SetPaddle(side breakout.Side, x float32) {
	transform, paddle := p.World.Paddle(side)
	if transform == nil || paddle == nil {
		return
	}
	transform.Position[0] = paddle.Clamp(x)
}

// Reset rebuilds the grid and restores lives from the layout.
func (p *Panel) Reset() {
	state := p.state()
	if state == nil {
		return
	}
	layout := breakout.DefaultLayout()
	if l := p.World.Layout.Get(); l != nil {
		layout = *l
	}
	breakout.ResetGame(state, layout)
}

// Render draws the Debug window. It must run between the backend's
// BeginFrame and EndFrame.
func (p *Panel) Render() {
	state := p.state()
	settings, clock := p.World.Settings.Get(), p.World.Clock.Get()
	if settings == nil || clock == nil || state == nil {
		return
	}

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 520), imgui.CondOnce)
	if !imgui.BeginV("Debug", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	imgui.Text(fmt.Sprintf("%s %d.%d", settings.Title, settings.VersionMajor, settings.VersionMinor))
	imgui.Separator()

	imgui.ColorEdit3("Background", (*[3]float32)(&settings.Background))
	imgui.ColorEdit3("Ball", (*[3]float32)(&settings.Ball))
	imgui.ColorEdit3("Paddle (Left)", (*[3]float32)(&settings.PaddleLeft))
	imgui.ColorEdit3("Paddle (Right)", (*[3]float32)(&settings.PaddleRight))
	imgui.Separator()

	imgui.Text(fmt.Sprintf("Frame Counter: %d", clock.FrameCounter))
	imgui.Text("Run Start: " + breakout.FormatTime(clock.RunStart))
	imgui.Text("Runtime: " + breakout.FormatDuration(clock.Runtime))
	imgui.Separator()

	p.renderPaddles()
	if ball := p.World.BallTransform(); ball != nil {
		imgui.Text(BallText(ball.Position))
		hidden := p.World.BallHidden()
		if imgui.Checkbox("Hide Ball", &hidden) {
			p.World.SetBallHidden(hidden)
		}
	}
	imgui.Separator()

	score := InputValue(state.Score)
	if imgui.InputInt("Score", &score) {
		p.SetScore(int(score))
	}
	lives := InputValue(state.Lives)
	if imgui.InputInt("Lives", &lives) {
		p.SetLives(int(lives))
	}
	if imgui.Button("Reset") {
		p.Reset()
	}
	imgui.SameLine()
	imgui.Text(fmt.Sprintf("Active blocks: %d / %d", state.ActiveBlocks(), breakout.GridRows*breakout.GridCols))

	p.renderGrid(state)
}

func (p *Panel) renderPaddles() {
	for _, side := range []breakout.Side{breakout.SideLeft, breakout.SideRight} {
		transform, paddle := p.World.Paddle(side)
		if transform == nil || paddle == nil {
			continue
		}
		x := transform.Position.X()
		if imgui.SliderFloat("Paddle "+side.String(), &x, paddle.Min, paddle.Max) {
			p.SetPaddle(side, x)
		}
	}
}

func (p *Panel) renderGrid(state *breakout.GameState) {
	flags := imgui.TableFlagsBorders | imgui.TableFlagsSizingFixedFit
	if !imgui.BeginTableV("BlockGrid", breakout.GridCols, flags, imgui.NewVec2(0, 0), 0) {
		return
	}
	defer imgui.EndTable()

	for row := range breakout.GridRows {
		imgui.TableNextRow()
		for col := range breakout.GridCols {
			imgui.TableNextColumn()
			block := &state.Blocks[row][col]

			imgui.PushIDInt(int32(row*breakout.GridCols + col))
			c := block.Color
			if !block.Active {
				c = c.Mul(0.25)
			}
			imgui.PushStyleColorVec4(imgui.ColButton, imgui.NewVec4(c.X(), c.Y(), c.Z(), 1))
			if imgui.ButtonV(BlockLabel(block), imgui.NewVec2(32, 20)) {
				p.Press(row, col)
			}
			imgui.PopStyleColor()
			imgui.PopID()
		}
	}
}

// BlockLabel is the grid button text: the points of an active block, a
// dash for a destroyed one.
func BlockLabel(block *breakout.Block) string {
	if !block.Active {
		return "-"
	}
	return fmt.Sprintf("%d", block.Points)
}

// BallText formats the ball position as x, y.
func BallText(pos mgl32.Vec2) string {
	return fmt.Sprintf("Ball: (%.3f, %.3f)", pos.X(), pos.Y())
}

// InputValue converts v for an int32 input widget, saturating at the int32
// limits instead of wrapping.
func InputValue(v int) int32 {
	return int32(min(max(v, math.MinInt32), math.MaxInt32))
}
