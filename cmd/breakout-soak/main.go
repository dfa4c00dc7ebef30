// Command breakout-soak runs a headless world with scripted key presses and
// prints a timing report. Every frame is checked against the grid and paddle
// invariants.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/plus3/breakout/breakout"
	"github.com/plus3/breakout/ecs"
)

var scriptKeys = []breakout.Key{
	breakout.KeyA,
	breakout.KeyD,
	breakout.KeyLeft,
	breakout.KeyRight,
	breakout.KeyR,
	breakout.KeySpace,
	breakout.KeyPlus,
	breakout.KeyMinus,
	breakout.KeyH,
}

// scriptedInput presses each key with a fixed probability per frame.
type scriptedInput struct {
	rng     *rand.Rand
	chance  float64
	pressed map[breakout.Key]bool
	presses int64
}

func newScriptedInput(seed int64, chance float64) *scriptedInput {
	return &scriptedInput{
		rng:     rand.New(rand.NewSource(seed)),
		chance:  chance,
		pressed: make(map[breakout.Key]bool),
	}
}

func (in *scriptedInput) roll() {
	for _, k := range scriptKeys {
		in.pressed[k] = in.rng.Float64() < in.chance
		if in.pressed[k] {
			in.presses++
		}
	}
}

func (in *scriptedInput) CloseRequested() bool { return false }

func (in *scriptedInput) JustPressed(key breakout.Key) bool { return in.pressed[key] }

// checkInvariants verifies that the score is the sum of the destroyed blocks'
// points, that lives are not negative and that the paddles are in bounds.
func checkInvariants(w *breakout.World) error {
	state := w.State.Get()
	if state == nil {
		return breakout.ErrMissingState
	}

	destroyed := 0
	for row := range breakout.GridRows {
		for col := range breakout.GridCols {
			if block := state.Blocks[row][col]; !block.Active {
				destroyed += block.Points
			}
		}
	}
	if destroyed != state.Score {
		return fmt.Errorf("score %d, destroyed blocks are worth %d", state.Score, destroyed)
	}
	if state.Lives < 0 {
		return fmt.Errorf("negative lives %d", state.Lives)
	}

	for _, side := range []breakout.Side{breakout.SideLeft, breakout.SideRight} {
		transform, paddle := w.Paddle(side)
		if transform == nil || paddle == nil {
			return fmt.Errorf("%s paddle is gone", side)
		}
		if x := transform.Position.X(); x < paddle.Min || x > paddle.Max {
			return fmt.Errorf("%s paddle at %f outside [%f, %f]", side, x, paddle.Min, paddle.Max)
		}
	}
	if w.BallTransform() == nil {
		return fmt.Errorf("ball is gone")
	}
	return nil
}

// soakSystem closes every frame: it samples the frame time, checks the
// invariants and rolls the keys for the next frame. stop is called once the
// session has ended.
type soakSystem struct {
	Clock   ecs.Singleton[breakout.Clock]
	Session ecs.Singleton[breakout.Session]

	world   *breakout.World
	input   *scriptedInput
	samples *Stats
	stop    func()
}

func (s *soakSystem) Execute(frame *ecs.UpdateFrame) {
	clock, session := s.Clock.Get(), s.Session.Get()
	if clock == nil || session == nil {
		return
	}

	if s.samples != nil {
		s.samples.Samples = append(s.samples.Samples, time.Since(clock.FrameStart))
	}
	if err := checkInvariants(s.world); err != nil {
		session.Fail(fmt.Errorf("frame %d: %w", clock.FrameCounter, err))
	}
	if !session.Running {
		if s.stop != nil {
			s.stop()
		}
		return
	}
	s.input.roll()
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the soak should run for.")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Seed for the scripted key presses.")
	interval := flag.Duration("interval", 0, "Frame interval. Zero runs frames back to back.")
	chance := flag.Float64("chance", 0.05, "Probability that a key is pressed in a frame.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	cfg, err := breakout.ParseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	log.Println("Starting breakout soak...")

	report := &Report{
		Duration:       *duration,
		Seed:           *seed,
		Chance:         *chance,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	world := breakout.NewWorld(cfg, time.Now())
	input := newScriptedInput(*seed, *chance)
	world.Schedule(&breakout.InputSystem{Input: input}, &breakout.SceneSystem{}, &soakSystem{
		world:   world,
		input:   input,
		samples: &report.UpdateTime,
		stop:    cancel,
	})
	input.roll()

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running for %s...\n", *duration)
	startTime := time.Now()

	if *interval > 0 {
		world.Scheduler.Run(ctx, *interval)
	} else {
		lastFrameTime := time.Now()
		for world.Running() && ctx.Err() == nil {
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()
			world.Step(deltaTime.Seconds())
		}
	}

	report.TotalTime = time.Since(startTime)
	report.Presses = input.presses
	report.Collect(world)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Soak finished.")

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	if err := world.Err(); err != nil {
		log.Fatalf("invariant violated: %v", err)
	}
	log.Println("Soak complete.")
}
