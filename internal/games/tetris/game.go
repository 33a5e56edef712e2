package tetris

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Game adapts the Engine to the fixed-tick platform loop.
type Game struct {
	cfg    config.TetrisConfig
	engine *Engine
	rng    *rand.Rand // Seeds the randomizer of each restart

	tick     uint64
	tickRate int
	tickDur  time.Duration

	screenW int
	screenH int

	highScore int
	anim      animations
}

// New creates a Tetris game with the embedded default config.
func New() *Game {
	return NewWithConfig(config.DefaultTetrisConfig())
}

// NewWithConfig creates a Tetris game with the given config.
func NewWithConfig(cfg config.TetrisConfig) *Game {
	return &Game{cfg: cfg}
}

// ID returns the game identifier used for persistence.
func (g *Game) ID() string {
	return "tetris"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset initializes a new session in the NotStarted state.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.tickDur = time.Second / time.Duration(g.tickRate)
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0

	settings := SettingsFromConfig(g.cfg)
	if g.engine == nil {
		g.engine = NewEngine(settings, g.newRandomizer())
	} else {
		g.engine.Reset(g.newRandomizer())
	}
	g.anim = newAnimations(g.tickRate)
}

// Resize updates the screen dimensions without touching the session.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
}

// SetHighScore sets the persisted best score shown in the HUD.
func (g *Game) SetHighScore(score int) {
	g.highScore = score
}

// Lines returns the lines cleared in the current session.
func (g *Game) Lines() int {
	return g.engine.Lines()
}

// Level returns the current level.
func (g *Game) Level() int {
	return g.engine.Level()
}

// Engine exposes the underlying engine for inspection.
func (g *Game) Engine() *Engine {
	return g.engine
}

func (g *Game) newRandomizer() Randomizer {
	r, err := NewRandomizer(g.cfg.Pieces.Randomizer, g.rng.Int63())
	if err != nil {
		return NewUniform(g.rng.Int63())
	}
	return r
}

// restart discards the current session. The next input starts a new one.
func (g *Game) restart() {
	g.engine.Reset(g.newRandomizer())
	g.anim = newAnimations(g.tickRate)
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	switch g.engine.Status() {
	case StatusNotStarted:
		// The starting input is consumed and not applied to the piece.
		if input.Any() && !g.tooSmall() {
			g.engine.Start()
			g.collectEvents()
		}
		return core.StepResult{State: g.State()}
	case StatusGameOver:
		g.anim.step()
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) {
		g.engine.TogglePause()
	}
	if g.engine.Status() != StatusRunning || g.tooSmall() {
		return core.StepResult{State: g.State()}
	}

	g.applyInput(input)
	g.engine.Advance(g.tickDur)
	g.collectEvents()
	g.anim.step()

	return core.StepResult{State: g.State()}
}

// applyInput maps actions to engine operations. Hard drop goes last so
// moves and rotation in the same frame affect where the piece lands.
func (g *Game) applyInput(input core.InputFrame) {
	e := g.engine
	if input.Has(core.ActionLeft) {
		e.MovePiece(-1, 0)
	}
	if input.Has(core.ActionRight) {
		e.MovePiece(1, 0)
	}
	if input.Has(core.ActionUp) {
		e.RotatePiece()
	}
	if input.Has(core.ActionHold) {
		e.HoldPiece()
	}
	if input.Has(core.ActionDown) {
		e.SoftDrop()
	}
	if input.Has(core.ActionHardDrop) {
		e.HardDrop()
	}
}

func (g *Game) collectEvents() {
	for _, ev := range g.engine.DrainEvents() {
		g.anim.apply(ev)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	status := g.engine.Status()
	return core.GameState{
		Score:    g.engine.Score(),
		Started:  status != StatusNotStarted,
		GameOver: status == StatusGameOver,
		Paused:   status == StatusPaused,
	}
}
