package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

// Status is the lifecycle state of a single game session.
//
//	NotStarted -> Running <-> Paused
//	Running -> GameOver
//
// Reset returns any state to NotStarted.
type Status int

const (
	StatusNotStarted Status = iota
	StatusRunning
	StatusPaused
	StatusGameOver
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// lineScores is the award per simultaneous clear count, multiplied by level.
var lineScores = [...]int{0, 40, 100, 300, 1200}

// Settings holds the engine parameters derived from configuration.
type Settings struct {
	Width          int
	Height         int
	ClearDelay     time.Duration
	Speed          config.SpeedConfig
	HardDropPerRow int
}

// SettingsFromConfig converts the YAML config into engine settings.
func SettingsFromConfig(cfg config.TetrisConfig) Settings {
	return Settings{
		Width:          cfg.Board.Width,
		Height:         cfg.Board.Height,
		ClearDelay:     time.Duration(cfg.Timing.ClearDelayMs) * time.Millisecond,
		Speed:          cfg.Speed,
		HardDropPerRow: cfg.Scoring.HardDropPerRow,
	}
}

// DefaultSettings returns the settings for the default config.
func DefaultSettings() Settings {
	return SettingsFromConfig(config.DefaultTetrisConfig())
}

// Active is the falling piece: its type, current orientation and offset.
type Active struct {
	Type     PieceType
	Shape    Shape
	X, Y     int
	Rotation int // Quarter turns clockwise from spawn, 0-3
}

// Cells returns the board cells occupied by the active piece.
func (a Active) Cells() []Point {
	return a.Shape.Cells(a.X, a.Y)
}

// EventKind classifies engine events consumed by the renderer.
type EventKind int

const (
	EventPlaced       EventKind = iota // Piece locked into the board
	EventLinesCleared                  // Complete rows found and scored
	EventRowsRemoved                   // Deferred removal finished
	EventHold                          // Active piece went to the hold slot
	EventGameOver                      // Spawn position was blocked
)

// Event describes something that happened during an engine operation.
type Event struct {
	Kind   EventKind
	Piece  PieceType
	Cells  []Point // EventPlaced: cells written
	Rows   []int   // EventLinesCleared/EventRowsRemoved: affected rows
	Points int     // EventLinesCleared: score awarded
}

// Engine is the complete state of one Tetris session together with the
// operations that mutate it. It has no notion of wall-clock time: callers
// feed elapsed time through Advance.
type Engine struct {
	settings Settings
	rand     Randomizer

	board   *Board
	active  *Active
	next    PieceType
	held    PieceType
	canHold bool

	score  int
	lines  int
	level  int
	placed int
	status Status

	clock     time.Duration // Session time while running
	gravity   time.Duration // Time since the last automatic drop
	spawnedAt time.Duration // Clock value when the active piece spawned

	// generation increments on every Reset; deferred tasks carry the
	// generation they were scheduled under.
	generation uint64
	tasks      schedule
	clearing   []int // Rows scored but not yet removed

	events []Event
}

// NewEngine creates an engine in the NotStarted state.
func NewEngine(settings Settings, r Randomizer) *Engine {
	e := &Engine{settings: settings}
	e.Reset(r)
	return e
}

// Reset discards the session and returns to NotStarted. Pending deferred
// tasks are cancelled. A nil randomizer keeps the current one.
func (e *Engine) Reset(r Randomizer) {
	e.generation++
	e.tasks.cancelAll()

	if r != nil {
		e.rand = r
	}
	if e.rand == nil {
		e.rand = NewUniform(1)
	}

	e.board = NewBoard(e.settings.Width, e.settings.Height)
	e.active = nil
	e.held = Empty
	e.canHold = false
	e.score = 0
	e.lines = 0
	e.level = e.settings.Speed.Level(0)
	e.placed = 0
	e.status = StatusNotStarted
	e.clock = 0
	e.gravity = 0
	e.clearing = nil
	e.events = nil
	e.next = e.rand.Next()
}

// Start moves NotStarted to Running and spawns the first piece.
func (e *Engine) Start() bool {
	if e.status != StatusNotStarted {
		return false
	}
	e.status = StatusRunning
	e.spawnNext()
	return true
}

// TogglePause flips between Running and Paused. Other states are unaffected.
func (e *Engine) TogglePause() bool {
	switch e.status {
	case StatusRunning:
		e.status = StatusPaused
		return true
	case StatusPaused:
		e.status = StatusRunning
		return true
	default:
		return false
	}
}

// canAct reports whether piece operations are currently allowed.
func (e *Engine) canAct() bool {
	return e.status == StatusRunning && e.active != nil
}

// IsValidPosition reports whether shape fits at (x, y) on the current board.
func (e *Engine) IsValidPosition(x, y int, shape Shape) bool {
	return e.board.IsValidPosition(x, y, shape)
}

// spawnNext promotes the next piece to active and draws a replacement.
func (e *Engine) spawnNext() bool {
	p := e.next
	e.next = e.rand.Next()
	return e.spawn(p)
}

// spawn places a piece of type p at the top center. An invalid spawn
// position ends the game.
func (e *Engine) spawn(p PieceType) bool {
	shape := p.Shape()
	x := (e.board.Width() - shape.Width()) / 2
	y := 0

	e.canHold = true
	e.gravity = 0
	e.spawnedAt = e.clock

	if !e.board.IsValidPosition(x, y, shape) {
		e.active = nil
		e.status = StatusGameOver
		e.emit(Event{Kind: EventGameOver, Piece: p})
		return false
	}

	e.active = &Active{Type: p, Shape: shape, X: x, Y: y}
	return true
}

// MovePiece translates the active piece by (dx, dy) if the target is valid.
func (e *Engine) MovePiece(dx, dy int) bool {
	if !e.canAct() {
		return false
	}
	nx, ny := e.active.X+dx, e.active.Y+dy
	if !e.board.IsValidPosition(nx, ny, e.active.Shape) {
		return false
	}
	e.active.X = nx
	e.active.Y = ny
	return true
}

// RotatePiece turns the active piece clockwise in place. There is no wall
// kick: a blocked rotation is rejected.
func (e *Engine) RotatePiece() bool {
	if !e.canAct() {
		return false
	}
	rotated := e.active.Shape.Rotate()
	if !e.board.IsValidPosition(e.active.X, e.active.Y, rotated) {
		return false
	}
	e.active.Shape = rotated
	e.active.Rotation = (e.active.Rotation + 1) % 4
	return true
}

// SoftDrop moves the active piece down one row.
func (e *Engine) SoftDrop() bool {
	return e.MovePiece(0, 1)
}

// HardDrop moves the active piece down until it rests, awarding
// HardDropPerRow points per row, then places it. Returns rows descended.
func (e *Engine) HardDrop() int {
	if !e.canAct() {
		return 0
	}
	rows := 0
	for e.MovePiece(0, 1) {
		rows++
		e.score += e.settings.HardDropPerRow
	}
	e.PlacePiece()
	return rows
}

// HoldPiece moves the active piece into the hold slot. With an empty slot
// the next piece spawns; otherwise the held piece comes back at the spawn
// position. Allowed once per spawn.
func (e *Engine) HoldPiece() bool {
	if !e.canAct() || !e.canHold {
		return false
	}

	current := e.active.Type
	e.active = nil

	if e.held == Empty {
		e.held = current
		e.spawnNext()
	} else {
		swap := e.held
		e.held = current
		e.spawn(swap)
	}
	e.canHold = false

	e.emit(Event{Kind: EventHold, Piece: current})
	return true
}

// PlacePiece locks the active piece into the board, checks for complete
// rows and spawns the next piece. With rows to clear, the spawn waits for
// the deferred removal.
func (e *Engine) PlacePiece() {
	if !e.canAct() {
		return
	}

	a := e.active
	e.active = nil
	cells := e.board.Lock(a.X, a.Y, a.Shape, a.Type)
	e.placed++
	e.emit(Event{Kind: EventPlaced, Piece: a.Type, Cells: cells})

	if e.ClearLines() == 0 {
		e.spawnNext()
	}
}

// ClearLines finds every complete row in one pass and scores them at the
// current level. Removal happens after the clear delay; the row count of
// the board is preserved. Returns the number of rows found.
func (e *Engine) ClearLines() int {
	if len(e.clearing) > 0 {
		return 0
	}

	rows := e.board.CompleteRows()
	k := len(rows)
	if k == 0 {
		return 0
	}

	points := lineScores[min(k, len(lineScores)-1)] * e.level
	e.score += points
	e.lines += k
	e.level = e.settings.Speed.Level(e.lines)
	e.clearing = rows
	e.emit(Event{Kind: EventLinesCleared, Rows: rows, Points: points})

	remove := func() {
		e.board.RemoveRows(rows)
		e.clearing = nil
		e.emit(Event{Kind: EventRowsRemoved, Rows: rows})
		if e.status == StatusRunning && e.active == nil {
			e.spawnNext()
		}
	}

	if e.settings.ClearDelay <= 0 {
		remove()
	} else {
		e.tasks.after(e.clock, e.settings.ClearDelay, e.generation, remove)
	}
	return k
}

// Advance moves session time forward while running: deferred tasks that
// came due fire first, each at its own due time, then gravity drops the
// active piece once per drop interval, placing it when it cannot fall
// further. A piece spawned during this call is only credited with the time
// it has existed.
func (e *Engine) Advance(dt time.Duration) {
	if e.status != StatusRunning || dt <= 0 {
		return
	}

	start := e.clock
	end := start + dt
	for {
		due, ok := e.tasks.nextDue()
		if !ok || due > end {
			break
		}
		e.clock = due
		e.tasks.fire(e.clock, e.generation)
	}
	e.clock = end

	if e.active == nil {
		e.gravity = 0
		return
	}

	if e.spawnedAt > start {
		dt = end - e.spawnedAt
	}
	e.gravity += dt
	for e.canAct() {
		interval := e.DropInterval()
		if e.gravity < interval {
			break
		}
		e.gravity -= interval
		if !e.MovePiece(0, 1) {
			e.PlacePiece()
			e.gravity = 0
		}
	}
}

// DropInterval returns the automatic drop period for the current level.
func (e *Engine) DropInterval() time.Duration {
	return e.settings.Speed.Interval(e.level)
}

// GhostY returns the row the active piece would land on if hard-dropped.
func (e *Engine) GhostY() (int, bool) {
	if e.active == nil {
		return 0, false
	}
	y := e.active.Y
	for e.board.IsValidPosition(e.active.X, y+1, e.active.Shape) {
		y++
	}
	return y, true
}

func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
}

// DrainEvents returns and clears the events recorded since the last call.
func (e *Engine) DrainEvents() []Event {
	events := e.events
	e.events = nil
	return events
}

// Board returns the playfield. Callers must treat it as read-only.
func (e *Engine) Board() *Board {
	return e.board
}

// Active returns a copy of the falling piece, if any.
func (e *Engine) Active() (Active, bool) {
	if e.active == nil {
		return Active{}, false
	}
	a := *e.active
	a.Shape = a.Shape.Clone()
	return a, true
}

// Next returns the upcoming piece.
func (e *Engine) Next() PieceType { return e.next }

// Held returns the piece in the hold slot, or Empty.
func (e *Engine) Held() PieceType { return e.held }

// CanHold reports whether hold is still available for the current spawn.
func (e *Engine) CanHold() bool { return e.canHold }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Lines returns the total number of cleared lines.
func (e *Engine) Lines() int { return e.lines }

// Level returns the current level (starting at 1).
func (e *Engine) Level() int { return e.level }

// Placed returns how many pieces have been locked this session.
func (e *Engine) Placed() int { return e.placed }

// Status returns the session state.
func (e *Engine) Status() Status { return e.status }

// Clearing returns the rows awaiting deferred removal.
func (e *Engine) Clearing() []int { return e.clearing }

// Generation returns the session generation counter.
func (e *Engine) Generation() uint64 { return e.generation }

// Clock returns the running time of the session.
func (e *Engine) Clock() time.Duration { return e.clock }
