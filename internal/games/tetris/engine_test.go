package tetris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

func testSettings(clearDelay time.Duration) Settings {
	return Settings{
		Width:          10,
		Height:         20,
		ClearDelay:     clearDelay,
		Speed:          config.DefaultTetrisConfig().Speed,
		HardDropPerRow: 2,
	}
}

func newTestEngine(clearDelay time.Duration, pieces ...PieceType) *Engine {
	return NewEngine(testSettings(clearDelay), NewSequence(pieces...))
}

func fillRow(b *Board, y int, except ...int) {
	skip := make(map[int]bool, len(except))
	for _, x := range except {
		skip[x] = true
	}
	for x := 0; x < b.Width(); x++ {
		if !skip[x] {
			b.Set(x, y, PieceJ)
		}
	}
}

func TestStartSpawnsCentered(t *testing.T) {
	e := newTestEngine(0, PieceT, PieceO)
	require.Equal(t, StatusNotStarted, e.Status())
	assert.Equal(t, PieceT, e.Next())

	_, ok := e.Active()
	assert.False(t, ok, "no active piece before start")

	require.True(t, e.Start())
	assert.Equal(t, StatusRunning, e.Status())

	a, ok := e.Active()
	require.True(t, ok)
	assert.Equal(t, PieceT, a.Type)
	assert.Equal(t, 3, a.X)
	assert.Equal(t, 0, a.Y)
	assert.Equal(t, PieceO, e.Next())
	assert.True(t, e.CanHold())

	assert.False(t, e.Start(), "start only leaves NotStarted")
}

func TestTogglePause(t *testing.T) {
	e := newTestEngine(0, PieceT)
	assert.False(t, e.TogglePause(), "cannot pause before start")

	e.Start()
	require.True(t, e.TogglePause())
	assert.Equal(t, StatusPaused, e.Status())

	before, _ := e.Active()
	assert.False(t, e.MovePiece(1, 0))
	assert.False(t, e.RotatePiece())
	assert.False(t, e.HoldPiece())
	assert.Zero(t, e.HardDrop())
	e.Advance(10 * time.Second)

	after, _ := e.Active()
	assert.Equal(t, before.X, after.X)
	assert.Equal(t, before.Y, after.Y)

	require.True(t, e.TogglePause())
	assert.Equal(t, StatusRunning, e.Status())
}

func TestMovePieceStopsAtWalls(t *testing.T) {
	e := newTestEngine(0, PieceI)
	e.Start()

	for range 3 {
		require.True(t, e.MovePiece(-1, 0))
	}
	assert.False(t, e.MovePiece(-1, 0))
	a, _ := e.Active()
	assert.Equal(t, 0, a.X)

	for range 6 {
		require.True(t, e.MovePiece(1, 0))
	}
	assert.False(t, e.MovePiece(1, 0))
	a, _ = e.Active()
	assert.Equal(t, 6, a.X)
}

func TestMovePieceBlockedByCells(t *testing.T) {
	e := newTestEngine(0, PieceO)
	e.Start()
	e.Board().Set(3, 0, PieceJ)

	assert.False(t, e.MovePiece(-1, 0), "O at x=4 would overlap (3,0)")
	assert.True(t, e.MovePiece(1, 0))
}

func TestRotatePieceRejectedAtFloor(t *testing.T) {
	e := newTestEngine(0, PieceI)
	e.Start()
	for e.SoftDrop() {
	}

	a, _ := e.Active()
	require.Equal(t, 19, a.Y)
	assert.False(t, e.RotatePiece(), "vertical I would extend below the floor")

	after, _ := e.Active()
	assert.True(t, a.Shape.Equal(after.Shape))
	assert.Equal(t, 0, after.Rotation)
}

func TestRotatePieceTracksRotation(t *testing.T) {
	e := newTestEngine(0, PieceT)
	e.Start()
	e.SoftDrop()

	for i := 1; i <= 4; i++ {
		require.True(t, e.RotatePiece())
		a, _ := e.Active()
		assert.Equal(t, i%4, a.Rotation)
	}
	a, _ := e.Active()
	assert.True(t, a.Shape.Equal(PieceT.Shape()))
}

func TestHardDropEqualsSoftDrops(t *testing.T) {
	hard := newTestEngine(0, PieceT)
	hard.Start()
	rows := hard.HardDrop()

	soft := newTestEngine(0, PieceT)
	soft.Start()
	steps := 0
	for soft.SoftDrop() {
		steps++
	}
	soft.PlacePiece()

	assert.Equal(t, 18, rows)
	assert.Equal(t, steps, rows)
	assert.True(t, hard.Board().Equal(soft.Board()), "both drops lock the piece in the same cells")
	assert.Equal(t, 2*rows, hard.Score())
	assert.Zero(t, soft.Score(), "soft drop awards no points")
	assert.Equal(t, 1, hard.Placed())
	assert.Equal(t, 1, soft.Placed())
}

func TestSingleLineClearImmediate(t *testing.T) {
	e := newTestEngine(0, PieceI)
	fillRow(e.Board(), 19, 3, 4, 5, 6)
	e.Board().Set(0, 18, PieceO)
	e.Start()

	rows := e.HardDrop()
	require.Equal(t, 19, rows)

	assert.Equal(t, 1, e.Lines())
	assert.Equal(t, 1, e.Level())
	assert.Equal(t, 40+2*19, e.Score())
	assert.Equal(t, 20, e.Board().Height())
	assert.Equal(t, PieceO, e.Board().At(0, 19), "row above shifts down")
	assert.Equal(t, 1, e.Board().Filled())
	assert.Empty(t, e.Clearing())

	_, ok := e.Active()
	assert.True(t, ok, "next piece spawns after removal")
}

func TestDeferredRemovalWaitsForDelay(t *testing.T) {
	e := newTestEngine(300*time.Millisecond, PieceI)
	fillRow(e.Board(), 19, 3, 4, 5, 6)
	e.Start()
	e.HardDrop()

	assert.Equal(t, []int{19}, e.Clearing())
	assert.Equal(t, 1, e.Lines(), "lines are scored immediately")
	assert.True(t, e.Board().RowComplete(19), "row stays until the delay elapses")
	assert.Equal(t, StatusRunning, e.Status())

	_, ok := e.Active()
	require.False(t, ok, "spawn waits for the removal")
	assert.False(t, e.MovePiece(-1, 0))
	assert.False(t, e.HoldPiece())

	e.Advance(299 * time.Millisecond)
	assert.True(t, e.Board().RowComplete(19))

	e.Advance(time.Millisecond)
	assert.Empty(t, e.Clearing())
	assert.Zero(t, e.Board().Filled())
	_, ok = e.Active()
	assert.True(t, ok)
}

func TestGravityAfterDeferredSpawnCountsOnlyLifetime(t *testing.T) {
	e := newTestEngine(300*time.Millisecond, PieceI, PieceT)
	fillRow(e.Board(), 19, 3, 4, 5, 6)
	e.Start()
	e.HardDrop()

	// The removal fires 300ms into this step; the new piece lives 700ms.
	e.Advance(time.Second)
	a, ok := e.Active()
	require.True(t, ok)
	assert.Equal(t, 0, a.Y)
	assert.Equal(t, time.Second, e.Clock())

	e.Advance(299 * time.Millisecond)
	a, _ = e.Active()
	assert.Equal(t, 0, a.Y)

	e.Advance(time.Millisecond)
	a, _ = e.Active()
	assert.Equal(t, 1, a.Y)
}

func TestDeferredRemovalPausedDoesNotFire(t *testing.T) {
	e := newTestEngine(300*time.Millisecond, PieceI)
	fillRow(e.Board(), 19, 3, 4, 5, 6)
	e.Start()
	e.HardDrop()

	e.TogglePause()
	e.Advance(time.Second)
	assert.True(t, e.Board().RowComplete(19))

	e.TogglePause()
	e.Advance(300 * time.Millisecond)
	assert.False(t, e.Board().RowComplete(19))
}

func TestResetDiscardsPendingRemoval(t *testing.T) {
	e := newTestEngine(300*time.Millisecond, PieceI)
	fillRow(e.Board(), 19, 3, 4, 5, 6)
	e.Start()
	e.HardDrop()
	require.Len(t, e.Clearing(), 1)
	gen := e.Generation()

	e.Reset(NewSequence(PieceO))
	assert.Greater(t, e.Generation(), gen)
	assert.Equal(t, StatusNotStarted, e.Status())
	assert.Zero(t, e.Score())
	assert.Zero(t, e.Lines())
	assert.Empty(t, e.Clearing())

	e.Board().Set(0, 19, PieceT)
	e.Start()
	e.Advance(time.Second)

	assert.Equal(t, PieceT, e.Board().At(0, 19), "stale removal must not touch the new board")
	assert.Zero(t, e.Lines())
}

func TestLineScoreTable(t *testing.T) {
	tests := []struct {
		rows     int
		expected int
	}{
		{1, 40},
		{2, 100},
		{3, 300},
		{4, 1200},
	}

	for _, tc := range tests {
		e := newTestEngine(0, PieceO)
		for y := 20 - tc.rows; y < 20; y++ {
			fillRow(e.Board(), y)
		}
		require.Equal(t, tc.rows, e.ClearLines())
		assert.Equal(t, tc.expected, e.Score(), "%d rows", tc.rows)
		assert.Zero(t, e.Board().Filled())
	}
}

func TestLineScoreUsesLevelBeforeClear(t *testing.T) {
	e := newTestEngine(0, PieceO)
	e.lines = 9
	e.level = e.settings.Speed.Level(e.lines)

	fillRow(e.Board(), 19)
	e.ClearLines()
	assert.Equal(t, 40, e.Score(), "awarded at level 1")
	assert.Equal(t, 10, e.Lines())
	assert.Equal(t, 2, e.Level())
	assert.Equal(t, 900*time.Millisecond, e.DropInterval())

	fillRow(e.Board(), 19)
	e.ClearLines()
	assert.Equal(t, 40+80, e.Score(), "awarded at level 2")
}

func TestNoClearWithoutCompleteRow(t *testing.T) {
	e := newTestEngine(0, PieceO)
	fillRow(e.Board(), 19, 9)
	assert.Zero(t, e.ClearLines())
	assert.Zero(t, e.Score())
	assert.Equal(t, 9, e.Board().Filled())
}

func TestHoldOncePerSpawn(t *testing.T) {
	e := newTestEngine(0, PieceT, PieceO, PieceS)
	e.Start()

	require.True(t, e.HoldPiece())
	assert.Equal(t, PieceT, e.Held())
	a, _ := e.Active()
	assert.Equal(t, PieceO, a.Type)
	assert.Equal(t, PieceS, e.Next())

	assert.False(t, e.HoldPiece(), "second hold in the same spawn is a no-op")
	a, _ = e.Active()
	assert.Equal(t, PieceO, a.Type)
	assert.Equal(t, PieceT, e.Held())

	e.HardDrop()
	assert.True(t, e.CanHold())
	a, _ = e.Active()
	require.Equal(t, PieceS, a.Type)

	e.MovePiece(1, 0)
	require.True(t, e.HoldPiece())
	assert.Equal(t, PieceS, e.Held())
	a, _ = e.Active()
	assert.Equal(t, PieceT, a.Type, "held piece swaps back in")
	assert.Equal(t, 3, a.X, "swapped piece returns to spawn")
	assert.Equal(t, 0, a.Y)
}

func TestHoldIntoBlockedSpawnEndsGame(t *testing.T) {
	e := newTestEngine(0, PieceT, PieceI, PieceO)
	e.Start()

	require.True(t, e.HoldPiece())
	require.Equal(t, PieceT, e.Held())
	e.HardDrop()
	a, ok := e.Active()
	require.True(t, ok)
	require.Equal(t, PieceO, a.Type)

	// Blocks the lower left cell of a T at its spawn position.
	e.Board().Set(3, 1, PieceJ)

	assert.True(t, e.HoldPiece())
	assert.Equal(t, StatusGameOver, e.Status())
	assert.Equal(t, PieceO, e.Held())
	_, ok = e.Active()
	assert.False(t, ok)

	events := e.DrainEvents()
	require.NotEmpty(t, events)
	assert.Equal(t, EventHold, events[len(events)-1].Kind)
	assert.Equal(t, EventGameOver, events[len(events)-2].Kind)
}

func TestGravity(t *testing.T) {
	e := newTestEngine(0, PieceT)
	e.Start()

	e.Advance(999 * time.Millisecond)
	a, _ := e.Active()
	assert.Equal(t, 0, a.Y)

	e.Advance(time.Millisecond)
	a, _ = e.Active()
	assert.Equal(t, 1, a.Y)

	e.Advance(5 * time.Second)
	a, _ = e.Active()
	assert.Equal(t, 6, a.Y)
}

func TestGravityPlacesPieceOnFloor(t *testing.T) {
	e := newTestEngine(0, PieceO)
	e.Start()

	for range 19 {
		e.Advance(time.Second)
	}
	assert.Equal(t, 1, e.Placed())
	a, ok := e.Active()
	require.True(t, ok)
	assert.Equal(t, 0, a.Y, "new piece at spawn")
	assert.Equal(t, PieceO, e.Board().At(4, 19))
}

func TestAdvanceIgnoredUnlessRunning(t *testing.T) {
	e := newTestEngine(0, PieceT)
	e.Advance(time.Hour)
	assert.Zero(t, e.Clock())
	assert.Equal(t, StatusNotStarted, e.Status())
}

func TestGameOverOnBlockedSpawn(t *testing.T) {
	e := newTestEngine(0, PieceT)
	e.Board().Set(4, 0, PieceO)

	e.Start()
	assert.Equal(t, StatusGameOver, e.Status())
	_, ok := e.Active()
	assert.False(t, ok)

	assert.False(t, e.MovePiece(1, 0))
	assert.False(t, e.TogglePause())
	assert.False(t, e.Start(), "no transition out of game over")
	e.Advance(time.Second)
	assert.Equal(t, StatusGameOver, e.Status())

	events := e.DrainEvents()
	require.NotEmpty(t, events)
	assert.Equal(t, EventGameOver, events[len(events)-1].Kind)

	e.Reset(nil)
	assert.Equal(t, StatusNotStarted, e.Status())
}

func TestGameOverAfterStacking(t *testing.T) {
	e := newTestEngine(0, PieceO)
	e.Start()
	for range 20 {
		if e.Status() == StatusGameOver {
			break
		}
		e.HardDrop()
	}
	assert.Equal(t, StatusGameOver, e.Status())
	assert.Equal(t, 10, e.Placed(), "ten O pieces fill columns 4-5")
}

func TestSingleRowScenario(t *testing.T) {
	e := newTestEngine(0, PieceI, PieceI, PieceO)
	e.Start()

	for e.MovePiece(-1, 0) {
	}
	first := e.HardDrop()

	e.MovePiece(1, 0)
	second := e.HardDrop()

	for e.MovePiece(1, 0) {
	}
	third := e.HardDrop()

	assert.Equal(t, 1, e.Lines())
	assert.Equal(t, 1, e.Level())
	assert.Equal(t, 40, e.Score()-2*(first+second+third))
	assert.Equal(t, PieceO, e.Board().At(8, 19), "top half of O drops into the cleared row")
	assert.Equal(t, PieceO, e.Board().At(9, 19))
	assert.Equal(t, 2, e.Board().Filled())
}

func TestDrainEvents(t *testing.T) {
	e := newTestEngine(0, PieceI)
	fillRow(e.Board(), 19, 3, 4, 5, 6)
	e.Start()
	e.HardDrop()

	events := e.DrainEvents()
	require.Len(t, events, 3)
	assert.Equal(t, EventPlaced, events[0].Kind)
	assert.Len(t, events[0].Cells, 4)
	assert.Equal(t, EventLinesCleared, events[1].Kind)
	assert.Equal(t, 40, events[1].Points)
	assert.Equal(t, EventRowsRemoved, events[2].Kind)

	assert.Empty(t, e.DrainEvents())
}

func TestGhostY(t *testing.T) {
	e := newTestEngine(0, PieceO)
	_, ok := e.GhostY()
	assert.False(t, ok)

	e.Start()
	y, ok := e.GhostY()
	require.True(t, ok)
	assert.Equal(t, 18, y)

	a, _ := e.Active()
	assert.Equal(t, 0, a.Y, "ghost lookup does not move the piece")
}
