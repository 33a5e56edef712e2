package tetris

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick     uint64
	Status   Status
	Score    int
	Lines    int
	Level    int
	Placed   int
	Active   PieceType
	ActiveX  int
	ActiveY  int
	Rotation int
	Next     PieceType
	Held     PieceType
	Filled   int // Number of occupied board cells
	Clearing int // Rows awaiting removal
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	e := g.engine
	s := Snapshot{
		Tick:     g.tick,
		Status:   e.Status(),
		Score:    e.Score(),
		Lines:    e.Lines(),
		Level:    e.Level(),
		Placed:   e.Placed(),
		Next:     e.Next(),
		Held:     e.Held(),
		Filled:   e.Board().Filled(),
		Clearing: len(e.Clearing()),
	}
	if a, ok := e.Active(); ok {
		s.Active = a.Type
		s.ActiveX = a.X
		s.ActiveY = a.Y
		s.Rotation = a.Rotation
	}
	return s
}
