package tetris

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateLanding     GameStateType = "landing"
	StateClearing    GameStateType = "clearing"
	StateGameOver    GameStateType = "game_over"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing.
// Effects are not part of it.
type Snapshot struct {
	Tick     uint64
	Score    int
	Lines    int
	Level    int
	Active   Piece
	Next     Shape
	Hold     Shape
	CanHold  bool
	Clearing []int
	Board    Board
	State    GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	e := g.engine

	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case e.GameOver():
		state = StateGameOver
	case e.Paused():
		state = StatePaused
	case e.Phase() == PhaseClearing:
		state = StateClearing
	case e.Phase() == PhaseLanding:
		state = StateLanding
	}

	s := e.Scoring()
	return Snapshot{
		Tick:     g.tick,
		Score:    s.Score,
		Lines:    s.Lines,
		Level:    s.Level,
		Active:   e.Active(),
		Next:     e.Next(),
		Hold:     e.Held(),
		CanHold:  e.CanHold(),
		Clearing: append([]int(nil), e.ClearingRows()...),
		Board:    e.Board(),
		State:    state,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lines) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Active.Shape)
	h = h*31 + uint64(snap.Active.Rotation) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Active.X+Width)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Active.Y+Height) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Next)
	h = h*31 + uint64(snap.Hold)
	if snap.CanHold {
		h = h*31 + 1
	}

	for _, row := range snap.Clearing {
		h = h*31 + uint64(row) //#nosec G115 -- hash computation
	}

	for _, row := range snap.Board {
		for _, cell := range row {
			h = h*31 + uint64(cell)
		}
	}

	for _, c := range snap.State {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}

	return h
}
