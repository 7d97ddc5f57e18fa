package tetris

import (
	"math/rand"
	"time"
)

// Phase is the state of the drop/lock state machine.
type Phase int

const (
	// PhaseFalling: the active piece falls on a timer and accepts input.
	PhaseFalling Phase = iota
	// PhaseLanding: a hard-dropped piece has locked and is flashing.
	PhaseLanding
	// PhaseClearing: full rows are flashing before removal.
	PhaseClearing
	// PhaseGameOver: a spawned piece did not fit. Only Restart leaves it.
	PhaseGameOver
)

// String returns the phase name used in snapshots.
func (p Phase) String() string {
	switch p {
	case PhaseFalling:
		return "falling"
	case PhaseLanding:
		return "landing"
	case PhaseClearing:
		return "clearing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Listener receives engine events for presentation. Implementations must
// not call back into the engine.
type Listener interface {
	// RowsCleared is called when a lock completes rows, with the rows in
	// ascending order and the board as it was before removal.
	RowsCleared(rows []int, before Board)
	// HardDropped is called with the landed piece and the rows it fell.
	HardDropped(landed Piece, distance int)
}

type nopListener struct{}

func (nopListener) RowsCleared([]int, Board) {}
func (nopListener) HardDropped(Piece, int) {}

// Settings configures an Engine.
type Settings struct {
	Rules         Rules
	StartLevel    int
	Randomizer    string
	ClearDuration time.Duration // line-clear flash before rows are removed
	LandingFlash  time.Duration // hard-drop flash; 0 resolves the lock at once
}

// DefaultSettings returns the standard engine configuration.
func DefaultSettings() Settings {
	return Settings{
		Rules:         DefaultRules(),
		StartLevel:    1,
		Randomizer:    RandomizerUniform,
		ClearDuration: 300 * time.Millisecond,
		LandingFlash:  60 * time.Millisecond,
	}
}

// Engine owns the whole game state: board, active/next/hold pieces, scoring
// and the drop/lock state machine. It is driven by Tick and the action
// methods from a single goroutine.
type Engine struct {
	settings Settings
	rng      *rand.Rand
	gen      Randomizer
	listener Listener

	board   Board
	active  Piece
	next    Shape
	hold    Shape
	canHold bool
	scoring Scoring

	phase  Phase
	paused bool

	fallTimer  time.Duration
	clearRows  []int
	clearTimer time.Duration
	landed     Piece
	landTimer  time.Duration
}

// NewEngine creates an engine seeded for a deterministic piece sequence and
// starts the first game.
func NewEngine(settings Settings, seed int64) *Engine {
	e := &Engine{
		settings: settings,
		listener: nopListener{},
	}
	e.Reset(seed)
	return e
}

// SetListener installs the event receiver. nil removes it.
func (e *Engine) SetListener(l Listener) {
	if l == nil {
		l = nopListener{}
	}
	e.listener = l
}

// Reset reseeds the piece sequence and starts a new game.
func (e *Engine) Reset(seed int64) {
	e.rng = rand.New(rand.NewSource(seed)) //#nosec G404 -- gameplay randomness
	e.gen = NewRandomizer(e.settings.Randomizer, e.rng)
	e.newGame()
}

// Restart starts a new game from the game-over state, continuing the
// current piece sequence. It does nothing in any other phase.
func (e *Engine) Restart() bool {
	if e.phase != PhaseGameOver {
		return false
	}
	e.newGame()
	return true
}

func (e *Engine) newGame() {
	e.board = Board{}
	e.scoring = NewScoring(e.settings.Rules, e.settings.StartLevel)
	e.hold = ShapeNone
	e.paused = false
	e.clearRows = nil
	e.clearTimer = 0
	e.landTimer = 0
	e.next = e.gen.Next()
	e.spawn()
}

// spawn promotes the next shape to the active piece and refills next.
func (e *Engine) spawn() {
	e.active = NewPiece(e.next)
	e.next = e.gen.Next()
	e.canHold = true
	e.fallTimer = 0
	e.phase = PhaseFalling

	if !IsValid(e.active, &e.board) {
		e.phase = PhaseGameOver
	}
}

// Tick advances the timers by dt. Nothing moves while paused or after game
// over.
func (e *Engine) Tick(dt time.Duration) {
	if e.paused {
		return
	}

	switch e.phase {
	case PhaseFalling:
		e.fallTimer += dt
		if e.fallTimer < e.scoring.FallDelay() {
			return
		}
		e.fallTimer = 0
		if moved, ok := TryMove(e.active, 0, 1, &e.board); ok {
			e.active = moved
			return
		}
		e.board.Lock(e.active)
		e.resolveLock()

	case PhaseLanding:
		e.landTimer += dt
		if e.landTimer >= e.settings.LandingFlash {
			e.landTimer = 0
			e.resolveLock()
		}

	case PhaseClearing:
		e.clearTimer += dt
		if e.clearTimer >= e.settings.ClearDuration {
			e.finishClear()
		}
	}
}

// resolveLock decides what follows a lock: a clear animation when rows are
// complete, otherwise the next spawn.
func (e *Engine) resolveLock() {
	rows := e.board.FullRows()
	if len(rows) == 0 {
		e.spawn()
		return
	}

	e.phase = PhaseClearing
	e.clearRows = rows
	e.clearTimer = 0
	e.listener.RowsCleared(rows, e.board)

	if e.settings.ClearDuration <= 0 {
		e.finishClear()
	}
}

// finishClear scores and removes the flagged rows, then spawns.
func (e *Engine) finishClear() {
	e.scoring.AddClear(len(e.clearRows))
	e.board.RemoveRows(e.clearRows)
	e.clearRows = nil
	e.clearTimer = 0
	e.spawn()
}

// acceptsInput reports whether piece actions are currently allowed.
func (e *Engine) acceptsInput() bool {
	return e.phase == PhaseFalling && !e.paused
}

// MoveLeft shifts the active piece one column left if it fits.
func (e *Engine) MoveLeft() bool {
	return e.shift(-1, 0)
}

// MoveRight shifts the active piece one column right if it fits.
func (e *Engine) MoveRight() bool {
	return e.shift(1, 0)
}

// SoftDrop moves the active piece one row down if it fits and awards soft
// drop points. A blocked soft drop does not lock the piece.
func (e *Engine) SoftDrop() bool {
	if !e.shift(0, 1) {
		return false
	}
	e.scoring.AddSoftDrop(1)
	return true
}

func (e *Engine) shift(dx, dy int) bool {
	if !e.acceptsInput() {
		return false
	}
	moved, ok := TryMove(e.active, dx, dy, &e.board)
	if ok {
		e.active = moved
	}
	return ok
}

// Rotate turns the active piece clockwise using the wall kick table.
func (e *Engine) Rotate() bool {
	if !e.acceptsInput() {
		return false
	}
	rotated, ok := Rotate(e.active, &e.board)
	if ok {
		e.active = rotated
	}
	return ok
}

// HardDrop drops the active piece to its lowest valid row, awards points for
// the distance and locks it. Returns the number of rows descended, or -1
// when input is not accepted.
func (e *Engine) HardDrop() int {
	if !e.acceptsInput() {
		return -1
	}

	distance := DropDistance(e.active, &e.board)
	e.active = e.active.Moved(0, distance)
	e.scoring.AddHardDrop(distance)
	e.listener.HardDropped(e.active, distance)

	e.board.Lock(e.active)
	if e.settings.LandingFlash > 0 {
		e.phase = PhaseLanding
		e.landed = e.active
		e.landTimer = 0
		return distance
	}
	e.resolveLock()
	return distance
}

// Hold swaps the active piece with the hold slot. With an empty slot the
// active shape is stored and the next piece comes into play. Either way the
// new active piece starts from spawn, and Hold is disabled until the next
// spawn.
func (e *Engine) Hold() bool {
	if !e.acceptsInput() || !e.canHold {
		return false
	}

	current := e.active.Shape
	if e.hold == ShapeNone {
		e.active = NewPiece(e.next)
		e.next = e.gen.Next()
	} else {
		e.active = NewPiece(e.hold)
	}
	e.hold = current
	e.canHold = false
	e.fallTimer = 0

	if !IsValid(e.active, &e.board) {
		e.phase = PhaseGameOver
	}
	return true
}

// TogglePause flips the pause flag. Has no effect after game over.
func (e *Engine) TogglePause() bool {
	if e.phase == PhaseGameOver {
		return false
	}
	e.paused = !e.paused
	return true
}

// Ghost returns the active piece moved to where a hard drop would land it.
func (e *Engine) Ghost() Piece {
	return e.active.Moved(0, DropDistance(e.active, &e.board))
}

// Board returns a copy of the locked cells.
func (e *Engine) Board() Board { return e.board }

// Active returns the active piece. It is only meaningful in PhaseFalling.
func (e *Engine) Active() Piece { return e.active }

// Next returns the queued shape.
func (e *Engine) Next() Shape { return e.next }

// Held returns the shape in the hold slot, or ShapeNone.
func (e *Engine) Held() Shape { return e.hold }

// CanHold reports whether Hold is available for the current piece.
func (e *Engine) CanHold() bool { return e.canHold }

// Phase returns the current state machine phase.
func (e *Engine) Phase() Phase { return e.phase }

// Paused reports whether the game is paused.
func (e *Engine) Paused() bool { return e.paused }

// GameOver reports whether the game has ended.
func (e *Engine) GameOver() bool { return e.phase == PhaseGameOver }

// Scoring returns the current score, level and line totals.
func (e *Engine) Scoring() Scoring { return e.scoring }

// FallDelay returns the automatic fall interval at the current level.
func (e *Engine) FallDelay() time.Duration { return e.scoring.FallDelay() }

// ClearingRows returns the rows being animated, or nil outside PhaseClearing.
func (e *Engine) ClearingRows() []int { return e.clearRows }

// ClearProgress returns how far the clear animation is, in [0, 1].
func (e *Engine) ClearProgress() float64 {
	if e.phase != PhaseClearing || e.settings.ClearDuration <= 0 {
		return 0
	}
	return min(1, float64(e.clearTimer)/float64(e.settings.ClearDuration))
}

// Landed returns the piece flashing after a hard drop, valid in PhaseLanding.
func (e *Engine) Landed() (Piece, bool) {
	return e.landed, e.phase == PhaseLanding
}
