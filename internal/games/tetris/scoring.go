package tetris

import "time"

// lineClearBase is the per-level award for clearing 1..4 rows at once.
var lineClearBase = [5]int{0, 100, 300, 500, 800}

// LinesClearPoints returns the award for clearing n rows in one lock at the
// given level. n outside [1, 4] scores nothing.
func LinesClearPoints(n, level int) int {
	if n < 1 || n > 4 {
		return 0
	}
	return lineClearBase[n] * level
}

// Rules holds the tunable constants of scoring and speed progression.
type Rules struct {
	LinesPerLevel  int
	SoftDropPoints int // per row
	HardDropPoints int // per row
	BaseFallDelay  time.Duration
	FallDelayStep  time.Duration
	MinFallDelay   time.Duration
}

// DefaultRules returns the standard scoring and speed table.
func DefaultRules() Rules {
	return Rules{
		LinesPerLevel:  10,
		SoftDropPoints: 1,
		HardDropPoints: 2,
		BaseFallDelay:  500 * time.Millisecond,
		FallDelayStep:  50 * time.Millisecond,
		MinFallDelay:   100 * time.Millisecond,
	}
}

// Scoring tracks score, level and cleared lines. Score and Lines never
// decrease during a game.
type Scoring struct {
	Score int
	Level int
	Lines int

	rules Rules
}

// NewScoring starts a fresh tally at the given level (minimum 1).
func NewScoring(rules Rules, startLevel int) Scoring {
	if rules.LinesPerLevel <= 0 {
		rules.LinesPerLevel = 10
	}
	return Scoring{
		Level: max(1, startLevel),
		rules: rules,
	}
}

// AddClear scores a simultaneous clear of n rows and advances the level as
// many times as the new line total allows. Returns the points awarded and
// whether the level changed.
func (s *Scoring) AddClear(n int) (points int, leveled bool) {
	points = LinesClearPoints(n, s.Level)
	if points == 0 {
		return 0, false
	}

	s.Score += points
	s.Lines += n

	for s.Lines >= s.Level*s.rules.LinesPerLevel {
		s.Level++
		leveled = true
	}
	return points, leveled
}

// AddSoftDrop awards points for rows descended by manual soft drop.
func (s *Scoring) AddSoftDrop(rows int) {
	if rows > 0 {
		s.Score += rows * s.rules.SoftDropPoints
	}
}

// AddHardDrop awards points for rows descended by a hard drop.
func (s *Scoring) AddHardDrop(rows int) {
	if rows > 0 {
		s.Score += rows * s.rules.HardDropPoints
	}
}

// FallDelay returns the automatic fall interval for the current level.
func (s Scoring) FallDelay() time.Duration {
	delay := s.rules.BaseFallDelay - time.Duration(s.Level-1)*s.rules.FallDelayStep
	return max(delay, s.rules.MinFallDelay)
}
