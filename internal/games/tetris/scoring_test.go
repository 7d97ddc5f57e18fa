package tetris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLinesClearPoints(t *testing.T) {
	tests := []struct {
		lines, level, want int
	}{
		{1, 1, 100},
		{2, 1, 300},
		{3, 2, 1000},
		{4, 3, 2400},
		{0, 5, 0},
		{5, 1, 0},
		{-1, 1, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LinesClearPoints(tt.lines, tt.level), "lines=%d level=%d", tt.lines, tt.level)
	}
}

func TestScoringLevelUp(t *testing.T) {
	s := NewScoring(DefaultRules(), 1)

	_, leveled := s.AddClear(4)
	assert.False(t, leveled)
	_, leveled = s.AddClear(4)
	assert.False(t, leveled)
	assert.Equal(t, 1, s.Level)

	points, leveled := s.AddClear(2)
	assert.True(t, leveled)
	assert.Equal(t, 300, points, "points use the level before the increment")
	assert.Equal(t, 2, s.Level)
	assert.Equal(t, 10, s.Lines)
	assert.Equal(t, 1900, s.Score)
	assert.Equal(t, 450*time.Millisecond, s.FallDelay(), "one step faster than level 1")
}

func TestScoringMultipleLevelsAtOnce(t *testing.T) {
	rules := DefaultRules()
	rules.LinesPerLevel = 2
	s := NewScoring(rules, 1)

	s.AddClear(4)
	assert.Equal(t, 3, s.Level)
}

func TestScoringStartLevel(t *testing.T) {
	s := NewScoring(DefaultRules(), 5)
	points, leveled := s.AddClear(4)
	assert.Equal(t, 4000, points)
	assert.False(t, leveled, "level 5 needs 50 lines")
	assert.Equal(t, 5, s.Level)

	assert.Equal(t, 1, NewScoring(DefaultRules(), 0).Level)
}

func TestScoringZeroLinesIsNoop(t *testing.T) {
	s := NewScoring(DefaultRules(), 1)
	points, leveled := s.AddClear(0)
	assert.Zero(t, points)
	assert.False(t, leveled)
	assert.Zero(t, s.Score)
	assert.Zero(t, s.Lines)
}

func TestDropPoints(t *testing.T) {
	s := NewScoring(DefaultRules(), 1)
	s.AddSoftDrop(3)
	assert.Equal(t, 3, s.Score)
	s.AddHardDrop(10)
	assert.Equal(t, 23, s.Score)
	s.AddHardDrop(0)
	s.AddSoftDrop(-4)
	assert.Equal(t, 23, s.Score)
}

func TestFallDelay(t *testing.T) {
	tests := []struct {
		level int
		want  time.Duration
	}{
		{1, 500 * time.Millisecond},
		{5, 300 * time.Millisecond},
		{9, 100 * time.Millisecond},
		{12, 100 * time.Millisecond},
	}

	for _, tt := range tests {
		s := NewScoring(DefaultRules(), tt.level)
		assert.Equal(t, tt.want, s.FallDelay(), "level %d", tt.level)
	}
}

func TestFallDelayNeverIncreases(t *testing.T) {
	prev := time.Duration(1<<62 - 1)
	for level := 1; level <= 30; level++ {
		d := NewScoring(DefaultRules(), level).FallDelay()
		assert.LessOrEqual(t, d, prev)
		prev = d
	}
}
