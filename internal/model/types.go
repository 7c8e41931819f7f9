// Package model defines shared data structures.
package model

import "time"

// Expression is an arithmetic bubble: a display string and its value.
// Values may be non-integer; they are never mutated after creation.
type Expression struct {
	Display string
	Value   float64
}

// Config defines game session settings.
type Config struct {
	Bubbles        int
	Rounds         int
	RoundSeconds   int
	PenaltySeconds int
	Seed           int64
}

// GameStats captures a finished game session.
type GameStats struct {
	StartedAt       time.Time
	EndedAt         time.Time
	Score           int
	RoundsCompleted int
	RoundsPlayed    int
	Bubbles         int
	DurationMs      int64
}

// GameAggregate summarizes a stored game for reporting.
type GameAggregate struct {
	GameID          int64
	EndedAt         time.Time
	Score           int
	RoundsCompleted int
	RoundsPlayed    int
	DurationMs      int64
}

// ScoresConfig defines filters for scores output.
type ScoresConfig struct {
	Since *time.Time
	Last  int
}
