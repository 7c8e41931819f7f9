package scoresui

import (
	"testing"
	"time"

	"github.com/verte-zerg/tuimath/internal/model"
)

func sampleGames() []model.GameAggregate {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return []model.GameAggregate{
		{GameID: 1, EndedAt: base, Score: 120, RoundsCompleted: 12, RoundsPlayed: 25, DurationMs: 400000},
		{GameID: 2, EndedAt: base.Add(time.Hour), Score: 180, RoundsCompleted: 18, RoundsPlayed: 25, DurationMs: 390000},
		{GameID: 3, EndedAt: base.Add(2 * time.Hour), Score: 150, RoundsCompleted: 15, RoundsPlayed: 25, DurationMs: 410000},
	}
}

func TestNewModelShowsAllGames(t *testing.T) {
	m := NewModel(sampleGames(), model.ScoresConfig{})
	if got := len(m.table.Rows()); got != 3 {
		t.Fatalf("expected 3 rows, got %d", got)
	}
	// Most recent game first.
	if m.table.Rows()[0][1] != "150" {
		t.Fatalf("unexpected first row score: %q", m.table.Rows()[0][1])
	}
}

func TestNewModelAppliesLastWindow(t *testing.T) {
	m := NewModel(sampleGames(), model.ScoresConfig{Last: 1})
	if got := len(m.table.Rows()); got != 1 {
		t.Fatalf("expected 1 row with last window, got %d", got)
	}
	if m.table.Rows()[0][1] != "150" {
		t.Fatalf("expected most recent game in window, got score %q", m.table.Rows()[0][1])
	}
	if m.report.Games != 1 {
		t.Fatalf("expected summary over 1 game, got %d", m.report.Games)
	}
}
