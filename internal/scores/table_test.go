package scores

import (
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuimath/internal/model"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Date", "Score", "Rounds"}
	rows := [][]string{
		{"2026-08-01 12:00", "120", "12/25"},
		{"2026-08-01 13:00", "80", "8/25"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Date             Score Rounds" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "2026-08-01 12:00   120  12/25" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "2026-08-01 13:00    80   8/25" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatGamesIncludesAllRows(t *testing.T) {
	games := []model.GameAggregate{
		{EndedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC), Score: 120, RoundsCompleted: 12, RoundsPlayed: 25, DurationMs: 375000},
	}
	lines := FormatGames(games)
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "120") || !strings.Contains(lines[1], "12/25") {
		t.Fatalf("row missing fields: %q", lines[1])
	}
	if !strings.Contains(lines[1], "6m15s") {
		t.Fatalf("row missing duration: %q", lines[1])
	}
}
