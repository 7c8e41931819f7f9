package game

import (
	"math"
	"testing"

	"github.com/verte-zerg/tuimath/internal/model"
	"github.com/verte-zerg/tuimath/internal/synth"
)

func newTestSession(rounds int) *Session {
	cfg := model.Config{Bubbles: 3, Rounds: rounds}
	s := NewSession(cfg, synth.NewSeeded(1))
	s.Start()
	return s
}

// completeRound selects every target value in ascending order and
// returns the final outcome.
func completeRound(t *testing.T, s *Session) Outcome {
	t.Helper()
	order := append([]float64(nil), s.Current().TargetOrder()...)
	out := OutcomeNone
	for _, v := range order {
		out = s.Select(v)
	}
	return out
}

func TestStartEntersFirstRound(t *testing.T) {
	s := newTestSession(25)
	if s.Phase() != PhaseRoundActive {
		t.Fatalf("expected active phase, got %d", s.Phase())
	}
	if s.RoundNumber() != 1 {
		t.Fatalf("expected round 1, got %d", s.RoundNumber())
	}
	if s.Remaining() != DefaultRoundSeconds {
		t.Fatalf("expected %d seconds, got %d", DefaultRoundSeconds, s.Remaining())
	}
	if !s.AcceptingInput() {
		t.Fatalf("expected input enabled")
	}
}

func TestCompletedRoundAwardsFixedPoints(t *testing.T) {
	s := newTestSession(25)
	if out := completeRound(t, s); out != OutcomeRoundComplete {
		t.Fatalf("expected round complete, got %d", out)
	}
	if s.Score() != PointsPerRound {
		t.Fatalf("expected score %d, got %d", PointsPerRound, s.Score())
	}
	if s.Phase() != PhaseRoundResolved {
		t.Fatalf("expected resolved phase, got %d", s.Phase())
	}
	if s.AcceptingInput() {
		t.Fatalf("expected input disabled after completion")
	}
}

func TestTimeoutAwardsNothing(t *testing.T) {
	s := newTestSession(25)
	out := OutcomeNone
	for i := 0; i < DefaultRoundSeconds; i++ {
		out = s.Tick()
	}
	if out != OutcomeTimeout {
		t.Fatalf("expected timeout outcome, got %d", out)
	}
	if s.Score() != 0 {
		t.Fatalf("expected no points on timeout, got %d", s.Score())
	}
	if s.Remaining() != 0 {
		t.Fatalf("expected remaining 0, got %d", s.Remaining())
	}
}

func TestPenaltySubtractsFixedSeconds(t *testing.T) {
	s := newTestSession(25)
	before := s.Remaining()
	if out := s.Select(-987654); out != OutcomePenalty {
		t.Fatalf("expected penalty outcome, got %d", out)
	}
	if s.Remaining() != before-DefaultPenaltySeconds {
		t.Fatalf("expected remaining %d, got %d", before-DefaultPenaltySeconds, s.Remaining())
	}
}

func TestPenaltyFloorsAtZeroAndResolves(t *testing.T) {
	s := newTestSession(25)
	for s.Remaining() > 1 {
		s.Tick()
	}
	if out := s.Select(-987654); out != OutcomePenaltyTimeout {
		t.Fatalf("expected penalty timeout, got %d", out)
	}
	if s.Remaining() != 0 {
		t.Fatalf("expected remaining floored at 0, got %d", s.Remaining())
	}
	if s.Phase() != PhaseRoundResolved {
		t.Fatalf("expected resolved phase, got %d", s.Phase())
	}
	if s.Score() != 0 {
		t.Fatalf("expected no points, got %d", s.Score())
	}
}

func TestMalformedSelectionTakesPenaltyPath(t *testing.T) {
	s := newTestSession(25)
	before := s.Remaining()
	if out := s.Select(math.NaN()); out != OutcomePenalty {
		t.Fatalf("expected penalty for NaN selection, got %d", out)
	}
	if s.Remaining() != before-DefaultPenaltySeconds {
		t.Fatalf("expected penalty applied, remaining %d", s.Remaining())
	}
}

func TestStaleSelectionAfterResolveIsIgnored(t *testing.T) {
	s := newTestSession(25)
	completeRound(t, s)
	score := s.Score()
	if out := s.Select(1); out != OutcomeNone {
		t.Fatalf("expected stale selection ignored, got %d", out)
	}
	if s.Score() != score {
		t.Fatalf("stale selection changed score")
	}
}

func TestAdvanceStartsNextRound(t *testing.T) {
	s := newTestSession(25)
	completeRound(t, s)
	if out := s.Advance(s.Generation()); out != OutcomeNone {
		t.Fatalf("expected plain advance, got %d", out)
	}
	if s.RoundNumber() != 2 {
		t.Fatalf("expected round 2, got %d", s.RoundNumber())
	}
	if s.Phase() != PhaseRoundActive {
		t.Fatalf("expected active phase, got %d", s.Phase())
	}
}

func TestStaleAdvanceTokenIsNoop(t *testing.T) {
	s := newTestSession(25)
	completeRound(t, s)
	stale := s.Generation()
	s.Advance(stale)
	// The delayed callback from the already-advanced round fires late.
	if out := s.Advance(stale); out != OutcomeNone {
		t.Fatalf("expected stale advance ignored, got %d", out)
	}
	if s.RoundNumber() != 2 {
		t.Fatalf("stale advance skipped a round: %d", s.RoundNumber())
	}
}

func TestRestartSupersedesPendingAdvance(t *testing.T) {
	s := newTestSession(25)
	completeRound(t, s)
	stale := s.Generation()
	s.Start()
	if out := s.Advance(stale); out != OutcomeNone {
		t.Fatalf("expected advance from abandoned game ignored, got %d", out)
	}
	if s.RoundNumber() != 1 || s.Score() != 0 {
		t.Fatalf("restart state corrupted: round %d score %d", s.RoundNumber(), s.Score())
	}
}

func TestGameOverAfterFinalRound(t *testing.T) {
	s := newTestSession(2)
	completeRound(t, s)
	s.Advance(s.Generation())
	completeRound(t, s)
	if out := s.Advance(s.Generation()); out != OutcomeGameOver {
		t.Fatalf("expected game over, got %d", out)
	}
	if s.Phase() != PhaseGameOver {
		t.Fatalf("expected game-over phase, got %d", s.Phase())
	}
	if s.Score() != 2*PointsPerRound {
		t.Fatalf("expected score %d, got %d", 2*PointsPerRound, s.Score())
	}
}

func TestGameOverAfterFinalRoundTimeout(t *testing.T) {
	s := newTestSession(1)
	for i := 0; i < DefaultRoundSeconds; i++ {
		s.Tick()
	}
	if out := s.Advance(s.Generation()); out != OutcomeGameOver {
		t.Fatalf("expected game over after timed-out final round, got %d", out)
	}
	if s.Score() != 0 {
		t.Fatalf("expected zero score, got %d", s.Score())
	}
}

func TestScoreMonotonicAcrossRounds(t *testing.T) {
	s := newTestSession(5)
	prev := 0
	for s.Phase() != PhaseGameOver {
		if s.RoundNumber()%2 == 0 {
			for i := 0; i < DefaultRoundSeconds; i++ {
				s.Tick()
			}
		} else {
			completeRound(t, s)
		}
		if s.Score() < prev {
			t.Fatalf("score decreased from %d to %d", prev, s.Score())
		}
		prev = s.Score()
		s.Advance(s.Generation())
	}
	if s.RoundsCompleted() != 3 {
		t.Fatalf("expected 3 completed rounds, got %d", s.RoundsCompleted())
	}
}

func TestTickOutsideActivePhaseIsNoop(t *testing.T) {
	s := newTestSession(25)
	completeRound(t, s)
	remaining := s.Remaining()
	if out := s.Tick(); out != OutcomeNone {
		t.Fatalf("expected tick ignored when resolved, got %d", out)
	}
	if s.Remaining() != remaining {
		t.Fatalf("tick mutated resolved round")
	}
}

func TestAdvanceDelayPerOutcome(t *testing.T) {
	if AdvanceDelay(OutcomeRoundComplete) != AdvanceAfterComplete {
		t.Fatalf("wrong delay for completion")
	}
	if AdvanceDelay(OutcomeTimeout) != AdvanceAfterTimeout {
		t.Fatalf("wrong delay for timeout")
	}
	if AdvanceDelay(OutcomePenaltyTimeout) != AdvanceAfterPenaltyTimeout {
		t.Fatalf("wrong delay for penalty timeout")
	}
	if AdvanceDelay(OutcomeCorrect) != 0 {
		t.Fatalf("expected zero delay for non-resolving outcome")
	}
}
