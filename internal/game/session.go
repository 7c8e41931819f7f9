package game

import (
	"time"

	"github.com/verte-zerg/tuimath/internal/difficulty"
	"github.com/verte-zerg/tuimath/internal/model"
	"github.com/verte-zerg/tuimath/internal/synth"
)

// Phase is the session state. The intro step between rounds runs
// synchronously inside nextRound, so it has no phase of its own.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRoundActive
	PhaseRoundResolved
	PhaseGameOver
)

// Outcome tells the shell what an event did, so it can schedule
// feedback delays and persistence without the core touching timers.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCorrect
	OutcomeRoundComplete
	OutcomePenalty
	OutcomePenaltyTimeout
	OutcomeTimeout
	OutcomeGameOver
)

// Default session parameters.
const (
	DefaultBubbles        = 5
	DefaultRounds         = 25
	DefaultRoundSeconds   = 15
	DefaultPenaltySeconds = 2
	PointsPerRound        = 10
)

// Feedback delays before the next round starts. The differing
// constants let the shell pace resolution animations per cause.
const (
	ResolveFlash               = 180 * time.Millisecond
	AdvanceAfterPenaltyTimeout = 250 * time.Millisecond
	AdvanceAfterComplete       = 350 * time.Millisecond
	AdvanceAfterTimeout        = 420 * time.Millisecond
)

// AdvanceDelay maps a resolution outcome to the delay before the next
// round should start. Non-resolving outcomes map to zero.
func AdvanceDelay(o Outcome) time.Duration {
	switch o {
	case OutcomeRoundComplete:
		return AdvanceAfterComplete
	case OutcomePenaltyTimeout:
		return AdvanceAfterPenaltyTimeout
	case OutcomeTimeout:
		return AdvanceAfterTimeout
	default:
		return 0
	}
}

// Session is the per-game state machine. It is single-threaded: the
// shell serializes ticks, selections, and delayed advances into it.
type Session struct {
	cfg   model.Config
	synth *synth.Synthesizer

	phase           Phase
	round           int
	score           int
	remaining       int
	acceptingInput  bool
	roundsCompleted int
	gen             int
	cur             *Round
}

// NewSession builds an idle session. Zero config fields fall back to
// the defaults.
func NewSession(cfg model.Config, s *synth.Synthesizer) *Session {
	if cfg.Bubbles <= 0 {
		cfg.Bubbles = DefaultBubbles
	}
	if cfg.Rounds <= 0 {
		cfg.Rounds = DefaultRounds
	}
	if cfg.RoundSeconds <= 0 {
		cfg.RoundSeconds = DefaultRoundSeconds
	}
	if cfg.PenaltySeconds <= 0 {
		cfg.PenaltySeconds = DefaultPenaltySeconds
	}
	return &Session{cfg: cfg, synth: s, phase: PhaseIdle}
}

// Start resets the session and begins round 1. Restarting mid-game
// bumps the generation token, so delayed advances from the abandoned
// game become no-ops.
func (s *Session) Start() Outcome {
	s.phase = PhaseIdle
	s.round = 0
	s.score = 0
	s.roundsCompleted = 0
	s.cur = nil
	return s.nextRound()
}

func (s *Session) nextRound() Outcome {
	s.gen++
	s.round++
	if s.round > s.cfg.Rounds {
		s.phase = PhaseGameOver
		s.acceptingInput = false
		return OutcomeGameOver
	}
	tier := difficulty.TierFor(s.round)
	s.cur = NewRound(s.synth.Generate(tier, s.cfg.Bubbles))
	s.remaining = s.cfg.RoundSeconds
	s.acceptingInput = true
	s.phase = PhaseRoundActive
	return OutcomeNone
}

// Tick consumes one countdown second. Reaching zero resolves the
// round without points.
func (s *Session) Tick() Outcome {
	if s.phase != PhaseRoundActive {
		return OutcomeNone
	}
	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining > 0 {
		return OutcomeNone
	}
	s.resolve()
	return OutcomeTimeout
}

// Select routes a selection through the validator. Input gating comes
// first: a timeout in the same logical tick may already have disabled
// input, and such stale events must be cheap no-ops.
func (s *Session) Select(value float64) Outcome {
	if !s.acceptingInput || s.phase != PhaseRoundActive {
		return OutcomeNone
	}
	if s.cur.Submit(value) {
		if !s.cur.Complete() {
			return OutcomeCorrect
		}
		s.score += PointsPerRound
		s.roundsCompleted++
		s.resolve()
		return OutcomeRoundComplete
	}
	s.remaining -= s.cfg.PenaltySeconds
	if s.remaining > 0 {
		return OutcomePenalty
	}
	s.remaining = 0
	s.resolve()
	return OutcomePenaltyTimeout
}

// Advance starts the next round after a resolution delay. A stale
// token (from a round superseded by restart or a newer resolution)
// no-ops.
func (s *Session) Advance(gen int) Outcome {
	if s.phase != PhaseRoundResolved || gen != s.gen {
		return OutcomeNone
	}
	return s.nextRound()
}

func (s *Session) resolve() {
	s.acceptingInput = false
	s.phase = PhaseRoundResolved
}

// Generation returns the current round token for delayed advances.
func (s *Session) Generation() int { return s.gen }

// Phase returns the current session phase.
func (s *Session) Phase() Phase { return s.phase }

// RoundNumber returns the 1-based current round, 0 before the first.
func (s *Session) RoundNumber() int { return s.round }

// Score returns the cumulative score.
func (s *Session) Score() int { return s.score }

// Remaining returns the seconds left in the current round.
func (s *Session) Remaining() int { return s.remaining }

// RoundsCompleted returns how many rounds finished by selection.
func (s *Session) RoundsCompleted() int { return s.roundsCompleted }

// RoundsTotal returns the configured round count.
func (s *Session) RoundsTotal() int { return s.cfg.Rounds }

// AcceptingInput reports whether selections are currently processed.
func (s *Session) AcceptingInput() bool { return s.acceptingInput }

// Current returns the active round state, nil while idle or ended.
func (s *Session) Current() *Round { return s.cur }
