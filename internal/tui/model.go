package tui

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuimath/internal/game"
	"github.com/verte-zerg/tuimath/internal/model"
	"github.com/verte-zerg/tuimath/internal/store"
)

type tickMsg time.Time

// advanceMsg carries the round generation token so a delayed advance
// from an abandoned round cannot touch a newer one.
type advanceMsg struct {
	gen int
}

// flashMsg clears the wrong-pick highlight after its feedback delay.
type flashMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func advanceCmd(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return advanceMsg{gen: gen}
	})
}

func flashCmd() tea.Cmd {
	return tea.Tick(game.ResolveFlash, func(time.Time) tea.Msg {
		return flashMsg{}
	})
}

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	timeLowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	gameOverStyle = lipgloss.NewStyle().
			Padding(1, 3).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
)

// Model implements the Bubble Tea game UI. It is a thin shell: all
// game rules live in game.Session; the model only forwards events,
// shuffles display order, and tracks per-tile resolved flags.
type Model struct {
	cfg   model.Config
	store *store.Store // nil when storage is unavailable
	sess  *game.Session
	rnd   *rand.Rand

	best      int
	startedAt time.Time
	finished  bool
	saved     bool
	ticking   bool
	notice    string

	width  int
	height int

	lastRound int
	display   []int
	resolved  []bool
	wrong     int
}

// NewModel constructs the game model and starts round 1. A nil store
// means the high score starts at 0 and results are not persisted.
func NewModel(cfg model.Config, st *store.Store, sess *game.Session) *Model {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m := &Model{
		cfg:       cfg,
		store:     st,
		sess:      sess,
		rnd:       rand.New(rand.NewSource(seed)),
		startedAt: time.Now(),
	}
	if st != nil {
		best, err := st.BestScore(context.Background())
		if err != nil {
			logErrf("failed to load high score: %v\n", err)
		} else {
			m.best = best
		}
	}
	sess.Start()
	m.setupRound()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.ticking = true
	return tickCmd()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.finished {
			// The countdown restarts with the next game.
			m.ticking = false
			return m, nil
		}
		out := m.sess.Tick()
		if out == game.OutcomeTimeout {
			m.notice = "Time's up!"
			return m, tea.Batch(tickCmd(), m.scheduleAdvance(out))
		}
		return m, tickCmd()
	case advanceMsg:
		out := m.sess.Advance(msg.gen)
		if out == game.OutcomeGameOver {
			m.finishGame()
			return m, nil
		}
		if m.sess.Phase() == game.PhaseRoundActive && m.sess.RoundNumber() != m.lastRound {
			m.setupRound()
		}
		return m, nil
	case flashMsg:
		m.wrong = -1
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		m.restart()
		// Re-arm the countdown only if its chain already stopped; an
		// in-flight tick would otherwise double the timer.
		if !m.ticking {
			m.ticking = true
			return m, tickCmd()
		}
		return m, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return m, m.handleSelect(int(msg.String()[0] - '1'))
	default:
		return m, nil
	}
}

// handleSelect forwards a tile pick to the validator. Input gating
// lives in the session; resolved tiles are excluded here, and a key
// with no matching tile counts as a malformed selection, which takes
// the penalty path.
func (m *Model) handleSelect(pos int) tea.Cmd {
	if m.finished || !m.sess.AcceptingInput() {
		return nil
	}
	value := math.NaN()
	if pos < len(m.display) {
		if m.resolved[pos] {
			return nil
		}
		value = m.sess.Current().Expressions()[m.display[pos]].Value
	}
	out := m.sess.Select(value)
	switch out {
	case game.OutcomeCorrect:
		m.resolved[pos] = true
		m.wrong = -1
	case game.OutcomeRoundComplete:
		m.resolved[pos] = true
		m.wrong = -1
		m.notice = fmt.Sprintf("Round complete! +%d", game.PointsPerRound)
		return m.scheduleAdvance(out)
	case game.OutcomePenalty:
		m.wrong = pos
		return flashCmd()
	case game.OutcomePenaltyTimeout:
		m.wrong = pos
		m.notice = "Time's up!"
		return m.scheduleAdvance(out)
	}
	return nil
}

func (m *Model) scheduleAdvance(out game.Outcome) tea.Cmd {
	d := game.AdvanceDelay(out)
	if d == 0 {
		return nil
	}
	return advanceCmd(d, m.sess.Generation())
}

// setupRound shuffles the display order for the new round and resets
// the per-tile renderer state.
func (m *Model) setupRound() {
	exprs := m.sess.Current().Expressions()
	m.display = m.rnd.Perm(len(exprs))
	m.resolved = make([]bool, len(exprs))
	m.wrong = -1
	m.notice = ""
	m.lastRound = m.sess.RoundNumber()
}

func (m *Model) restart() {
	m.sess.Start()
	m.finished = false
	m.saved = false
	m.startedAt = time.Now()
	m.setupRound()
}

// finishGame persists the result once. Storage failures are noted on
// stderr and otherwise ignored; the high score write happens only on
// strict improvement.
func (m *Model) finishGame() {
	m.finished = true
	if m.saved {
		return
	}
	m.saved = true
	score := m.sess.Score()
	if m.store == nil {
		if score > m.best {
			m.best = score
		}
		return
	}
	ctx := context.Background()
	endedAt := time.Now()
	stats := model.GameStats{
		StartedAt:       m.startedAt,
		EndedAt:         endedAt,
		Score:           score,
		RoundsCompleted: m.sess.RoundsCompleted(),
		RoundsPlayed:    m.sess.RoundsTotal(),
		Bubbles:         m.cfg.Bubbles,
		DurationMs:      endedAt.Sub(m.startedAt).Milliseconds(),
	}
	if _, err := m.store.InsertGame(ctx, stats); err != nil {
		logErrf("failed to save game: %v\n", err)
	}
	if score > m.best {
		improved, err := m.store.RecordBestScore(ctx, score)
		if err != nil {
			logErrf("failed to save high score: %v\n", err)
		}
		if err == nil && improved {
			m.best = score
		}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	if m.finished {
		body = m.renderGameOver()
	} else {
		body = m.renderRound()
	}
	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m *Model) renderRound() string {
	cur := m.sess.Current()
	if cur == nil {
		return ""
	}
	header := m.renderHeader()
	tiles := renderTiles(cur.Expressions(), m.display, m.resolved, m.wrong)
	status := m.notice
	if status == "" {
		status = fmt.Sprintf("pick the smallest value · %d/%d", cur.NextIndex(), len(cur.TargetOrder()))
	} else {
		status = noticeStyle.Render(status)
	}
	footer := footerStyle.Render("1-9 pick · r restart · q quit")
	return header + "\n\n" + tiles + "\n" + status + "\n\n" + footer
}

func (m *Model) renderHeader() string {
	remaining := fmt.Sprintf("Time %2ds", m.sess.Remaining())
	if m.sess.Remaining() <= 5 {
		remaining = timeLowStyle.Render(remaining)
	}
	return headerStyle.Render(fmt.Sprintf("Round %d/%d   Score %d   Best %d   ",
		m.sess.RoundNumber(), m.sess.RoundsTotal(), m.sess.Score(), m.best)) + remaining
}

func (m *Model) renderGameOver() string {
	lines := fmt.Sprintf("Game over\n\nScore %d\nBest  %d\nRounds %d/%d\n\nr play again · q quit",
		m.sess.Score(), m.best, m.sess.RoundsCompleted(), m.sess.RoundsTotal())
	return gameOverStyle.Render(lines)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
