// Package scoresui provides the Bubble Tea scores interface.
package scoresui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuimath/internal/model"
	"github.com/verte-zerg/tuimath/internal/scores"
)

const tableHeight = 12

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

// Model implements the Bubble Tea scores UI.
type Model struct {
	report scores.Report
	table  table.Model

	width  int
	height int
}

// NewModel builds the scores UI from stored games, most recent first.
// The Last window applies to the table rows and the summary alike.
func NewModel(games []model.GameAggregate, cfg model.ScoresConfig) *Model {
	report := scores.BuildReport(games, cfg)
	if cfg.Last > 0 && len(games) > cfg.Last {
		games = games[len(games)-cfg.Last:]
	}

	columns := []table.Column{
		{Title: "Date", Width: 17},
		{Title: "Score", Width: 6},
		{Title: "Rounds", Width: 7},
		{Title: "Duration", Width: 9},
	}
	rows := make([]table.Row, 0, len(games))
	for i := len(games) - 1; i >= 0; i-- {
		g := games[i]
		rows = append(rows, table.Row{
			g.EndedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", g.Score),
			fmt.Sprintf("%d/%d", g.RoundsCompleted, g.RoundsPlayed),
			fmt.Sprintf("%ds", g.DurationMs/1000),
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(tableHeight),
	)
	return &Model{report: report, table: t}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Best", fmt.Sprintf("%d", m.report.Best)),
		card("Games", fmt.Sprintf("%d", m.report.Games)),
		card("Average", fmt.Sprintf("%.1f", m.report.AvgScore)),
		card("Rounds won", fmt.Sprintf("%.0f%%", scores.CompletionRate(m.report.RoundsCompleted, m.report.RoundsPlayed)*100)),
	)
	body := cards + "\n" + tableStyle.Render(m.table.View()) + "\n" + headerStyle.Render("↑/↓ scroll · q quit")
	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func card(title, value string) string {
	content := cardTitleStyle.Render(title) + "\n" + cardValueStyle.Render(value)
	return cardStyle.Render(content)
}
