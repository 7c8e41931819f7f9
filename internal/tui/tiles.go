// Package tui provides the Bubble Tea game interface.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuimath/internal/model"
)

const tileMinWidth = 7

var (
	tileStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	resolvedTileStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Faint(true).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	wrongTileStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#FF4D4F"))
	tileLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// renderTiles draws the round's bubbles in display order, each with
// its selection key underneath. Resolved tiles render dimmed; the last
// wrong pick renders with a warning border.
func renderTiles(exprs []model.Expression, display []int, resolved []bool, wrong int) string {
	if len(display) == 0 {
		return ""
	}
	tiles := make([]string, 0, len(display))
	for pos, idx := range display {
		style := tileStyle
		switch {
		case resolved[pos]:
			style = resolvedTileStyle
		case pos == wrong:
			style = wrongTileStyle
		}
		box := style.Render(padCenter(exprs[idx].Display, tileMinWidth))
		label := tileLabelStyle.Render(padCenter(fmt.Sprintf("%d", pos+1), tileMinWidth+4))
		tiles = append(tiles, lipgloss.JoinVertical(lipgloss.Center, box, label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

// padCenter centers a string in the given cell width.
func padCenter(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	right := width - w - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
