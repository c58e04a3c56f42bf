// Package ui prints the bot's turn-by-turn decisions to the terminal:
// colored when standard output is a real TTY, plain text otherwise (a
// pipe, a log file, a container's captured stdout).
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/lukev/cartobot/internal/search"
)

var (
	seasonStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	cardStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statsStyle  = lipgloss.NewStyle().Faint(true)
)

// Printer writes turn decisions to an output stream, styled if it detects
// a terminal.
type Printer struct {
	out    io.Writer
	colors bool
}

// New builds a Printer over os.Stdout, auto-detecting whether it's a TTY.
func New() *Printer {
	colors := term.IsTerminal(int(os.Stdout.Fd()))
	return &Printer{out: os.Stdout, colors: colors}
}

// Turn reports a chosen placement and the search effort behind it.
func (p *Printer) Turn(season, card string, turn search.Turn, stats search.Statistics) {
	if !p.colors {
		fmt.Fprintf(p.out, "[%s] %s -> terrain %d over %d cells (positions=%d depth=%d)\n",
			season, card, turn.Terrain, turn.Cells.CountCells(), stats.PositionsEvaluated, stats.DepthReached)
		return
	}

	fmt.Fprintf(p.out, "%s %s -> terrain %d over %d cells %s\n",
		seasonStyle.Render("["+season+"]"),
		cardStyle.Render(card),
		turn.Terrain,
		turn.Cells.CountCells(),
		statsStyle.Render(fmt.Sprintf("(positions=%d depth=%d)", stats.PositionsEvaluated, stats.DepthReached)),
	)
}

// FinalScore reports the game's final score.
func (p *Printer) FinalScore(score float64) {
	if !p.colors {
		fmt.Fprintf(p.out, "Final score: %.0f\n", score)
		return
	}
	fmt.Fprintln(p.out, seasonStyle.Render(fmt.Sprintf("Final score: %.0f", score)))
}
