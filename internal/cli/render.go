package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hailam/minishare/internal/board"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	lightSquare = lipgloss.NewStyle().
			Background(lipgloss.Color("#F0D9B5")).
			Width(3).
			Align(lipgloss.Center)

	darkSquare = lightSquare.
			Background(lipgloss.Color("#B58863"))

	whitePiece = lipgloss.Color("#FFFFFF")
	blackPiece = lipgloss.Color("#000000")
)

// renderBoard draws b as a colored grid with rank and file labels.
func renderBoard(b board.Board) string {
	var sb strings.Builder

	for row := 0; row < board.Rows; row++ {
		sb.WriteString(mutedStyle.Render(strconv.Itoa(board.NewSquare(row, 0).Rank())))
		sb.WriteByte(' ')

		for col := 0; col < board.Cols; col++ {
			sq := board.NewSquare(row, col)
			style := lightSquare
			if (row+col)%2 == 1 {
				style = darkSquare
			}

			p := b.PieceAt(sq)
			text := " "
			if !p.IsEmpty() {
				text = p.Symbol()
				if p.Color() == board.White {
					style = style.Foreground(whitePiece).Bold(true)
				} else {
					style = style.Foreground(blackPiece)
				}
			}
			sb.WriteString(style.Render(text))
		}
		sb.WriteByte('\n')
	}

	sb.WriteString("  ")
	for col := 0; col < board.Cols; col++ {
		sb.WriteString(lipgloss.PlaceHorizontal(3, lipgloss.Center, mutedStyle.Render(string(rune('a'+col)))))
	}
	return sb.String()
}
