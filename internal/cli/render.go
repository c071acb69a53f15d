package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubetwist"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	emptyCell = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Render("··")
)

// Each sticker is drawn two columns wide so it looks square.
const cellWidth = 2

func sticker(c cubetwist.Color) string {
	if c == cubetwist.NoColor {
		return emptyCell
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render(strings.Repeat(" ", cellWidth))
}

// netLayout locates the faces of a rendered net on screen.
type netLayout struct {
	size int
	top  int // screen row of the first net line
}

// frontCell maps a screen position to a cell of the front face.
func (l netLayout) frontCell(x, y int) (row, col int, ok bool) {
	left := l.size*cellWidth + 1
	row = y - l.top - l.size
	if x < left || row < 0 || row >= l.size {
		return 0, 0, false
	}
	col = (x - left) / cellWidth
	if col >= l.size {
		return 0, 0, false
	}
	return row, col, true
}

// renderNet draws the net as a cross of colored cells:
//
//	  U
//	L F R B
//	  D
func renderNet(pn cubetwist.PuzzleNet) string {
	size := len(pn.Front)
	pad := strings.Repeat(" ", size*cellWidth+1)
	var b strings.Builder

	writeRow := func(row []cubetwist.Color) {
		for _, c := range row {
			b.WriteString(sticker(c))
		}
	}

	for r := 0; r < size; r++ {
		b.WriteString(pad)
		writeRow(pn.Up[r])
		b.WriteByte('\n')
	}
	for r := 0; r < size; r++ {
		for i, face := range [][][]cubetwist.Color{pn.Left, pn.Front, pn.Right, pn.Back} {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeRow(face[r])
		}
		b.WriteByte('\n')
	}
	for r := 0; r < size; r++ {
		b.WriteString(pad)
		writeRow(pn.Down[r])
		b.WriteByte('\n')
	}
	return b.String()
}

func renderRanking(scores []cubetwist.Score, highlight int) string {
	if len(scores) == 0 {
		return statusStyle.Render("No times yet")
	}
	var b strings.Builder
	for i, s := range scores {
		line := padRight(s.Name, 12) + " " + s.Time
		if i == highlight {
			line = moveStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}
	return s + strings.Repeat(" ", n-len(s))
}
