package views

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	ringRadius   = 5
	ringSegments = 24
)

var ringEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

// RenderRing draws a ring of dots filled clockwise from twelve o'clock in
// proportion to fraction. label is centred inside the ring. Columns are
// stretched twice as wide as rows so the ring looks round in a terminal.
func RenderRing(fraction float64, color, label string) string {
	if fraction < 0 || math.IsNaN(fraction) {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	width := ringRadius*4 + 1
	height := ringRadius*2 + 1
	grid := make([][]string, height)
	for y := range grid {
		grid[y] = make([]string, width)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}

	filled := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
	lit := int(fraction * ringSegments)
	for i := 0; i < ringSegments; i++ {
		angle := 2*math.Pi*float64(i)/ringSegments - math.Pi/2
		x := int(math.Round(2*ringRadius*math.Cos(angle))) + 2*ringRadius
		y := int(math.Round(ringRadius*math.Sin(angle))) + ringRadius
		if i < lit {
			grid[y][x] = filled.Render("●")
		} else {
			grid[y][x] = ringEmptyStyle.Render("○")
		}
	}

	runes := []rune(label)
	if len(runes) > width-6 {
		runes = runes[:width-6]
	}
	start := (width - len(runes)) / 2
	for i, r := range runes {
		grid[ringRadius][start+i] = string(r)
	}

	rows := make([]string, height)
	for y := range grid {
		rows[y] = strings.Join(grid[y], "")
	}
	return strings.Join(rows, "\n")
}
