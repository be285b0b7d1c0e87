package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Theme        string
	Tabs         string
	LeftPane     string
	RightPane    string
	StatusLine   string
	Footer       string
	Notification string
}

type palette struct {
	header lipgloss.Style
	status lipgloss.Style
	err    lipgloss.Style
	panel  lipgloss.Style
	footer lipgloss.Style
	active lipgloss.Style
	tab    lipgloss.Style
}

var (
	darkPalette = palette{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		status: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		panel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1),
		footer: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		active: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12")).Padding(0, 1),
		tab:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Padding(0, 1),
	}
	lightPalette = palette{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		status: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		panel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("4")).Padding(0, 1),
		footer: lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		active: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")).Padding(0, 1),
		tab:    lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Padding(0, 1),
	}
)

func paletteFor(theme string) palette {
	if theme == "dark" {
		return darkPalette
	}
	return lightPalette
}

func RenderApp(data AppData) string {
	p := paletteFor(data.Theme)
	left := p.panel.Width(58).Render(data.LeftPane)
	row := left
	if strings.TrimSpace(data.RightPane) != "" {
		right := p.panel.Width(44).Render(data.RightPane)
		row = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	status := p.status.Render(data.StatusLine)
	if strings.Contains(strings.ToLower(data.StatusLine), "error") {
		status = p.err.Render(data.StatusLine)
	}

	lines := []string{
		p.header.Render("mantrad") + " " + data.Tabs,
		row,
		status,
	}
	if data.Notification != "" {
		lines = append(lines, p.panel.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, p.footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderTabs draws the tab strip with the active tab highlighted.
func RenderTabs(theme string, tabs []string, active string) string {
	p := paletteFor(theme)
	out := make([]string, 0, len(tabs))
	for i, name := range tabs {
		label := string(rune('1'+i)) + " " + name
		if name == active {
			out = append(out, p.active.Render(label))
			continue
		}
		out = append(out, p.tab.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

func RenderMarkdown(md, theme string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "light"
	if theme == "dark" {
		style = "dark"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
