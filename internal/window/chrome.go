package window

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/winnux/internal/config"
	"github.com/Gaurav-Gosain/winnux/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

// Chrome describes how one window frame is drawn.
type Chrome struct {
	Title     string
	Icon      string
	Focused   bool
	Maximized bool
	Width     int
	Height    int
}

// Render draws the frame around content. The result is exactly Width by
// Height cells (after Clamp); content is clipped to the inner area.
func (c Chrome) Render(content string) string {
	w := max(c.Width, config.MinWindowWidth)
	h := max(c.Height, config.MinWindowHeight)
	innerW, innerH := w-2, h-2

	border := config.GetBorderForStyle(config.BorderStyle)
	borderColor := theme.BorderUnfocused()
	if c.Focused {
		borderColor = theme.BorderFocused()
	}
	edge := lipgloss.NewStyle().Foreground(borderColor)

	lines := make([]string, 0, h)
	lines = append(lines, c.titleBar(border, edge, innerW))

	body := clip(content, innerW, innerH)
	left, right := edge.Render(border.Left), edge.Render(border.Right)
	for _, line := range body {
		lines = append(lines, left+line+right)
	}

	lines = append(lines, edge.Render(border.BottomLeft+strings.Repeat(border.Bottom, innerW)+border.BottomRight))
	return strings.Join(lines, "\n")
}

// titleBar builds the top border row: corner, title badge, fill, controls, corner.
func (c Chrome) titleBar(border lipgloss.Border, edge lipgloss.Style, innerW int) string {
	buttons := ""
	buttonsW := 0
	if !config.HideWindowButtons {
		buttons = renderButtons(c.Maximized)
		buttonsW = 3 * buttonWidth
	}

	label := c.Title
	if c.Icon != "" {
		label = c.Icon + " " + label
	}
	label = " " + label + " "
	avail := innerW - buttonsW - 1
	if avail < 3 {
		label = ""
	} else {
		label = ansi.Truncate(label, min(avail, config.MaxTitleLength+4), "…")
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(theme.TitleBarFg(c.Focused)).
		Background(theme.TitleBarBg(c.Focused)).
		Bold(c.Focused)

	fill := innerW - ansi.StringWidth(label) - buttonsW
	return edge.Render(border.TopLeft) +
		titleStyle.Render(label) +
		edge.Render(strings.Repeat(border.Top, max(fill, 0))) +
		buttons +
		edge.Render(border.TopRight)
}

func renderButtons(maximized bool) string {
	minLabel, maxLabel, closeLabel := config.WindowButtons(maximized)
	btn := func(s string, fg color.Color) string {
		return lipgloss.NewStyle().Foreground(fg).Render(fitButton(s))
	}
	return btn(minLabel, theme.ButtonFg()) +
		btn(maxLabel, theme.ButtonFg()) +
		btn(closeLabel, theme.ButtonCloseFg())
}

// fitButton forces a control label to exactly buttonWidth cells so hit
// testing and drawing agree.
func fitButton(s string) string {
	s = ansi.Truncate(s, buttonWidth, "")
	if pad := buttonWidth - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// clip cuts content to w columns and exactly h rows, padding short lines.
func clip(content string, w, h int) []string {
	src := strings.Split(content, "\n")
	out := make([]string, h)
	for i := range out {
		line := ""
		if i < len(src) {
			line = ansi.Truncate(src[i], w, "")
		}
		if pad := w - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		out[i] = line
	}
	return out
}
