package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/toastui/internal/banner"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Faint(true).
			Padding(0, 1)

	contentStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

// View renders the demo panel with the banner overlaid on top.
func (m *Model) View() string {
	if !m.ready {
		return "initializing..."
	}

	base := m.renderPanel()

	if m.item != nil {
		bannerView := m.renderBanner()
		row := m.bannerRow(lipgloss.Height(bannerView))
		base = overlay(base, bannerView, row, m.width)
	}

	return base
}

// renderPanel draws the demo background: title, state lines, and help.
func (m *Model) renderPanel() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("toastui demo"))
	b.WriteString("\n\n")

	b.WriteString(statusStyle.Render(fmt.Sprintf("preset: %s", m.currentPreset())))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("scheme: %s", m.scheme)))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("queued: %d", m.q.Len())))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	body := b.String()

	var helpView string
	if m.showHelp {
		helpView = m.help.FullHelpView(m.keys.FullHelp())
	} else {
		helpView = m.help.ShortHelpView(m.keys.ShortHelp())
	}

	// Pad the body so the help line sits at the bottom.
	bodyHeight := lipgloss.Height(body)
	helpHeight := lipgloss.Height(helpView)
	padding := m.height - bodyHeight - helpHeight
	if padding > 0 {
		body += strings.Repeat("\n", padding)
	}
	return body + helpView
}

// renderBanner draws the presented banner from its configuration, the
// derived geometry, and the resolved color scheme.
func (m *Model) renderBanner() string {
	cfg := m.item.Config
	content := contentStyle.Render(m.item.Content)

	height := float64(lipgloss.Height(content))
	radius := banner.CornerRadius(cfg.CornerRadius, height)
	background := banner.Background(cfg.Background, m.scheme, m.palette)

	// Corner radius maps onto border style: any rounding renders the
	// rounded box, an explicit zero renders square corners.
	border := lipgloss.NormalBorder()
	if radius > 0 {
		border = lipgloss.RoundedBorder()
	}

	style := lipgloss.NewStyle().
		Border(border).
		Background(lipgloss.Color(background))

	if cfg.MinWidth > 0 && cfg.MinWidth > lipgloss.Width(content) {
		style = style.Width(cfg.MinWidth)
	}
	if cfg.ShadowColor != "" {
		style = style.BorderForeground(lipgloss.Color(cfg.ShadowColor))
	}

	return style.Render(content)
}

// bannerHeight returns the rendered banner height in rows.
func (m *Model) bannerHeight() float64 {
	if m.item == nil {
		return 0
	}
	return float64(lipgloss.Height(m.renderBanner()))
}

// bannerRow computes the top row of the banner: the rest position near
// the anchored edge plus the current slide offset.
func (m *Model) bannerRow(bannerHeight int) int {
	const inset = 1
	offset := int(math.Round(m.offset))

	if m.item.Config.Edge == banner.EdgeTop {
		return inset + offset
	}
	return m.height - inset - bannerHeight + offset
}

// overlay composites layer onto base at the given row, horizontally
// centered. Rows outside the base are clipped, which is what makes the
// slide transition appear from past the screen edge.
func overlay(base, layer string, row, width int) string {
	baseLines := strings.Split(base, "\n")
	layerLines := strings.Split(layer, "\n")

	for i, line := range layerLines {
		r := row + i
		if r < 0 || r >= len(baseLines) {
			continue
		}
		margin := (width - lipgloss.Width(line)) / 2
		if margin < 0 {
			margin = 0
		}
		baseLines[r] = strings.Repeat(" ", margin) + line
	}

	return strings.Join(baseLines, "\n")
}
