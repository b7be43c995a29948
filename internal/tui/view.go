package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const assistPanelLines = 9

func (m *Model) panelHeight() int {
	if m.assist != nil && m.assist.Enabled() {
		return assistPanelLines
	}
	return 0
}

func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if m.panelHeight() > 0 {
		b.WriteString(m.assistView())
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.statusView())
	return b.String()
}

func (m *Model) headerView() string {
	other := m.session.OtherUser()
	title := "Amora"
	if other.Name != "" {
		title = fmt.Sprintf("Amora — chatting with %s", other.Name)
	}
	return headerStyle.Width(m.width).Render(title)
}

func (m *Model) statusView() string {
	parts := []string{}
	if m.session.Sending() {
		parts = append(parts, m.spin.View()+"sending")
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	if m.assist != nil && m.assist.Enabled() {
		parts = append(parts, "assistant on · Tab suggestion · Ctrl+T ask · Ctrl+R refresh")
	} else if m.assist != nil {
		parts = append(parts, "Ctrl+A assistant")
	}
	parts = append(parts, "Esc quit")
	return statusStyle.Width(m.width).Render(strings.Join(parts, "  |  "))
}

// refreshViewport re-renders the conversation into the viewport, pinned to
// the bottom so the newest message stays visible.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	var b strings.Builder
	for _, msg := range m.session.Messages() {
		nameStyle := theirsNameStyle
		if msg.SenderID == m.selfID {
			nameStyle = mineNameStyle
		}
		b.WriteString(fmt.Sprintf("%s %s\n%s\n\n",
			nameStyle.Render(msg.SenderName),
			timeStyle.Render(msg.CreatedAt.Local().Format("15:04")),
			msg.Message,
		))
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// assistView renders the assistant panel: safety/mood snapshot, candidate
// replies, and the tail of the assistant transcript.
func (m *Model) assistView() string {
	var lines []string
	lines = append(lines, panelTitleStyle.Render("AI Assistant"))

	if analysis := m.assist.Analysis(); analysis != nil {
		safety := analysis.SafetyLevel
		switch safety {
		case "caution":
			safety = warnStyle.Render(safety)
		case "danger":
			safety = dangerStyle.Render(safety)
		}
		lines = append(lines, fmt.Sprintf("safety: %s  mood: %s", safety, analysis.MoodAnalysis))
		for _, w := range analysis.Warnings {
			lines = append(lines, warnStyle.Render("! "+w))
		}
	} else {
		lines = append(lines, suggestionStyle.Render("analyzing conversation..."))
	}

	if suggestions := m.assist.Suggestions(); len(suggestions) > 0 {
		lines = append(lines, panelTitleStyle.Render("Suggestions (Tab to use)"))
		pick := (m.suggestIdx) % len(suggestions)
		for i, sug := range suggestions {
			style := suggestionStyle
			if i == pick {
				style = suggestionPickStyle
			}
			lines = append(lines, style.Render("· "+sug))
		}
	}

	if transcript := m.assist.Transcript(); len(transcript) > 0 {
		last := transcript[len(transcript)-1]
		lines = append(lines, panelTitleStyle.Render("Assistant says"))
		lines = append(lines, truncate(last.Content, m.width-4))
	}

	// Fixed panel height keeps the layout stable
	for len(lines) < assistPanelLines-1 {
		lines = append(lines, "")
	}
	if len(lines) > assistPanelLines-1 {
		lines = lines[:assistPanelLines-1]
	}

	return panelStyle.Width(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...)) + "\n"
}

func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
