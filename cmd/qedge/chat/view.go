package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quantumedge/internal/convo"
)

// sourceIcon maps a grounded source kind to its display glyph.
func sourceIcon(kind convo.SourceKind) string {
	if kind == convo.SourcePlace {
		return "📍"
	}
	return "🌐"
}

func (m Model) renderHistory() string {
	var sb strings.Builder

	for _, turn := range m.current().controller.Turns() {
		switch turn.Role {
		case convo.RoleUser:
			userStyle := m.styles.Bold.
				Foreground(m.styles.Theme.Primary).
				MarginTop(1)
			sb.WriteString(userStyle.Render("You") + "\n")
			sb.WriteString(m.styles.UserInput.Render(turn.Text))
			sb.WriteString("\n\n")

		default:
			assistantStyle := m.styles.Bold.
				Foreground(m.styles.Theme.Accent).
				MarginTop(1)
			sb.WriteString(assistantStyle.Render(m.current().persona.Title) + "\n")
			sb.WriteString(m.safeRenderMarkdown(turn.Text))
			sb.WriteString("\n")

			if len(turn.Sources) > 0 {
				sb.WriteString(m.styles.Muted.Render("Sources:") + "\n")
				for _, src := range turn.Sources {
					line := fmt.Sprintf("  %s %s", sourceIcon(src.Kind), src.Title)
					if src.URI != "" {
						line += m.styles.Muted.Render("  " + src.URI)
					}
					sb.WriteString(m.styles.Source.Render(line) + "\n")
				}
				sb.WriteString("\n")
			}
		}
	}

	return sb.String()
}

// safeRenderMarkdown renders markdown with panic recovery; glamour can
// panic on pathological input, and a raw fallback beats a crashed TUI.
func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(content)
		if err == nil {
			return rendered
		}
	}
	return content
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderHistory())
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render(" Quantum Edge ")

	var tabs []string
	for _, t := range []Tab{TabInvest, TabEscape} {
		style := m.styles.TabIdle
		if t == m.tab {
			style = m.styles.TabActive
		}
		tabs = append(tabs, style.Render(m.tabTitle(t)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", strings.Join(tabs, " "))
}

func (m Model) renderFooter() string {
	hints := "Enter: send  Tab: switch assistant  /help: commands  Ctrl+C: quit"
	return m.styles.Footer.Render(m.statusLine() + "  •  " + hints)
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.inputMode == InputModeOnboardName || m.inputMode == InputModeOnboardCategory {
		return m.renderOnboarding()
	}

	header := m.renderHeader()
	chatView := m.styles.Content.Render(m.viewport.View())

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Theme.Accent).
		Padding(0, 1)
	inputArea := inputStyle.Render(m.textarea.View())

	footer := m.renderFooter()

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		chatView,
		inputArea,
		footer,
	)

	if m.err != nil {
		view = lipgloss.JoinVertical(lipgloss.Left, view,
			m.styles.Error.Render("Error: "+m.err.Error()))
	}
	return view
}
