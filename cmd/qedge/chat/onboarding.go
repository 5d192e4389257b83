package chat

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quantumedge/cmd/qedge/ui"
	"quantumedge/internal/logging"
	"quantumedge/internal/profile"
)

// handleOnboardingInput advances the first-run wizard one step. The name
// comes in as free text; the category as a 1-based pick or an exact match
// of one of the options.
func (m Model) handleOnboardingInput(input string) (tea.Model, tea.Cmd) {
	switch m.inputMode {
	case InputModeOnboardName:
		if input == "" {
			m.status = "A name is required to continue."
			return m, nil
		}
		m.pendingName = input
		m.inputMode = InputModeOnboardCategory
		m.textarea.Reset()
		m.textarea.Placeholder = "Pick a number..."
		m.status = ""
		return m, nil

	case InputModeOnboardCategory:
		choice, ok := parseCategory(input)
		if !ok {
			m.status = fmt.Sprintf("Please pick 1-%d.", len(categoryOptions))
			return m, nil
		}

		m.profile = profile.Profile{Name: m.pendingName, Category: choice}
		path := profile.DefaultPath(m.cfg.StateDir)
		if err := profile.Save(path, m.profile); err != nil {
			m.err = err
			logging.Session("failed to save profile: %v", err)
		} else {
			logging.Session("profile saved for %s", m.profile.Name)
		}

		m.rebuildConversations()
		m.inputMode = InputModeNormal
		m.textarea.Reset()
		m.textarea.Placeholder = "Ask me anything..."
		m.status = fmt.Sprintf("Welcome, %s!", m.profile.Name)
		m.refreshViewport()
		return m, nil
	}

	return m, nil
}

// parseCategory accepts a 1-based index or a case-insensitive option name.
func parseCategory(input string) (string, bool) {
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(categoryOptions) {
			return categoryOptions[n-1], true
		}
		return "", false
	}
	for _, opt := range categoryOptions {
		if strings.EqualFold(input, opt) {
			return opt, true
		}
	}
	return "", false
}

func (m Model) renderOnboarding() string {
	var sb strings.Builder

	sb.WriteString(ui.Logo(m.styles))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Title.Render("Welcome to Quantum Edge!"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Subtitle.Render("Let's get to know you."))
	sb.WriteString("\n\n")

	switch m.inputMode {
	case InputModeOnboardName:
		sb.WriteString(m.styles.Body.Render("What should I call you?"))
	case InputModeOnboardCategory:
		sb.WriteString(m.styles.Body.Render(fmt.Sprintf("Nice to meet you, %s! Please select your gender:", m.pendingName)))
		sb.WriteString("\n\n")
		for i, opt := range categoryOptions {
			sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("  %d. %s", i+1, opt)))
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")

	if m.status != "" {
		sb.WriteString(m.styles.Warning.Render(m.status))
		sb.WriteString("\n")
	}

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Theme.Accent).
		Padding(0, 1)
	sb.WriteString(inputStyle.Render(m.textarea.View()))

	return m.styles.Content.Render(sb.String())
}
