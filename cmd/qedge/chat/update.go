package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"quantumedge/internal/logging"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit

		case tea.KeyTab:
			if m.inputMode == InputModeNormal {
				m.tab = (m.tab + 1) % 2
				m.refreshViewport()
				return m, nil
			}

		case tea.KeyEnter:
			// Shift+Enter inserts a newline; plain Enter submits.
			if msg.Alt {
				break
			}
			return m.handleSubmit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 3
		footerHeight := 2
		inputHeight := 5
		vpHeight := m.height - headerHeight - footerHeight - inputHeight
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(m.width - 4)
		m.refreshViewport()

	case replySettledMsg:
		m.persistSettled(m.convos[msg.tab])
		if msg.tab == m.tab {
			m.refreshViewport()
			m.viewport.GotoBottom()
		}
		m.status = "Ready"
		logging.Chat("exchange settled on %s", m.convos[msg.tab].persona.ID)

	case submitIgnoredMsg:
		m.status = "Still working on the previous message..."

	case errorMsg:
		m.err = msg

	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	m.spinner, spCmd = m.spinner.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, spCmd)
}

// handleSubmit routes Enter according to the current input mode.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textarea.Value())

	switch m.inputMode {
	case InputModeOnboardName, InputModeOnboardCategory:
		return m.handleOnboardingInput(input)
	}

	if input == "" {
		return m, nil
	}
	m.textarea.Reset()

	if strings.HasPrefix(input, "/") {
		return m.handleCommand(input)
	}

	if m.current().controller.InFlight() {
		m.status = "Still working on the previous message..."
		return m, nil
	}

	m.status = "Sending..."
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, tea.Batch(
		m.spinner.Tick,
		m.submitTurn(m.tab, input),
		textarea.Blink,
	)
}
