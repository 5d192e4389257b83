package chat

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"quantumedge/internal/convo"
	"quantumedge/internal/library"
	"quantumedge/internal/logging"
)

// handleCommand dispatches a /command typed at the prompt.
func (m Model) handleCommand(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "/help", "/?":
		m.showNotice(m.helpText())
		return m, nil

	case "/reset", "/new":
		if !m.resetConversation() {
			m.status = "Cannot reset while a message is in flight."
			return m, nil
		}
		m.status = "Conversation reset."
		m.refreshViewport()
		m.viewport.GotoBottom()
		logging.Chat("conversation reset on %s", m.current().persona.ID)
		return m, nil

	case "/sessions":
		return m.showSessions()

	case "/load":
		if len(args) < 1 {
			m.status = "Usage: /load <session-id>"
			return m, nil
		}
		return m.showTranscript(args[0])

	case "/library":
		return m.showLibrary()

	case "/play":
		return m.playTrack(args)

	case "/quit", "/exit":
		return m, tea.Quit

	default:
		m.status = fmt.Sprintf("Unknown command %s — try /help", cmd)
		return m, nil
	}
}

func (m Model) helpText() string {
	return strings.Join([]string{
		m.styles.Title.Render("Commands"),
		"  /reset            Start the current conversation over",
		"  /sessions         List stored conversations",
		"  /load <id>        Show a stored transcript",
		"  /library          Browse the music & song library",
		"  /play <n>         Open a library track in your browser",
		"  /quit             Exit",
		"",
		m.styles.Muted.Render("Tab switches between the assistants. Media tools live on the CLI: qedge imagine, edit, video, write, transcribe, song, say."),
	}, "\n")
}

// showNotice replaces the viewport with transient command output; the next
// chat refresh restores the history.
func (m *Model) showNotice(text string) {
	if m.ready {
		m.viewport.SetContent(text)
		m.viewport.GotoTop()
	}
	m.status = "Ready"
}

func (m Model) showSessions() (tea.Model, tea.Cmd) {
	if m.store == nil {
		m.status = "Transcript store is not available."
		return m, nil
	}
	sessions, err := m.store.ListSessions(20)
	if err != nil {
		m.err = err
		return m, nil
	}
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Stored sessions") + "\n")
	if len(sessions) == 0 {
		sb.WriteString(m.styles.Muted.Render("  (none yet)"))
	}
	for _, s := range sessions {
		sb.WriteString(fmt.Sprintf("  %s  %s  %d turns\n",
			m.styles.Bold.Render(s.ID),
			m.styles.Muted.Render(s.Persona+"  "+s.StartedAt.Format("2006-01-02 15:04")),
			s.TurnCount))
		if s.Preview != "" {
			sb.WriteString(m.styles.Muted.Render("    "+truncate(s.Preview, 70)) + "\n")
		}
	}
	m.showNotice(sb.String())
	return m, nil
}

func (m Model) showTranscript(id string) (tea.Model, tea.Cmd) {
	if m.store == nil {
		m.status = "Transcript store is not available."
		return m, nil
	}
	turns, err := m.store.LoadSession(id)
	if err != nil {
		m.err = err
		return m, nil
	}
	if len(turns) == 0 {
		m.status = "No such session: " + id
		return m, nil
	}
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Transcript "+id) + "\n")
	for _, turn := range turns {
		label := "Assistant"
		style := m.styles.Bold.Foreground(m.styles.Theme.Accent)
		if turn.Role == convo.RoleUser {
			label = "You"
			style = m.styles.Bold.Foreground(m.styles.Theme.Primary)
		}
		sb.WriteString(style.Render(label) + "\n")
		sb.WriteString(m.safeRenderMarkdown(turn.Text) + "\n")
	}
	m.showNotice(sb.String())
	return m, nil
}

func (m Model) showLibrary() (tea.Model, tea.Cmd) {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Music & Song Library") + "\n")
	n := 1
	labels := map[library.Collection]string{
		library.CollectionMusic: "Relaxing Music 🎵",
		library.CollectionSongs: "Refreshing Songs 🎤",
	}
	for _, coll := range []library.Collection{library.CollectionMusic, library.CollectionSongs} {
		sb.WriteString(m.styles.Subtitle.Render(labels[coll]) + "\n")
		for _, t := range library.Tracks(coll) {
			sb.WriteString(fmt.Sprintf("  %2d. %s %s\n", n,
				m.styles.Body.Render(t.Title),
				m.styles.Muted.Render("— "+t.Artist)))
			n++
		}
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.Muted.Render("Use /play <n> to open a track."))
	m.showNotice(sb.String())
	return m, nil
}

func (m Model) playTrack(args []string) (tea.Model, tea.Cmd) {
	if len(args) < 1 {
		m.status = "Usage: /play <n>"
		return m, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		m.status = "Usage: /play <n>"
		return m, nil
	}
	all := append(library.Tracks(library.CollectionMusic), library.Tracks(library.CollectionSongs)...)
	if n > len(all) {
		m.status = fmt.Sprintf("There are only %d tracks.", len(all))
		return m, nil
	}
	track := all[n-1]
	if err := library.Play(track); err != nil {
		m.err = err
		return m, nil
	}
	m.status = "Opening " + track.Title + "..."
	logging.Media("opening library track %q", track.Title)
	return m, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
