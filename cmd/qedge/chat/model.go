// Package chat provides the interactive TUI for Quantum Edge. The code is
// split across files:
//   - model.go: Types, construction, Init (this file)
//   - update.go: Update loop and key handling
//   - view.go: Rendering functions
//   - commands.go: /command handling
//   - onboarding.go: First-run profile wizard
package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"

	"quantumedge/cmd/qedge/ui"
	"quantumedge/internal/config"
	"quantumedge/internal/convo"
	"quantumedge/internal/gateway"
	"quantumedge/internal/geo"
	"quantumedge/internal/logging"
	"quantumedge/internal/persona"
	"quantumedge/internal/profile"
	"quantumedge/internal/store"
)

// Tab selects which assistant conversation is in front.
type Tab int

const (
	TabInvest Tab = iota
	TabEscape
)

// InputMode represents the current input handling state. Onboarding steps
// and normal chat share the single textarea, so a state machine keeps the
// handling unambiguous.
type InputMode int

const (
	InputModeNormal InputMode = iota
	InputModeOnboardName
	InputModeOnboardCategory
)

// categoryOptions are the fixed choices offered at onboarding.
var categoryOptions = []string{"Male", "Female", "Other", "Prefer not to say"}

// conversation pairs a persona with its turn-taking controller and the
// stored-session id its transcript is written under.
type conversation struct {
	persona    persona.Persona
	controller *convo.Controller
	sessionID  string
	saved      int // turns already written to the transcript store
}

// Messages for tea updates
type (
	// replySettledMsg fires when a submission finishes (success or apology).
	replySettledMsg struct{ tab Tab }

	// submitIgnoredMsg fires when the controller refused the submission.
	submitIgnoredMsg struct{}

	errorMsg error
)

// Model is the main model for the interactive chat interface.
type Model struct {
	// UI components
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	styles   ui.Styles
	renderer *glamour.TermRenderer

	cfg     *config.Config
	client  *gateway.Client
	profile profile.Profile
	store   *store.TranscriptStore

	tab         Tab
	convos      [2]*conversation
	inputMode   InputMode
	pendingName string // captured during onboarding before category is chosen

	status string
	err    error
	width  int
	height int
	ready  bool
}

// New builds the chat model. transcripts may be nil, in which case turns
// are not persisted.
func New(cfg *config.Config, client *gateway.Client, prof profile.Profile, transcripts *store.TranscriptStore) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask me anything..."
	ta.Focus()
	ta.Prompt = "┃ "
	ta.CharLimit = 4000
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	styles := ui.DefaultStyles()
	sp.Style = styles.Spinner

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		renderer = nil
	}

	m := Model{
		textarea: ta,
		spinner:  sp,
		styles:   styles,
		renderer: renderer,
		cfg:      cfg,
		client:   client,
		profile:  prof,
		store:    transcripts,
		status:   "Ready",
	}

	var locator geo.Locator
	if cfg.Location.Enabled {
		locator = geo.NewIPLocator(cfg.Location.URL, cfg.LocationTimeout())
	}
	m.convos[TabInvest] = m.newConversation(persona.Financial(), nil)
	m.convos[TabEscape] = m.newConversation(persona.Travel(), locator)

	if !prof.Complete() {
		m.inputMode = InputModeOnboardName
		m.textarea.Placeholder = "Your name..."
		m.status = "Welcome! Let's set up your profile."
	}

	return m
}

func (m *Model) newConversation(p persona.Persona, locator geo.Locator) *conversation {
	assistant := m.client.Assistant(p, m.profile.Name, locator)
	c := &conversation{
		persona:   p,
		sessionID: uuid.New().String(),
	}
	c.controller = convo.NewController(assistant, func() string {
		return p.Greeting(m.profile.Name)
	}, p.Apology)
	if m.store != nil {
		if err := m.store.BeginSession(c.sessionID, p.ID); err != nil {
			logging.Store("failed to begin session %s: %v", c.sessionID, err)
		}
	}
	c.saved = c.controller.Len()
	return c
}

// current returns the front conversation.
func (m Model) current() *conversation {
	return m.convos[m.tab]
}

// Init starts the spinner and cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// submitTurn runs one submission off the UI loop. The controller blocks
// until the exchange settles, then the settled turns are persisted.
func (m Model) submitTurn(tab Tab, text string) tea.Cmd {
	c := m.convos[tab]
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if !c.controller.Submit(ctx, text) {
			return submitIgnoredMsg{}
		}
		return replySettledMsg{tab: tab}
	}
}

// persistSettled writes any turns not yet stored for the conversation.
func (m *Model) persistSettled(c *conversation) {
	if m.store == nil {
		return
	}
	turns := c.controller.Turns()
	for i := c.saved; i < len(turns); i++ {
		if err := m.store.SaveTurn(c.sessionID, i, turns[i]); err != nil {
			logging.Store("failed to save turn %d: %v", i, err)
			return
		}
	}
	c.saved = len(turns)
}

// resetConversation replaces the front conversation and rotates its stored
// session id so the old transcript stays intact.
func (m *Model) resetConversation() bool {
	c := m.current()
	if !c.controller.Reset() {
		return false
	}
	c.sessionID = uuid.New().String()
	c.saved = 0
	if m.store != nil {
		if err := m.store.BeginSession(c.sessionID, c.persona.ID); err != nil {
			logging.Store("failed to begin session %s: %v", c.sessionID, err)
		}
	}
	m.persistSettled(c)
	return true
}

// rebuildConversations replaces both controllers, used after onboarding
// completes so greetings pick up the new display name.
func (m *Model) rebuildConversations() {
	var locator geo.Locator
	if m.cfg.Location.Enabled {
		locator = geo.NewIPLocator(m.cfg.Location.URL, m.cfg.LocationTimeout())
	}
	m.convos[TabInvest] = m.newConversation(persona.Financial(), nil)
	m.convos[TabEscape] = m.newConversation(persona.Travel(), locator)
}

func (m Model) tabTitle(t Tab) string {
	return m.convos[t].persona.Title
}

func (m Model) statusLine() string {
	if m.current().controller.InFlight() {
		return fmt.Sprintf("%s Thinking...", m.spinner.View())
	}
	return m.status
}
