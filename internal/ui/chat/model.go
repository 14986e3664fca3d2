// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"shoptalk/internal/backend"
	"shoptalk/internal/config"
	"shoptalk/internal/model"
	"shoptalk/internal/session"
	"shoptalk/internal/ui/components"
	"shoptalk/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady   State = iota // Ready for input
	StateWaiting              // Request in flight
	StateError                // Showing an error
)

// fallbackReply is appended as the assistant's answer when a request fails.
// The underlying error goes to the error banner, not the transcript.
const fallbackReply = "Sorry, something went wrong."

// emptyReply stands in for a successful response whose result text is blank.
const emptyReply = "(empty reply)"

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Conversation transcript
	conversation *model.Conversation

	// Server session identity
	session *session.State

	// Backend client
	client *backend.Client

	// Current inference model
	modelName string

	// Request generation. Bumped on reset; in-flight results stamped with an
	// older generation are dropped.
	generation int

	// UI Components
	viewport  viewport.Model
	input     textinput.Model
	spinner   components.Spinner
	statusBar *components.StatusBar
	welcome   components.Welcome

	// Key bindings
	keyMap KeyMap

	// Error state
	lastError *ErrorMsg

	// Help overlay
	showHelp bool

	// Display options
	version      string
	showBanner   bool
	lastExported string
}

// New creates a new chat model.
func New(theme *styles.Theme, client *backend.Client, cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	if client == nil {
		client = backend.NewClientWithConfig(cfg.BackendClientConfig())
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a message..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	sb := components.NewStatusBar(theme)
	sb.SetModel(cfg.Chat.Model)
	sb.SetMemoryDepth(cfg.Chat.MaxMemory)

	w := components.NewWelcome(theme)
	w.SetModelName(cfg.Chat.Model)
	w.SetBackendURL(cfg.Backend.URL)
	w.SetMemoryDepth(cfg.Chat.MaxMemory)

	return Model{
		state:        StateReady,
		theme:        theme,
		conversation: model.NewConversationWithModel(cfg.Chat.Model),
		session:      session.New(cfg.Chat.MaxMemory),
		client:       client,
		modelName:    cfg.Chat.Model,
		viewport:     vp,
		input:        ti,
		spinner:      components.NewThinkingSpinner(),
		statusBar:    sb,
		welcome:      w,
		keyMap:       DefaultKeyMap(),
		version:      "dev",
		showBanner:   cfg.UI.ShowSessionBanner,
	}
}

// SetVersion sets the version shown on the welcome screen.
func (m *Model) SetVersion(v string) {
	m.version = v
	m.welcome.SetVersion(v)
}

// SetModel switches the inference model. Unknown names are ignored.
func (m *Model) SetModel(name string) bool {
	if !backend.ValidModel(name) {
		return false
	}
	m.modelName = name
	m.statusBar.SetModel(name)
	m.welcome.SetModelName(name)
	return true
}

// SetMemoryDepth sets the server-side conversation memory depth.
func (m *Model) SetMemoryDepth(n int) bool {
	if !m.session.SetMaxMemory(n) {
		return false
	}
	m.statusBar.SetMemoryDepth(n)
	m.welcome.SetMemoryDepth(n)
	return true
}

// State returns the current chat state.
func (m Model) State() State {
	return m.state
}

// Conversation returns the transcript.
func (m Model) Conversation() *model.Conversation {
	return m.conversation
}

// Session returns the server session state.
func (m Model) Session() *session.State {
	return m.session
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SearchResultMsg:
		return m.handleSearchResult(msg)

	case SearchErrorMsg:
		return m.handleSearchError(msg)

	case SessionEndedMsg:
		// Best-effort delete; nothing to do either way
		return m, nil

	case ErrorMsg:
		m.lastError = &msg
		m.state = StateError
		return m, nil

	case ErrorDismissMsg:
		m.lastError = nil
		m.state = StateReady
		m.input.Focus()
		return m, textinput.Blink

	case ClearConversationMsg:
		m.conversation.ClearHistory()
		m.updateViewport()
		return m, nil

	case ConfigReloadedMsg:
		return m.handleConfigReloaded(msg)

	default:
		// Spinner ticks, cursor blinks, and other component messages
		var cmds []tea.Cmd
		if m.state == StateWaiting {
			var spinCmd tea.Cmd
			m.spinner, spinCmd = m.spinner.Update(msg)
			cmds = append(cmds, spinCmd)
			m.updateViewport()
		}
		var inputCmd tea.Cmd
		m.input, inputCmd = m.input.Update(msg)
		cmds = append(cmds, inputCmd)
		return m, tea.Batch(cmds...)
	}
}

// View renders the chat view.
func (m Model) View() string {
	return m.renderChat()
}

// =============================================================================
// RESIZE
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	// Layout: header + [session banner] + viewport (dynamic) + input + status.
	// Conservative estimates, slightly larger than actual, prevent overflow;
	// renderChat() measures real heights and pads the viewport if they differ.
	const (
		headerHeight    = 2
		inputAreaHeight = 3
		statusBarHeight = 2
		bannerHeight    = 1
	)

	reservedHeight := headerHeight + inputAreaHeight + statusBarHeight
	if m.sessionBannerVisible() {
		reservedHeight += bannerHeight
	}

	viewportHeight := m.height - reservedHeight
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	viewportWidth := m.width
	if viewportWidth < 1 {
		viewportWidth = 1
	}

	m.viewport.Width = viewportWidth
	m.viewport.Height = viewportHeight

	// Input line has Padding(0,1) inside a width-4 container; the prompt is
	// two characters wide.
	const promptLen = 2
	inputWidth := m.width - 6 - promptLen
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth

	if m.theme != nil {
		m.theme.SetSize(m.width, m.height)
	}
	m.statusBar.SetWidth(m.width)
	m.welcome.SetSize(m.width, viewportHeight)

	m.updateViewport()

	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, vpCmd
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits. The server session is deleted best-effort first.
	if key.Matches(msg, m.keyMap.Quit) {
		return m, tea.Sequence(m.endSessionCmd(), tea.Quit)
	}

	// Help overlay swallows the next keypress
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.submitInput()

	case key.Matches(msg, m.keyMap.Dismiss):
		if m.lastError != nil {
			m.lastError = nil
			if m.state == StateError {
				m.state = StateReady
			}
		}
		return m, nil

	case key.Matches(msg, m.keyMap.NewSession):
		return cmdReset(m, nil)

	case key.Matches(msg, m.keyMap.CycleModel):
		return m.cycleModel()

	case key.Matches(msg, m.keyMap.ScrollUp):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keyMap.ScrollDown):
		m.viewport.LineDown(1)
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Top):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keyMap.Bottom):
		m.viewport.GotoBottom()
		return m, nil
	}

	// Everything else goes to the text input
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// cycleModel advances to the next model in the fixed set.
func (m Model) cycleModel() (tea.Model, tea.Cmd) {
	next := backend.Models[0]
	for i, name := range backend.Models {
		if name == m.modelName {
			next = backend.Models[(i+1)%len(backend.Models)]
			break
		}
	}

	m.modelName = next
	m.conversation.AddSystemMessage("Switched model to " + next + ". Takes effect on the next message.")
	m.syncStatusBar()
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, nil
}

// =============================================================================
// SEARCH RESULT HANDLING
// =============================================================================

func (m Model) handleSearchResult(msg SearchResultMsg) (tea.Model, tea.Cmd) {
	// Result from a conversation that was reset while the request was in
	// flight. The session it belonged to is gone; drop it.
	if msg.Gen != m.generation {
		return m, nil
	}

	m.spinner.Stop()
	m.state = StateReady
	m.lastError = nil

	// Adopt session identity and history flag from the reply
	m.session.AdoptResponse(msg.Response)

	reply := ""
	if msg.Response != nil {
		reply = msg.Response.Result
	}
	if reply == "" {
		reply = emptyReply
	}
	m.conversation.AddAssistantMessage(reply)

	m.syncStatusBar()
	m.updateViewport()
	m.viewport.GotoBottom()
	m.input.Focus()
	return m, textinput.Blink
}

func (m Model) handleSearchError(msg SearchErrorMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.generation {
		return m, nil
	}

	m.spinner.Stop()
	m.state = StateError

	// The transcript gets the fixed fallback; the banner gets the detail.
	m.conversation.AddAssistantMessage(fallbackReply)

	errMsg := describeBackendError(msg.Err)
	m.lastError = &errMsg

	m.syncStatusBar()
	m.updateViewport()
	m.viewport.GotoBottom()
	m.input.Focus()
	return m, textinput.Blink
}

// handleConfigReloaded applies a hot-reloaded configuration. The session is
// left alone; only presentation and connection settings change.
func (m Model) handleConfigReloaded(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	cfg := msg.Config
	if cfg == nil {
		return m, nil
	}

	m.client = backend.NewClientWithConfig(cfg.BackendClientConfig())
	m.showBanner = cfg.UI.ShowSessionBanner
	m.SetModel(cfg.Chat.Model)
	m.SetMemoryDepth(cfg.Chat.MaxMemory)
	m.welcome.SetBackendURL(cfg.Backend.URL)

	m.updateViewport()
	return m, nil
}

// describeBackendError maps a client error to a user-facing banner.
func describeBackendError(err error) ErrorMsg {
	switch {
	case backend.IsTimeout(err):
		return ErrorMsg{
			Title:   "Request timed out",
			Message: "The assistant took too long to answer.",
			Tip:     "Try again, or raise backend.timeout_secs in the config.",
		}
	case backend.IsUnreachable(err):
		return ErrorMsg{
			Title:   "Backend unreachable",
			Message: "Could not connect to the assistant backend.",
			Tip:     "Check that the server is running and backend.url is correct.",
		}
	case err != nil:
		return ErrorMsg{
			Title:   "Request failed",
			Message: err.Error(),
		}
	default:
		return ErrorMsg{
			Title:   "Request failed",
			Message: "Unknown error.",
		}
	}
}

// =============================================================================
// COMMANDS (tea.Cmd)
// =============================================================================

// searchCmd issues one backend search request. No retries; a failure surfaces
// as a SearchErrorMsg.
func (m *Model) searchCmd(content string) tea.Cmd {
	// Capture before the closure; the model value may be copied by Bubble Tea
	client := m.client
	gen := m.generation
	req := backend.SearchRequest{
		UserInput: content,
		Model:     m.modelName,
		SessionID: m.session.SessionID(),
		MaxMemory: m.session.MaxMemory(),
	}

	return func() tea.Msg {
		start := time.Now()
		resp, err := client.Search(context.Background(), req)
		if err != nil {
			return SearchErrorMsg{Err: err, Elapsed: time.Since(start), Gen: gen}
		}
		return SearchResultMsg{Response: resp, Elapsed: time.Since(start), Gen: gen}
	}
}

// endSessionCmd deletes the server session, best-effort.
func (m *Model) endSessionCmd() tea.Cmd {
	client := m.client
	sessionID := m.session.SessionID()

	return func() tea.Msg {
		if sessionID == "" {
			return SessionEndedMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return SessionEndedMsg{Err: client.EndSession(ctx, sessionID)}
	}
}

// =============================================================================
// VIEWPORT
// =============================================================================

func (m *Model) updateViewport() {
	m.viewport.SetContent(m.renderMessages())
}

// syncStatusBar pushes current state into the status bar component.
func (m *Model) syncStatusBar() {
	m.statusBar.SetModel(m.modelName)
	m.statusBar.SetMemoryDepth(m.session.MaxMemory())
	m.statusBar.SetSession(m.session.HasSession(), m.session.Exchanges())

	switch m.state {
	case StateWaiting:
		m.statusBar.SetStatus(components.StatusWaiting)
	case StateError:
		m.statusBar.SetStatus(components.StatusError)
	default:
		m.statusBar.SetStatus(components.StatusReady)
	}
}

// sessionBannerVisible reports whether the prior-conversation banner shows.
func (m Model) sessionBannerVisible() bool {
	return m.showBanner && m.session.HasHistory()
}
