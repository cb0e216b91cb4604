package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"TraceTutor/internal/catalog"
	"TraceTutor/internal/session"
	"TraceTutor/internal/tutor"
)

// Tutor is the subset of tutor.Tutor the TUI drives.
type Tutor interface {
	Send(ctx context.Context, st *session.State, input string) (session.Message, error)
	Recommend(ctx context.Context, st *session.State, query string) error
}

type focus int

const (
	focusNone focus = iota
	focusSearch
	focusChat
)

// Message types for the TUI
type (
	chatReplyMsg struct {
		reply session.Message
		err   error
	}
	recommendMsg struct {
		query string
		err   error
	}
)

// Layout rows outside the tab body.
const (
	headerHeight = 3
	footerHeight = 2
	inputHeight  = 3
)

// Model is the bubbletea model for one terminal session.
type Model struct {
	tutor   Tutor
	catalog *catalog.Catalog
	state   *session.State

	search   textinput.Model
	chat     textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	md       markdown
	styles   styles

	focus        focus
	cursor       int
	sending      bool
	recommending bool
	status       string
	statusErr    bool

	ready  bool
	width  int
	height int
}

// New creates a Model over st.
func New(t Tutor, cat *catalog.Catalog, st *session.State) Model {
	search := textinput.New()
	search.Placeholder = "Search projects (led, motor, power...)"
	search.Prompt = "🔍 "
	search.CharLimit = 100

	chat := textinput.New()
	chat.Placeholder = "Ask the tutor about PCB design..."
	chat.Prompt = "› "
	chat.CharLimit = 2000

	s := spinner.New()
	s.Spinner = spinner.Dot

	return Model{
		tutor:   t,
		catalog: cat,
		state:   st,
		search:  search,
		chat:    chat,
		spinner: s,
		styles:  newStyles(st.DarkMode()),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		m.ready = true
		return m, nil

	case chatReplyMsg:
		m.sending = false
		if msg.err != nil && !errors.Is(msg.err, tutor.ErrEmptyInput) {
			m.setStatus(msg.err.Error(), true)
		}
		m.refreshTranscript()
		return m, nil

	case recommendMsg:
		m.recommending = false
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Learning path for %q added to the chat", msg.query), false)
		cmd := m.focusChat()
		m.refreshTranscript()
		return m, cmd

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshTranscript()
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.focus {
		case focusSearch:
			return m.updateSearch(msg)
		case focusChat:
			return m.updateChat(msg)
		}
		return m.updateNavigation(msg)
	}

	return m, nil
}

func (m Model) updateNavigation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tab := m.state.ActiveTab()

	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit
	case "tab":
		cmd := m.selectTab(m.offsetTab(1))
		return m, cmd
	case "shift+tab":
		cmd := m.selectTab(m.offsetTab(-1))
		return m, cmd
	case "1", "2", "3", "4", "5":
		cmd := m.selectTab(session.Tabs[int(key[0]-'1')])
		return m, cmd
	case "d":
		m.state.ToggleDarkMode()
		m.applyTheme()
	case "esc":
		m.state.CloseDetail()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.listLen()-1 {
			m.cursor++
		}
	case "enter":
		m.openSelected()
	case "/":
		if tab == session.TabProjects {
			m.state.CloseDetail()
			m.focus = focusSearch
			cmd := m.search.Focus()
			return m, cmd
		}
	case "f":
		if tab == session.TabProjects {
			m.state.SetLevel(m.state.Level().Next())
			m.cursor = 0
		}
	case "r":
		if tab == session.TabProjects {
			return m.startRecommend()
		}
	case "i":
		if tab == session.TabTutor {
			cmd := m.focusChat()
			return m, cmd
		}
	case "pgup", "pgdown":
		if tab == session.TabTutor {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.Blur()
		m.focus = focusNone
		return m, nil
	case tea.KeyEnter:
		m.search.Blur()
		m.focus = focusNone
		return m.startRecommend()
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.state.SetSearch(m.search.Value())
	m.cursor = 0
	return m, cmd
}

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.chat.Blur()
		m.focus = focusNone
		return m, nil
	case tea.KeyTab:
		cmd := m.selectTab(m.offsetTab(1))
		return m, cmd
	case tea.KeyShiftTab:
		cmd := m.selectTab(m.offsetTab(-1))
		return m, cmd
	case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.KeyEnter:
		text := m.chat.Value()
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		if m.sending || m.state.Pending() {
			m.setStatus("Still waiting for the tutor's reply", false)
			return m, nil
		}
		m.chat.Reset()
		m.sending = true
		m.status = ""
		return m, tea.Batch(m.sendCmd(text), m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	m.state.SetDraft(m.chat.Value())
	return m, cmd
}

// sendCmd runs the chat round trip off the event loop.
func (m Model) sendCmd(text string) tea.Cmd {
	t, st := m.tutor, m.state
	return func() tea.Msg {
		reply, err := t.Send(context.Background(), st, text)
		return chatReplyMsg{reply: reply, err: err}
	}
}

func (m Model) startRecommend() (tea.Model, tea.Cmd) {
	query := strings.TrimSpace(m.state.Search())
	if query == "" || m.recommending {
		return m, nil
	}
	m.recommending = true
	m.setStatus(fmt.Sprintf("Generating a learning path for %q", query), false)

	t, st := m.tutor, m.state
	cmd := func() tea.Msg {
		return recommendMsg{query: query, err: t.Recommend(context.Background(), st, query)}
	}
	return m, tea.Batch(cmd, m.spinner.Tick)
}

// selectTab switches tabs; entering the tutor tab focuses the chat input and
// returns its blink command.
func (m *Model) selectTab(t session.Tab) tea.Cmd {
	m.state.SelectTab(t)
	m.cursor = 0
	m.search.Blur()
	m.chat.Blur()
	m.focus = focusNone
	if t != session.TabTutor {
		return nil
	}
	cmd := m.focusChat()
	m.refreshTranscript()
	return cmd
}

func (m *Model) focusChat() tea.Cmd {
	m.search.Blur()
	m.focus = focusChat
	m.chat.SetValue(m.state.Draft())
	return m.chat.Focus()
}

func (m Model) offsetTab(delta int) session.Tab {
	current := m.state.ActiveTab()
	for i, t := range session.Tabs {
		if t == current {
			n := len(session.Tabs)
			return session.Tabs[((i+delta)%n+n)%n]
		}
	}
	return session.TabOverview
}

func (m Model) listLen() int {
	switch m.state.ActiveTab() {
	case session.TabProjects:
		return len(m.state.FilteredProjects(m.catalog.Projects))
	case session.TabLearningPaths:
		return len(m.catalog.LearningPaths)
	}
	return 0
}

func (m *Model) openSelected() {
	switch m.state.ActiveTab() {
	case session.TabProjects:
		list := m.state.FilteredProjects(m.catalog.Projects)
		if m.cursor < len(list) {
			m.state.StartProject(list[m.cursor].ID)
		}
	case session.TabLearningPaths:
		if m.cursor < len(m.catalog.LearningPaths) {
			m.state.StartLearningPath(m.catalog.LearningPaths[m.cursor].ID)
		}
	}
}

func (m Model) busy() bool {
	return m.sending || m.recommending || m.state.Pending()
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

func (m *Model) applyTheme() {
	m.styles = newStyles(m.state.DarkMode())
	m.md.configure(m.state.DarkMode(), m.contentWidth())
	m.refreshTranscript()
}

func (m Model) contentWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) resize() {
	vpHeight := m.height - headerHeight - footerHeight - inputHeight - 1
	if vpHeight < 5 {
		vpHeight = 5
	}
	if !m.ready {
		m.viewport = viewport.New(m.width, vpHeight)
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	}
	m.search.Width = m.contentWidth() - 4
	m.chat.Width = m.contentWidth() - 4
	m.md.configure(m.state.DarkMode(), m.contentWidth())
	m.refreshTranscript()
}

func (m *Model) refreshTranscript() {
	var b strings.Builder
	for _, msg := range m.state.Transcript() {
		if msg.Role == session.RoleUser {
			b.WriteString(m.styles.userLabel.Render("You"))
			b.WriteString("\n")
			b.WriteString(m.styles.text.Render(msg.Content))
		} else {
			b.WriteString(m.styles.tutorLabel.Render("Tutor"))
			b.WriteString("\n")
			b.WriteString(m.md.render(msg.Content))
		}
		b.WriteString("\n\n")
	}
	if m.state.Pending() {
		b.WriteString(m.spinner.View() + m.styles.dim.Render(" Tutor is thinking..."))
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}
