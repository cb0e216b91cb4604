// Package session holds per-view UI state: the active tab, theme, search
// inputs, the chat transcript and the pending round-trip flag.
package session

import (
	"sync"

	"TraceTutor/internal/catalog"
)

// Tab identifies a top-level view.
type Tab string

const (
	TabOverview      Tab = "overview"
	TabLearningPaths Tab = "learning-paths"
	TabProjects      Tab = "projects"
	TabTutor         Tab = "tutor"
	TabPricing       Tab = "pricing"
)

// Tabs lists the tabs in navigation order.
var Tabs = []Tab{TabOverview, TabLearningPaths, TabProjects, TabTutor, TabPricing}

var tabLabels = map[Tab]string{
	TabOverview:      "Overview",
	TabLearningPaths: "Learning Paths",
	TabProjects:      "Projects",
	TabTutor:         "AI Tutor",
	TabPricing:       "Pricing",
}

// Label returns the navigation caption.
func (t Tab) Label() string {
	return tabLabels[t]
}

// ParseTab reports whether s names a known tab.
func ParseTab(s string) (Tab, bool) {
	t := Tab(s)
	_, ok := tabLabels[t]
	return t, ok
}

// State is the view state of one interface instance. All methods are safe
// for concurrent use. The transcript is append-only.
type State struct {
	mu sync.Mutex

	activeTab Tab
	darkMode  bool
	search    string
	level     catalog.Level
	draft     string

	messages []Message
	pending  bool

	currentProject int
	currentPath    int
}

// Snapshot is an immutable copy of State for rendering.
type Snapshot struct {
	ActiveTab      Tab
	DarkMode       bool
	Search         string
	Level          catalog.Level
	Draft          string
	Messages       []Message
	Pending        bool
	CurrentProject int
	CurrentPath    int
}

// NewState returns a state on the overview tab with the greeting in the transcript.
func NewState(darkMode bool) *State {
	return &State{
		activeTab: TabOverview,
		darkMode:  darkMode,
		level:     catalog.LevelAll,
		messages:  []Message{AssistantMessage(Greeting)},
	}
}

// Snapshot copies the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ActiveTab:      s.activeTab,
		DarkMode:       s.darkMode,
		Search:         s.search,
		Level:          s.level,
		Draft:          s.draft,
		Messages:       append([]Message(nil), s.messages...),
		Pending:        s.pending,
		CurrentProject: s.currentProject,
		CurrentPath:    s.currentPath,
	}
}

// ActiveTab returns the selected tab.
func (s *State) ActiveTab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeTab
}

// SelectTab switches the active tab.
func (s *State) SelectTab(t Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTab = t
}

// DarkMode reports the theme flag.
func (s *State) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.darkMode
}

// ToggleDarkMode flips the theme and returns the new value.
func (s *State) ToggleDarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.darkMode = !s.darkMode
	return s.darkMode
}

// Search returns the catalog query.
func (s *State) Search() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search
}

// SetSearch updates the catalog query.
func (s *State) SetSearch(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = q
}

// Level returns the difficulty selector.
func (s *State) Level() catalog.Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// SetLevel updates the difficulty selector.
func (s *State) SetLevel(l catalog.Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.level = l
}

// Draft returns the chat input buffer.
func (s *State) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SetDraft replaces the chat input buffer.
func (s *State) SetDraft(d string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = d
}

// Pending reports whether a chat round trip is outstanding.
func (s *State) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Transcript returns a copy of the messages in display order.
func (s *State) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages...)
}

// Len returns the number of transcript messages.
func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Append adds messages to the end of the transcript.
func (s *State) Append(msgs ...Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msgs...)
}

// BeginRoundTrip appends the user's text, clears the draft and marks the
// round trip pending. It returns false and changes nothing if one is
// already pending.
func (s *State) BeginRoundTrip(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending {
		return false
	}
	s.messages = append(s.messages, UserMessage(text))
	s.draft = ""
	s.pending = true
	return true
}

// EndRoundTrip appends the outcome of a round trip and clears pending.
func (s *State) EndRoundTrip(reply Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, reply)
	s.pending = false
}

// FilteredProjects applies the current search and level to projects.
func (s *State) FilteredProjects(projects []catalog.Project) []catalog.Project {
	s.mu.Lock()
	q, lvl := s.search, s.level
	s.mu.Unlock()
	return catalog.Filter(q, lvl, projects)
}

// StartProject opens a project's detail view on the projects tab.
func (s *State) StartProject(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentProject = id
	s.activeTab = TabProjects
}

// CurrentProject returns the started project id, or 0.
func (s *State) CurrentProject() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentProject
}

// StartLearningPath opens a path's detail view on the learning paths tab.
func (s *State) StartLearningPath(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentPath = id
	s.activeTab = TabLearningPaths
}

// CurrentPath returns the started learning path id, or 0.
func (s *State) CurrentPath() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentPath
}

// CloseDetail leaves any project or path detail view.
func (s *State) CloseDetail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentProject = 0
	s.currentPath = 0
}
