package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TraceTutor/internal/backend"
	"TraceTutor/internal/catalog"
	"TraceTutor/internal/session"
	"TraceTutor/internal/tutor"
)

type stubChat struct{ reply string }

func (s stubChat) Chat(ctx context.Context, system, user string) (*backend.Completion, error) {
	return &backend.Completion{Content: s.reply}, nil
}

type stubCompleter struct {
	text string
	err  error
}

func (s stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return s.text, s.err
}

func newTestModel(t *testing.T, completer backend.Completer) (Model, *session.State) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tu := tutor.New(stubChat{reply: "Use at least 0.5mm..."}, completer, tutor.WithLogger(logger))
	st := session.NewState(false)

	m := New(tu, catalog.Default(), st)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model), st
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

// collect runs cmd and any batched commands, returning the produced messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func find[T tea.Msg](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v
		}
	}
	var zero T
	t.Fatalf("no %T among %d messages", zero, len(msgs))
	return zero
}

func TestTabNavigation(t *testing.T) {
	m, st := newTestModel(t, stubCompleter{})
	assert.Equal(t, session.TabOverview, st.ActiveTab())

	m, _ = press(t, m, runes("3"))
	assert.Equal(t, session.TabProjects, st.ActiveTab())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, session.TabTutor, st.ActiveTab())
	assert.Equal(t, focusChat, m.focus)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, session.TabProjects, st.ActiveTab())

	_, _ = press(t, m, runes("5"), tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, session.TabOverview, st.ActiveTab())
}

func TestEnteringTutorTabStartsCursorBlink(t *testing.T) {
	m, st := newTestModel(t, stubCompleter{})

	m, cmd := press(t, m, runes("3"))
	assert.Nil(t, cmd)

	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, session.TabTutor, st.ActiveTab())
	assert.NotNil(t, cmd, "focusing the chat input starts the cursor blink")
	assert.True(t, m.chat.Focused())

	_, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, runes("4"))
	assert.Equal(t, session.TabTutor, st.ActiveTab())
	assert.NotNil(t, cmd)
}

func TestToggleDarkMode(t *testing.T) {
	m, st := newTestModel(t, stubCompleter{})

	m, _ = press(t, m, runes("d"))
	assert.True(t, st.DarkMode())
	assert.Contains(t, m.View(), "dark")

	_, _ = press(t, m, runes("d"))
	assert.False(t, st.DarkMode())
}

func TestSearchFiltersAndLevelCycles(t *testing.T) {
	m, st := newTestModel(t, stubCompleter{})

	m, _ = press(t, m, runes("3"), runes("/"), runes("led"))
	assert.Equal(t, "led", st.Search())
	projects := catalog.Default().Projects
	assert.Equal(t, catalog.Filter("led", catalog.LevelAll, projects), st.FilteredProjects(projects))

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc}, runes("f"))
	assert.Equal(t, catalog.LevelBeginner, st.Level())
	assert.Contains(t, m.View(), "beginner")
}

func TestEnterStartsProject(t *testing.T) {
	m, st := newTestModel(t, stubCompleter{})

	m, _ = press(t, m, runes("3"), runes("j"), enter)
	want := catalog.Default().Projects[1]
	assert.Equal(t, want.ID, st.CurrentProject())
	assert.Contains(t, m.View(), want.Title)

	_, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Zero(t, st.CurrentProject())
}

func TestChatRoundTrip(t *testing.T) {
	m, st := newTestModel(t, stubCompleter{})

	m, cmd := press(t, m, runes("4"), runes("What trace width for 2A?"), enter)
	require.NotNil(t, cmd)
	assert.True(t, m.sending)

	reply := find[chatReplyMsg](t, collect(cmd))
	require.NoError(t, reply.err)

	next, _ := m.Update(reply)
	m = next.(Model)

	assert.False(t, m.sending)
	assert.False(t, st.Pending())
	transcript := st.Transcript()
	require.Len(t, transcript, 3)
	assert.Equal(t, session.UserMessage("What trace width for 2A?"), transcript[1])
	assert.Equal(t, session.AssistantMessage("Use at least 0.5mm..."), transcript[2])
	assert.Empty(t, m.chat.Value())
}

func TestChatIgnoresBlankInput(t *testing.T) {
	m, st := newTestModel(t, stubCompleter{})

	_, cmd := press(t, m, runes("4"), runes("   "), enter)
	assert.Nil(t, cmd)
	assert.Equal(t, 1, st.Len())
}

func TestRecommendFromSearch(t *testing.T) {
	m, st := newTestModel(t, stubCompleter{text: "Start with the LED blinker."})

	m, cmd := press(t, m, runes("3"), runes("/"), runes("led"), enter)
	require.NotNil(t, cmd)
	assert.True(t, m.recommending)

	result := find[recommendMsg](t, collect(cmd))
	next, _ := m.Update(result)
	m = next.(Model)

	assert.False(t, m.recommending)
	assert.False(t, m.statusErr)
	assert.Equal(t, session.TabTutor, st.ActiveTab())
	assert.Equal(t, focusChat, m.focus)
	assert.Equal(t, 3, st.Len())
	assert.Equal(t, "Start with the LED blinker.", st.Transcript()[2].Content)
}

func TestRecommendFailureShowsStatus(t *testing.T) {
	m, st := newTestModel(t, stubCompleter{err: errors.New("provider down")})

	m, cmd := press(t, m, runes("3"), runes("/"), runes("motor"), enter)
	result := find[recommendMsg](t, collect(cmd))
	next, _ := m.Update(result)
	m = next.(Model)

	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "provider down")
	assert.Equal(t, session.TabProjects, st.ActiveTab())
	assert.Equal(t, 1, st.Len())
}

func TestViewRendersEveryTab(t *testing.T) {
	m, _ := newTestModel(t, stubCompleter{})

	for i := range session.Tabs {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc}, runes(string(rune('1'+i))))
		assert.Contains(t, m.View(), "TraceTutor")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc}, runes("5"))
	view := m.View()
	assert.Contains(t, view, "$29/month")
	assert.Contains(t, view, "Free")
}
