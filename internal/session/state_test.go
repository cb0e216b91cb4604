package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TraceTutor/internal/catalog"
)

func TestNewState(t *testing.T) {
	st := NewState(true)
	snap := st.Snapshot()

	assert.Equal(t, TabOverview, snap.ActiveTab)
	assert.True(t, snap.DarkMode)
	assert.Equal(t, catalog.LevelAll, snap.Level)
	assert.False(t, snap.Pending)
	assert.Equal(t, []Message{AssistantMessage(Greeting)}, snap.Messages)
}

func TestRoundTripLifecycle(t *testing.T) {
	st := NewState(false)
	st.SetDraft("What trace width for 2A?")

	require.True(t, st.BeginRoundTrip("What trace width for 2A?"))
	assert.True(t, st.Pending())
	assert.Empty(t, st.Draft(), "draft is cleared when the round trip starts")

	assert.False(t, st.BeginRoundTrip("second"), "only one round trip at a time")
	assert.Equal(t, 2, st.Len(), "rejected start leaves the transcript alone")

	st.EndRoundTrip(AssistantMessage("Use at least 0.5mm..."))
	assert.False(t, st.Pending())
	assert.Equal(t, []Message{
		AssistantMessage(Greeting),
		UserMessage("What trace width for 2A?"),
		AssistantMessage("Use at least 0.5mm..."),
	}, st.Transcript())
}

func TestTranscriptIsACopy(t *testing.T) {
	st := NewState(false)
	msgs := st.Transcript()
	msgs[0].Content = "tampered"
	assert.Equal(t, Greeting, st.Transcript()[0].Content)
}

func TestToggleDarkMode(t *testing.T) {
	st := NewState(false)
	assert.True(t, st.ToggleDarkMode())
	assert.False(t, st.ToggleDarkMode())
}

func TestFilteredProjectsUsesSearchAndLevel(t *testing.T) {
	st := NewState(false)
	all := catalog.Default().Projects

	assert.Len(t, st.FilteredProjects(all), len(all))

	st.SetSearch("thermal")
	st.SetLevel(catalog.LevelAdvanced)
	got := st.FilteredProjects(all)
	require.Len(t, got, 2)
	assert.Equal(t, "Audio Amplifier", got[0].Title)
	assert.Equal(t, "Motor Controller", got[1].Title)
}

func TestStartProjectAndPath(t *testing.T) {
	st := NewState(false)

	st.StartProject(3)
	assert.Equal(t, TabProjects, st.ActiveTab())
	assert.Equal(t, 3, st.CurrentProject())

	st.StartLearningPath(2)
	assert.Equal(t, TabLearningPaths, st.ActiveTab())
	assert.Equal(t, 2, st.CurrentPath())

	st.CloseDetail()
	assert.Zero(t, st.CurrentProject())
	assert.Zero(t, st.CurrentPath())
}

func TestParseTab(t *testing.T) {
	for _, tab := range Tabs {
		got, ok := ParseTab(string(tab))
		assert.True(t, ok)
		assert.Equal(t, tab, got)
		assert.NotEmpty(t, tab.Label())
	}
	_, ok := ParseTab("settings")
	assert.False(t, ok)
}

func TestConcurrentAppendsKeepEveryMessage(t *testing.T) {
	st := NewState(false)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.Append(AssistantMessage("tip"))
		}()
	}
	wg.Wait()
	assert.Equal(t, 51, st.Len())
}
