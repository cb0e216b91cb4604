package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRegistryCreateGet(t *testing.T) {
	r := NewRegistry(time.Minute, true)

	id, st := r.Create()
	require.NotEmpty(t, id)
	assert.True(t, st.DarkMode(), "new states inherit the registry theme")

	got, ok := r.Get(id)
	require.True(t, ok)
	assert.Same(t, st, got)

	_, ok = r.Get("missing")
	assert.False(t, ok)

	other, _ := r.Create()
	assert.NotEqual(t, id, other)
	assert.Equal(t, 2, r.Count())

	r.Remove(id)
	assert.Equal(t, 1, r.Count())
}

func TestRegistrySweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(10*time.Minute, false)
	r.now = func() time.Time { return now }

	idle, _ := r.Create()
	busyID, busy := r.Create()
	require.True(t, busy.BeginRoundTrip("hi"))

	now = now.Add(5 * time.Minute)
	fresh, _ := r.Create()

	now = now.Add(6 * time.Minute)
	assert.Equal(t, 1, r.Sweep())

	_, ok := r.Get(idle)
	assert.False(t, ok, "idle state is discarded")
	_, ok = r.Get(busyID)
	assert.True(t, ok, "state with a pending round trip survives")
	_, ok = r.Get(fresh)
	assert.True(t, ok)
}

func TestRegistryRunStopsOnCancel(t *testing.T) {
	r := NewRegistry(time.Nanosecond, false)
	r.Create()

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		r.Run(ctx, time.Millisecond)
	}()

	assert.Eventually(t, func() bool { return r.Count() == 0 }, time.Second, time.Millisecond)
	cancel()
	wg.Wait()
}

func TestRegistryAttachKeepsStateAcrossTTL(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(30*time.Minute, false)
	r.now = func() time.Time { return now }

	id, st := r.Create()
	release, ok := r.Attach(id)
	require.True(t, ok)

	st.Append(UserMessage("first"))
	now = now.Add(31 * time.Minute)
	assert.Zero(t, r.Sweep(), "attached state survives past the TTL")

	st.Append(UserMessage("second"))
	now = now.Add(31 * time.Minute)
	assert.Zero(t, r.Sweep())

	got, ok := r.Get(id)
	require.True(t, ok)
	assert.Same(t, st, got)

	release()
	release()
	now = now.Add(29 * time.Minute)
	assert.Zero(t, r.Sweep(), "release counts as use")

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, r.Sweep())

	_, ok = r.Attach("missing")
	assert.False(t, ok)
}

func TestRegistryTouch(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(10*time.Minute, false)
	r.now = func() time.Time { return now }

	id, _ := r.Create()
	now = now.Add(8 * time.Minute)
	require.True(t, r.Touch(id))

	now = now.Add(8 * time.Minute)
	assert.Zero(t, r.Sweep(), "touch refreshes the idle timer")

	assert.False(t, r.Touch("missing"))
}
