package action

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndTrigger(t *testing.T) {
	r := NewRegistry(nil)

	var got uuid.UUID
	h, err := r.Create("activate_preset_1", "Activate Brush Preset 1", "", func(handle uuid.UUID) {
		got = handle
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, h)

	require.NoError(t, r.Trigger("activate_preset_1"))
	assert.Equal(t, h, got)

	got = uuid.Nil
	require.NoError(t, r.TriggerHandle(h))
	assert.Equal(t, h, got)
}

func TestCreateErrors(t *testing.T) {
	r := NewRegistry(nil)
	noop := func(uuid.UUID) {}

	_, err := r.Create("", "x", "", noop)
	assert.Error(t, err)
	_, err = r.Create("x", "x", "", nil)
	assert.Error(t, err)

	_, err = r.Create("x", "x", "", noop)
	require.NoError(t, err)
	_, err = r.Create("x", "again", "", noop)
	assert.ErrorIs(t, err, ErrDuplicateAction)
}

func TestTriggerUnknown(t *testing.T) {
	r := NewRegistry(nil)
	assert.ErrorIs(t, r.Trigger("nope"), ErrUnknownAction)
	assert.ErrorIs(t, r.TriggerHandle(uuid.New()), ErrUnknownAction)
}

func TestTriggerRecoversPanic(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.Create("boom", "Boom", "", func(uuid.UUID) { panic("kaboom") })
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		assert.NoError(t, r.Trigger("boom"))
	})
	// the registry is still usable afterwards
	assert.NoError(t, r.Trigger("boom"))
}

func TestListOrderAndIDs(t *testing.T) {
	r := NewRegistry(nil)
	noop := func(uuid.UUID) {}
	for _, id := range []string{"b", "a", "c"} {
		_, err := r.Create(id, "label "+id, "tools", noop)
		require.NoError(t, err)
	}

	var ids []string
	for _, a := range r.List() {
		ids = append(ids, a.ID)
		assert.Equal(t, "tools", a.Menu)
	}
	assert.Equal(t, []string{"b", "a", "c"}, ids)
	assert.Equal(t, []string{"a", "b", "c"}, r.IDs())

	a, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, "label a", a.Label)
	_, ok = r.Get("zzz")
	assert.False(t, ok)
}

func TestTriggerIsSerialised(t *testing.T) {
	r := NewRegistry(nil)

	var running, maxRunning int32
	_, err := r.Create("slow", "Slow", "", func(uuid.UUID) {
		n := atomic.AddInt32(&running, 1)
		for {
			m := atomic.LoadInt32(&maxRunning)
			if n <= m || atomic.CompareAndSwapInt32(&maxRunning, m, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&running, -1)
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, r.Trigger("slow"))
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&maxRunning))
}

func TestRegistry_Exclusive(t *testing.T) {
	r := NewRegistry(nil)
	var inside atomic.Bool
	overlap := make(chan bool, 1)
	started := make(chan struct{})
	release := make(chan struct{})

	_, err := r.Create("slow", "Slow", "", func(uuid.UUID) {
		inside.Store(true)
		close(started)
		<-release
		inside.Store(false)
	})
	require.NoError(t, err)

	go func() { _ = r.Trigger("slow") }()
	<-started

	done := make(chan struct{})
	go func() {
		r.Exclusive(func() { overlap <- inside.Load() })
		close(done)
	}()
	close(release)
	<-done
	assert.False(t, <-overlap)
}
