package session

import (
	"sync"
	"testing"
	"time"

	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultStore(t *testing.T) {
	var store ResultStore

	_, ok := store.Get()
	assert.False(t, ok, "store starts empty")

	first := &models.LabeledTable{TextColumn: "a"}
	second := &models.LabeledTable{TextColumn: "b"}

	store.Set(first)
	got, ok := store.Get()
	require.True(t, ok)
	assert.Same(t, first, got)

	store.Set(second)
	got, ok = store.Get()
	require.True(t, ok)
	assert.Same(t, second, got, "set overwrites")
}

func TestResultStore_ConcurrentReadsSeeWholeValues(t *testing.T) {
	var store ResultStore
	tables := []*models.LabeledTable{{TextColumn: "a"}, {TextColumn: "b"}}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			store.Set(tables[i%2])
		}(i)
		go func() {
			defer wg.Done()
			if got, ok := store.Get(); ok {
				assert.Contains(t, []string{"a", "b"}, got.TextColumn)
			}
		}()
	}
	wg.Wait()
}

func TestSessionView(t *testing.T) {
	m := NewManager(time.Hour)
	s := m.Create()

	s.Exclusive(func() {
		assert.Equal(t, ViewHome, s.View())
		s.SetView(ViewVisualization)
	})
	s.Exclusive(func() {
		assert.Equal(t, ViewVisualization, s.View())
	})
	assert.Equal(t, "Visualization", ViewVisualization.String())
	assert.Equal(t, "Unknown", View(99).String())
}

func TestManager(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(time.Hour)
	m.now = func() time.Time { return now }

	a := m.Create()
	b := m.Create()
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotSame(t, a.Store, b.Store, "sessions never share a store")
	assert.Equal(t, 2, m.Len())

	got, ok := m.Get(a.ID)
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = m.Get("unknown")
	assert.False(t, ok)

	t.Run("get or create", func(t *testing.T) {
		s, created := m.GetOrCreate(a.ID)
		assert.False(t, created)
		assert.Same(t, a, s)

		s, created = m.GetOrCreate("")
		assert.True(t, created)
		assert.NotEqual(t, a.ID, s.ID)
	})

	t.Run("idle sessions expire", func(t *testing.T) {
		now = now.Add(30 * time.Minute)
		_, ok := m.Get(b.ID) // keeps b alive
		require.True(t, ok)

		now = now.Add(45 * time.Minute)
		_, ok = m.Get(a.ID)
		assert.False(t, ok, "a idle for 75m")

		now = now.Add(2 * time.Hour)
		removed := m.Sweep()
		assert.Equal(t, 2, removed)
		assert.Equal(t, 0, m.Len())
	})
}
