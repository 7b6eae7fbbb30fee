package game

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_CreateGetRemove(t *testing.T) {
	m := NewManager(nil)

	id, g, err := m.Create(4, twoHandDeal, firstPicker)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, m.Count())

	got, ok := m.Get(id)
	assert.True(t, ok)
	assert.Same(t, g, got)

	_, ok = m.Get("nope")
	assert.False(t, ok)

	m.Remove(id)
	assert.Equal(t, 0, m.Count())
	_, ok = m.Get(id)
	assert.False(t, ok)
}

func TestManager_CreateInvalid(t *testing.T) {
	m := NewManager(nil)
	_, _, err := m.Create(5, twoHandDeal, firstPicker)
	assert.Error(t, err)
	assert.Equal(t, 0, m.Count())
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager(nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, _, err := m.Create(4, twoHandDeal, firstPicker)
			assert.NoError(t, err)
			_, ok := m.Get(id)
			assert.True(t, ok)
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, m.Count())
	assert.Len(t, m.IDs(), 8)
}

func TestMove_Encode(t *testing.T) {
	g := newFixtureGame(t)
	m := mustMove(t, g, 0, 1, missingCard)
	assert.Equal(t, []int{0, 1, 1, 3}, m.Encode())
}
